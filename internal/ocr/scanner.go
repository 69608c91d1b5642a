// Package ocr extracts structured expense data from uploaded receipt images.
// The Scanner interface keeps the extraction backend pluggable: Gemini for
// real analysis, Mock for environments without an API key.
package ocr

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/expenseflow/expenseflow/internal"
)

// ReceiptData is the extraction result used to pre-fill the expense form.
// Any Scanner implementation must preserve this shape.
type ReceiptData struct {
	Vendor      string  `json:"vendor"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Confidence  float64 `json:"confidence"`
}

// Categories a scan result may land in; mirrors the expense form options.
var Categories = []string{
	"Travel",
	"Transportation",
	"Meals",
	"Accommodation",
	"Office Supplies",
	"Software",
	"Other",
}

type Scanner interface {
	ScanReceipt(ctx context.Context, imageData []byte, contentType string) (*ReceiptData, error)
}

// NewFromConfig builds the configured scanner.
func NewFromConfig(cfg internal.OCRConfig, logger *slog.Logger) (Scanner, error) {
	switch cfg.Provider {
	case "", "mock":
		logger.Info("initialized mock receipt scanner")
		return NewMock(), nil
	case "gemini":
		scanner, err := NewGemini(cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		logger.Info("initialized gemini receipt scanner", "model", cfg.GeminiModel)
		return scanner, nil
	default:
		return nil, fmt.Errorf("unknown ocr provider %q", cfg.Provider)
	}
}
