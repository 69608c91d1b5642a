package ocr

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const receiptScanPrompt = `You are analyzing a receipt or invoice image. Read all text carefully and extract:

1. **Vendor**: the merchant or business name, usually the largest text at the top.
2. **Total amount**: the final total or amount due, as a plain number.
3. **Date**: the transaction date in ISO 8601 format (YYYY-MM-DD).
4. **Category**: the best match out of: Travel, Transportation, Meals, Accommodation, Office Supplies, Software, Other.
5. **Confidence**: your confidence in the extraction as a number between 0 and 1.

Return ONLY valid JSON in this exact format:
{
  "vendor": "Store Name",
  "amount": 0.00,
  "date": "YYYY-MM-DD",
  "category": "Meals",
  "description": "short human-readable summary",
  "confidence": 0.0
}

Do not include any text before or after the JSON and do not use markdown code blocks.`

// Gemini implements Scanner using Google Gemini vision models.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGemini(apiKey, modelName string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = "gemini-2.5-pro"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &Gemini{
		client: client,
		model:  client.GenerativeModel(modelName),
	}, nil
}

func (g *Gemini) ScanReceipt(ctx context.Context, imageData []byte, contentType string) (*ReceiptData, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	format := formatFromContentType(contentType)

	parts := []genai.Part{
		genai.ImageData(format, imageData),
		genai.Text(receiptScanPrompt),
	}

	resp, err := g.model.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, fmt.Errorf("generating content: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from gemini")
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			responseText.WriteString(string(text))
		}
	}

	return parseReceiptJSON(responseText.String())
}

func (g *Gemini) Close() error {
	return g.client.Close()
}

func formatFromContentType(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return "jpeg"
	case "image/webp":
		return "webp"
	default:
		return "png"
	}
}

// parseReceiptJSON parses the model output, stripping markdown fences models
// sometimes wrap around JSON despite instructions.
func parseReceiptJSON(text string) (*ReceiptData, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var data ReceiptData
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		return nil, fmt.Errorf("parsing receipt data: %w", err)
	}
	if data.Date != "" {
		if _, err := time.Parse("2006-01-02", data.Date); err != nil {
			return nil, fmt.Errorf("invalid date in receipt data: %q", data.Date)
		}
	}
	return &data, nil
}
