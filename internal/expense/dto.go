package expense

import (
	"errors"
	"strings"
	"time"
)

// CreateExpenseDTO is the submit payload.
type CreateExpenseDTO struct {
	UserID      string  `json:"user_id"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	ReceiptURL  *string `json:"receipt_url,omitempty"`
}

func (dto *CreateExpenseDTO) Validate() error {
	if strings.TrimSpace(dto.UserID) == "" {
		return errors.New("user_id is required")
	}
	if dto.Amount <= 0 {
		return errors.New("amount must be greater than 0")
	}
	dto.Currency = strings.ToUpper(strings.TrimSpace(dto.Currency))
	if len(dto.Currency) != 3 {
		return errors.New("currency must be a three-letter code")
	}
	if strings.TrimSpace(dto.Category) == "" {
		return errors.New("category is required")
	}
	if len(dto.Description) > 500 {
		return errors.New("description must be less than 500 characters")
	}
	if dto.Date == "" {
		return errors.New("date is required")
	}
	if _, err := time.Parse("2006-01-02", dto.Date); err != nil {
		return errors.New("date must be in YYYY-MM-DD format")
	}
	return nil
}
