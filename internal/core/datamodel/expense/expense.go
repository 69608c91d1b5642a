// Package expense holds the stored shape of an expense record.
package expense

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const KeyPrefix = "expense:"

func Key(id string) string {
	return KeyPrefix + id
}

type Expense struct {
	ID                      string    `json:"id"`
	UserID                  string    `json:"user_id"`
	Amount                  float64   `json:"amount"`
	Currency                string    `json:"currency"`
	AmountInCompanyCurrency float64   `json:"amount_in_company_currency"`
	Category                string    `json:"category"`
	Description             string    `json:"description"`
	Date                    string    `json:"date"`
	ReceiptURL              *string   `json:"receipt_url,omitempty"`
	Status                  string    `json:"status"`
	CreatedAt               time.Time `json:"created_at"`
}

func ValidStatus(status string) bool {
	return status == StatusPending || status == StatusApproved || status == StatusRejected
}
