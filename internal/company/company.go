// Package company manages the single company record that owns all users,
// expenses and approval rules in a deployment.
package company

import "time"

// Key is the record-store key for the single company record.
const Key = "company:main"

type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Country   string    `json:"country"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
