package company

import (
	"errors"
	"strings"
)

type UpsertCompanyDTO struct {
	Name     string `json:"name"`
	Country  string `json:"country"`
	Currency string `json:"currency"`
}

func (dto *UpsertCompanyDTO) Validate() error {
	if strings.TrimSpace(dto.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(dto.Currency) == "" {
		return errors.New("currency is required")
	}
	if len(dto.Currency) != 3 {
		return errors.New("currency must be a three-letter code")
	}
	dto.Currency = strings.ToUpper(dto.Currency)
	return nil
}
