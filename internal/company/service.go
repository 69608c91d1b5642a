package company

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Get(ctx context.Context) (*Company, error) {
	return s.repo.Get(ctx)
}

// Upsert creates the company record on first call and updates it after.
func (s *Service) Upsert(ctx context.Context, dto UpsertCompanyDTO) (*Company, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	c, err := s.repo.Get(ctx)
	if err != nil {
		c = &Company{
			ID:        uuid.NewString(),
			CreatedAt: now,
		}
	}

	c.Name = dto.Name
	c.Country = dto.Country
	c.Currency = dto.Currency
	c.UpdatedAt = now

	if err := s.repo.Save(ctx, c); err != nil {
		s.logger.Error("failed to save company", "error", err)
		return nil, err
	}

	s.logger.Info("company saved", "company_id", c.ID, "currency", c.Currency)
	return c, nil
}
