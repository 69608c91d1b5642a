package company

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/expenseflow/expenseflow/internal"
	"github.com/expenseflow/expenseflow/internal/recordstore"
)

type Repository interface {
	Get(ctx context.Context) (*Company, error)
	Save(ctx context.Context, c *Company) error
}

type recordRepository struct {
	store recordstore.Store
}

func NewRepository(store recordstore.Store) Repository {
	return &recordRepository{store: store}
}

func (r *recordRepository) Get(ctx context.Context) (*Company, error) {
	data, err := r.store.Get(ctx, Key)
	if err != nil {
		if errors.Is(err, recordstore.ErrKeyNotFound) {
			return nil, internal.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("reading company record: %w", err)
	}

	var c Company
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("unmarshaling company record: %w", err)
	}
	return &c, nil
}

func (r *recordRepository) Save(ctx context.Context, c *Company) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling company record: %w", err)
	}
	return r.store.Set(ctx, Key, data)
}
