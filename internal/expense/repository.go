package expense

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/expenseflow/expenseflow/internal"
	approvalmodel "github.com/expenseflow/expenseflow/internal/core/datamodel/approval"
	expensemodel "github.com/expenseflow/expenseflow/internal/core/datamodel/expense"
	"github.com/expenseflow/expenseflow/internal/recordstore"
)

type Repository interface {
	// Create persists the expense and, when step is non-nil, its approval
	// step in one transaction.
	Create(ctx context.Context, exp *expensemodel.Expense, step *approvalmodel.Step) error
	GetByID(ctx context.Context, id string) (*expensemodel.Expense, error)
	ListByUser(ctx context.Context, userID string) ([]*expensemodel.Expense, error)
	ListAll(ctx context.Context) ([]*expensemodel.Expense, error)
}

type recordRepository struct {
	store recordstore.Store
}

func NewRepository(store recordstore.Store) Repository {
	return &recordRepository{store: store}
}

func (r *recordRepository) Create(ctx context.Context, exp *expensemodel.Expense, step *approvalmodel.Step) error {
	expData, err := json.Marshal(exp)
	if err != nil {
		return fmt.Errorf("marshaling expense: %w", err)
	}

	var stepData []byte
	if step != nil {
		stepData, err = json.Marshal(step)
		if err != nil {
			return fmt.Errorf("marshaling approval step: %w", err)
		}
	}

	return r.store.Update(ctx, func(txn recordstore.Txn) error {
		if err := txn.Set(expensemodel.Key(exp.ID), expData); err != nil {
			return err
		}
		if step != nil {
			return txn.Set(approvalmodel.StepKey(step.ID), stepData)
		}
		return nil
	})
}

func (r *recordRepository) GetByID(ctx context.Context, id string) (*expensemodel.Expense, error) {
	data, err := r.store.Get(ctx, expensemodel.Key(id))
	if err != nil {
		if errors.Is(err, recordstore.ErrKeyNotFound) {
			return nil, internal.ErrExpenseNotFound
		}
		return nil, err
	}

	var exp expensemodel.Expense
	if err := json.Unmarshal(data, &exp); err != nil {
		return nil, fmt.Errorf("unmarshaling expense: %w", err)
	}
	return &exp, nil
}

func (r *recordRepository) ListByUser(ctx context.Context, userID string) ([]*expensemodel.Expense, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	expenses := make([]*expensemodel.Expense, 0)
	for _, exp := range all {
		if exp.UserID == userID {
			expenses = append(expenses, exp)
		}
	}
	return expenses, nil
}

func (r *recordRepository) ListAll(ctx context.Context) ([]*expensemodel.Expense, error) {
	values, err := r.store.ScanPrefix(ctx, expensemodel.KeyPrefix)
	if err != nil {
		return nil, err
	}

	expenses := make([]*expensemodel.Expense, 0, len(values))
	for _, data := range values {
		var exp expensemodel.Expense
		if err := json.Unmarshal(data, &exp); err != nil {
			return nil, fmt.Errorf("unmarshaling expense: %w", err)
		}
		expenses = append(expenses, &exp)
	}

	// scan order is unspecified; present newest first
	sort.Slice(expenses, func(i, j int) bool {
		return expenses[i].CreatedAt.After(expenses[j].CreatedAt)
	})
	return expenses, nil
}
