package approval

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/expenseflow/expenseflow/internal"
	approvalmodel "github.com/expenseflow/expenseflow/internal/core/datamodel/approval"
	expensemodel "github.com/expenseflow/expenseflow/internal/core/datamodel/expense"
	"github.com/expenseflow/expenseflow/internal/recordstore"
)

type Repository interface {
	GetStep(ctx context.Context, id string) (*approvalmodel.Step, error)
	ListStepsByApprover(ctx context.Context, approverID string) ([]*approvalmodel.Step, error)
	// Decide writes the decided step and the parent expense's new status in
	// one transaction and returns both records as written.
	Decide(ctx context.Context, stepID, status, comments string, decidedAt time.Time) (*approvalmodel.Step, *expensemodel.Expense, error)

	// GetExpense reads the parent expense of a step for worklist views.
	GetExpense(ctx context.Context, id string) (*expensemodel.Expense, error)

	CreateRule(ctx context.Context, rule *approvalmodel.Rule) error
	ListRules(ctx context.Context) ([]*approvalmodel.Rule, error)
}

type recordRepository struct {
	store recordstore.Store
}

func NewRepository(store recordstore.Store) Repository {
	return &recordRepository{store: store}
}

func (r *recordRepository) GetStep(ctx context.Context, id string) (*approvalmodel.Step, error) {
	data, err := r.store.Get(ctx, approvalmodel.StepKey(id))
	if err != nil {
		if errors.Is(err, recordstore.ErrKeyNotFound) {
			return nil, internal.ErrApprovalNotFound
		}
		return nil, err
	}

	var step approvalmodel.Step
	if err := json.Unmarshal(data, &step); err != nil {
		return nil, fmt.Errorf("unmarshaling approval step: %w", err)
	}
	return &step, nil
}

func (r *recordRepository) ListStepsByApprover(ctx context.Context, approverID string) ([]*approvalmodel.Step, error) {
	values, err := r.store.ScanPrefix(ctx, approvalmodel.StepKeyPrefix)
	if err != nil {
		return nil, err
	}

	steps := make([]*approvalmodel.Step, 0)
	for _, data := range values {
		var step approvalmodel.Step
		if err := json.Unmarshal(data, &step); err != nil {
			return nil, fmt.Errorf("unmarshaling approval step: %w", err)
		}
		if step.ApproverID == approverID {
			steps = append(steps, &step)
		}
	}

	sort.Slice(steps, func(i, j int) bool {
		return steps[i].CreatedAt.After(steps[j].CreatedAt)
	})
	return steps, nil
}

func (r *recordRepository) Decide(ctx context.Context, stepID, status, comments string, decidedAt time.Time) (*approvalmodel.Step, *expensemodel.Expense, error) {
	var step approvalmodel.Step
	var exp expensemodel.Expense

	err := r.store.Update(ctx, func(txn recordstore.Txn) error {
		stepData, err := txn.Get(approvalmodel.StepKey(stepID))
		if err != nil {
			if errors.Is(err, recordstore.ErrKeyNotFound) {
				return internal.ErrApprovalNotFound
			}
			return err
		}
		if err := json.Unmarshal(stepData, &step); err != nil {
			return fmt.Errorf("unmarshaling approval step: %w", err)
		}

		step.Status = status
		step.Comments = comments
		step.DecidedAt = &decidedAt

		newStepData, err := json.Marshal(&step)
		if err != nil {
			return fmt.Errorf("marshaling approval step: %w", err)
		}
		if err := txn.Set(approvalmodel.StepKey(step.ID), newStepData); err != nil {
			return err
		}

		expData, err := txn.Get(expensemodel.Key(step.ExpenseID))
		if err != nil {
			if errors.Is(err, recordstore.ErrKeyNotFound) {
				return internal.ErrExpenseNotFound
			}
			return err
		}
		if err := json.Unmarshal(expData, &exp); err != nil {
			return fmt.Errorf("unmarshaling expense: %w", err)
		}

		exp.Status = status

		newExpData, err := json.Marshal(&exp)
		if err != nil {
			return fmt.Errorf("marshaling expense: %w", err)
		}
		return txn.Set(expensemodel.Key(exp.ID), newExpData)
	})
	if err != nil {
		return nil, nil, err
	}
	return &step, &exp, nil
}

func (r *recordRepository) GetExpense(ctx context.Context, id string) (*expensemodel.Expense, error) {
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

func (r *recordRepository) CreateRule(ctx context.Context, rule *approvalmodel.Rule) error {
	data, err := json.Marshal(rule)
	if err != nil {
		return fmt.Errorf("marshaling approval rule: %w", err)
	}
	return r.store.Set(ctx, approvalmodel.RuleKey(rule.ID), data)
}

func (r *recordRepository) ListRules(ctx context.Context) ([]*approvalmodel.Rule, error) {
	values, err := r.store.ScanPrefix(ctx, approvalmodel.RuleKeyPrefix)
	if err != nil {
		return nil, err
	}

	rules := make([]*approvalmodel.Rule, 0, len(values))
	for _, data := range values {
		var rule approvalmodel.Rule
		if err := json.Unmarshal(data, &rule); err != nil {
			return nil, fmt.Errorf("unmarshaling approval rule: %w", err)
		}
		rules = append(rules, &rule)
	}
	return rules, nil
}
