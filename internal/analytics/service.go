// Package analytics aggregates expenses into the dashboard view.
package analytics

import (
	"context"
	"log/slog"

	"github.com/expenseflow/expenseflow/internal/currency"

	approvalmodel "github.com/expenseflow/expenseflow/internal/core/datamodel/approval"
	expensemodel "github.com/expenseflow/expenseflow/internal/core/datamodel/expense"
)

type ExpenseLister interface {
	ListByUser(ctx context.Context, userID string) ([]*expensemodel.Expense, error)
}

type ApprovalLister interface {
	ListByApprover(ctx context.Context, approverID string) ([]*approvalmodel.Step, error)
}

type Service struct {
	expenses  ExpenseLister
	approvals ApprovalLister
	logger    *slog.Logger
}

func NewService(expenses ExpenseLister, approvals ApprovalLister, logger *slog.Logger) *Service {
	return &Service{expenses: expenses, approvals: approvals, logger: logger}
}

// Dashboard is the per-user aggregate. All sums are in the company currency.
type Dashboard struct {
	UserID           string                  `json:"user_id"`
	TotalCount       int                     `json:"total_count"`
	TotalAmount      float64                 `json:"total_amount"`
	AmountByStatus   map[string]float64      `json:"amount_by_status"`
	CountByStatus    map[string]int          `json:"count_by_status"`
	AmountByCategory map[string]float64      `json:"amount_by_category"`
	RecentExpenses   []*expensemodel.Expense `json:"recent_expenses"`
	PendingApprovals int                     `json:"pending_approvals"`
}

const recentExpenseLimit = 5

func (s *Service) Dashboard(ctx context.Context, userID string) (*Dashboard, error) {
	expenses, err := s.expenses.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		UserID:           userID,
		TotalCount:       len(expenses),
		AmountByStatus:   make(map[string]float64),
		CountByStatus:    make(map[string]int),
		AmountByCategory: make(map[string]float64),
		RecentExpenses:   make([]*expensemodel.Expense, 0, recentExpenseLimit),
	}

	for _, exp := range expenses {
		amount := exp.AmountInCompanyCurrency
		d.TotalAmount = currency.Round(d.TotalAmount + amount)
		d.AmountByStatus[exp.Status] = currency.Round(d.AmountByStatus[exp.Status] + amount)
		d.CountByStatus[exp.Status]++
		d.AmountByCategory[exp.Category] = currency.Round(d.AmountByCategory[exp.Category] + amount)
	}

	// ListByUser returns newest first
	for i, exp := range expenses {
		if i >= recentExpenseLimit {
			break
		}
		d.RecentExpenses = append(d.RecentExpenses, exp)
	}

	steps, err := s.approvals.ListByApprover(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, step := range steps {
		if step.Status == approvalmodel.StatusPending {
			d.PendingApprovals++
		}
	}

	return d, nil
}
