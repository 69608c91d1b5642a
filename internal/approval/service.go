package approval

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/expenseflow/expenseflow/internal"
	approvalmodel "github.com/expenseflow/expenseflow/internal/core/datamodel/approval"
	expensemodel "github.com/expenseflow/expenseflow/internal/core/datamodel/expense"
	"github.com/expenseflow/expenseflow/internal/core/events"
	"github.com/google/uuid"
)

type Service struct {
	repo   Repository
	bus    *events.EventBus
	logger *slog.Logger
}

func NewService(repo Repository, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{repo: repo, bus: bus, logger: logger}
}

// Decision pairs the decided step with the expense it drove.
type Decision struct {
	Step    *approvalmodel.Step   `json:"approval_step"`
	Expense *expensemodel.Expense `json:"expense"`
}

// Decide records the approver's outcome on a step and overwrites the parent
// expense's status with the same outcome. A single decided step drives the
// expense status regardless of any other steps or configured rules; that is
// the operative contract, and re-deciding an already-decided step simply
// overwrites it. Step and expense commit in one transaction.
func (s *Service) Decide(ctx context.Context, stepID string, dto DecideDTO) (*Decision, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	step, exp, err := s.repo.Decide(ctx, stepID, dto.Status, dto.Comments, time.Now())
	if err != nil {
		s.logger.Error("failed to decide approval step", "error", err, "approval_id", stepID)
		return nil, err
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.NewApprovalDecided(step.ID, exp.ID, step.ApproverID, step.Status))
	}

	s.logger.Info("approval step decided",
		"approval_id", step.ID,
		"expense_id", exp.ID,
		"status", step.Status)

	return &Decision{Step: step, Expense: exp}, nil
}

func (s *Service) ListByApprover(ctx context.Context, approverID string) ([]*approvalmodel.Step, error) {
	return s.repo.ListStepsByApprover(ctx, approverID)
}

// WorklistItem joins a step with its expense for the approver's queue. The
// expense is nil when its record is gone (deleted out from under the step).
type WorklistItem struct {
	Step    *approvalmodel.Step   `json:"approval_step"`
	Expense *expensemodel.Expense `json:"expense"`
}

// Worklist returns the approver's steps, each with its expense summary.
func (s *Service) Worklist(ctx context.Context, approverID string) ([]*WorklistItem, error) {
	steps, err := s.repo.ListStepsByApprover(ctx, approverID)
	if err != nil {
		return nil, err
	}

	items := make([]*WorklistItem, 0, len(steps))
	for _, step := range steps {
		exp, err := s.repo.GetExpense(ctx, step.ExpenseID)
		if err != nil {
			if !errors.Is(err, internal.ErrExpenseNotFound) {
				return nil, err
			}
			s.logger.Warn("approval step without expense", "approval_id", step.ID, "expense_id", step.ExpenseID)
			exp = nil
		}
		items = append(items, &WorklistItem{Step: step, Expense: exp})
	}
	return items, nil
}

func (s *Service) CreateRule(ctx context.Context, dto CreateRuleDTO, companyID string) (*approvalmodel.Rule, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeInvalidRuleType)
	}

	rule := &approvalmodel.Rule{
		ID:                  uuid.NewString(),
		CompanyID:           companyID,
		RuleType:            dto.RuleType,
		PercentageThreshold: dto.PercentageThreshold,
		SpecificApproverID:  dto.SpecificApproverID,
		CreatedAt:           time.Now(),
	}

	if err := s.repo.CreateRule(ctx, rule); err != nil {
		s.logger.Error("failed to create approval rule", "error", err)
		return nil, err
	}

	s.logger.Info("approval rule created", "rule_id", rule.ID, "rule_type", rule.RuleType)
	return rule, nil
}

func (s *Service) ListRules(ctx context.Context) ([]*approvalmodel.Rule, error) {
	return s.repo.ListRules(ctx)
}
