package expense

import (
	"context"
	"log/slog"
	"time"

	"github.com/expenseflow/expenseflow/internal"
	"github.com/expenseflow/expenseflow/internal/company"
	approvalmodel "github.com/expenseflow/expenseflow/internal/core/datamodel/approval"
	expensemodel "github.com/expenseflow/expenseflow/internal/core/datamodel/expense"
	"github.com/expenseflow/expenseflow/internal/core/events"
	"github.com/expenseflow/expenseflow/internal/currency"
	"github.com/expenseflow/expenseflow/internal/user"
	"github.com/google/uuid"
)

// UserGetter is the slice of the user service submission needs.
type UserGetter interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

// CompanyGetter resolves the company whose currency expenses normalize into.
type CompanyGetter interface {
	Get(ctx context.Context) (*company.Company, error)
}

type Service struct {
	repo      Repository
	users     UserGetter
	companies CompanyGetter
	bus       *events.EventBus
	logger    *slog.Logger
}

func NewService(repo Repository, users UserGetter, companies CompanyGetter, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		users:     users,
		companies: companies,
		bus:       bus,
		logger:    logger,
	}
}

// Submit validates the payload, converts the amount into the company
// currency and persists the expense together with its approval step.
//
// The step goes to the employee's direct manager, sequence 1, pending. An
// unknown employee id degrades: the expense persists with no step and no
// error. Submission and step creation commit in one store transaction.
func (s *Service) Submit(ctx context.Context, dto CreateExpenseDTO) (*expensemodel.Expense, *approvalmodel.Step, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("expense validation failed", "error", err, "user_id", dto.UserID)
		return nil, nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	companyCurrency := dto.Currency
	if c, err := s.companies.Get(ctx); err == nil {
		companyCurrency = c.Currency
	}

	exp := &expensemodel.Expense{
		ID:                      uuid.NewString(),
		UserID:                  dto.UserID,
		Amount:                  dto.Amount,
		Currency:                dto.Currency,
		AmountInCompanyCurrency: currency.Convert(dto.Amount, dto.Currency, companyCurrency),
		Category:                dto.Category,
		Description:             dto.Description,
		Date:                    dto.Date,
		ReceiptURL:              dto.ReceiptURL,
		Status:                  expensemodel.StatusPending,
		CreatedAt:               time.Now(),
	}

	step := s.buildStep(ctx, exp)

	if err := s.repo.Create(ctx, exp, step); err != nil {
		s.logger.Error("failed to create expense", "error", err, "user_id", dto.UserID)
		return nil, nil, err
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.NewExpenseSubmitted(exp.ID, exp.UserID, exp.Amount, exp.Currency))
	}

	s.logger.Info("expense submitted",
		"expense_id", exp.ID,
		"user_id", exp.UserID,
		"amount", exp.Amount,
		"currency", exp.Currency,
		"has_approval_step", step != nil)

	return exp, step, nil
}

// buildStep synthesizes the single approval step for the employee's manager,
// or nil when the employee is unknown or has no manager.
func (s *Service) buildStep(ctx context.Context, exp *expensemodel.Expense) *approvalmodel.Step {
	u, err := s.users.GetByID(ctx, exp.UserID)
	if err != nil {
		s.logger.Warn("submitting expense for unknown employee; no approval step attached",
			"user_id", exp.UserID, "expense_id", exp.ID)
		return nil
	}
	if u.ManagerID == nil || *u.ManagerID == "" {
		return nil
	}

	return &approvalmodel.Step{
		ID:         uuid.NewString(),
		ExpenseID:  exp.ID,
		ApproverID: *u.ManagerID,
		Status:     approvalmodel.StatusPending,
		Sequence:   1,
		CreatedAt:  time.Now(),
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (*expensemodel.Expense, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]*expensemodel.Expense, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) ListAll(ctx context.Context) ([]*expensemodel.Expense, error) {
	return s.repo.ListAll(ctx)
}
