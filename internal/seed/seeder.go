// Package seed loads a demo data set: one company, an admin, a manager with
// two reports, approval rules and a few expenses with their approval steps.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/expenseflow/expenseflow/internal/approval"
	"github.com/expenseflow/expenseflow/internal/company"
	approvalmodel "github.com/expenseflow/expenseflow/internal/core/datamodel/approval"
	expensemodel "github.com/expenseflow/expenseflow/internal/core/datamodel/expense"
	"github.com/expenseflow/expenseflow/internal/currency"
	"github.com/expenseflow/expenseflow/internal/expense"
	"github.com/expenseflow/expenseflow/internal/recordstore"
	"github.com/expenseflow/expenseflow/internal/user"
	"golang.org/x/crypto/bcrypt"
)

const (
	demoCompanyID = "company-001"
	demoPassword  = "password123"
)

// Summary reports what the seeder wrote.
type Summary struct {
	Company  string   `json:"company"`
	Users    []string `json:"users"`
	Rules    int      `json:"rules"`
	Expenses int      `json:"expenses"`
}

type Seeder struct {
	store  recordstore.Store
	logger *slog.Logger
}

func NewSeeder(store recordstore.Store, logger *slog.Logger) *Seeder {
	return &Seeder{store: store, logger: logger}
}

// Run is idempotent: records are written under fixed keys, re-running
// overwrites the same demo data.
func (s *Seeder) Run(ctx context.Context) (*Summary, error) {
	companies := company.NewRepository(s.store)
	users := user.NewRepository(s.store)
	expenses := expense.NewRepository(s.store)
	approvals := approval.NewRepository(s.store)

	now := time.Now()

	demoCompany := &company.Company{
		ID:        demoCompanyID,
		Name:      "Acme Corp",
		Country:   "United States",
		Currency:  "USD",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := companies.Save(ctx, demoCompany); err != nil {
		return nil, fmt.Errorf("seeding company: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing demo password: %w", err)
	}

	managerID := "manager-001"
	demoUsers := []*user.User{
		{
			ID:    "admin-001",
			Email: "admin@acme.test",
			Name:  "Ada Admin",
			Role:  user.RoleAdmin,
		},
		{
			ID:                managerID,
			Email:             "manager@acme.test",
			Name:              "Morgan Manager",
			Role:              user.RoleManager,
			IsManagerApprover: true,
		},
		{
			ID:        "employee-001",
			Email:     "sam@acme.test",
			Name:      "Sam Staff",
			Role:      user.RoleEmployee,
			ManagerID: &managerID,
		},
		{
			ID:        "employee-002",
			Email:     "robin@acme.test",
			Name:      "Robin Rivera",
			Role:      user.RoleEmployee,
			ManagerID: &managerID,
		},
	}

	emails := make([]string, 0, len(demoUsers))
	for _, u := range demoUsers {
		u.CompanyID = demoCompanyID
		u.PasswordHash = string(hash)
		u.CreatedAt = now
		u.UpdatedAt = now
		if err := users.Create(ctx, u); err != nil {
			return nil, fmt.Errorf("seeding user %s: %w", u.Email, err)
		}
		emails = append(emails, u.Email)
	}

	threshold := 60.0
	rules := []*approvalmodel.Rule{
		{
			ID:                  "rule-001",
			CompanyID:           demoCompanyID,
			RuleType:            approvalmodel.RulePercentage,
			PercentageThreshold: &threshold,
			CreatedAt:           now,
		},
		{
			ID:                 "rule-002",
			CompanyID:          demoCompanyID,
			RuleType:           approvalmodel.RuleSpecific,
			SpecificApproverID: &managerID,
			CreatedAt:          now,
		},
	}
	for _, rule := range rules {
		if err := approvals.CreateRule(ctx, rule); err != nil {
			return nil, fmt.Errorf("seeding rule %s: %w", rule.ID, err)
		}
	}

	demoExpenses := []struct {
		id       string
		userID   string
		amount   float64
		cur      string
		category string
		desc     string
		date     string
	}{
		{"expense-001", "employee-001", 120, "USD", "Transportation", "Airport taxi", "2024-01-16"},
		{"expense-002", "employee-001", 85.5, "EUR", "Meals", "Client dinner in Berlin", "2024-01-20"},
		{"expense-003", "employee-002", 430, "USD", "Accommodation", "Two nights at conference hotel", "2024-02-03"},
	}

	for i, de := range demoExpenses {
		exp := &expensemodel.Expense{
			ID:                      de.id,
			UserID:                  de.userID,
			Amount:                  de.amount,
			Currency:                de.cur,
			AmountInCompanyCurrency: currency.Convert(de.amount, de.cur, demoCompany.Currency),
			Category:                de.category,
			Description:             de.desc,
			Date:                    de.date,
			Status:                  expensemodel.StatusPending,
			CreatedAt:               now.Add(time.Duration(i) * time.Second),
		}
		step := &approvalmodel.Step{
			ID:         fmt.Sprintf("approval-%03d", i+1),
			ExpenseID:  exp.ID,
			ApproverID: managerID,
			Status:     approvalmodel.StatusPending,
			Sequence:   1,
			CreatedAt:  exp.CreatedAt,
		}
		if err := expenses.Create(ctx, exp, step); err != nil {
			return nil, fmt.Errorf("seeding expense %s: %w", exp.ID, err)
		}
	}

	s.logger.Info("demo data seeded",
		"users", len(demoUsers),
		"rules", len(rules),
		"expenses", len(demoExpenses))

	return &Summary{
		Company:  demoCompany.Name,
		Users:    emails,
		Rules:    len(rules),
		Expenses: len(demoExpenses),
	}, nil
}
