package expense_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/expenseflow/expenseflow/internal"
	"github.com/expenseflow/expenseflow/internal/company"
	approvalmodel "github.com/expenseflow/expenseflow/internal/core/datamodel/approval"
	expensemodel "github.com/expenseflow/expenseflow/internal/core/datamodel/expense"
	"github.com/expenseflow/expenseflow/internal/expense"
	"github.com/expenseflow/expenseflow/internal/recordstore"
	"github.com/expenseflow/expenseflow/internal/user"
)

func TestExpense(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Expense Module Suite")
}

type fakeUserGetter struct {
	users map[string]*user.User
}

func (f *fakeUserGetter) GetByID(_ context.Context, id string) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, internal.ErrUserNotFound
	}
	return u, nil
}

type fakeCompanyGetter struct {
	company *company.Company
	err     error
}

func (f *fakeCompanyGetter) Get(_ context.Context) (*company.Company, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.company, nil
}

var _ = Describe("ExpenseService", func() {
	var (
		store     *recordstore.MemoryStore
		service   *expense.Service
		users     *fakeUserGetter
		companies *fakeCompanyGetter
		ctx       context.Context
	)

	managerID := "manager-1"

	BeforeEach(func() {
		store = recordstore.NewMemoryStore()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		users = &fakeUserGetter{users: map[string]*user.User{
			"employee-1": {ID: "employee-1", Role: user.RoleEmployee, ManagerID: &managerID},
			"loner-1":    {ID: "loner-1", Role: user.RoleEmployee},
			managerID:    {ID: managerID, Role: user.RoleManager, IsManagerApprover: true},
		}}
		companies = &fakeCompanyGetter{company: &company.Company{ID: "c1", Currency: "EUR"}}
		service = expense.NewService(expense.NewRepository(store), users, companies, nil, logger)
		ctx = context.Background()
	})

	submit := func(dto expense.CreateExpenseDTO) (*expensemodel.Expense, *approvalmodel.Step) {
		exp, step, err := service.Submit(ctx, dto)
		Expect(err).NotTo(HaveOccurred())
		return exp, step
	}

	Describe("Submit", func() {
		It("stores the expense pending with the amount converted into the company currency", func() {
			exp, _ := submit(expense.CreateExpenseDTO{
				UserID:      "employee-1",
				Amount:      120,
				Currency:    "USD",
				Category:    "Meals",
				Description: "Team lunch",
				Date:        "2024-01-16",
			})

			Expect(exp.Status).To(Equal(expensemodel.StatusPending))
			Expect(exp.AmountInCompanyCurrency).To(Equal(110.4))

			stored, err := service.GetByID(ctx, exp.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Amount).To(Equal(120.0))
		})

		It("creates one pending approval step for the employee's manager", func() {
			exp, step := submit(expense.CreateExpenseDTO{
				UserID:      "employee-1",
				Amount:      50,
				Currency:    "EUR",
				Category:    "Travel",
				Description: "Train ticket",
				Date:        "2024-02-01",
			})

			Expect(step).NotTo(BeNil())
			Expect(step.ExpenseID).To(Equal(exp.ID))
			Expect(step.ApproverID).To(Equal(managerID))
			Expect(step.Status).To(Equal(approvalmodel.StatusPending))
			Expect(step.Sequence).To(Equal(1))
		})

		It("creates no step when the employee has no manager", func() {
			_, step := submit(expense.CreateExpenseDTO{
				UserID:      "loner-1",
				Amount:      10,
				Currency:    "USD",
				Category:    "Office",
				Description: "Pens",
				Date:        "2024-02-02",
			})

			Expect(step).To(BeNil())
		})

		It("still stores the expense when the employee id is unknown", func() {
			exp, step := submit(expense.CreateExpenseDTO{
				UserID:      "ghost-1",
				Amount:      33,
				Currency:    "USD",
				Category:    "Misc",
				Description: "Mystery",
				Date:        "2024-02-03",
			})

			Expect(step).To(BeNil())

			stored, err := service.GetByID(ctx, exp.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.UserID).To(Equal("ghost-1"))
		})

		It("keeps the submitted amount untouched when the currency pair is unknown", func() {
			exp, _ := submit(expense.CreateExpenseDTO{
				UserID:      "employee-1",
				Amount:      75,
				Currency:    "CHF",
				Category:    "Meals",
				Description: "Dinner",
				Date:        "2024-02-04",
			})

			Expect(exp.AmountInCompanyCurrency).To(Equal(75.0))
		})

		It("falls back to the submitted currency when no company exists yet", func() {
			companies.err = internal.ErrCompanyNotFound

			exp, _ := submit(expense.CreateExpenseDTO{
				UserID:      "employee-1",
				Amount:      20,
				Currency:    "USD",
				Category:    "Meals",
				Description: "Coffee",
				Date:        "2024-02-05",
			})

			Expect(exp.AmountInCompanyCurrency).To(Equal(20.0))
		})

		DescribeTable("rejects invalid payloads",
			func(dto expense.CreateExpenseDTO) {
				_, _, err := service.Submit(ctx, dto)
				Expect(err).To(HaveOccurred())
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.StatusCode).To(Equal(400))
			},
			Entry("zero amount", expense.CreateExpenseDTO{
				UserID: "employee-1", Amount: 0, Currency: "USD",
				Category: "Meals", Description: "x", Date: "2024-01-01",
			}),
			Entry("negative amount", expense.CreateExpenseDTO{
				UserID: "employee-1", Amount: -5, Currency: "USD",
				Category: "Meals", Description: "x", Date: "2024-01-01",
			}),
			Entry("bad currency", expense.CreateExpenseDTO{
				UserID: "employee-1", Amount: 10, Currency: "DOLLARS",
				Category: "Meals", Description: "x", Date: "2024-01-01",
			}),
			Entry("bad date", expense.CreateExpenseDTO{
				UserID: "employee-1", Amount: 10, Currency: "USD",
				Category: "Meals", Description: "x", Date: "16-01-2024",
			}),
			Entry("missing user", expense.CreateExpenseDTO{
				Amount: 10, Currency: "USD",
				Category: "Meals", Description: "x", Date: "2024-01-01",
			}),
			Entry("missing category", expense.CreateExpenseDTO{
				UserID: "employee-1", Amount: 10, Currency: "USD",
				Description: "x", Date: "2024-01-01",
			}),
		)
	})

	Describe("ListByUser", func() {
		It("returns only the user's expenses, newest first", func() {
			first, _ := submit(expense.CreateExpenseDTO{
				UserID: "employee-1", Amount: 10, Currency: "USD",
				Category: "Meals", Description: "first", Date: "2024-01-01",
			})
			second, _ := submit(expense.CreateExpenseDTO{
				UserID: "employee-1", Amount: 20, Currency: "USD",
				Category: "Meals", Description: "second", Date: "2024-01-02",
			})
			submit(expense.CreateExpenseDTO{
				UserID: "loner-1", Amount: 30, Currency: "USD",
				Category: "Meals", Description: "other user", Date: "2024-01-03",
			})

			expenses, err := service.ListByUser(ctx, "employee-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(expenses).To(HaveLen(2))
			Expect(expenses[0].ID).To(Equal(second.ID))
			Expect(expenses[1].ID).To(Equal(first.ID))
		})

		It("returns an empty list for a user with no expenses", func() {
			expenses, err := service.ListByUser(ctx, "employee-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(expenses).To(BeEmpty())
		})
	})
})
