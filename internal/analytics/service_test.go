package analytics_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/expenseflow/expenseflow/internal/analytics"
	approvalmodel "github.com/expenseflow/expenseflow/internal/core/datamodel/approval"
	expensemodel "github.com/expenseflow/expenseflow/internal/core/datamodel/expense"
)

func TestAnalytics(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Analytics Module Suite")
}

type fakeExpenseLister struct {
	expenses []*expensemodel.Expense
}

func (f *fakeExpenseLister) ListByUser(_ context.Context, _ string) ([]*expensemodel.Expense, error) {
	return f.expenses, nil
}

type fakeApprovalLister struct {
	steps []*approvalmodel.Step
}

func (f *fakeApprovalLister) ListByApprover(_ context.Context, _ string) ([]*approvalmodel.Step, error) {
	return f.steps, nil
}

var _ = Describe("Dashboard", func() {
	var (
		expenses  *fakeExpenseLister
		approvals *fakeApprovalLister
		service   *analytics.Service
	)

	BeforeEach(func() {
		expenses = &fakeExpenseLister{}
		approvals = &fakeApprovalLister{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = analytics.NewService(expenses, approvals, logger)
	})

	It("aggregates amounts in the company currency by status and category", func() {
		expenses.expenses = []*expensemodel.Expense{
			{ID: "e1", Status: expensemodel.StatusPending, Category: "Meals", AmountInCompanyCurrency: 10.50},
			{ID: "e2", Status: expensemodel.StatusApproved, Category: "Meals", AmountInCompanyCurrency: 20},
			{ID: "e3", Status: expensemodel.StatusApproved, Category: "Travel", AmountInCompanyCurrency: 100},
		}

		d, err := service.Dashboard(context.Background(), "user-1")
		Expect(err).NotTo(HaveOccurred())

		Expect(d.TotalCount).To(Equal(3))
		Expect(d.TotalAmount).To(Equal(130.50))
		Expect(d.CountByStatus).To(Equal(map[string]int{"pending": 1, "approved": 2}))
		Expect(d.AmountByStatus["approved"]).To(Equal(120.0))
		Expect(d.AmountByCategory["Meals"]).To(Equal(30.50))
	})

	It("caps recent expenses at five, keeping the newest", func() {
		for i := 0; i < 8; i++ {
			expenses.expenses = append(expenses.expenses, &expensemodel.Expense{
				ID:     string(rune('a' + i)),
				Status: expensemodel.StatusPending,
			})
		}

		d, err := service.Dashboard(context.Background(), "user-1")
		Expect(err).NotTo(HaveOccurred())
		Expect(d.RecentExpenses).To(HaveLen(5))
		Expect(d.RecentExpenses[0].ID).To(Equal("a"))
	})

	It("counts only pending approval steps", func() {
		approvals.steps = []*approvalmodel.Step{
			{ID: "s1", Status: approvalmodel.StatusPending},
			{ID: "s2", Status: approvalmodel.StatusApproved},
			{ID: "s3", Status: approvalmodel.StatusPending},
		}

		d, err := service.Dashboard(context.Background(), "manager-1")
		Expect(err).NotTo(HaveOccurred())
		Expect(d.PendingApprovals).To(Equal(2))
	})

	It("returns an empty dashboard for a user with no activity", func() {
		d, err := service.Dashboard(context.Background(), "user-1")
		Expect(err).NotTo(HaveOccurred())
		Expect(d.TotalCount).To(BeZero())
		Expect(d.TotalAmount).To(BeZero())
		Expect(d.RecentExpenses).To(BeEmpty())
		Expect(d.PendingApprovals).To(BeZero())
	})
})
