package seed_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/expenseflow/expenseflow/internal/approval"
	"github.com/expenseflow/expenseflow/internal/company"
	"github.com/expenseflow/expenseflow/internal/recordstore"
	"github.com/expenseflow/expenseflow/internal/seed"
	"github.com/expenseflow/expenseflow/internal/user"
)

func TestSeed(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Seed Suite")
}

var _ = Describe("Seeder", func() {
	var (
		store  *recordstore.MemoryStore
		seeder *seed.Seeder
		ctx    context.Context
	)

	BeforeEach(func() {
		store = recordstore.NewMemoryStore()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		seeder = seed.NewSeeder(store, logger)
		ctx = context.Background()
	})

	It("loads a company, users, rules and expenses with steps", func() {
		summary, err := seeder.Run(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(summary.Company).To(Equal("Acme Corp"))
		Expect(summary.Users).To(HaveLen(4))
		Expect(summary.Rules).To(Equal(2))
		Expect(summary.Expenses).To(Equal(3))

		c, err := company.NewRepository(store).Get(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Currency).To(Equal("USD"))

		users := user.NewRepository(store)
		manager, err := users.GetByEmail(ctx, "manager@acme.test")
		Expect(err).NotTo(HaveOccurred())
		Expect(manager.Role).To(Equal(user.RoleManager))

		employee, err := users.GetByEmail(ctx, "sam@acme.test")
		Expect(err).NotTo(HaveOccurred())
		Expect(*employee.ManagerID).To(Equal(manager.ID))

		approvals := approval.NewRepository(store)
		steps, err := approvals.ListStepsByApprover(ctx, manager.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(steps).To(HaveLen(3))

		rules, err := approvals.ListRules(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(rules).To(HaveLen(2))
	})

	It("is idempotent across reruns", func() {
		_, err := seeder.Run(ctx)
		Expect(err).NotTo(HaveOccurred())
		_, err = seeder.Run(ctx)
		Expect(err).NotTo(HaveOccurred())

		users, err := user.NewRepository(store).List(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(users).To(HaveLen(4))
	})
})
