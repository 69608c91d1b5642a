package user_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/expenseflow/expenseflow/internal"
	"github.com/expenseflow/expenseflow/internal/recordstore"
	"github.com/expenseflow/expenseflow/internal/user"
)

func TestUser(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Module Suite")
}

var _ = Describe("UserService", func() {
	var (
		store   *recordstore.MemoryStore
		service *user.Service
		ctx     context.Context
	)

	BeforeEach(func() {
		store = recordstore.NewMemoryStore()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = user.NewService(user.NewRepository(store), bcrypt.MinCost, logger)
		ctx = context.Background()
	})

	create := func(email, role string, managerID *string) *user.User {
		u, err := service.Create(ctx, user.CreateUserDTO{
			Email:     email,
			Name:      "Test User",
			Password:  "supersecret",
			Role:      role,
			ManagerID: managerID,
		}, "company-1")
		Expect(err).NotTo(HaveOccurred())
		return u
	}

	Describe("Create", func() {
		It("stores the user and hashes the password", func() {
			u := create("alice@acme.test", user.RoleEmployee, nil)

			Expect(u.ID).NotTo(BeEmpty())
			Expect(u.CompanyID).To(Equal("company-1"))
			Expect(u.PasswordHash).NotTo(ContainSubstring("supersecret"))

			stored, err := service.GetByID(ctx, u.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Email).To(Equal("alice@acme.test"))
		})

		It("writes an email index so lookups by email resolve", func() {
			u := create("bob@acme.test", user.RoleEmployee, nil)

			found, err := service.GetByEmail(ctx, "bob@acme.test")
			Expect(err).NotTo(HaveOccurred())
			Expect(found.ID).To(Equal(u.ID))
		})

		It("rejects a duplicate email", func() {
			create("carol@acme.test", user.RoleEmployee, nil)

			_, err := service.Create(ctx, user.CreateUserDTO{
				Email:    "carol@acme.test",
				Name:     "Other Carol",
				Password: "supersecret",
			}, "company-1")
			Expect(errors.Is(err, internal.ErrEmailTaken)).To(BeTrue())
		})

		It("defaults the role to employee and flags managers as approvers", func() {
			employee := create("emp@acme.test", "", nil)
			Expect(employee.Role).To(Equal(user.RoleEmployee))
			Expect(employee.IsManagerApprover).To(BeFalse())

			manager := create("mgr@acme.test", user.RoleManager, nil)
			Expect(manager.IsManagerApprover).To(BeTrue())
		})

		It("rejects short passwords", func() {
			_, err := service.Create(ctx, user.CreateUserDTO{
				Email:    "short@acme.test",
				Name:     "Shorty",
				Password: "short",
			}, "company-1")
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))
		})
	})

	Describe("Update", func() {
		It("changes role, manager and approver flag", func() {
			manager := create("boss@acme.test", user.RoleManager, nil)
			u := create("worker@acme.test", user.RoleEmployee, nil)

			role := user.RoleManager
			flag := true
			updated, err := service.Update(ctx, u.ID, user.UpdateUserDTO{
				Role:              &role,
				ManagerID:         &manager.ID,
				IsManagerApprover: &flag,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Role).To(Equal(user.RoleManager))
			Expect(*updated.ManagerID).To(Equal(manager.ID))
			Expect(updated.IsManagerApprover).To(BeTrue())
		})

		It("returns not found for an unknown user", func() {
			role := user.RoleAdmin
			_, err := service.Update(ctx, "nope", user.UpdateUserDTO{Role: &role})
			Expect(errors.Is(err, internal.ErrUserNotFound)).To(BeTrue())
		})
	})

	Describe("Delete", func() {
		It("removes the user record and the email index together", func() {
			u := create("gone@acme.test", user.RoleEmployee, nil)

			Expect(service.Delete(ctx, u.ID)).To(Succeed())

			_, err := service.GetByID(ctx, u.ID)
			Expect(errors.Is(err, internal.ErrUserNotFound)).To(BeTrue())

			_, err = service.GetByEmail(ctx, "gone@acme.test")
			Expect(errors.Is(err, internal.ErrUserNotFound)).To(BeTrue())

			_, err = store.Get(ctx, user.EmailKey("gone@acme.test"))
			Expect(errors.Is(err, recordstore.ErrKeyNotFound)).To(BeTrue())
		})

		It("returns not found for an unknown user", func() {
			err := service.Delete(ctx, "nope")
			Expect(errors.Is(err, internal.ErrUserNotFound)).To(BeTrue())
		})
	})

	Describe("List", func() {
		It("returns every user without leaking password hashes over JSON", func() {
			create("one@acme.test", user.RoleEmployee, nil)
			create("two@acme.test", user.RoleEmployee, nil)

			users, err := service.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(users).To(HaveLen(2))
		})
	})

	Describe("VerifyPassword", func() {
		It("accepts the right password", func() {
			create("login@acme.test", user.RoleEmployee, nil)

			u, err := service.VerifyPassword(ctx, "login@acme.test", "supersecret")
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Email).To(Equal("login@acme.test"))
		})

		It("rejects a wrong password", func() {
			create("login2@acme.test", user.RoleEmployee, nil)

			_, err := service.VerifyPassword(ctx, "login2@acme.test", "wrong-password")
			Expect(errors.Is(err, internal.ErrInvalidCredentials)).To(BeTrue())
		})

		It("rejects an unknown email", func() {
			_, err := service.VerifyPassword(ctx, "ghost@acme.test", "supersecret")
			Expect(errors.Is(err, internal.ErrInvalidCredentials)).To(BeTrue())
		})
	})
})
