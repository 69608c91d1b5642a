package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/expenseflow/expenseflow/internal/analytics"
	"github.com/expenseflow/expenseflow/internal/approval"
	"github.com/expenseflow/expenseflow/internal/auth"
	"github.com/expenseflow/expenseflow/internal/company"
	"github.com/expenseflow/expenseflow/internal/currency"
	"github.com/expenseflow/expenseflow/internal/expense"
	"github.com/expenseflow/expenseflow/internal/ocr"
	"github.com/expenseflow/expenseflow/internal/recordstore"
	"github.com/expenseflow/expenseflow/internal/seed"
	"github.com/expenseflow/expenseflow/internal/transport/middleware"
	"github.com/expenseflow/expenseflow/internal/transport/swagger"
	"github.com/expenseflow/expenseflow/internal/user"
)

// Handlers bundles every module handler mounted by the router.
type Handlers struct {
	Auth      *auth.Handler
	AuthMW    *auth.Middleware
	User      *user.Handler
	Company   *company.Handler
	Expense   *expense.Handler
	Approval  *approval.Handler
	Currency  *currency.Handler
	OCR       *ocr.Handler
	Analytics *analytics.Handler
	Seed      *seed.Handler
}

func RegisterAllRoutes(router *chi.Mux, store recordstore.Store, h Handlers, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(store)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// OpenAPI spec and Swagger UI live at the root, outside the API prefix.
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Demo bootstrap: wipes nothing, writes fixed demo records.
		r.Post("/setup", h.Seed.Setup)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/signup", h.Auth.Signup)
		})

		// Currency helpers are public: the signup page needs the
		// country/currency list before any session exists.
		r.Get("/currencies", h.Currency.Currencies)
		r.Get("/convert/{from}/{to}/{amount}", h.Currency.Convert)

		r.Group(func(pr chi.Router) {
			pr.Use(h.AuthMW.Authenticate)

			pr.Get("/user/{email}", h.User.GetByEmail)

			pr.Route("/company", func(cr chi.Router) {
				cr.Get("/", h.Company.GetCompany)
				cr.With(h.AuthMW.RequireAdmin).Post("/", h.Company.UpsertCompany)
			})

			pr.Route("/users", func(ur chi.Router) {
				ur.Get("/", h.User.List)
				ur.With(h.AuthMW.RequireAdmin).Post("/", h.User.Create)
				ur.With(h.AuthMW.RequireAdmin).Patch("/{userID}", h.User.Update)
				ur.With(h.AuthMW.RequireAdmin).Delete("/{userID}", h.User.Delete)
			})

			pr.Route("/expenses", func(er chi.Router) {
				er.Post("/", h.Expense.Create)
				er.Get("/{userID}", h.Expense.ListByUser)
			})

			pr.Route("/approvals", func(ar chi.Router) {
				ar.Get("/{userID}", h.Approval.ListByApprover)
				ar.Post("/{approvalID}", h.Approval.Decide)
			})

			pr.Route("/approval-rules", func(rr chi.Router) {
				rr.Get("/", h.Approval.ListRules)
				rr.With(h.AuthMW.RequireAdmin).Post("/", h.Approval.CreateRule)
			})

			pr.Post("/ocr/process-receipt", h.OCR.ProcessReceipt)

			pr.Get("/analytics/dashboard/{userID}", h.Analytics.Dashboard)
		})
	})
}
