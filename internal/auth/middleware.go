package auth

import (
	"log/slog"
	"net/http"

	"github.com/expenseflow/expenseflow/internal"
	"github.com/expenseflow/expenseflow/internal/transport"
)

type Middleware struct {
	base    *transport.BaseHandler
	service *Service
	logger  *slog.Logger
}

func NewMiddleware(base *transport.BaseHandler, service *Service, logger *slog.Logger) *Middleware {
	return &Middleware{base: base, service: service, logger: logger}
}

// Authenticate resolves the bearer token into a session and rejects requests
// without one.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := m.base.ExtractTokenFromHeader(r)
		if token == "" {
			m.base.WriteError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		sess, err := m.service.SessionFromToken(r.Context(), token)
		if err != nil {
			m.logger.Warn("token rejected", "error", err)
			m.base.HandleServiceError(w, err)
			return
		}

		ctx := internal.ContextWithSession(r.Context(), sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin guards admin-only routes.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := internal.SessionFromContext(r.Context())
		if !ok {
			m.base.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if !sess.IsAdmin() {
			m.logger.Warn("admin route denied", "user_id", sess.UserID, "role", sess.Role)
			m.base.WriteError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
