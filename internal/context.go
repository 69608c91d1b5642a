package internal

import (
	"context"
	"time"
)

// Session is the authenticated caller, resolved from the bearer token and
// carried through request context instead of any client-held global state.
type Session struct {
	UserID    string
	Email     string
	Role      string
	CompanyID string
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == "admin"
}

func (s *Session) IsManager() bool {
	return s != nil && (s.Role == "manager" || s.Role == "admin")
}

type ctxKey string

const contextSessionKey ctxKey = "session"

func SessionFromContext(ctx context.Context) (*Session, bool) {
	if ctx == nil {
		return nil, false
	}
	sess, ok := ctx.Value(contextSessionKey).(*Session)
	return sess, ok && sess != nil
}

func ContextWithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, contextSessionKey, sess)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
