// internal/handlers/middleware/auth.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/fruimex/fruimex-be/internal/core/domain"
	"github.com/fruimex/fruimex-be/internal/core/ports"
)

type contextKey string

const (
	contextKeyOperator   contextKey = "operator"
	contextKeyOperatorID contextKey = "operator_id"

	// SessionCookieName is the cookie carrying the opaque session token
	SessionCookieName = "fruimex_session"
)

// SessionAuth resolves the session token on each request and rejects
// requests without a live session. The resolved operator is placed in the
// request context for handlers and logging.
func SessionAuth(auth ports.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractSessionToken(r)
			if token == "" {
				respondUnauthorized(w)
				return
			}

			operator, err := auth.CurrentUser(r.Context(), token)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"error":"Failed to resolve session"}`))
				return
			}
			if operator == nil {
				respondUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), contextKeyOperator, operator)
			ctx = context.WithValue(ctx, contextKeyOperatorID, operator.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ExtractSessionToken reads the session token from the Authorization header
// or the session cookie
func ExtractSessionToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// OperatorFromContext returns the authenticated operator, or nil
func OperatorFromContext(ctx context.Context) *domain.Operator {
	if op, ok := ctx.Value(contextKeyOperator).(*domain.Operator); ok {
		return op
	}
	return nil
}

// OperatorIDFromContext returns the authenticated operator's id, or uuid.Nil
func OperatorIDFromContext(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(contextKeyOperatorID).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

func respondUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"Authentication required"}`))
}
