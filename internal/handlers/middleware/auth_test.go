package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fruimex/fruimex-be/internal/core/domain"
	"github.com/fruimex/fruimex-be/internal/handlers/middleware"
)

type stubAuthService struct {
	sessions map[string]*domain.Operator
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.Operator, error) {
	return "", nil, nil
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}

func (s *stubAuthService) CurrentUser(ctx context.Context, token string) (*domain.Operator, error) {
	return s.sessions[token], nil
}

func TestSessionAuth(t *testing.T) {
	operator := &domain.Operator{
		ID:    uuid.New(),
		Email: "ops@fruimex.example",
	}
	auth := &stubAuthService{sessions: map[string]*domain.Operator{
		"valid-token": operator,
	}}

	var seenID uuid.UUID
	handler := middleware.SessionAuth(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = middleware.OperatorIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("accepts_bearer_token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/sales", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, operator.ID, seenID)
	})

	t.Run("accepts_session_cookie", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/sales", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "valid-token"})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects_missing_token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/sales", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects_expired_session", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/sales", nil)
		req.Header.Set("Authorization", "Bearer stale-token")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestExtractSessionToken(t *testing.T) {
	t.Run("prefers_authorization_header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer header-token")
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "cookie-token"})

		assert.Equal(t, "header-token", middleware.ExtractSessionToken(req))
	})

	t.Run("falls_back_to_cookie", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "cookie-token"})

		assert.Equal(t, "cookie-token", middleware.ExtractSessionToken(req))
	})

	t.Run("empty_when_absent", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)

		assert.Empty(t, middleware.ExtractSessionToken(req))
	})
}

func TestOperatorFromContext(t *testing.T) {
	t.Run("nil_without_session", func(t *testing.T) {
		require.Nil(t, middleware.OperatorFromContext(context.Background()))
		assert.Equal(t, uuid.Nil, middleware.OperatorIDFromContext(context.Background()))
	})
}
