// internal/core/services/auth.go
package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	redis_a "github.com/fruimex/fruimex-be/internal/adapters/redis_adapter"
	"github.com/fruimex/fruimex-be/internal/core/domain"
	"github.com/fruimex/fruimex-be/internal/core/ports"
)

// AuthService implements operator login with Redis-backed opaque sessions.
// Passwords are stored as bcrypt hashes; the session value holds the
// operator snapshot so CurrentUser does not hit the database.
type AuthService struct {
	operators  ports.OperatorRepository
	cache      ports.CacheRepository
	sessionTTL time.Duration
	logger     *slog.Logger
}

var _ ports.AuthService = (*AuthService)(nil)

// NewAuthService creates a new auth service
func NewAuthService(operators ports.OperatorRepository, cache ports.CacheRepository, sessionTTL time.Duration, logger *slog.Logger) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthService{
		operators:  operators,
		cache:      cache,
		sessionTTL: sessionTTL,
		logger:     logger.With(slog.String("service", "auth")),
	}
}

// Login verifies the credentials and opens a session. The same
// ErrInvalidLogin comes back for an unknown email and a wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Operator, error) {
	operator, err := s.operators.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to look up operator: %w", err)
	}
	if operator == nil {
		return "", nil, ErrInvalidLogin
	}

	if err := bcrypt.CompareHashAndPassword([]byte(operator.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.logger.InfoContext(ctx, "rejected login", slog.String("email", email))
			return "", nil, ErrInvalidLogin
		}
		return "", nil, fmt.Errorf("failed to verify password: %w", err)
	}

	token, err := newSessionToken()
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	key := redis_a.BuildKey(redis_a.PrefixSession, token)
	if err := s.cache.SetWithTTL(ctx, key, operator, s.sessionTTL); err != nil {
		return "", nil, fmt.Errorf("failed to store session: %w", err)
	}

	s.logger.InfoContext(ctx, "operator logged in",
		slog.String("operator_id", operator.ID.String()),
		slog.String("email", operator.Email))

	return token, operator, nil
}

// Logout tears down the session for token. Unknown tokens are a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	key := redis_a.BuildKey(redis_a.PrefixSession, token)
	if err := s.cache.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// CurrentUser resolves a session token to its operator. Returns nil without
// error when the session is missing or expired, and slides the expiry on a
// hit.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*domain.Operator, error) {
	if token == "" {
		return nil, nil
	}

	key := redis_a.BuildKey(redis_a.PrefixSession, token)
	var operator domain.Operator

	err := s.cache.Get(ctx, key, &operator)
	if err != nil {
		if errors.Is(err, redis_a.ErrCacheMiss) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if err := s.cache.Expire(ctx, key, s.sessionTTL); err != nil {
		s.logger.WarnContext(ctx, "failed to refresh session ttl",
			slog.String("error", err.Error()))
	}

	return &operator, nil
}

func newSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
