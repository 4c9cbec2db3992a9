// internal/core/ports/auth.go
package ports

import (
	"context"

	"github.com/fruimex/fruimex-be/internal/core/domain"
)

// OperatorRepository defines the persistence port for back-office operators.
type OperatorRepository interface {
	Save(ctx context.Context, operator *domain.Operator) error
	FindByEmail(ctx context.Context, email string) (*domain.Operator, error)
}

// AuthService defines the application service port for operator sessions.
// Login returns an opaque session token; CurrentUser resolves a token back
// to its operator, returning nil when the session is gone or expired.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.Operator, error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (*domain.Operator, error)
}
