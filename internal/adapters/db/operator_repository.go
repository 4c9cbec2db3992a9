// internal/adapters/db/operator_repository.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fruimex/fruimex-be/internal/core/domain"
	"github.com/fruimex/fruimex-be/internal/core/ports"
)

// operatorRepository implements ports.OperatorRepository
type operatorRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewOperatorRepository creates a new operator repository
func NewOperatorRepository(db *Database, logger *slog.Logger) ports.OperatorRepository {
	return &operatorRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "operator")),
	}
}

// Save upserts an operator account keyed by email
func (r *operatorRepository) Save(ctx context.Context, operator *domain.Operator) error {
	if operator.ID == uuid.Nil {
		operator.ID = uuid.New()
	}
	if operator.CreatedAt.IsZero() {
		operator.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO operators (id, email, display_name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE
		SET display_name = EXCLUDED.display_name, password_hash = EXCLUDED.password_hash`

	_, err := r.db.Exec(ctx, query,
		operator.ID, strings.ToLower(operator.Email), nullableString(operator.DisplayName),
		operator.PasswordHash, operator.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save operator: %w", err)
	}

	r.logger.DebugContext(ctx, "operator saved", slog.String("email", operator.Email))
	return nil
}

// FindByEmail retrieves an operator by email, case-insensitively
func (r *operatorRepository) FindByEmail(ctx context.Context, email string) (*domain.Operator, error) {
	operator := &domain.Operator{}
	var displayName sql.NullString

	err := r.db.QueryRow(ctx,
		`SELECT id, email, display_name, password_hash, created_at
		 FROM operators WHERE email = $1`, strings.ToLower(email)).
		Scan(&operator.ID, &operator.Email, &displayName, &operator.PasswordHash, &operator.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find operator: %w", err)
	}

	operator.DisplayName = displayName.String
	return operator, nil
}
