// internal/core/ports/sale_repository.go
package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/fruimex/fruimex-be/internal/core/domain"
)

// SaleRepository defines the persistence port for sales. Create and Replace
// run as single database transactions covering the header, the line items
// and the guarded inventory decrements; both return *domain.ShortStockError
// when a decrement finds less stock than requested.
type SaleRepository interface {
	// Create persists a new sale and consumes inventory for its items.
	Create(ctx context.Context, sale *domain.Sale) error

	// Replace overwrites an existing sale's header and items. The prior
	// items' quantities are restored to the ledger before the new items
	// are consumed, so a revision never double-counts.
	Replace(ctx context.Context, sale *domain.Sale, prior []domain.SaleItem) error

	FindByID(ctx context.Context, id uuid.UUID) (*domain.Sale, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindAll(ctx context.Context, params SaleListParams) ([]*domain.Sale, int64, error)
	Count(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
