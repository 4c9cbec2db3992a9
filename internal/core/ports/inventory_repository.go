// internal/core/ports/inventory_repository.go
package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fruimex/fruimex-be/internal/core/domain"
)

// InventoryRepository defines the persistence port for the stock ledger.
// This interface is implemented by the database adapter.
type InventoryRepository interface {
	Save(ctx context.Context, record *domain.InventoryRecord) error
	Update(ctx context.Context, record *domain.InventoryRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.InventoryRecord, error)
	FindByProductID(ctx context.Context, productID uuid.UUID) (*domain.InventoryRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	FindAll(ctx context.Context, params InventoryListParams) ([]*domain.InventoryRecord, int64, error)

	// Quantities returns the ledger snapshot for the given products.
	// Products without a ledger row are absent from the map.
	Quantities(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]domain.StockLevel, error)

	// AdjustQuantity applies a signed delta to a product's on-hand quantity.
	// Used by the inventory screen for manual corrections; sale placement
	// decrements go through the sale repository's transaction instead.
	AdjustQuantity(ctx context.Context, productID uuid.UUID, delta decimal.Decimal) error

	// Below reports ledger rows whose quantity is at or under threshold.
	Below(ctx context.Context, threshold decimal.Decimal) ([]domain.InventoryRecord, error)
}
