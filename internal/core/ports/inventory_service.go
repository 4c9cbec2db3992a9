// internal/core/ports/inventory_service.go
package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fruimex/fruimex-be/internal/core/domain"
)

// InventoryService defines the application service port for the stock ledger.
// This interface is implemented by the application service.
type InventoryService interface {
	SaveRecord(ctx context.Context, record *domain.InventoryRecord) error
	UpdateRecord(ctx context.Context, id uuid.UUID, record *domain.InventoryRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.InventoryRecord, error)
	GetByProductID(ctx context.Context, productID uuid.UUID) (*domain.InventoryRecord, error)
	DeleteRecord(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params InventoryListParams) (*InventoryListResult, error)
	Quantities(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]domain.StockLevel, error)
}

// InventoryListParams holds parameters for listing ledger rows
type InventoryListParams struct {
	Search          string
	StorageLocation string
	BatchNumber     string
	ExpiringBefore  *time.Time
	SortBy          string
	SortOrder       string
	Page            int
	PageSize        int
}

// InventoryListResult holds the result of listing ledger rows
type InventoryListResult struct {
	Records    []*domain.InventoryRecord `json:"records"`
	Page       int                       `json:"page"`
	PageSize   int                       `json:"page_size"`
	TotalCount int64                     `json:"total_count"`
	TotalPages int                       `json:"total_pages"`
}
