// internal/core/ports/sale_service.go
package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fruimex/fruimex-be/internal/core/domain"
)

// SaleService defines the application service port for the sale workflow.
// PlaceSale and ReviseSale return *domain.ValidationError when the submitted
// draft fails a validation rule or the stock check.
type SaleService interface {
	PlaceSale(ctx context.Context, draft domain.SaleDraft, createdBy uuid.UUID) (*domain.Sale, error)
	ReviseSale(ctx context.Context, id uuid.UUID, draft domain.SaleDraft) (*domain.Sale, error)
	DeleteSale(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Sale, error)
	List(ctx context.Context, params SaleListParams) (*SaleListResult, error)
}

// SaleListParams holds parameters for listing sales
type SaleListParams struct {
	Search        string
	Status        string
	PaymentStatus string
	CustomerID    uuid.UUID
	From          *time.Time
	To            *time.Time
	SortBy        string
	SortOrder     string
	Page          int
	PageSize      int
}

// SaleListResult holds the result of listing sales
type SaleListResult struct {
	Sales      []*domain.Sale `json:"sales"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalCount int64          `json:"total_count"`
	TotalPages int            `json:"total_pages"`
}
