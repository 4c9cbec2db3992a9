// internal/core/ports/product_repository.go
package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/fruimex/fruimex-be/internal/core/domain"
)

// ProductRepository defines the persistence port for the product catalog.
type ProductRepository interface {
	Save(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	FindAll(ctx context.Context, params ProductListParams) ([]*domain.Product, int64, error)
	Count(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// Catalog returns the id/name/price projection used by sale drafting.
	Catalog(ctx context.Context) ([]domain.CatalogEntry, error)
}

// ProductListParams holds parameters for listing products
type ProductListParams struct {
	Search        string
	Category      string
	OriginCountry string
	SortBy        string
	SortOrder     string
	Page          int
	PageSize      int
}

// ProductListResult holds the result of listing products
type ProductListResult struct {
	Products   []*domain.Product `json:"products"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalCount int64             `json:"total_count"`
	TotalPages int               `json:"total_pages"`
}
