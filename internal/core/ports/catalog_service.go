// internal/core/ports/catalog_service.go
package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/fruimex/fruimex-be/internal/core/domain"
)

// CatalogService defines the application service port for products.
type CatalogService interface {
	CreateProduct(ctx context.Context, product *domain.Product) error
	UpdateProduct(ctx context.Context, id uuid.UUID, product *domain.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params ProductListParams) (*ProductListResult, error)
	Catalog(ctx context.Context) ([]domain.CatalogEntry, error)
}
