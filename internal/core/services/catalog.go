// internal/core/services/catalog.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	redis_a "github.com/fruimex/fruimex-be/internal/adapters/redis_adapter"
	"github.com/fruimex/fruimex-be/internal/core/domain"
	"github.com/fruimex/fruimex-be/internal/core/ports"
)

const catalogCacheTTL = 10 * time.Minute

// CatalogService handles product catalog business logic. The id/name/price
// projection consumed by sale drafting is cached; any catalog write drops it.
type CatalogService struct {
	repo   ports.ProductRepository
	cache  ports.CacheRepository
	logger *slog.Logger
}

// Statically assert that *CatalogService implements the CatalogService interface.
var _ ports.CatalogService = (*CatalogService)(nil)

// NewCatalogService creates a new catalog service
func NewCatalogService(repo ports.ProductRepository, cache ports.CacheRepository, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:   repo,
		cache:  cache,
		logger: logger.With(slog.String("service", "catalog")),
	}
}

// CreateProduct adds a product to the catalog
func (s *CatalogService) CreateProduct(ctx context.Context, product *domain.Product) error {
	if err := product.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	product.PrepareForStorage()

	if err := s.repo.Save(ctx, product); err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}

	s.logger.InfoContext(ctx, "product created",
		slog.String("id", product.ID.String()),
		slog.String("name", product.Name))

	s.invalidateCatalog(ctx)
	return nil
}

// UpdateProduct updates a catalog product
func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, product *domain.Product) error {
	product.ID = id

	if err := product.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	s.logger.InfoContext(ctx, "product updated", slog.String("id", id.String()))
	s.invalidateCatalog(ctx)
	return nil
}

// GetByID retrieves a product by id
func (s *CatalogService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// DeleteProduct soft-deletes a product. Existing sale items keep their
// snapshot of the product's name and price.
func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check product existence: %w", err)
	}
	if !exists {
		return ErrProductNotFound
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.logger.InfoContext(ctx, "product deleted", slog.String("id", id.String()))
	s.invalidateCatalog(ctx)
	return nil
}

// List retrieves products with filtering and pagination
func (s *CatalogService) List(ctx context.Context, params ports.ProductListParams) (*ports.ProductListResult, error) {
	normalizePaging(&params.Page, &params.PageSize)

	products, totalCount, err := s.repo.FindAll(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return &ports.ProductListResult{
		Products:   products,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalCount: totalCount,
		TotalPages: totalPages(totalCount, params.PageSize),
	}, nil
}

// Catalog returns the cached id/name/price projection for sale drafting
func (s *CatalogService) Catalog(ctx context.Context) ([]domain.CatalogEntry, error) {
	if s.cache == nil {
		return s.repo.Catalog(ctx)
	}

	key := redis_a.BuildKey(redis_a.PrefixCatalog, "entries")
	var entries []domain.CatalogEntry

	err := s.cache.GetOrSet(ctx, key, &entries, func() (interface{}, error) {
		return s.repo.Catalog(ctx)
	}, catalogCacheTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	return entries, nil
}

func (s *CatalogService) invalidateCatalog(ctx context.Context) {
	if s.cache == nil {
		return
	}
	pattern := fmt.Sprintf("%s:*", redis_a.PrefixCatalog)
	if err := s.cache.DeletePattern(ctx, pattern); err != nil {
		s.logger.WarnContext(ctx, "catalog cache invalidation failed",
			slog.String("error", err.Error()))
	}
}
