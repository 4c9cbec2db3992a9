// internal/core/services/inventory.go
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fruimex/fruimex-be/internal/core/domain"
	"github.com/fruimex/fruimex-be/internal/core/ports"
)

// InventoryService handles stock ledger business logic. Sale placement does
// not go through here; its decrements run inside the sale repository's
// transaction.
type InventoryService struct {
	repo   ports.InventoryRepository
	logger *slog.Logger
}

// Statically assert that *InventoryService implements the InventoryService interface.
var _ ports.InventoryService = (*InventoryService)(nil)

// NewInventoryService creates a new inventory service
func NewInventoryService(repo ports.InventoryRepository, logger *slog.Logger) *InventoryService {
	return &InventoryService{
		repo:   repo,
		logger: logger.With(slog.String("service", "inventory")),
	}
}

// SaveRecord creates a ledger row for a product
func (s *InventoryService) SaveRecord(ctx context.Context, record *domain.InventoryRecord) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	record.PrepareForStorage()

	if err := s.repo.Save(ctx, record); err != nil {
		return fmt.Errorf("failed to save inventory record: %w", err)
	}

	s.logger.InfoContext(ctx, "saved inventory record",
		slog.String("id", record.ID.String()),
		slog.String("product_id", record.ProductID.String()),
		slog.String("quantity", record.Quantity.String()))

	return nil
}

// UpdateRecord updates an existing ledger row
func (s *InventoryService) UpdateRecord(ctx context.Context, id uuid.UUID, record *domain.InventoryRecord) error {
	record.ID = id

	if err := record.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if err := s.repo.Update(ctx, record); err != nil {
		return fmt.Errorf("failed to update inventory record: %w", err)
	}

	s.logger.InfoContext(ctx, "updated inventory record",
		slog.String("id", id.String()),
		slog.String("quantity", record.Quantity.String()))

	return nil
}

// GetByID retrieves a ledger row by its id
func (s *InventoryService) GetByID(ctx context.Context, id uuid.UUID) (*domain.InventoryRecord, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory record: %w", err)
	}
	if record == nil {
		return nil, ErrInventoryNotFound
	}
	return record, nil
}

// GetByProductID retrieves the ledger row of a product
func (s *InventoryService) GetByProductID(ctx context.Context, productID uuid.UUID) (*domain.InventoryRecord, error) {
	record, err := s.repo.FindByProductID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory record: %w", err)
	}
	if record == nil {
		return nil, ErrInventoryNotFound
	}
	return record, nil
}

// DeleteRecord removes a ledger row. Products without a row count as zero
// stock in the availability check.
func (s *InventoryService) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check record existence: %w", err)
	}
	if !exists {
		return ErrInventoryNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete inventory record: %w", err)
	}

	s.logger.InfoContext(ctx, "deleted inventory record", slog.String("id", id.String()))
	return nil
}

// List retrieves ledger rows with filtering and pagination
func (s *InventoryService) List(ctx context.Context, params ports.InventoryListParams) (*ports.InventoryListResult, error) {
	normalizePaging(&params.Page, &params.PageSize)

	records, totalCount, err := s.repo.FindAll(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory records: %w", err)
	}

	return &ports.InventoryListResult{
		Records:    records,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalCount: totalCount,
		TotalPages: totalPages(totalCount, params.PageSize),
	}, nil
}

// Quantities returns the ledger snapshot for the given products
func (s *InventoryService) Quantities(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]domain.StockLevel, error) {
	levels, err := s.repo.Quantities(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load stock levels: %w", err)
	}
	return levels, nil
}
