// internal/core/services/suppliers.go
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fruimex/fruimex-be/internal/core/domain"
	"github.com/fruimex/fruimex-be/internal/core/ports"
)

// SupplierService handles supplier directory business logic
type SupplierService struct {
	repo   ports.SupplierRepository
	logger *slog.Logger
}

var _ ports.SupplierService = (*SupplierService)(nil)

// NewSupplierService creates a new supplier service
func NewSupplierService(repo ports.SupplierRepository, logger *slog.Logger) *SupplierService {
	return &SupplierService{
		repo:   repo,
		logger: logger.With(slog.String("service", "suppliers")),
	}
}

// CreateSupplier adds a supplier to the directory
func (s *SupplierService) CreateSupplier(ctx context.Context, supplier *domain.Supplier) error {
	if err := supplier.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	supplier.PrepareForStorage()

	if err := s.repo.Save(ctx, supplier); err != nil {
		return fmt.Errorf("failed to save supplier: %w", err)
	}

	s.logger.InfoContext(ctx, "supplier created",
		slog.String("id", supplier.ID.String()),
		slog.String("company", supplier.CompanyName))

	return nil
}

// UpdateSupplier updates a directory entry
func (s *SupplierService) UpdateSupplier(ctx context.Context, id uuid.UUID, supplier *domain.Supplier) error {
	supplier.ID = id

	if err := supplier.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if err := s.repo.Update(ctx, supplier); err != nil {
		return fmt.Errorf("failed to update supplier: %w", err)
	}

	s.logger.InfoContext(ctx, "supplier updated", slog.String("id", id.String()))
	return nil
}

// GetByID retrieves a supplier by id
func (s *SupplierService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Supplier, error) {
	supplier, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get supplier: %w", err)
	}
	if supplier == nil {
		return nil, ErrSupplierNotFound
	}
	return supplier, nil
}

// DeleteSupplier removes a supplier from the directory
func (s *SupplierService) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete supplier: %w", err)
	}

	s.logger.InfoContext(ctx, "supplier deleted", slog.String("id", id.String()))
	return nil
}

// List retrieves suppliers with filtering and pagination
func (s *SupplierService) List(ctx context.Context, params ports.DirectoryListParams) (*ports.SupplierListResult, error) {
	normalizePaging(&params.Page, &params.PageSize)

	suppliers, totalCount, err := s.repo.FindAll(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}

	return &ports.SupplierListResult{
		Suppliers:  suppliers,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalCount: totalCount,
		TotalPages: totalPages(totalCount, params.PageSize),
	}, nil
}
