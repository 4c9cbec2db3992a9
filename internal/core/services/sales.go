// internal/core/services/sales.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	redis_a "github.com/fruimex/fruimex-be/internal/adapters/redis_adapter"
	"github.com/fruimex/fruimex-be/internal/core/domain"
	"github.com/fruimex/fruimex-be/internal/core/ports"
)

// SaleService implements the sale placement and revision workflow. Every
// write path runs validation, the availability pre-check and then a single
// repository transaction whose guarded decrements close the race between
// check and write.
type SaleService struct {
	repo          ports.SaleRepository
	inventoryRepo ports.InventoryRepository
	cache         ports.CacheRepository
	tasks         TaskEnqueuer
	logger        *slog.Logger
}

// Statically assert that *SaleService implements the SaleService interface.
var _ ports.SaleService = (*SaleService)(nil)

// NewSaleService creates a new sale service. tasks may be nil when no worker
// is deployed; analytics refreshes are then skipped.
func NewSaleService(
	repo ports.SaleRepository,
	inventoryRepo ports.InventoryRepository,
	cache ports.CacheRepository,
	tasks TaskEnqueuer,
	logger *slog.Logger,
) *SaleService {
	return &SaleService{
		repo:          repo,
		inventoryRepo: inventoryRepo,
		cache:         cache,
		tasks:         tasks,
		logger:        logger.With(slog.String("service", "sales")),
	}
}

// PlaceSale validates the draft, checks stock and persists the sale together
// with its inventory decrements. On a validation or stock failure it returns
// *domain.ValidationError and writes nothing.
func (s *SaleService) PlaceSale(ctx context.Context, draft domain.SaleDraft, createdBy uuid.UUID) (*domain.Sale, error) {
	if fault := draft.Validate(); fault != nil {
		return nil, &domain.ValidationError{Faults: []domain.Fault{*fault}}
	}

	if verr, err := s.checkStock(ctx, draft.Items, nil); err != nil {
		return nil, err
	} else if verr != nil {
		return nil, verr
	}

	sale := &domain.Sale{
		CustomerID:    draft.CustomerID,
		Items:         draft.Items,
		Status:        draft.Status,
		PaymentStatus: draft.PaymentStatus,
		CreatedBy:     createdBy,
	}
	sale.PrepareForStorage()

	if err := s.repo.Create(ctx, sale); err != nil {
		var short *domain.ShortStockError
		if errors.As(err, &short) {
			// Concurrent sale consumed the stock between the pre-check
			// and the decrement.
			return nil, shortStockValidationError(short.ProductIDs)
		}
		return nil, fmt.Errorf("failed to place sale: %w", err)
	}

	s.logger.InfoContext(ctx, "sale placed",
		slog.String("sale_id", sale.ID.String()),
		slog.String("customer_id", sale.CustomerID.String()),
		slog.Int("items", len(sale.Items)),
		slog.String("total", sale.TotalAmount.String()))

	s.afterWrite(ctx, sale.ID)
	return sale, nil
}

// ReviseSale replaces an existing sale's header and items. The prior items'
// consumption is conceptually restored before the new items are checked and
// consumed, so editing a sale never double-counts its own quantities.
func (s *SaleService) ReviseSale(ctx context.Context, id uuid.UUID, draft domain.SaleDraft) (*domain.Sale, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load sale: %w", err)
	}
	if existing == nil {
		return nil, ErrSaleNotFound
	}

	if fault := draft.Validate(); fault != nil {
		return nil, &domain.ValidationError{Faults: []domain.Fault{*fault}}
	}

	if verr, err := s.checkStock(ctx, draft.Items, existing.Items); err != nil {
		return nil, err
	} else if verr != nil {
		return nil, verr
	}

	sale := &domain.Sale{
		ID:            existing.ID,
		CustomerID:    draft.CustomerID,
		Items:         draft.Items,
		Status:        draft.Status,
		PaymentStatus: draft.PaymentStatus,
		CreatedBy:     existing.CreatedBy,
		CreatedAt:     existing.CreatedAt,
	}
	for i := range sale.Items {
		// force fresh item rows; the old ones are deleted in the same tx
		sale.Items[i].ID = uuid.Nil
	}
	sale.PrepareForStorage()

	if err := s.repo.Replace(ctx, sale, existing.Items); err != nil {
		var short *domain.ShortStockError
		if errors.As(err, &short) {
			return nil, shortStockValidationError(short.ProductIDs)
		}
		return nil, fmt.Errorf("failed to revise sale: %w", err)
	}

	s.logger.InfoContext(ctx, "sale revised",
		slog.String("sale_id", sale.ID.String()),
		slog.Int("items", len(sale.Items)),
		slog.String("total", sale.TotalAmount.String()))

	s.afterWrite(ctx, sale.ID)
	return sale, nil
}

// DeleteSale removes a sale and its items. Consumed inventory is not
// restored; a cancelled shipment that returns to the warehouse is recorded
// through a manual inventory adjustment instead.
func (s *SaleService) DeleteSale(ctx context.Context, id uuid.UUID) error {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check sale existence: %w", err)
	}
	if !exists {
		return ErrSaleNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete sale: %w", err)
	}

	s.logger.InfoContext(ctx, "sale deleted", slog.String("sale_id", id.String()))
	s.afterWrite(ctx, id)
	return nil
}

// GetByID retrieves a sale with its items
func (s *SaleService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Sale, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get sale: %w", err)
	}
	if sale == nil {
		return nil, ErrSaleNotFound
	}
	return sale, nil
}

// List retrieves sales with filtering and pagination
func (s *SaleService) List(ctx context.Context, params ports.SaleListParams) (*ports.SaleListResult, error) {
	normalizePaging(&params.Page, &params.PageSize)

	sales, totalCount, err := s.repo.FindAll(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}

	return &ports.SaleListResult{
		Sales:      sales,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalCount: totalCount,
		TotalPages: totalPages(totalCount, params.PageSize),
	}, nil
}

// checkStock runs the availability pre-check. prior holds the items of the
// sale being revised; their quantities are added back to the snapshot so the
// sale's own previous consumption does not count against it.
func (s *SaleService) checkStock(ctx context.Context, items, prior []domain.SaleItem) (*domain.ValidationError, error) {
	ids := make([]uuid.UUID, 0, len(items))
	seen := make(map[uuid.UUID]struct{}, len(items))
	for _, it := range items {
		if _, ok := seen[it.ProductID]; !ok {
			seen[it.ProductID] = struct{}{}
			ids = append(ids, it.ProductID)
		}
	}

	levels, err := s.inventoryRepo.Quantities(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load stock levels: %w", err)
	}

	for _, it := range prior {
		level, ok := levels[it.ProductID]
		if !ok {
			// product may have lost its ledger row since the sale was
			// placed; the restored quantity is still available to it
			level = domain.StockLevel{ProductID: it.ProductID}
		}
		level.Quantity = level.Quantity.Add(it.Quantity)
		levels[it.ProductID] = level
	}

	if short := domain.CheckAvailability(items, levels); len(short) > 0 {
		return shortStockValidationError(short), nil
	}
	return nil, nil
}

// afterWrite invalidates read caches and schedules an analytics refresh
func (s *SaleService) afterWrite(ctx context.Context, saleID uuid.UUID) {
	if s.cache != nil {
		patterns := []string{
			fmt.Sprintf("%s:*", redis_a.PrefixDashboard),
			fmt.Sprintf("%s:*", redis_a.PrefixAnalytics),
			fmt.Sprintf("%s:*", redis_a.PrefixExport),
		}
		for _, p := range patterns {
			if err := s.cache.DeletePattern(ctx, p); err != nil {
				s.logger.WarnContext(ctx, "cache invalidation failed",
					slog.String("pattern", p),
					slog.String("error", err.Error()))
			}
		}
	}

	if s.tasks != nil {
		payload, _ := json.Marshal(map[string]string{"sale_id": saleID.String()})
		task := asynq.NewTask(TypeRefreshAnalytics, payload)
		if _, err := s.tasks.EnqueueContext(ctx, task, asynq.Queue("low")); err != nil {
			s.logger.WarnContext(ctx, "failed to enqueue analytics refresh",
				slog.String("error", err.Error()))
		}
	}
}

func shortStockValidationError(productIDs []uuid.UUID) *domain.ValidationError {
	return &domain.ValidationError{
		Faults: []domain.Fault{{
			Kind:       domain.FaultInsufficientStock,
			Message:    "insufficient stock for requested quantities",
			ProductIDs: productIDs,
		}},
	}
}
