// internal/core/services/sales_service_test.go
package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fruimex/fruimex-be/internal/core/domain"
	"github.com/fruimex/fruimex-be/internal/core/ports"
	"github.com/fruimex/fruimex-be/internal/core/services"
	"github.com/fruimex/fruimex-be/test/helpers"
	"github.com/fruimex/fruimex-be/test/mocks"
)

func newSaleService(t *testing.T, ctrl *gomock.Controller) (*services.SaleService, *mocks.MockSaleRepository, *mocks.MockInventoryRepository) {
	t.Helper()
	saleRepo := mocks.NewMockSaleRepository(ctrl)
	invRepo := mocks.NewMockInventoryRepository(ctrl)
	svc := services.NewSaleService(saleRepo, invRepo, nil, nil, helpers.TestLogger())
	return svc, saleRepo, invRepo
}

func draftFor(customerID uuid.UUID, items ...domain.SaleItem) domain.SaleDraft {
	d := domain.NewSaleDraft().WithCustomer(customerID)
	d.Items = items
	return d
}

func stock(qty int64, pids ...uuid.UUID) map[uuid.UUID]domain.StockLevel {
	levels := make(map[uuid.UUID]domain.StockLevel, len(pids))
	for _, pid := range pids {
		levels[pid] = domain.StockLevel{ProductID: pid, Quantity: decimal.NewFromInt(qty), Unit: "kg"}
	}
	return levels
}

func TestSaleService_PlaceSale(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()
	operatorID := uuid.New()
	apple := uuid.New()
	mango := uuid.New()

	item := func(pid uuid.UUID, qty float64) domain.SaleItem {
		return domain.SaleItem{
			ProductID: pid,
			Quantity:  decimal.NewFromFloat(qty),
			UnitPrice: decimal.NewFromFloat(2),
		}
	}

	t.Run("places_valid_sale_and_persists_it", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, saleRepo, invRepo := newSaleService(t, ctrl)

		invRepo.EXPECT().
			Quantities(gomock.Any(), gomock.Any()).
			Return(stock(100, apple, mango), nil)
		saleRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, sale *domain.Sale) error {
				assert.NotEqual(t, uuid.Nil, sale.ID)
				assert.Equal(t, customerID, sale.CustomerID)
				assert.Equal(t, operatorID, sale.CreatedBy)
				require.Len(t, sale.Items, 2)
				for i, it := range sale.Items {
					assert.Equal(t, sale.ID, it.SaleID)
					assert.Equal(t, i, it.Position)
				}
				return nil
			})

		sale, err := svc.PlaceSale(ctx, draftFor(customerID, item(apple, 10), item(mango, 5)), operatorID)

		require.NoError(t, err)
		require.NotNil(t, sale)
		assert.True(t, sale.TotalAmount.Equal(decimal.NewFromInt(30)),
			"Expected total: 30, Got: %s", sale.TotalAmount)
		assert.Equal(t, domain.SalePending, sale.Status)
	})

	t.Run("rejects_draft_without_customer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, _, _ := newSaleService(t, ctrl)

		sale, err := svc.PlaceSale(ctx, draftFor(uuid.Nil, item(apple, 1)), operatorID)

		require.Error(t, err)
		assert.Nil(t, sale)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.True(t, verr.Has(domain.FaultMissingCustomer))
	})

	t.Run("rejects_empty_order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, _, _ := newSaleService(t, ctrl)

		_, err := svc.PlaceSale(ctx, draftFor(customerID), operatorID)

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.True(t, verr.Has(domain.FaultEmptyOrder))
	})

	t.Run("rejects_invalid_line_item_before_touching_inventory", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, _, _ := newSaleService(t, ctrl)

		_, err := svc.PlaceSale(ctx, draftFor(customerID, item(apple, 0)), operatorID)

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.True(t, verr.Has(domain.FaultInvalidLineItem))
	})

	t.Run("rejects_when_stock_is_short_and_reports_products", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, _, invRepo := newSaleService(t, ctrl)

		levels := stock(100, apple)
		levels[mango] = domain.StockLevel{ProductID: mango, Quantity: decimal.NewFromInt(3), Unit: "kg"}
		invRepo.EXPECT().
			Quantities(gomock.Any(), gomock.Any()).
			Return(levels, nil)

		_, err := svc.PlaceSale(ctx, draftFor(customerID, item(apple, 10), item(mango, 5)), operatorID)

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.True(t, verr.Has(domain.FaultInsufficientStock))
		assert.Equal(t, []uuid.UUID{mango}, verr.ShortStock())
	})

	t.Run("sums_duplicate_lines_before_the_stock_check", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, _, invRepo := newSaleService(t, ctrl)

		invRepo.EXPECT().
			Quantities(gomock.Any(), gomock.Any()).
			Return(stock(10, apple), nil)

		// two lines of 6 against 10 on hand
		_, err := svc.PlaceSale(ctx, draftFor(customerID, item(apple, 6), item(apple, 6)), operatorID)

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []uuid.UUID{apple}, verr.ShortStock())
	})

	t.Run("maps_decrement_conflict_to_insufficient_stock", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, saleRepo, invRepo := newSaleService(t, ctrl)

		invRepo.EXPECT().
			Quantities(gomock.Any(), gomock.Any()).
			Return(stock(100, apple), nil)
		saleRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(&domain.ShortStockError{ProductIDs: []uuid.UUID{apple}})

		_, err := svc.PlaceSale(ctx, draftFor(customerID, item(apple, 10)), operatorID)

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []uuid.UUID{apple}, verr.ShortStock())
	})

	t.Run("propagates_repository_errors", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, saleRepo, invRepo := newSaleService(t, ctrl)

		invRepo.EXPECT().
			Quantities(gomock.Any(), gomock.Any()).
			Return(stock(100, apple), nil)
		saleRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(errors.New("connection reset"))

		_, err := svc.PlaceSale(ctx, draftFor(customerID, item(apple, 1)), operatorID)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to place sale")
		var verr *domain.ValidationError
		assert.False(t, errors.As(err, &verr))
	})

	t.Run("invalidates_caches_and_enqueues_refresh_after_placement", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		saleRepo := mocks.NewMockSaleRepository(ctrl)
		invRepo := mocks.NewMockInventoryRepository(ctrl)
		cache := mocks.NewMockCacheRepository(ctrl)
		tasks := mocks.NewMockTaskEnqueuer(ctrl)
		svc := services.NewSaleService(saleRepo, invRepo, cache, tasks, helpers.TestLogger())

		invRepo.EXPECT().
			Quantities(gomock.Any(), gomock.Any()).
			Return(stock(100, apple), nil)
		saleRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		cache.EXPECT().DeletePattern(gomock.Any(), gomock.Any()).MinTimes(1).Return(nil)
		tasks.EXPECT().EnqueueContext(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		_, err := svc.PlaceSale(ctx, draftFor(customerID, item(apple, 1)), operatorID)
		require.NoError(t, err)
	})
}

func TestSaleService_ReviseSale(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()
	apple := uuid.New()
	saleID := uuid.New()

	item := func(pid uuid.UUID, qty float64) domain.SaleItem {
		return domain.SaleItem{
			ProductID: pid,
			Quantity:  decimal.NewFromFloat(qty),
			UnitPrice: decimal.NewFromFloat(2),
		}
	}

	existing := func() *domain.Sale {
		sale := &domain.Sale{
			ID:         saleID,
			CustomerID: customerID,
			Items:      []domain.SaleItem{item(apple, 8)},
			Status:     domain.SalePending,
		}
		sale.PrepareForStorage()
		return sale
	}

	t.Run("returns_not_found_for_unknown_sale", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, saleRepo, _ := newSaleService(t, ctrl)

		saleRepo.EXPECT().FindByID(gomock.Any(), saleID).Return(nil, nil)

		_, err := svc.ReviseSale(ctx, saleID, draftFor(customerID, item(apple, 1)))

		assert.ErrorIs(t, err, services.ErrSaleNotFound)
	})

	t.Run("counts_prior_consumption_as_available", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, saleRepo, invRepo := newSaleService(t, ctrl)

		prior := existing()
		saleRepo.EXPECT().FindByID(gomock.Any(), saleID).Return(prior, nil)
		// only 2 left on the shelf, but the sale already holds 8
		invRepo.EXPECT().
			Quantities(gomock.Any(), gomock.Any()).
			Return(stock(2, apple), nil)
		saleRepo.EXPECT().
			Replace(gomock.Any(), gomock.Any(), prior.Items).
			DoAndReturn(func(ctx context.Context, sale *domain.Sale, old []domain.SaleItem) error {
				assert.Equal(t, saleID, sale.ID)
				require.Len(t, sale.Items, 1)
				assert.True(t, sale.Items[0].Quantity.Equal(decimal.NewFromInt(10)))
				return nil
			})

		sale, err := svc.ReviseSale(ctx, saleID, draftFor(customerID, item(apple, 10)))

		require.NoError(t, err)
		assert.True(t, sale.TotalAmount.Equal(decimal.NewFromInt(20)))
	})

	t.Run("still_rejects_quantities_beyond_restored_stock", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, saleRepo, invRepo := newSaleService(t, ctrl)

		saleRepo.EXPECT().FindByID(gomock.Any(), saleID).Return(existing(), nil)
		invRepo.EXPECT().
			Quantities(gomock.Any(), gomock.Any()).
			Return(stock(2, apple), nil)

		// 2 on hand + 8 held by the sale = 10 effective, 11 requested
		_, err := svc.ReviseSale(ctx, saleID, draftFor(customerID, item(apple, 11)))

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []uuid.UUID{apple}, verr.ShortStock())
	})

	t.Run("validates_the_draft_before_loading_stock", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, saleRepo, _ := newSaleService(t, ctrl)

		saleRepo.EXPECT().FindByID(gomock.Any(), saleID).Return(existing(), nil)

		_, err := svc.ReviseSale(ctx, saleID, draftFor(uuid.Nil, item(apple, 1)))

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.True(t, verr.Has(domain.FaultMissingCustomer))
	})
}

func TestSaleService_DeleteSale(t *testing.T) {
	ctx := context.Background()
	saleID := uuid.New()

	t.Run("deletes_without_restoring_inventory", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		// no expectations on the inventory repository: a delete must not
		// touch the ledger
		svc, saleRepo, _ := newSaleService(t, ctrl)

		saleRepo.EXPECT().Exists(gomock.Any(), saleID).Return(true, nil)
		saleRepo.EXPECT().Delete(gomock.Any(), saleID).Return(nil)

		require.NoError(t, svc.DeleteSale(ctx, saleID))
	})

	t.Run("returns_not_found_for_unknown_sale", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, saleRepo, _ := newSaleService(t, ctrl)

		saleRepo.EXPECT().Exists(gomock.Any(), saleID).Return(false, nil)

		assert.ErrorIs(t, svc.DeleteSale(ctx, saleID), services.ErrSaleNotFound)
	})
}

func TestSaleService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes_paging_and_computes_pages", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, saleRepo, _ := newSaleService(t, ctrl)

		saleRepo.EXPECT().
			FindAll(ctx, ports.SaleListParams{Page: 1, PageSize: 1000}).
			Return([]*domain.Sale{}, int64(2500), nil)

		result, err := svc.List(ctx, ports.SaleListParams{Page: 0, PageSize: 9999})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Page)
		assert.Equal(t, 1000, result.PageSize)
		assert.Equal(t, int64(2500), result.TotalCount)
		assert.Equal(t, 3, result.TotalPages)
	})

	t.Run("wraps_repository_errors", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc, saleRepo, _ := newSaleService(t, ctrl)

		saleRepo.EXPECT().
			FindAll(gomock.Any(), gomock.Any()).
			Return(nil, int64(0), errors.New("database down"))

		_, err := svc.List(ctx, ports.SaleListParams{Page: 1, PageSize: 10})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to list sales")
	})
}
