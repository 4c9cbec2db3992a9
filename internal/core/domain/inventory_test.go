package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fruimex/fruimex-be/internal/core/domain"
)

func TestInventoryRecord_Validate(t *testing.T) {
	productID := uuid.New()

	tests := []struct {
		name      string
		record    *domain.InventoryRecord
		wantError bool
		errorMsg  string
	}{
		{
			name: "valid_record",
			record: &domain.InventoryRecord{
				ProductID: productID,
				Quantity:  decimal.NewFromFloat(120.5),
				Unit:      "kg",
			},
			wantError: false,
		},
		{
			name: "missing_product_id",
			record: &domain.InventoryRecord{
				Quantity: decimal.NewFromInt(10),
				Unit:     "kg",
			},
			wantError: true,
			errorMsg:  "product_id is required",
		},
		{
			name: "negative_quantity",
			record: &domain.InventoryRecord{
				ProductID: productID,
				Quantity:  decimal.NewFromInt(-1),
				Unit:      "kg",
			},
			wantError: true,
			errorMsg:  "quantity cannot be negative",
		},
		{
			name: "zero_quantity_is_allowed",
			record: &domain.InventoryRecord{
				ProductID: productID,
				Quantity:  decimal.Zero,
				Unit:      "box",
			},
			wantError: false,
		},
		{
			name: "missing_unit",
			record: &domain.InventoryRecord{
				ProductID: productID,
				Quantity:  decimal.NewFromInt(10),
			},
			wantError: true,
			errorMsg:  "unit is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()

			if tt.wantError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestInventoryRecord_PrepareForStorage(t *testing.T) {
	t.Run("generates_uuid_when_nil", func(t *testing.T) {
		record := &domain.InventoryRecord{}

		record.PrepareForStorage()

		assert.NotEqual(t, uuid.Nil, record.ID)
		assert.NotZero(t, record.CreatedAt)
		assert.NotZero(t, record.UpdatedAt)
	})

	t.Run("preserves_existing_uuid", func(t *testing.T) {
		existingID := uuid.New()
		record := &domain.InventoryRecord{ID: existingID}

		record.PrepareForStorage()

		assert.Equal(t, existingID, record.ID)
	})
}

func TestCheckAvailability(t *testing.T) {
	apple := uuid.New()
	mango := uuid.New()
	lychee := uuid.New()

	levels := map[uuid.UUID]domain.StockLevel{
		apple: {ProductID: apple, Quantity: decimal.NewFromInt(100), Unit: "kg"},
		mango: {ProductID: mango, Quantity: decimal.NewFromInt(10), Unit: "kg"},
	}

	item := func(pid uuid.UUID, qty float64) domain.SaleItem {
		return domain.SaleItem{
			ProductID: pid,
			Quantity:  decimal.NewFromFloat(qty),
			UnitPrice: decimal.NewFromFloat(1),
		}
	}

	tests := []struct {
		name      string
		items     []domain.SaleItem
		wantShort []uuid.UUID
	}{
		{
			name:      "all_available",
			items:     []domain.SaleItem{item(apple, 50), item(mango, 10)},
			wantShort: nil,
		},
		{
			name:      "exact_quantity_is_available",
			items:     []domain.SaleItem{item(apple, 100)},
			wantShort: nil,
		},
		{
			name:      "one_product_short",
			items:     []domain.SaleItem{item(apple, 50), item(mango, 11)},
			wantShort: []uuid.UUID{mango},
		},
		{
			name:      "unknown_product_counts_as_zero_stock",
			items:     []domain.SaleItem{item(lychee, 1)},
			wantShort: []uuid.UUID{lychee},
		},
		{
			name:      "duplicate_lines_are_summed",
			items:     []domain.SaleItem{item(mango, 6), item(apple, 1), item(mango, 6)},
			wantShort: []uuid.UUID{mango},
		},
		{
			name:      "duplicate_lines_within_stock_pass",
			items:     []domain.SaleItem{item(mango, 4), item(mango, 6)},
			wantShort: nil,
		},
		{
			name:      "multiple_shortfalls_all_reported",
			items:     []domain.SaleItem{item(apple, 200), item(mango, 50), item(lychee, 1)},
			wantShort: []uuid.UUID{apple, mango, lychee},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			short := domain.CheckAvailability(tt.items, levels)
			assert.Equal(t, tt.wantShort, short)
		})
	}
}

func BenchmarkCheckAvailability(b *testing.B) {
	levels := make(map[uuid.UUID]domain.StockLevel)
	items := make([]domain.SaleItem, 0, 50)
	for i := 0; i < 50; i++ {
		pid := uuid.New()
		levels[pid] = domain.StockLevel{ProductID: pid, Quantity: decimal.NewFromInt(1000)}
		items = append(items, domain.SaleItem{ProductID: pid, Quantity: decimal.NewFromInt(5)})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = domain.CheckAvailability(items, levels)
	}
}
