package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fruimex/fruimex-be/internal/core/domain"
)

func TestValidateSale(t *testing.T) {
	customerID := uuid.New()
	productID := uuid.New()

	validItem := domain.SaleItem{
		ProductID: productID,
		Quantity:  decimal.NewFromInt(5),
		UnitPrice: decimal.NewFromFloat(2.50),
	}

	tests := []struct {
		name       string
		customerID uuid.UUID
		items      []domain.SaleItem
		wantKind   domain.FaultKind
		wantIndex  int
	}{
		{
			name:       "valid_sale",
			customerID: customerID,
			items:      []domain.SaleItem{validItem},
		},
		{
			name:       "missing_customer",
			customerID: uuid.Nil,
			items:      []domain.SaleItem{validItem},
			wantKind:   domain.FaultMissingCustomer,
		},
		{
			name:       "missing_customer_reported_before_empty_order",
			customerID: uuid.Nil,
			items:      nil,
			wantKind:   domain.FaultMissingCustomer,
		},
		{
			name:       "empty_order",
			customerID: customerID,
			items:      []domain.SaleItem{},
			wantKind:   domain.FaultEmptyOrder,
		},
		{
			name:       "item_without_product",
			customerID: customerID,
			items: []domain.SaleItem{
				validItem,
				{Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromFloat(1)},
			},
			wantKind:  domain.FaultInvalidLineItem,
			wantIndex: 1,
		},
		{
			name:       "zero_quantity",
			customerID: customerID,
			items: []domain.SaleItem{
				{ProductID: productID, Quantity: decimal.Zero, UnitPrice: decimal.NewFromFloat(1)},
			},
			wantKind: domain.FaultInvalidLineItem,
		},
		{
			name:       "negative_quantity",
			customerID: customerID,
			items: []domain.SaleItem{
				{ProductID: productID, Quantity: decimal.NewFromInt(-3), UnitPrice: decimal.NewFromFloat(1)},
			},
			wantKind: domain.FaultInvalidLineItem,
		},
		{
			name:       "negative_unit_price",
			customerID: customerID,
			items: []domain.SaleItem{
				{ProductID: productID, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromFloat(-0.01)},
			},
			wantKind: domain.FaultInvalidLineItem,
		},
		{
			name:       "zero_unit_price_is_allowed",
			customerID: customerID,
			items: []domain.SaleItem{
				{ProductID: productID, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.Zero},
			},
		},
		{
			name:       "first_invalid_item_wins",
			customerID: customerID,
			items: []domain.SaleItem{
				{ProductID: uuid.Nil, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromFloat(1)},
				{ProductID: productID, Quantity: decimal.Zero, UnitPrice: decimal.NewFromFloat(1)},
			},
			wantKind:  domain.FaultInvalidLineItem,
			wantIndex: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fault := domain.ValidateSale(tt.customerID, tt.items)

			if tt.wantKind == "" {
				assert.Nil(t, fault)
				return
			}
			require.NotNil(t, fault)
			assert.Equal(t, tt.wantKind, fault.Kind)
			assert.NotEmpty(t, fault.Message)
			if tt.wantKind == domain.FaultInvalidLineItem {
				assert.Equal(t, tt.wantIndex, fault.ItemIndex)
			}
		})
	}
}

func TestComputeTotal(t *testing.T) {
	tests := []struct {
		name     string
		items    []domain.SaleItem
		expected decimal.Decimal
	}{
		{
			name:     "no_items",
			items:    nil,
			expected: decimal.Zero,
		},
		{
			name: "single_item",
			items: []domain.SaleItem{
				{Quantity: decimal.NewFromInt(4), UnitPrice: decimal.NewFromFloat(2.50)},
			},
			expected: decimal.NewFromFloat(10),
		},
		{
			name: "multiple_items",
			items: []domain.SaleItem{
				{Quantity: decimal.NewFromInt(4), UnitPrice: decimal.NewFromFloat(2.50)},
				{Quantity: decimal.NewFromFloat(1.5), UnitPrice: decimal.NewFromFloat(3)},
			},
			expected: decimal.NewFromFloat(14.5),
		},
		{
			name: "fractional_quantities_keep_precision",
			items: []domain.SaleItem{
				{Quantity: decimal.NewFromFloat(0.1), UnitPrice: decimal.NewFromFloat(0.3)},
				{Quantity: decimal.NewFromFloat(0.2), UnitPrice: decimal.NewFromFloat(0.3)},
			},
			expected: decimal.NewFromFloat(0.09),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := domain.ComputeTotal(tt.items)
			assert.True(t, total.Equal(tt.expected),
				"Expected total: %s, Got: %s", tt.expected, total)
		})
	}
}

func TestSale_PrepareForStorage(t *testing.T) {
	t.Run("generates_ids_and_links_items", func(t *testing.T) {
		sale := &domain.Sale{
			CustomerID: uuid.New(),
			Items: []domain.SaleItem{
				{ProductID: uuid.New(), Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromFloat(3)},
				{ProductID: uuid.New(), Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromFloat(5)},
			},
		}

		sale.PrepareForStorage()

		assert.NotEqual(t, uuid.Nil, sale.ID)
		for i, item := range sale.Items {
			assert.NotEqual(t, uuid.Nil, item.ID)
			assert.Equal(t, sale.ID, item.SaleID)
			assert.Equal(t, i, item.Position)
		}
	})

	t.Run("preserves_existing_id", func(t *testing.T) {
		existingID := uuid.New()
		sale := &domain.Sale{ID: existingID, CustomerID: uuid.New()}

		sale.PrepareForStorage()

		assert.Equal(t, existingID, sale.ID)
	})

	t.Run("defaults_statuses", func(t *testing.T) {
		sale := &domain.Sale{CustomerID: uuid.New()}

		sale.PrepareForStorage()

		assert.Equal(t, domain.SalePending, sale.Status)
		assert.Equal(t, domain.PaymentPending, sale.PaymentStatus)
	})

	t.Run("recomputes_total_from_items", func(t *testing.T) {
		sale := &domain.Sale{
			CustomerID:  uuid.New(),
			TotalAmount: decimal.NewFromFloat(999),
			Items: []domain.SaleItem{
				{ProductID: uuid.New(), Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromFloat(3)},
			},
		}

		sale.PrepareForStorage()

		assert.True(t, sale.TotalAmount.Equal(decimal.NewFromFloat(6)),
			"Expected total: 6, Got: %s", sale.TotalAmount)
	})
}

func TestValidSaleStatus(t *testing.T) {
	assert.True(t, domain.ValidSaleStatus(domain.SalePending))
	assert.True(t, domain.ValidSaleStatus(domain.SaleCancelled))
	assert.False(t, domain.ValidSaleStatus("shipped"))
	assert.False(t, domain.ValidSaleStatus(""))
}

func TestValidPaymentStatus(t *testing.T) {
	assert.True(t, domain.ValidPaymentStatus(domain.PaymentPaid))
	assert.True(t, domain.ValidPaymentStatus(domain.PaymentRefunded))
	assert.False(t, domain.ValidPaymentStatus("partial"))
}
