package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fruimex/fruimex-be/internal/core/domain"
)

func TestSaleDraft_Transitions(t *testing.T) {
	entry := domain.CatalogEntry{
		ID:    uuid.New(),
		Name:  "Valencia Orange",
		Price: decimal.NewFromFloat(1.20),
	}

	t.Run("new_draft_starts_empty_and_pending", func(t *testing.T) {
		draft := domain.NewSaleDraft()

		assert.Equal(t, uuid.Nil, draft.CustomerID)
		assert.Empty(t, draft.Items)
		assert.Equal(t, domain.SalePending, draft.Status)
		assert.Equal(t, domain.PaymentPending, draft.PaymentStatus)
	})

	t.Run("add_item_defaults_quantity_one_price_zero", func(t *testing.T) {
		draft := domain.NewSaleDraft().AddItem()

		require.Len(t, draft.Items, 1)
		assert.True(t, draft.Items[0].Quantity.Equal(decimal.NewFromInt(1)))
		assert.True(t, draft.Items[0].UnitPrice.IsZero())
		assert.Equal(t, uuid.Nil, draft.Items[0].ProductID)
	})

	t.Run("set_product_defaults_unit_price_from_catalog", func(t *testing.T) {
		draft := domain.NewSaleDraft().AddItem().SetItemProduct(0, entry)

		assert.Equal(t, entry.ID, draft.Items[0].ProductID)
		assert.Equal(t, entry.Name, draft.Items[0].ProductName)
		assert.True(t, draft.Items[0].UnitPrice.Equal(entry.Price))
	})

	t.Run("manual_price_override_sticks", func(t *testing.T) {
		draft := domain.NewSaleDraft().
			AddItem().
			SetItemProduct(0, entry).
			SetItemPrice(0, decimal.NewFromFloat(0.99))

		assert.True(t, draft.Items[0].UnitPrice.Equal(decimal.NewFromFloat(0.99)))
	})

	t.Run("reselecting_product_resets_price", func(t *testing.T) {
		draft := domain.NewSaleDraft().
			AddItem().
			SetItemProduct(0, entry).
			SetItemPrice(0, decimal.NewFromFloat(0.99)).
			SetItemProduct(0, entry)

		assert.True(t, draft.Items[0].UnitPrice.Equal(entry.Price))
	})

	t.Run("remove_item_drops_only_that_index", func(t *testing.T) {
		other := domain.CatalogEntry{ID: uuid.New(), Name: "Mango", Price: decimal.NewFromFloat(2)}
		draft := domain.NewSaleDraft().
			AddItem().SetItemProduct(0, entry).
			AddItem().SetItemProduct(1, other).
			RemoveItem(0)

		require.Len(t, draft.Items, 1)
		assert.Equal(t, other.ID, draft.Items[0].ProductID)
	})

	t.Run("out_of_range_indexes_are_ignored", func(t *testing.T) {
		draft := domain.NewSaleDraft().AddItem()

		same := draft.RemoveItem(5).
			SetItemQuantity(-1, decimal.NewFromInt(9)).
			SetItemProduct(3, entry)

		require.Len(t, same.Items, 1)
		assert.Equal(t, uuid.Nil, same.Items[0].ProductID)
	})

	t.Run("transitions_do_not_mutate_the_source_draft", func(t *testing.T) {
		base := domain.NewSaleDraft().AddItem().SetItemProduct(0, entry)

		_ = base.SetItemQuantity(0, decimal.NewFromInt(50))
		_ = base.RemoveItem(0)
		_ = base.WithCustomer(uuid.New())

		require.Len(t, base.Items, 1)
		assert.True(t, base.Items[0].Quantity.Equal(decimal.NewFromInt(1)))
		assert.Equal(t, uuid.Nil, base.CustomerID)
	})
}

func TestSaleDraft_Total(t *testing.T) {
	entry := domain.CatalogEntry{
		ID:    uuid.New(),
		Name:  "Medjool Dates",
		Price: decimal.NewFromFloat(4.50),
	}

	draft := domain.NewSaleDraft().
		AddItem().SetItemProduct(0, entry).SetItemQuantity(0, decimal.NewFromInt(10)).
		AddItem().SetItemProduct(1, entry).SetItemQuantity(1, decimal.NewFromFloat(2.5))

	assert.True(t, draft.Total().Equal(decimal.NewFromFloat(56.25)),
		"Expected total: 56.25, Got: %s", draft.Total())
}

func TestDraftFromSale(t *testing.T) {
	sale := &domain.Sale{
		ID:            uuid.New(),
		CustomerID:    uuid.New(),
		Status:        domain.SaleProcessing,
		PaymentStatus: domain.PaymentPaid,
		Items: []domain.SaleItem{
			{ProductID: uuid.New(), Quantity: decimal.NewFromInt(3), UnitPrice: decimal.NewFromFloat(2)},
		},
	}

	draft := domain.DraftFromSale(sale)

	assert.Equal(t, sale.ID, draft.SaleID)
	assert.Equal(t, sale.CustomerID, draft.CustomerID)
	assert.Equal(t, sale.Status, draft.Status)
	assert.Equal(t, sale.PaymentStatus, draft.PaymentStatus)
	require.Len(t, draft.Items, 1)

	// editing the draft must not touch the loaded sale
	draft = draft.SetItemQuantity(0, decimal.NewFromInt(99))
	assert.True(t, sale.Items[0].Quantity.Equal(decimal.NewFromInt(3)))
}

func TestSaleDraft_Validate(t *testing.T) {
	entry := domain.CatalogEntry{ID: uuid.New(), Name: "Kiwi", Price: decimal.NewFromFloat(0.80)}

	t.Run("empty_draft_is_missing_customer", func(t *testing.T) {
		fault := domain.NewSaleDraft().Validate()
		require.NotNil(t, fault)
		assert.Equal(t, domain.FaultMissingCustomer, fault.Kind)
	})

	t.Run("customer_without_items_is_empty_order", func(t *testing.T) {
		fault := domain.NewSaleDraft().WithCustomer(uuid.New()).Validate()
		require.NotNil(t, fault)
		assert.Equal(t, domain.FaultEmptyOrder, fault.Kind)
	})

	t.Run("complete_draft_passes", func(t *testing.T) {
		fault := domain.NewSaleDraft().
			WithCustomer(uuid.New()).
			AddItem().
			SetItemProduct(0, entry).
			Validate()
		assert.Nil(t, fault)
	})

	completeDraft := func() domain.SaleDraft {
		return domain.NewSaleDraft().
			WithCustomer(uuid.New()).
			AddItem().
			SetItemProduct(0, entry)
	}

	t.Run("known_statuses_pass", func(t *testing.T) {
		fault := completeDraft().
			WithStatus(domain.SaleProcessing).
			WithPaymentStatus(domain.PaymentPaid).
			Validate()
		assert.Nil(t, fault)
	})

	t.Run("unknown_order_status_is_rejected", func(t *testing.T) {
		fault := completeDraft().
			WithStatus(domain.SaleStatus("frobnicated")).
			Validate()
		require.NotNil(t, fault)
		assert.Equal(t, domain.FaultInvalidStatus, fault.Kind)
		assert.Contains(t, fault.Message, "frobnicated")
	})

	t.Run("unknown_payment_status_is_rejected", func(t *testing.T) {
		fault := completeDraft().
			WithPaymentStatus(domain.PaymentStatus("iou")).
			Validate()
		require.NotNil(t, fault)
		assert.Equal(t, domain.FaultInvalidStatus, fault.Kind)
	})

	t.Run("structural_faults_come_before_status_faults", func(t *testing.T) {
		fault := domain.NewSaleDraft().
			WithStatus(domain.SaleStatus("frobnicated")).
			Validate()
		require.NotNil(t, fault)
		assert.Equal(t, domain.FaultMissingCustomer, fault.Kind)
	})
}
