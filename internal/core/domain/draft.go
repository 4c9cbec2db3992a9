// internal/core/domain/draft.go
package domain

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleDraft is an in-progress sale under construction by an operator.
// Drafts are immutable values: every transition returns a new draft, so an
// abandoned draft leaves no trace and a rejected submit keeps the operator's
// input intact for correction.
type SaleDraft struct {
	SaleID        uuid.UUID
	CustomerID    uuid.UUID
	Items         []SaleItem
	Status        SaleStatus
	PaymentStatus PaymentStatus
}

// NewSaleDraft returns an empty draft for a new sale
func NewSaleDraft() SaleDraft {
	return SaleDraft{
		Status:        SalePending,
		PaymentStatus: PaymentPending,
	}
}

// DraftFromSale returns a draft pre-filled from an existing sale, for edits
func DraftFromSale(s *Sale) SaleDraft {
	d := SaleDraft{
		SaleID:        s.ID,
		CustomerID:    s.CustomerID,
		Items:         cloneItems(s.Items),
		Status:        s.Status,
		PaymentStatus: s.PaymentStatus,
	}
	return d
}

// WithCustomer selects the customer
func (d SaleDraft) WithCustomer(customerID uuid.UUID) SaleDraft {
	d.Items = cloneItems(d.Items)
	d.CustomerID = customerID
	return d
}

// AddItem appends an empty line item (quantity 1, price 0)
func (d SaleDraft) AddItem() SaleDraft {
	items := cloneItems(d.Items)
	items = append(items, SaleItem{
		Quantity:  decimal.NewFromInt(1),
		UnitPrice: decimal.Zero,
	})
	d.Items = items
	return d
}

// RemoveItem drops the line item at index; out-of-range indexes are ignored
func (d SaleDraft) RemoveItem(index int) SaleDraft {
	if index < 0 || index >= len(d.Items) {
		return d
	}
	items := make([]SaleItem, 0, len(d.Items)-1)
	items = append(items, d.Items[:index]...)
	items = append(items, d.Items[index+1:]...)
	d.Items = items
	return d
}

// SetItemProduct assigns a product to the line item at index. When the item
// had no product yet its unit price is defaulted from the catalog entry;
// re-selecting a product on a priced line also re-defaults, matching the
// sale screen behavior. Manual price edits afterwards stick.
func (d SaleDraft) SetItemProduct(index int, entry CatalogEntry) SaleDraft {
	if index < 0 || index >= len(d.Items) {
		return d
	}
	items := cloneItems(d.Items)
	items[index].ProductID = entry.ID
	items[index].ProductName = entry.Name
	items[index].UnitPrice = entry.Price
	d.Items = items
	return d
}

// SetItemQuantity sets the requested quantity of the line item at index
func (d SaleDraft) SetItemQuantity(index int, qty decimal.Decimal) SaleDraft {
	if index < 0 || index >= len(d.Items) {
		return d
	}
	items := cloneItems(d.Items)
	items[index].Quantity = qty
	d.Items = items
	return d
}

// SetItemPrice overrides the unit price of the line item at index
func (d SaleDraft) SetItemPrice(index int, price decimal.Decimal) SaleDraft {
	if index < 0 || index >= len(d.Items) {
		return d
	}
	items := cloneItems(d.Items)
	items[index].UnitPrice = price
	d.Items = items
	return d
}

// WithStatus sets the order status
func (d SaleDraft) WithStatus(s SaleStatus) SaleDraft {
	d.Items = cloneItems(d.Items)
	d.Status = s
	return d
}

// WithPaymentStatus sets the payment status
func (d SaleDraft) WithPaymentStatus(s PaymentStatus) SaleDraft {
	d.Items = cloneItems(d.Items)
	d.PaymentStatus = s
	return d
}

// Total returns the running total shown while the draft is edited
func (d SaleDraft) Total() decimal.Decimal {
	return ComputeTotal(d.Items)
}

// Validate runs the structural rules against the draft, then checks that
// any statuses the request carries are in the known enumerations. Empty
// statuses pass; PrepareForStorage fills in the pending defaults.
func (d SaleDraft) Validate() *Fault {
	if fault := ValidateSale(d.CustomerID, d.Items); fault != nil {
		return fault
	}
	if d.Status != "" && !ValidSaleStatus(d.Status) {
		return &Fault{
			Kind:    FaultInvalidStatus,
			Message: fmt.Sprintf("unknown order status %q", d.Status),
		}
	}
	if d.PaymentStatus != "" && !ValidPaymentStatus(d.PaymentStatus) {
		return &Fault{
			Kind:    FaultInvalidStatus,
			Message: fmt.Sprintf("unknown payment status %q", d.PaymentStatus),
		}
	}
	return nil
}

func cloneItems(items []SaleItem) []SaleItem {
	if items == nil {
		return nil
	}
	out := make([]SaleItem, len(items))
	copy(out, items)
	return out
}
