// internal/core/domain/sale.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleStatus represents the order status of a sale
type SaleStatus string

// Order status constants. Status changes are operator-initiated only; the
// system never transitions a sale on its own.
const (
	SalePending    SaleStatus = "pending"
	SaleProcessing SaleStatus = "processing"
	SaleCompleted  SaleStatus = "completed"
	SaleCancelled  SaleStatus = "cancelled"
)

// PaymentStatus represents the payment status of a sale
type PaymentStatus string

// Payment status constants
const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// ValidSaleStatus reports whether s is a known order status
func ValidSaleStatus(s SaleStatus) bool {
	switch s {
	case SalePending, SaleProcessing, SaleCompleted, SaleCancelled:
		return true
	}
	return false
}

// ValidPaymentStatus reports whether s is a known payment status
func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// SaleItem is one product/quantity/price line within a sale. The unit price
// defaults from the catalog but is independent of it afterwards: the operator
// may override it per sale.
type SaleItem struct {
	ID          uuid.UUID       `json:"id"`
	SaleID      uuid.UUID       `json:"sale_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Position    int             `json:"position"`
}

// LineTotal returns quantity x unit price
func (i SaleItem) LineTotal() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}

// Sale is the aggregate: header plus its ordered line items. TotalAmount
// equals the sum of line totals as of the last write.
type Sale struct {
	ID            uuid.UUID       `json:"id"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	CustomerName  string          `json:"customer_name,omitempty"`
	Items         []SaleItem      `json:"items"`
	Status        SaleStatus      `json:"status"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	CreatedBy     uuid.UUID       `json:"created_by,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ComputeTotal returns the sum of the line totals of items
func ComputeTotal(items []SaleItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total
}

// ValidateSale enforces the structural rules of a candidate sale, in order:
// customer present, at least one item, every item well-formed. Evaluation
// stops at the first failing rule. The availability rule runs separately
// because it needs a ledger snapshot; see CheckAvailability.
func ValidateSale(customerID uuid.UUID, items []SaleItem) *Fault {
	if customerID == uuid.Nil {
		return &Fault{
			Kind:    FaultMissingCustomer,
			Message: "a customer must be selected",
		}
	}
	if len(items) == 0 {
		return &Fault{
			Kind:    FaultEmptyOrder,
			Message: "at least one line item is required",
		}
	}
	for idx, it := range items {
		switch {
		case it.ProductID == uuid.Nil:
			return &Fault{
				Kind:      FaultInvalidLineItem,
				Message:   "line item has no product",
				ItemIndex: idx,
			}
		case !it.Quantity.IsPositive():
			return &Fault{
				Kind:      FaultInvalidLineItem,
				Message:   "line item quantity must be positive",
				ItemIndex: idx,
			}
		case it.UnitPrice.IsNegative():
			return &Fault{
				Kind:      FaultInvalidLineItem,
				Message:   "line item unit price cannot be negative",
				ItemIndex: idx,
			}
		}
	}
	return nil
}

// PrepareForStorage assigns ids, positions and timestamps before persistence
// and recomputes the header total from the items.
func (s *Sale) PrepareForStorage() {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Status == "" {
		s.Status = SalePending
	}
	if s.PaymentStatus == "" {
		s.PaymentStatus = PaymentPending
	}
	now := time.Now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now

	for i := range s.Items {
		if s.Items[i].ID == uuid.Nil {
			s.Items[i].ID = uuid.New()
		}
		s.Items[i].SaleID = s.ID
		s.Items[i].Position = i
	}
	s.TotalAmount = ComputeTotal(s.Items)
}
