// internal/core/domain/inventory.go
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryRecord is the ledger row for one product: the authoritative
// on-hand quantity. One record per product. Quantity is mutated by the
// inventory screen and by the sale placement workflow's decrement step, and
// must never go negative as the result of a sale.
type InventoryRecord struct {
	ID              uuid.UUID       `json:"id"`
	ProductID       uuid.UUID       `json:"product_id"`
	ProductName     string          `json:"product_name,omitempty"`
	Quantity        decimal.Decimal `json:"quantity"`
	Unit            string          `json:"unit"`
	BatchNumber     string          `json:"batch_number,omitempty"`
	ExpirationDate  *time.Time      `json:"expiration_date,omitempty"`
	StorageLocation string          `json:"storage_location,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Validate performs domain validation on the inventory record
func (r *InventoryRecord) Validate() error {
	if r.ProductID == uuid.Nil {
		return fmt.Errorf("product_id is required")
	}
	if r.Quantity.IsNegative() {
		return fmt.Errorf("quantity cannot be negative")
	}
	if r.Unit == "" {
		return fmt.Errorf("unit is required")
	}
	return nil
}

// PrepareForStorage prepares the record for database storage
func (r *InventoryRecord) PrepareForStorage() {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	now := time.Now()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = now
}

// StockLevel is the ledger snapshot consumed by the availability check.
// A product with no ledger row has no StockLevel, which the check treats as
// zero availability.
type StockLevel struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
}

// CheckAvailability compares the requested quantities of a line-item set
// against a ledger snapshot. Duplicate lines for the same product are summed
// before the comparison, so an order cannot pass by splitting one oversized
// request across lines. Returns the ids of every product that falls short.
func CheckAvailability(items []SaleItem, levels map[uuid.UUID]StockLevel) []uuid.UUID {
	requested := make(map[uuid.UUID]decimal.Decimal, len(items))
	order := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		if _, seen := requested[it.ProductID]; !seen {
			order = append(order, it.ProductID)
		}
		requested[it.ProductID] = requested[it.ProductID].Add(it.Quantity)
	}

	var short []uuid.UUID
	for _, pid := range order {
		level, ok := levels[pid]
		if !ok || level.Quantity.LessThan(requested[pid]) {
			short = append(short, pid)
		}
	}
	return short
}
