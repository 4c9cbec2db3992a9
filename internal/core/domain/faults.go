// internal/core/domain/faults.go
package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// FaultKind classifies a sale validation failure
type FaultKind string

// Fault kinds, in the order the rules are evaluated
const (
	FaultMissingCustomer   FaultKind = "missing_customer"
	FaultEmptyOrder        FaultKind = "empty_order"
	FaultInvalidLineItem   FaultKind = "invalid_line_item"
	FaultInvalidStatus     FaultKind = "invalid_status"
	FaultInsufficientStock FaultKind = "insufficient_stock"
)

// Fault is a single typed validation failure. Structural faults reference at
// most one line item; an insufficient-stock fault carries every product that
// fell short so the operator can correct the whole order in one pass.
type Fault struct {
	Kind       FaultKind   `json:"kind"`
	Message    string      `json:"message"`
	ItemIndex  int         `json:"item_index,omitempty"`
	ProductIDs []uuid.UUID `json:"product_ids,omitempty"`
}

// ShortStockError is returned by the persistence layer when the guarded
// inventory decrement finds less stock than the pre-check saw. It carries
// the products that could not be covered.
type ShortStockError struct {
	ProductIDs []uuid.UUID
}

func (e *ShortStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %d product(s)", len(e.ProductIDs))
}

// ValidationError aggregates the faults of one submit attempt
type ValidationError struct {
	Faults []Fault
}

func (e *ValidationError) Error() string {
	if len(e.Faults) == 0 {
		return "sale validation failed"
	}
	msgs := make([]string, 0, len(e.Faults))
	for _, f := range e.Faults {
		msgs = append(msgs, f.Message)
	}
	return fmt.Sprintf("sale validation failed: %s", strings.Join(msgs, "; "))
}

// Has reports whether the error contains a fault of the given kind
func (e *ValidationError) Has(kind FaultKind) bool {
	for _, f := range e.Faults {
		if f.Kind == kind {
			return true
		}
	}
	return false
}

// ShortStock returns the product ids of the insufficient-stock fault, if any
func (e *ValidationError) ShortStock() []uuid.UUID {
	for _, f := range e.Faults {
		if f.Kind == FaultInsufficientStock {
			return f.ProductIDs
		}
	}
	return nil
}
