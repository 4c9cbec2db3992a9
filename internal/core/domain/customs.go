// internal/core/domain/customs.go
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClearanceStatus represents the state of a customs declaration
type ClearanceStatus string

// Clearance status constants
const (
	ClearancePending    ClearanceStatus = "pending"
	ClearanceInProgress ClearanceStatus = "in_progress"
	ClearanceCleared    ClearanceStatus = "cleared"
	ClearanceBlocked    ClearanceStatus = "blocked"
)

// Shipment is an inbound consignment from a supplier
type Shipment struct {
	ID             uuid.UUID  `json:"id"`
	SupplierID     uuid.UUID  `json:"supplier_id"`
	TrackingNumber string     `json:"tracking_number"`
	Carrier        string     `json:"carrier"`
	ArrivalDate    *time.Time `json:"arrival_date,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Validate performs domain validation on the shipment
func (s *Shipment) Validate() error {
	if s.SupplierID == uuid.Nil {
		return fmt.Errorf("supplier_id is required")
	}
	if s.TrackingNumber == "" {
		return fmt.Errorf("tracking_number is required")
	}
	return nil
}

// PrepareForStorage prepares the shipment for database storage
func (s *Shipment) PrepareForStorage() {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
}

// CustomsClearance tracks the customs declaration of one shipment.
// DocumentKeys reference the uploaded declaration documents in object
// storage; the declaration number may be filled in by the document ingest
// worker after upload.
type CustomsClearance struct {
	ID                uuid.UUID        `json:"id"`
	ShipmentID        uuid.UUID        `json:"shipment_id"`
	TrackingNumber    string           `json:"tracking_number,omitempty"`
	Carrier           string           `json:"carrier,omitempty"`
	DeclarationNumber string           `json:"declaration_number,omitempty"`
	Status            ClearanceStatus  `json:"status"`
	CustomsFees       *decimal.Decimal `json:"customs_fees,omitempty"`
	ClearanceDate     *time.Time       `json:"clearance_date,omitempty"`
	DocumentKeys      []string         `json:"document_keys,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// Validate performs domain validation on the clearance record
func (c *CustomsClearance) Validate() error {
	if c.ShipmentID == uuid.Nil {
		return fmt.Errorf("shipment_id is required")
	}
	if c.CustomsFees != nil && c.CustomsFees.IsNegative() {
		return fmt.Errorf("customs_fees cannot be negative")
	}
	if c.Status == "" {
		c.Status = ClearancePending
	}
	return nil
}

// PrepareForStorage prepares the clearance record for database storage
func (c *CustomsClearance) PrepareForStorage() {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
}
