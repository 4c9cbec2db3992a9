// internal/core/domain/supplier.go
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Supplier is an upstream grower or exporter
type Supplier struct {
	ID                uuid.UUID  `json:"id"`
	CompanyName       string     `json:"company_name"`
	ContactName       string     `json:"contact_name,omitempty"`
	Email             string     `json:"email,omitempty"`
	Phone             string     `json:"phone,omitempty"`
	Address           string     `json:"address,omitempty"`
	Country           string     `json:"country,omitempty"`
	ProductCategories []string   `json:"product_categories,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	DeletedAt         *time.Time `json:"deleted_at,omitempty"`
}

// Validate performs domain validation on the supplier
func (s *Supplier) Validate() error {
	if s.CompanyName == "" {
		return fmt.Errorf("company_name is required")
	}
	return nil
}

// PrepareForStorage prepares the supplier for database storage
func (s *Supplier) PrepareForStorage() {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	now := time.Now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
}
