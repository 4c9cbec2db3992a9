// internal/core/domain/customer.go
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Customer is a buyer in the customer directory
type Customer struct {
	ID          uuid.UUID  `json:"id"`
	CompanyName string     `json:"company_name"`
	ContactName string     `json:"contact_name,omitempty"`
	Email       string     `json:"email,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Address     string     `json:"address,omitempty"`
	City        string     `json:"city,omitempty"`
	Country     string     `json:"country,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// Validate performs domain validation on the customer
func (c *Customer) Validate() error {
	if c.CompanyName == "" {
		return fmt.Errorf("company_name is required")
	}
	return nil
}

// PrepareForStorage prepares the customer for database storage
func (c *Customer) PrepareForStorage() {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
}

// CustomerRef is the projection used to populate the customer selector
type CustomerRef struct {
	ID          uuid.UUID `json:"id"`
	CompanyName string    `json:"company_name"`
}
