// internal/core/domain/product.go
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductCategory represents catalog categories
type ProductCategory string

// Category constants
const (
	CategoryCitrus    ProductCategory = "citrus"
	CategoryTropical  ProductCategory = "tropical"
	CategoryStoneFr   ProductCategory = "stone_fruit"
	CategoryBerries   ProductCategory = "berries"
	CategoryMelons    ProductCategory = "melons"
	CategoryExotic    ProductCategory = "exotic"
	CategoryDried     ProductCategory = "dried"
	CategoryOtherKind ProductCategory = "other"
)

// Product is a catalog entry. The sale workflow treats it as read-only: it is
// consulted to default a new line item's unit price and never mutated there.
type Product struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	ImageURL      string          `json:"image_url,omitempty"`
	Category      ProductCategory `json:"category,omitempty"`
	OriginCountry string          `json:"origin_country,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     *time.Time      `json:"deleted_at,omitempty"`
}

// Validate performs domain validation on the product
func (p *Product) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("price cannot be negative")
	}
	if p.Category == "" {
		p.Category = CategoryOtherKind
	}
	return nil
}

// PrepareForStorage prepares the product for database storage
func (p *Product) PrepareForStorage() {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}

// CatalogEntry is the projection of a product used by the sale screen:
// identity plus the default unit price.
type CatalogEntry struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}
