// internal/core/ports/directory.go
package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/fruimex/fruimex-be/internal/core/domain"
)

// CustomerRepository defines the persistence port for the customer directory.
type CustomerRepository interface {
	Save(ctx context.Context, customer *domain.Customer) error
	Update(ctx context.Context, customer *domain.Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindAll(ctx context.Context, params DirectoryListParams) ([]*domain.Customer, int64, error)
	Count(ctx context.Context) (int64, error)

	// Refs returns the id/company-name projection used by sale drafting.
	Refs(ctx context.Context) ([]domain.CustomerRef, error)
}

// SupplierRepository defines the persistence port for the supplier directory.
type SupplierRepository interface {
	Save(ctx context.Context, supplier *domain.Supplier) error
	Update(ctx context.Context, supplier *domain.Supplier) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Supplier, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindAll(ctx context.Context, params DirectoryListParams) ([]*domain.Supplier, int64, error)
	Count(ctx context.Context) (int64, error)
}

// CustomerService defines the application service port for customers.
type CustomerService interface {
	CreateCustomer(ctx context.Context, customer *domain.Customer) error
	UpdateCustomer(ctx context.Context, id uuid.UUID, customer *domain.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params DirectoryListParams) (*CustomerListResult, error)
	Refs(ctx context.Context) ([]domain.CustomerRef, error)
}

// SupplierService defines the application service port for suppliers.
type SupplierService interface {
	CreateSupplier(ctx context.Context, supplier *domain.Supplier) error
	UpdateSupplier(ctx context.Context, id uuid.UUID, supplier *domain.Supplier) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Supplier, error)
	DeleteSupplier(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params DirectoryListParams) (*SupplierListResult, error)
}

// DirectoryListParams holds parameters for listing directory entries
type DirectoryListParams struct {
	Search    string
	Country   string
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

// CustomerListResult holds the result of listing customers
type CustomerListResult struct {
	Customers  []*domain.Customer `json:"customers"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalCount int64              `json:"total_count"`
	TotalPages int                `json:"total_pages"`
}

// SupplierListResult holds the result of listing suppliers
type SupplierListResult struct {
	Suppliers  []*domain.Supplier `json:"suppliers"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalCount int64              `json:"total_count"`
	TotalPages int                `json:"total_pages"`
}
