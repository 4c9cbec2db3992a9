// internal/core/services/customers.go
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fruimex/fruimex-be/internal/core/domain"
	"github.com/fruimex/fruimex-be/internal/core/ports"
)

// CustomerService handles customer directory business logic
type CustomerService struct {
	repo   ports.CustomerRepository
	logger *slog.Logger
}

var _ ports.CustomerService = (*CustomerService)(nil)

// NewCustomerService creates a new customer service
func NewCustomerService(repo ports.CustomerRepository, logger *slog.Logger) *CustomerService {
	return &CustomerService{
		repo:   repo,
		logger: logger.With(slog.String("service", "customers")),
	}
}

// CreateCustomer adds a customer to the directory
func (s *CustomerService) CreateCustomer(ctx context.Context, customer *domain.Customer) error {
	if err := customer.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	customer.PrepareForStorage()

	if err := s.repo.Save(ctx, customer); err != nil {
		return fmt.Errorf("failed to save customer: %w", err)
	}

	s.logger.InfoContext(ctx, "customer created",
		slog.String("id", customer.ID.String()),
		slog.String("company", customer.CompanyName))

	return nil
}

// UpdateCustomer updates a directory entry
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, customer *domain.Customer) error {
	customer.ID = id

	if err := customer.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if err := s.repo.Update(ctx, customer); err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}

	s.logger.InfoContext(ctx, "customer updated", slog.String("id", id.String()))
	return nil
}

// GetByID retrieves a customer by id
func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}
	return customer, nil
}

// DeleteCustomer removes a customer from the directory. Sales placed for the
// customer keep their denormalized company name.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	s.logger.InfoContext(ctx, "customer deleted", slog.String("id", id.String()))
	return nil
}

// List retrieves customers with filtering and pagination
func (s *CustomerService) List(ctx context.Context, params ports.DirectoryListParams) (*ports.CustomerListResult, error) {
	normalizePaging(&params.Page, &params.PageSize)

	customers, totalCount, err := s.repo.FindAll(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	return &ports.CustomerListResult{
		Customers:  customers,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalCount: totalCount,
		TotalPages: totalPages(totalCount, params.PageSize),
	}, nil
}

// Refs returns the id/company-name projection used by sale drafting
func (s *CustomerService) Refs(ctx context.Context) ([]domain.CustomerRef, error) {
	refs, err := s.repo.Refs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer refs: %w", err)
	}
	return refs, nil
}
