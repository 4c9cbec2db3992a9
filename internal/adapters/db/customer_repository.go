// internal/adapters/db/customer_repository.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fruimex/fruimex-be/internal/core/domain"
	"github.com/fruimex/fruimex-be/internal/core/ports"
)

// customerRepository implements ports.CustomerRepository
type customerRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *Database, logger *slog.Logger) ports.CustomerRepository {
	return &customerRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "customer")),
	}
}

// Save creates a new customer
func (r *customerRepository) Save(ctx context.Context, customer *domain.Customer) error {
	query := `
		INSERT INTO customers (
			id, company_name, contact_name, email, phone, address,
			city, country, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(ctx, query,
		customer.ID, customer.CompanyName, nullableString(customer.ContactName),
		nullableString(customer.Email), nullableString(customer.Phone),
		nullableString(customer.Address), nullableString(customer.City),
		nullableString(customer.Country), customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save customer: %w", err)
	}

	r.logger.DebugContext(ctx, "customer saved", slog.String("id", customer.ID.String()))
	return nil
}

// Update updates an existing customer
func (r *customerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	query := `
		UPDATE customers SET
			company_name = $2, contact_name = $3, email = $4, phone = $5,
			address = $6, city = $7, country = $8, updated_at = $9
		WHERE id = $1 AND deleted_at IS NULL`

	customer.UpdatedAt = time.Now()

	tag, err := r.db.Exec(ctx, query,
		customer.ID, customer.CompanyName, nullableString(customer.ContactName),
		nullableString(customer.Email), nullableString(customer.Phone),
		nullableString(customer.Address), nullableString(customer.City),
		nullableString(customer.Country), customer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("customer not found: %s", customer.ID)
	}

	return nil
}

const customerSelect = `
	SELECT id, company_name, contact_name, email, phone, address,
		city, country, created_at, updated_at, deleted_at
	FROM customers`

// FindByID retrieves a customer by ID
func (r *customerRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	row := r.db.QueryRow(ctx, customerSelect+` WHERE id = $1 AND deleted_at IS NULL`, id)
	customer, err := scanCustomer(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	return customer, nil
}

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	customer := &domain.Customer{}
	var contactName, email, phone, address, city, country sql.NullString

	err := row.Scan(
		&customer.ID, &customer.CompanyName, &contactName, &email, &phone,
		&address, &city, &country, &customer.CreatedAt, &customer.UpdatedAt,
		&customer.DeletedAt,
	)
	if err != nil {
		return nil, err
	}

	customer.ContactName = contactName.String
	customer.Email = email.String
	customer.Phone = phone.String
	customer.Address = address.String
	customer.City = city.String
	customer.Country = country.String

	return customer, nil
}

// Delete soft-deletes a customer. Past sales keep the foreign key, so the
// row stays behind the deleted_at marker.
func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE customers SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`,
		id, time.Now())
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("customer not found: %s", id)
	}

	r.logger.InfoContext(ctx, "customer deleted", slog.String("id", id.String()))
	return nil
}

// Count returns the number of active customers
func (r *customerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM customers WHERE deleted_at IS NULL`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return count, nil
}

// Refs returns the id/company-name projection for active customers
func (r *customerRepository) Refs(ctx context.Context) ([]domain.CustomerRef, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, company_name FROM customers WHERE deleted_at IS NULL ORDER BY company_name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query customer refs: %w", err)
	}
	defer rows.Close()

	var refs []domain.CustomerRef
	for rows.Next() {
		var ref domain.CustomerRef
		if err := rows.Scan(&ref.ID, &ref.CompanyName); err != nil {
			return nil, fmt.Errorf("failed to scan customer ref: %w", err)
		}
		refs = append(refs, ref)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return refs, nil
}

// FindAll retrieves customers with filtering and pagination
func (r *customerRepository) FindAll(ctx context.Context, params ports.DirectoryListParams) ([]*domain.Customer, int64, error) {
	applyFilters := func(qb squirrel.SelectBuilder) squirrel.SelectBuilder {
		qb = qb.Where("deleted_at IS NULL")
		if params.Search != "" {
			qb = qb.Where("(company_name ILIKE ? OR contact_name ILIKE ? OR email ILIKE ?)",
				"%"+params.Search+"%", "%"+params.Search+"%", "%"+params.Search+"%")
		}
		if params.Country != "" {
			qb = qb.Where(squirrel.Eq{"country": params.Country})
		}
		return qb
	}

	countQb := applyFilters(squirrel.Select("COUNT(*)").
		From("customers").
		PlaceholderFormat(squirrel.Dollar))
	countSQL, countArgs, err := countQb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var totalCount int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}

	qb := applyFilters(squirrel.Select(
		"id", "company_name", "contact_name", "email", "phone", "address",
		"city", "country", "created_at", "updated_at", "deleted_at",
	).From("customers").
		PlaceholderFormat(squirrel.Dollar))

	orderBy := "company_name ASC"
	if params.SortBy != "" {
		direction := "ASC"
		if params.SortOrder == "desc" {
			direction = "DESC"
		}

		switch params.SortBy {
		case "country":
			orderBy = fmt.Sprintf("country %s, company_name ASC", direction)
		case "created":
			orderBy = fmt.Sprintf("created_at %s", direction)
		default:
			orderBy = fmt.Sprintf("company_name %s", direction)
		}
	}
	qb = qb.OrderBy(orderBy)

	if params.PageSize > 0 {
		qb = qb.Limit(uint64(params.PageSize))
		qb = qb.Offset(uint64((params.Page - 1) * params.PageSize))
	}

	querySQL, args, err := qb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	var customers []*domain.Customer
	for rows.Next() {
		customer := &domain.Customer{}
		var contactName, email, phone, address, city, country sql.NullString

		err := rows.Scan(
			&customer.ID, &customer.CompanyName, &contactName, &email, &phone,
			&address, &city, &country, &customer.CreatedAt, &customer.UpdatedAt,
			&customer.DeletedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan customer: %w", err)
		}

		customer.ContactName = contactName.String
		customer.Email = email.String
		customer.Phone = phone.String
		customer.Address = address.String
		customer.City = city.String
		customer.Country = country.String

		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return customers, totalCount, nil
}
