// internal/adapters/db/supplier_repository.go
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

// supplierRepository implements ports.SupplierRepository
type supplierRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewSupplierRepository creates a new supplier repository
func NewSupplierRepository(db *Database, logger *slog.Logger) ports.SupplierRepository {
	return &supplierRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "supplier")),
	}
}

// Save creates a new supplier
func (r *supplierRepository) Save(ctx context.Context, supplier *domain.Supplier) error {
	query := `
		INSERT INTO suppliers (
			id, company_name, contact_name, email, phone, address,
			country, product_categories, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(ctx, query,
		supplier.ID, supplier.CompanyName, nullableString(supplier.ContactName),
		nullableString(supplier.Email), nullableString(supplier.Phone),
		nullableString(supplier.Address), nullableString(supplier.Country),
		supplier.ProductCategories, supplier.CreatedAt, supplier.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save supplier: %w", err)
	}

	r.logger.DebugContext(ctx, "supplier saved", slog.String("id", supplier.ID.String()))
	return nil
}

// Update updates an existing supplier
func (r *supplierRepository) Update(ctx context.Context, supplier *domain.Supplier) error {
	query := `
		UPDATE suppliers SET
			company_name = $2, contact_name = $3, email = $4, phone = $5,
			address = $6, country = $7, product_categories = $8, updated_at = $9
		WHERE id = $1 AND deleted_at IS NULL`

	supplier.UpdatedAt = time.Now()

	tag, err := r.db.Exec(ctx, query,
		supplier.ID, supplier.CompanyName, nullableString(supplier.ContactName),
		nullableString(supplier.Email), nullableString(supplier.Phone),
		nullableString(supplier.Address), nullableString(supplier.Country),
		supplier.ProductCategories, supplier.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update supplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("supplier not found: %s", supplier.ID)
	}

	return nil
}

const supplierSelect = `
	SELECT id, company_name, contact_name, email, phone, address,
		country, product_categories, created_at, updated_at, deleted_at
	FROM suppliers`

// FindByID retrieves a supplier by ID
func (r *supplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Supplier, error) {
	row := r.db.QueryRow(ctx, supplierSelect+` WHERE id = $1 AND deleted_at IS NULL`, id)
	supplier, err := scanSupplier(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find supplier: %w", err)
	}
	return supplier, nil
}

func scanSupplier(row pgx.Row) (*domain.Supplier, error) {
	supplier := &domain.Supplier{}
	var contactName, email, phone, address, country sql.NullString

	err := row.Scan(
		&supplier.ID, &supplier.CompanyName, &contactName, &email, &phone,
		&address, &country, &supplier.ProductCategories,
		&supplier.CreatedAt, &supplier.UpdatedAt, &supplier.DeletedAt,
	)
	if err != nil {
		return nil, err
	}

	supplier.ContactName = contactName.String
	supplier.Email = email.String
	supplier.Phone = phone.String
	supplier.Address = address.String
	supplier.Country = country.String

	return supplier, nil
}

// Delete soft-deletes a supplier
func (r *supplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE suppliers SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`,
		id, time.Now())
	if err != nil {
		return fmt.Errorf("failed to delete supplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("supplier not found: %s", id)
	}

	r.logger.InfoContext(ctx, "supplier deleted", slog.String("id", id.String()))
	return nil
}

// Count returns the number of active suppliers
func (r *supplierRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM suppliers WHERE deleted_at IS NULL`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count suppliers: %w", err)
	}
	return count, nil
}

// FindAll retrieves suppliers with filtering and pagination
func (r *supplierRepository) FindAll(ctx context.Context, params ports.DirectoryListParams) ([]*domain.Supplier, int64, error) {
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
		From("suppliers").
		PlaceholderFormat(squirrel.Dollar))
	countSQL, countArgs, err := countQb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var totalCount int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count suppliers: %w", err)
	}

	qb := applyFilters(squirrel.Select(
		"id", "company_name", "contact_name", "email", "phone", "address",
		"country", "product_categories", "created_at", "updated_at", "deleted_at",
	).From("suppliers").
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
		return nil, 0, fmt.Errorf("failed to query suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []*domain.Supplier
	for rows.Next() {
		supplier := &domain.Supplier{}
		var contactName, email, phone, address, country sql.NullString

		err := rows.Scan(
			&supplier.ID, &supplier.CompanyName, &contactName, &email, &phone,
			&address, &country, &supplier.ProductCategories,
			&supplier.CreatedAt, &supplier.UpdatedAt, &supplier.DeletedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan supplier: %w", err)
		}

		supplier.ContactName = contactName.String
		supplier.Email = email.String
		supplier.Phone = phone.String
		supplier.Address = address.String
		supplier.Country = country.String

		suppliers = append(suppliers, supplier)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return suppliers, totalCount, nil
}
