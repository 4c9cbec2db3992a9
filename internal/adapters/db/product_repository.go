// internal/adapters/db/product_repository.go
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

// productRepository implements ports.ProductRepository
type productRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *Database, logger *slog.Logger) ports.ProductRepository {
	return &productRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "product")),
	}
}

// Save creates a new product
func (r *productRepository) Save(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (
			id, name, description, price, image_url, category,
			origin_country, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(ctx, query,
		product.ID, product.Name, nullableString(product.Description), product.Price,
		nullableString(product.ImageURL), product.Category, nullableString(product.OriginCountry),
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}

	r.logger.DebugContext(ctx, "product saved", slog.String("id", product.ID.String()))
	return nil
}

// Update updates an existing product
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products SET
			name = $2, description = $3, price = $4, image_url = $5,
			category = $6, origin_country = $7, updated_at = $8
		WHERE id = $1 AND deleted_at IS NULL`

	product.UpdatedAt = time.Now()

	tag, err := r.db.Exec(ctx, query,
		product.ID, product.Name, nullableString(product.Description), product.Price,
		nullableString(product.ImageURL), product.Category, nullableString(product.OriginCountry),
		product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product not found: %s", product.ID)
	}

	r.logger.DebugContext(ctx, "product updated", slog.String("id", product.ID.String()))
	return nil
}

const productSelect = `
	SELECT id, name, description, price, image_url, category,
		origin_country, created_at, updated_at, deleted_at
	FROM products`

// FindByID retrieves a product by ID. Soft-deleted products are not returned.
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	row := r.db.QueryRow(ctx, productSelect+` WHERE id = $1 AND deleted_at IS NULL`, id)
	product, err := scanProduct(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return product, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	product := &domain.Product{}
	var description, imageURL, originCountry sql.NullString

	err := row.Scan(
		&product.ID, &product.Name, &description, &product.Price, &imageURL,
		&product.Category, &originCountry, &product.CreatedAt, &product.UpdatedAt,
		&product.DeletedAt,
	)
	if err != nil {
		return nil, err
	}

	product.Description = description.String
	product.ImageURL = imageURL.String
	product.OriginCountry = originCountry.String

	return product, nil
}

// SoftDelete marks a product as deleted. Existing sale lines keep their
// captured name and price, so the row itself stays.
func (r *productRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE products SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`,
		id, time.Now())
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product not found: %s", id)
	}

	r.logger.InfoContext(ctx, "product soft-deleted", slog.String("id", id.String()))
	return nil
}

// Count returns the number of active products
func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE deleted_at IS NULL`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// Exists checks if an active product exists
func (r *productRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM products WHERE id = $1 AND deleted_at IS NULL)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}
	return exists, nil
}

// Catalog returns the id/name/price projection for active products
func (r *productRepository) Catalog(ctx context.Context) ([]domain.CatalogEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, price FROM products WHERE deleted_at IS NULL ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer rows.Close()

	var entries []domain.CatalogEntry
	for rows.Next() {
		var entry domain.CatalogEntry
		if err := rows.Scan(&entry.ID, &entry.Name, &entry.Price); err != nil {
			return nil, fmt.Errorf("failed to scan catalog entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return entries, nil
}

// FindAll retrieves products with filtering and pagination
func (r *productRepository) FindAll(ctx context.Context, params ports.ProductListParams) ([]*domain.Product, int64, error) {
	applyFilters := func(qb squirrel.SelectBuilder) squirrel.SelectBuilder {
		qb = qb.Where("deleted_at IS NULL")
		if params.Search != "" {
			qb = qb.Where("(name ILIKE ? OR description ILIKE ?)",
				"%"+params.Search+"%", "%"+params.Search+"%")
		}
		if params.Category != "" {
			qb = qb.Where(squirrel.Eq{"category": params.Category})
		}
		if params.OriginCountry != "" {
			qb = qb.Where(squirrel.Eq{"origin_country": params.OriginCountry})
		}
		return qb
	}

	countQb := applyFilters(squirrel.Select("COUNT(*)").
		From("products").
		PlaceholderFormat(squirrel.Dollar))
	countSQL, countArgs, err := countQb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var totalCount int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	qb := applyFilters(squirrel.Select(
		"id", "name", "description", "price", "image_url", "category",
		"origin_country", "created_at", "updated_at", "deleted_at",
	).From("products").
		PlaceholderFormat(squirrel.Dollar))

	orderBy := "name ASC"
	if params.SortBy != "" {
		direction := "ASC"
		if params.SortOrder == "desc" {
			direction = "DESC"
		}

		switch params.SortBy {
		case "price":
			orderBy = fmt.Sprintf("price %s", direction)
		case "created":
			orderBy = fmt.Sprintf("created_at %s", direction)
		case "category":
			orderBy = fmt.Sprintf("category %s, name ASC", direction)
		default:
			orderBy = fmt.Sprintf("name %s", direction)
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
		return nil, 0, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		product := &domain.Product{}
		var description, imageURL, originCountry sql.NullString

		err := rows.Scan(
			&product.ID, &product.Name, &description, &product.Price, &imageURL,
			&product.Category, &originCountry, &product.CreatedAt, &product.UpdatedAt,
			&product.DeletedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}

		product.Description = description.String
		product.ImageURL = imageURL.String
		product.OriginCountry = originCountry.String

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return products, totalCount, nil
}
