// internal/adapters/db/inventory_repository.go
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
	"github.com/shopspring/decimal"

	"github.com/fruimex/fruimex-be/internal/core/domain"
	"github.com/fruimex/fruimex-be/internal/core/ports"
)

// inventoryRepository implements ports.InventoryRepository
type inventoryRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *Database, logger *slog.Logger) ports.InventoryRepository {
	return &inventoryRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "inventory")),
	}
}

// Save creates a ledger row for a product. One row per product.
func (r *inventoryRepository) Save(ctx context.Context, record *domain.InventoryRecord) error {
	query := `
		INSERT INTO inventory (
			id, product_id, quantity, unit, batch_number,
			expiration_date, storage_location, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(ctx, query,
		record.ID, record.ProductID, record.Quantity, record.Unit, nullableString(record.BatchNumber),
		record.ExpirationDate, nullableString(record.StorageLocation), record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save inventory record: %w", err)
	}

	r.logger.DebugContext(ctx, "inventory record saved",
		slog.String("id", record.ID.String()),
		slog.String("product_id", record.ProductID.String()))

	return nil
}

// Update updates an existing ledger row
func (r *inventoryRepository) Update(ctx context.Context, record *domain.InventoryRecord) error {
	query := `
		UPDATE inventory SET
			product_id = $2, quantity = $3, unit = $4, batch_number = $5,
			expiration_date = $6, storage_location = $7, updated_at = $8
		WHERE id = $1`

	record.UpdatedAt = time.Now()

	tag, err := r.db.Exec(ctx, query,
		record.ID, record.ProductID, record.Quantity, record.Unit, nullableString(record.BatchNumber),
		record.ExpirationDate, nullableString(record.StorageLocation), record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update inventory record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("inventory record not found: %s", record.ID)
	}

	r.logger.DebugContext(ctx, "inventory record updated",
		slog.String("id", record.ID.String()))

	return nil
}

const inventorySelect = `
	SELECT
		i.id, i.product_id, p.name, i.quantity, i.unit, i.batch_number,
		i.expiration_date, i.storage_location, i.created_at, i.updated_at
	FROM inventory i
	JOIN products p ON p.id = i.product_id`

// FindByID retrieves a ledger row by its id
func (r *inventoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.InventoryRecord, error) {
	row := r.db.QueryRow(ctx, inventorySelect+` WHERE i.id = $1`, id)
	record, err := scanInventoryRecord(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find inventory record: %w", err)
	}
	return record, nil
}

// FindByProductID retrieves the ledger row of a product
func (r *inventoryRepository) FindByProductID(ctx context.Context, productID uuid.UUID) (*domain.InventoryRecord, error) {
	row := r.db.QueryRow(ctx, inventorySelect+` WHERE i.product_id = $1`, productID)
	record, err := scanInventoryRecord(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find inventory record: %w", err)
	}
	return record, nil
}

func scanInventoryRecord(row pgx.Row) (*domain.InventoryRecord, error) {
	record := &domain.InventoryRecord{}
	var batchNumber, storageLocation sql.NullString
	var expirationDate *time.Time

	err := row.Scan(
		&record.ID, &record.ProductID, &record.ProductName, &record.Quantity, &record.Unit,
		&batchNumber, &expirationDate, &storageLocation, &record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.BatchNumber = batchNumber.String
	record.StorageLocation = storageLocation.String
	record.ExpirationDate = expirationDate

	return record, nil
}

// Delete removes a ledger row
func (r *inventoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM inventory WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete inventory record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("inventory record not found: %s", id)
	}

	r.logger.InfoContext(ctx, "inventory record deleted", slog.String("id", id.String()))
	return nil
}

// Count returns the total number of ledger rows
func (r *inventoryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM inventory`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count inventory records: %w", err)
	}
	return count, nil
}

// Exists checks if a ledger row exists
func (r *inventoryRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM inventory WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}
	return exists, nil
}

// Quantities returns the ledger snapshot for the given products. Products
// without a ledger row are simply absent from the result.
func (r *inventoryRepository) Quantities(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]domain.StockLevel, error) {
	levels := make(map[uuid.UUID]domain.StockLevel, len(productIDs))
	if len(productIDs) == 0 {
		return levels, nil
	}

	query := `SELECT product_id, quantity, unit FROM inventory WHERE product_id = ANY($1)`

	rows, err := r.db.Query(ctx, query, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock levels: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var level domain.StockLevel
		if err := rows.Scan(&level.ProductID, &level.Quantity, &level.Unit); err != nil {
			return nil, fmt.Errorf("failed to scan stock level: %w", err)
		}
		levels[level.ProductID] = level
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return levels, nil
}

// AdjustQuantity applies a signed delta to a product's on-hand quantity.
// Negative deltas carry the same guard as sale decrements.
func (r *inventoryRepository) AdjustQuantity(ctx context.Context, productID uuid.UUID, delta decimal.Decimal) error {
	query := `
		UPDATE inventory SET quantity = quantity + $2, updated_at = $3
		WHERE product_id = $1 AND quantity + $2 >= 0`

	tag, err := r.db.Exec(ctx, query, productID, delta, time.Now())
	if err != nil {
		return fmt.Errorf("failed to adjust inventory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("inventory adjustment rejected for product %s", productID)
	}

	r.logger.InfoContext(ctx, "inventory adjusted",
		slog.String("product_id", productID.String()),
		slog.String("delta", delta.String()))

	return nil
}

// Below reports ledger rows whose quantity is at or under threshold
func (r *inventoryRepository) Below(ctx context.Context, threshold decimal.Decimal) ([]domain.InventoryRecord, error) {
	rows, err := r.db.Query(ctx, inventorySelect+` WHERE i.quantity <= $1 ORDER BY i.quantity ASC`, threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to query low stock: %w", err)
	}
	defer rows.Close()

	var records []domain.InventoryRecord
	for rows.Next() {
		record := domain.InventoryRecord{}
		var batchNumber, storageLocation sql.NullString
		var expirationDate *time.Time

		err := rows.Scan(
			&record.ID, &record.ProductID, &record.ProductName, &record.Quantity, &record.Unit,
			&batchNumber, &expirationDate, &storageLocation, &record.CreatedAt, &record.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory record: %w", err)
		}

		record.BatchNumber = batchNumber.String
		record.StorageLocation = storageLocation.String
		record.ExpirationDate = expirationDate

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return records, nil
}

// FindAll retrieves ledger rows with filtering and pagination
func (r *inventoryRepository) FindAll(ctx context.Context, params ports.InventoryListParams) ([]*domain.InventoryRecord, int64, error) {
	applyFilters := func(qb squirrel.SelectBuilder) squirrel.SelectBuilder {
		if params.Search != "" {
			qb = qb.Where("(p.name ILIKE ? OR i.batch_number ILIKE ?)",
				"%"+params.Search+"%", "%"+params.Search+"%")
		}
		if params.StorageLocation != "" {
			qb = qb.Where(squirrel.Eq{"i.storage_location": params.StorageLocation})
		}
		if params.BatchNumber != "" {
			qb = qb.Where(squirrel.Eq{"i.batch_number": params.BatchNumber})
		}
		if params.ExpiringBefore != nil {
			qb = qb.Where("i.expiration_date IS NOT NULL AND i.expiration_date < ?", *params.ExpiringBefore)
		}
		return qb
	}

	countQb := applyFilters(squirrel.Select("COUNT(*)").
		From("inventory i").
		Join("products p ON p.id = i.product_id").
		PlaceholderFormat(squirrel.Dollar))
	countSQL, countArgs, err := countQb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var totalCount int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count inventory records: %w", err)
	}

	qb := applyFilters(squirrel.Select(
		"i.id", "i.product_id", "p.name", "i.quantity", "i.unit", "i.batch_number",
		"i.expiration_date", "i.storage_location", "i.created_at", "i.updated_at",
	).From("inventory i").
		Join("products p ON p.id = i.product_id").
		PlaceholderFormat(squirrel.Dollar))

	orderBy := "i.updated_at DESC"
	if params.SortBy != "" {
		direction := "ASC"
		if params.SortOrder == "desc" {
			direction = "DESC"
		}

		switch params.SortBy {
		case "product":
			orderBy = fmt.Sprintf("p.name %s", direction)
		case "quantity":
			orderBy = fmt.Sprintf("i.quantity %s", direction)
		case "expiration":
			orderBy = fmt.Sprintf("i.expiration_date %s NULLS LAST", direction)
		default:
			orderBy = fmt.Sprintf("i.updated_at %s", direction)
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
		return nil, 0, fmt.Errorf("failed to query inventory records: %w", err)
	}
	defer rows.Close()

	var records []*domain.InventoryRecord
	for rows.Next() {
		record := &domain.InventoryRecord{}
		var batchNumber, storageLocation sql.NullString
		var expirationDate *time.Time

		err := rows.Scan(
			&record.ID, &record.ProductID, &record.ProductName, &record.Quantity, &record.Unit,
			&batchNumber, &expirationDate, &storageLocation, &record.CreatedAt, &record.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan inventory record: %w", err)
		}

		record.BatchNumber = batchNumber.String
		record.StorageLocation = storageLocation.String
		record.ExpirationDate = expirationDate

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return records, totalCount, nil
}

// nullableString maps "" to NULL
func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
