// internal/adapters/db/sale_repository.go
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

// saleRepository implements ports.SaleRepository
type saleRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *Database, logger *slog.Logger) ports.SaleRepository {
	return &saleRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "sales")),
	}
}

// Create persists the sale header, its items and the ledger decrements in
// one transaction. A decrement that finds less stock than requested aborts
// the transaction with *domain.ShortStockError.
func (r *saleRepository) Create(ctx context.Context, sale *domain.Sale) error {
	return r.db.Transaction(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO sales (
				id, customer_id, status, payment_status, total_amount,
				created_by, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

		var createdBy interface{}
		if sale.CreatedBy != uuid.Nil {
			createdBy = sale.CreatedBy
		}

		_, err := tx.Exec(ctx, query,
			sale.ID, sale.CustomerID, sale.Status, sale.PaymentStatus,
			sale.TotalAmount, createdBy, sale.CreatedAt, sale.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert sale: %w", err)
		}

		if err := insertSaleItems(ctx, tx, sale.Items); err != nil {
			return err
		}

		if err := consumeInventory(ctx, tx, sale.Items); err != nil {
			return err
		}

		r.logger.DebugContext(ctx, "sale created",
			slog.String("sale_id", sale.ID.String()),
			slog.Int("items", len(sale.Items)))

		return nil
	})
}

// Replace overwrites the sale's header and items. The prior items'
// quantities go back to the ledger before the new ones are consumed, all in
// the same transaction.
func (r *saleRepository) Replace(ctx context.Context, sale *domain.Sale, prior []domain.SaleItem) error {
	return r.db.Transaction(ctx, func(tx pgx.Tx) error {
		query := `
			UPDATE sales SET
				customer_id = $2, status = $3, payment_status = $4,
				total_amount = $5, updated_at = $6
			WHERE id = $1`

		tag, err := tx.Exec(ctx, query,
			sale.ID, sale.CustomerID, sale.Status, sale.PaymentStatus,
			sale.TotalAmount, sale.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to update sale: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("sale not found: %s", sale.ID)
		}

		for pid, qty := range aggregateQuantities(prior) {
			tag, err := tx.Exec(ctx,
				`UPDATE inventory SET quantity = quantity + $2, updated_at = $3 WHERE product_id = $1`,
				pid, qty, time.Now(),
			)
			if err != nil {
				return fmt.Errorf("failed to restore inventory for product %s: %w", pid, err)
			}
			if tag.RowsAffected() == 0 {
				// ledger row removed since the sale was placed; nothing
				// to restore to
				r.logger.WarnContext(ctx, "no ledger row to restore",
					slog.String("product_id", pid.String()))
			}
		}

		if _, err := tx.Exec(ctx, `DELETE FROM sale_items WHERE sale_id = $1`, sale.ID); err != nil {
			return fmt.Errorf("failed to delete prior sale items: %w", err)
		}

		if err := insertSaleItems(ctx, tx, sale.Items); err != nil {
			return err
		}

		if err := consumeInventory(ctx, tx, sale.Items); err != nil {
			return err
		}

		r.logger.DebugContext(ctx, "sale replaced",
			slog.String("sale_id", sale.ID.String()),
			slog.Int("items", len(sale.Items)))

		return nil
	})
}

// insertSaleItems batch-inserts the line items of a sale
func insertSaleItems(ctx context.Context, tx pgx.Tx, items []domain.SaleItem) error {
	if len(items) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO sale_items (
			id, sale_id, product_id, product_name, quantity, unit_price, position
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	for i := range items {
		batch.Queue(query,
			items[i].ID, items[i].SaleID, items[i].ProductID, items[i].ProductName,
			items[i].Quantity, items[i].UnitPrice, items[i].Position,
		)
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()

	for i := range items {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to insert sale item %d: %w", i, err)
		}
	}

	return nil
}

// consumeInventory applies guarded decrements for the items' aggregated
// quantities. The WHERE quantity >= $2 guard makes each decrement atomic;
// a concurrent writer cannot push the ledger below zero.
func consumeInventory(ctx context.Context, tx pgx.Tx, items []domain.SaleItem) error {
	now := time.Now()
	var short []uuid.UUID

	for pid, qty := range aggregateQuantities(items) {
		tag, err := tx.Exec(ctx,
			`UPDATE inventory SET quantity = quantity - $2, updated_at = $3
			 WHERE product_id = $1 AND quantity >= $2`,
			pid, qty, now,
		)
		if err != nil {
			return fmt.Errorf("failed to decrement inventory for product %s: %w", pid, err)
		}
		if tag.RowsAffected() == 0 {
			short = append(short, pid)
		}
	}

	if len(short) > 0 {
		return &domain.ShortStockError{ProductIDs: short}
	}
	return nil
}

// aggregateQuantities sums item quantities per product
func aggregateQuantities(items []domain.SaleItem) map[uuid.UUID]decimal.Decimal {
	totals := make(map[uuid.UUID]decimal.Decimal, len(items))
	for _, it := range items {
		totals[it.ProductID] = totals[it.ProductID].Add(it.Quantity)
	}
	return totals
}

// FindByID retrieves a sale with its items
func (r *saleRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Sale, error) {
	query := `
		SELECT
			s.id, s.customer_id, c.company_name, s.status, s.payment_status,
			s.total_amount, s.created_by, s.created_at, s.updated_at
		FROM sales s
		LEFT JOIN customers c ON c.id = s.customer_id
		WHERE s.id = $1`

	sale := &domain.Sale{}
	var customerName sql.NullString
	var createdBy *uuid.UUID

	err := r.db.QueryRow(ctx, query, id).Scan(
		&sale.ID, &sale.CustomerID, &customerName, &sale.Status, &sale.PaymentStatus,
		&sale.TotalAmount, &createdBy, &sale.CreatedAt, &sale.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find sale: %w", err)
	}

	sale.CustomerName = customerName.String
	if createdBy != nil {
		sale.CreatedBy = *createdBy
	}

	items, err := r.loadItems(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	sale.Items = items[id]

	return sale, nil
}

// loadItems fetches the line items of the given sales, keyed by sale id and
// ordered by position
func (r *saleRepository) loadItems(ctx context.Context, saleIDs []uuid.UUID) (map[uuid.UUID][]domain.SaleItem, error) {
	query := `
		SELECT id, sale_id, product_id, product_name, quantity, unit_price, position
		FROM sale_items
		WHERE sale_id = ANY($1)
		ORDER BY sale_id, position`

	rows, err := r.db.Query(ctx, query, saleIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query sale items: %w", err)
	}
	defer rows.Close()

	items := make(map[uuid.UUID][]domain.SaleItem, len(saleIDs))
	for rows.Next() {
		var it domain.SaleItem
		err := rows.Scan(
			&it.ID, &it.SaleID, &it.ProductID, &it.ProductName,
			&it.Quantity, &it.UnitPrice, &it.Position,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale item: %w", err)
		}
		items[it.SaleID] = append(items[it.SaleID], it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return items, nil
}

// Delete removes a sale; its items go with it via ON DELETE CASCADE.
// Consumed inventory stays consumed.
func (r *saleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("sale not found: %s", id)
	}

	r.logger.InfoContext(ctx, "sale deleted", slog.String("sale_id", id.String()))
	return nil
}

// FindAll retrieves sales with filtering and pagination
func (r *saleRepository) FindAll(ctx context.Context, params ports.SaleListParams) ([]*domain.Sale, int64, error) {
	applyFilters := func(qb squirrel.SelectBuilder) squirrel.SelectBuilder {
		if params.Search != "" {
			qb = qb.Where("c.company_name ILIKE ?", "%"+params.Search+"%")
		}
		if params.Status != "" {
			qb = qb.Where(squirrel.Eq{"s.status": params.Status})
		}
		if params.PaymentStatus != "" {
			qb = qb.Where(squirrel.Eq{"s.payment_status": params.PaymentStatus})
		}
		if params.CustomerID != uuid.Nil {
			qb = qb.Where(squirrel.Eq{"s.customer_id": params.CustomerID})
		}
		if params.From != nil {
			qb = qb.Where("s.created_at >= ?", *params.From)
		}
		if params.To != nil {
			qb = qb.Where("s.created_at < ?", *params.To)
		}
		return qb
	}

	countQb := applyFilters(squirrel.Select("COUNT(*)").
		From("sales s").
		LeftJoin("customers c ON c.id = s.customer_id").
		PlaceholderFormat(squirrel.Dollar))
	countSQL, countArgs, err := countQb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var totalCount int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count sales: %w", err)
	}

	qb := applyFilters(squirrel.Select(
		"s.id", "s.customer_id", "c.company_name", "s.status", "s.payment_status",
		"s.total_amount", "s.created_by", "s.created_at", "s.updated_at",
	).From("sales s").
		LeftJoin("customers c ON c.id = s.customer_id").
		PlaceholderFormat(squirrel.Dollar))

	orderBy := "s.created_at DESC"
	if params.SortBy != "" {
		direction := "ASC"
		if params.SortOrder == "desc" {
			direction = "DESC"
		}

		switch params.SortBy {
		case "total":
			orderBy = fmt.Sprintf("s.total_amount %s", direction)
		case "customer":
			orderBy = fmt.Sprintf("c.company_name %s", direction)
		case "updated":
			orderBy = fmt.Sprintf("s.updated_at %s", direction)
		default:
			orderBy = fmt.Sprintf("s.created_at %s", direction)
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
		return nil, 0, fmt.Errorf("failed to query sales: %w", err)
	}
	defer rows.Close()

	var sales []*domain.Sale
	var ids []uuid.UUID
	for rows.Next() {
		sale := &domain.Sale{}
		var customerName sql.NullString
		var createdBy *uuid.UUID

		err := rows.Scan(
			&sale.ID, &sale.CustomerID, &customerName, &sale.Status, &sale.PaymentStatus,
			&sale.TotalAmount, &createdBy, &sale.CreatedAt, &sale.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan sale: %w", err)
		}

		sale.CustomerName = customerName.String
		if createdBy != nil {
			sale.CreatedBy = *createdBy
		}

		sales = append(sales, sale)
		ids = append(ids, sale.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	if len(ids) > 0 {
		items, err := r.loadItems(ctx, ids)
		if err != nil {
			return nil, 0, err
		}
		for _, sale := range sales {
			sale.Items = items[sale.ID]
		}
	}

	return sales, totalCount, nil
}

// Count returns the total number of sales
func (r *saleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM sales`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count sales: %w", err)
	}
	return count, nil
}

// Exists checks if a sale exists
func (r *saleRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM sales WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}
	return exists, nil
}
