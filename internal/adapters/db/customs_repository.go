// internal/adapters/db/customs_repository.go
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

// shipmentRepository implements ports.ShipmentRepository
type shipmentRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewShipmentRepository creates a new shipment repository
func NewShipmentRepository(db *Database, logger *slog.Logger) ports.ShipmentRepository {
	return &shipmentRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "shipment")),
	}
}

// Save creates a new shipment
func (r *shipmentRepository) Save(ctx context.Context, shipment *domain.Shipment) error {
	if shipment.ID == uuid.Nil {
		shipment.ID = uuid.New()
	}
	if shipment.CreatedAt.IsZero() {
		shipment.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO shipments (id, supplier_id, tracking_number, carrier, arrival_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		shipment.ID, shipment.SupplierID, shipment.TrackingNumber,
		nullableString(shipment.Carrier), shipment.ArrivalDate, shipment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save shipment: %w", err)
	}

	r.logger.DebugContext(ctx, "shipment saved", slog.String("id", shipment.ID.String()))
	return nil
}

// Update updates an existing shipment
func (r *shipmentRepository) Update(ctx context.Context, shipment *domain.Shipment) error {
	query := `
		UPDATE shipments SET
			supplier_id = $2, tracking_number = $3, carrier = $4, arrival_date = $5
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		shipment.ID, shipment.SupplierID, shipment.TrackingNumber,
		nullableString(shipment.Carrier), shipment.ArrivalDate,
	)
	if err != nil {
		return fmt.Errorf("failed to update shipment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("shipment not found: %s", shipment.ID)
	}

	return nil
}

// FindByID retrieves a shipment by ID
func (r *shipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Shipment, error) {
	shipment := &domain.Shipment{}
	var carrier sql.NullString

	err := r.db.QueryRow(ctx,
		`SELECT id, supplier_id, tracking_number, carrier, arrival_date, created_at
		 FROM shipments WHERE id = $1`, id).
		Scan(&shipment.ID, &shipment.SupplierID, &shipment.TrackingNumber,
			&carrier, &shipment.ArrivalDate, &shipment.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find shipment: %w", err)
	}

	shipment.Carrier = carrier.String
	return shipment, nil
}

// Delete removes a shipment
func (r *shipmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM shipments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shipment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("shipment not found: %s", id)
	}
	return nil
}

// FindAll retrieves shipments with filtering and pagination
func (r *shipmentRepository) FindAll(ctx context.Context, params ports.ShipmentListParams) ([]*domain.Shipment, int64, error) {
	applyFilters := func(qb squirrel.SelectBuilder) squirrel.SelectBuilder {
		if params.Search != "" {
			qb = qb.Where("tracking_number ILIKE ?", "%"+params.Search+"%")
		}
		if params.SupplierID != uuid.Nil {
			qb = qb.Where(squirrel.Eq{"supplier_id": params.SupplierID})
		}
		if params.Carrier != "" {
			qb = qb.Where(squirrel.Eq{"carrier": params.Carrier})
		}
		return qb
	}

	countQb := applyFilters(squirrel.Select("COUNT(*)").
		From("shipments").
		PlaceholderFormat(squirrel.Dollar))
	countSQL, countArgs, err := countQb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var totalCount int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count shipments: %w", err)
	}

	qb := applyFilters(squirrel.Select(
		"id", "supplier_id", "tracking_number", "carrier", "arrival_date", "created_at",
	).From("shipments").
		PlaceholderFormat(squirrel.Dollar))

	orderBy := "created_at DESC"
	if params.SortBy == "arrival" {
		direction := "ASC"
		if params.SortOrder == "desc" {
			direction = "DESC"
		}
		orderBy = fmt.Sprintf("arrival_date %s NULLS LAST", direction)
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
		return nil, 0, fmt.Errorf("failed to query shipments: %w", err)
	}
	defer rows.Close()

	var shipments []*domain.Shipment
	for rows.Next() {
		shipment := &domain.Shipment{}
		var carrier sql.NullString

		err := rows.Scan(&shipment.ID, &shipment.SupplierID, &shipment.TrackingNumber,
			&carrier, &shipment.ArrivalDate, &shipment.CreatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan shipment: %w", err)
		}

		shipment.Carrier = carrier.String
		shipments = append(shipments, shipment)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return shipments, totalCount, nil
}

// customsRepository implements ports.CustomsRepository
type customsRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewCustomsRepository creates a new customs clearance repository
func NewCustomsRepository(db *Database, logger *slog.Logger) ports.CustomsRepository {
	return &customsRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "customs")),
	}
}

// Save creates a new clearance record
func (r *customsRepository) Save(ctx context.Context, clearance *domain.CustomsClearance) error {
	query := `
		INSERT INTO customs_clearances (
			id, shipment_id, declaration_number, status, customs_fees,
			clearance_date, document_keys, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(ctx, query,
		clearance.ID, clearance.ShipmentID, nullableString(clearance.DeclarationNumber),
		clearance.Status, clearance.CustomsFees, clearance.ClearanceDate,
		clearance.DocumentKeys, clearance.CreatedAt, clearance.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save clearance: %w", err)
	}

	r.logger.DebugContext(ctx, "clearance saved", slog.String("id", clearance.ID.String()))
	return nil
}

// Update updates an existing clearance record. Document keys are managed
// through AttachDocument, not here.
func (r *customsRepository) Update(ctx context.Context, clearance *domain.CustomsClearance) error {
	query := `
		UPDATE customs_clearances SET
			shipment_id = $2, declaration_number = $3, status = $4,
			customs_fees = $5, clearance_date = $6, updated_at = $7
		WHERE id = $1`

	clearance.UpdatedAt = time.Now()

	tag, err := r.db.Exec(ctx, query,
		clearance.ID, clearance.ShipmentID, nullableString(clearance.DeclarationNumber),
		clearance.Status, clearance.CustomsFees, clearance.ClearanceDate, clearance.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update clearance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("clearance not found: %s", clearance.ID)
	}

	return nil
}

const clearanceSelect = `
	SELECT c.id, c.shipment_id, s.tracking_number, s.carrier, c.declaration_number,
		c.status, c.customs_fees, c.clearance_date, c.document_keys,
		c.created_at, c.updated_at
	FROM customs_clearances c
	JOIN shipments s ON s.id = c.shipment_id`

// FindByID retrieves a clearance by ID
func (r *customsRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.CustomsClearance, error) {
	row := r.db.QueryRow(ctx, clearanceSelect+` WHERE c.id = $1`, id)
	clearance, err := scanClearance(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find clearance: %w", err)
	}
	return clearance, nil
}

func scanClearance(row pgx.Row) (*domain.CustomsClearance, error) {
	clearance := &domain.CustomsClearance{}
	var carrier, declarationNumber sql.NullString

	err := row.Scan(
		&clearance.ID, &clearance.ShipmentID, &clearance.TrackingNumber, &carrier,
		&declarationNumber, &clearance.Status, &clearance.CustomsFees,
		&clearance.ClearanceDate, &clearance.DocumentKeys,
		&clearance.CreatedAt, &clearance.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	clearance.Carrier = carrier.String
	clearance.DeclarationNumber = declarationNumber.String

	return clearance, nil
}

// Delete removes a clearance record
func (r *customsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM customs_clearances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete clearance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("clearance not found: %s", id)
	}

	r.logger.InfoContext(ctx, "clearance deleted", slog.String("id", id.String()))
	return nil
}

// AttachDocument appends an object-storage key to the clearance's documents
func (r *customsRepository) AttachDocument(ctx context.Context, id uuid.UUID, key string) error {
	query := `
		UPDATE customs_clearances
		SET document_keys = array_append(document_keys, $2), updated_at = $3
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, key, time.Now())
	if err != nil {
		return fmt.Errorf("failed to attach document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("clearance not found: %s", id)
	}

	r.logger.DebugContext(ctx, "document attached",
		slog.String("clearance_id", id.String()),
		slog.String("key", key))

	return nil
}

// SetDeclarationNumber fills in the declaration number, typically from the
// document ingest worker. An already-set number is not overwritten.
func (r *customsRepository) SetDeclarationNumber(ctx context.Context, id uuid.UUID, declarationNumber string) error {
	query := `
		UPDATE customs_clearances
		SET declaration_number = $2, updated_at = $3
		WHERE id = $1 AND (declaration_number IS NULL OR declaration_number = '')`

	tag, err := r.db.Exec(ctx, query, id, declarationNumber, time.Now())
	if err != nil {
		return fmt.Errorf("failed to set declaration number: %w", err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.DebugContext(ctx, "declaration number already set, skipping",
			slog.String("clearance_id", id.String()))
	}

	return nil
}

// FindAll retrieves clearances with filtering and pagination
func (r *customsRepository) FindAll(ctx context.Context, params ports.ClearanceListParams) ([]*domain.CustomsClearance, int64, error) {
	applyFilters := func(qb squirrel.SelectBuilder) squirrel.SelectBuilder {
		if params.Search != "" {
			qb = qb.Where("(c.declaration_number ILIKE ? OR s.tracking_number ILIKE ?)",
				"%"+params.Search+"%", "%"+params.Search+"%")
		}
		if params.Status != "" {
			qb = qb.Where(squirrel.Eq{"c.status": params.Status})
		}
		return qb
	}

	countQb := applyFilters(squirrel.Select("COUNT(*)").
		From("customs_clearances c").
		Join("shipments s ON s.id = c.shipment_id").
		PlaceholderFormat(squirrel.Dollar))
	countSQL, countArgs, err := countQb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var totalCount int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count clearances: %w", err)
	}

	qb := applyFilters(squirrel.Select(
		"c.id", "c.shipment_id", "s.tracking_number", "s.carrier", "c.declaration_number",
		"c.status", "c.customs_fees", "c.clearance_date", "c.document_keys",
		"c.created_at", "c.updated_at",
	).From("customs_clearances c").
		Join("shipments s ON s.id = c.shipment_id").
		PlaceholderFormat(squirrel.Dollar))

	orderBy := "c.created_at DESC"
	if params.SortBy != "" {
		direction := "ASC"
		if params.SortOrder == "desc" {
			direction = "DESC"
		}

		switch params.SortBy {
		case "status":
			orderBy = fmt.Sprintf("c.status %s, c.created_at DESC", direction)
		case "clearance_date":
			orderBy = fmt.Sprintf("c.clearance_date %s NULLS LAST", direction)
		default:
			orderBy = fmt.Sprintf("c.created_at %s", direction)
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
		return nil, 0, fmt.Errorf("failed to query clearances: %w", err)
	}
	defer rows.Close()

	var clearances []*domain.CustomsClearance
	for rows.Next() {
		clearance := &domain.CustomsClearance{}
		var carrier, declarationNumber sql.NullString

		err := rows.Scan(
			&clearance.ID, &clearance.ShipmentID, &clearance.TrackingNumber, &carrier,
			&declarationNumber, &clearance.Status, &clearance.CustomsFees,
			&clearance.ClearanceDate, &clearance.DocumentKeys,
			&clearance.CreatedAt, &clearance.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan clearance: %w", err)
		}

		clearance.Carrier = carrier.String
		clearance.DeclarationNumber = declarationNumber.String

		clearances = append(clearances, clearance)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return clearances, totalCount, nil
}
