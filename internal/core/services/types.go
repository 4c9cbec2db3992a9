// internal/core/services/types.go
package services

import (
	"context"
	"errors"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors shared by the application services. Handlers map these to
// HTTP status codes.
var (
	ErrSaleNotFound      = errors.New("sale not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrInventoryNotFound = errors.New("inventory record not found")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrSupplierNotFound  = errors.New("supplier not found")
	ErrShipmentNotFound  = errors.New("shipment not found")
	ErrClearanceNotFound = errors.New("customs clearance not found")
	ErrInvalidLogin      = errors.New("invalid email or password")
)

// Asynq task type names. Defined here so both the enqueuing services and the
// worker processors share them without an import cycle.
const (
	TypeRefreshAnalytics = "analytics:refresh"
	TypeLowStockScan     = "inventory:low_stock_scan"
	TypeCustomsDocScan   = "customs:document_scan"
	TypeCleanupOldData   = "cleanup:old_data"
)

// PgxPool interface defines the contract for direct database access used by
// services that run their own aggregate queries.
type PgxPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// TaskEnqueuer abstracts the Asynq client so services can schedule
// background work without owning the client lifecycle.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// totalPages computes the page count for a paginated result
func totalPages(totalCount int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	pages := int(totalCount) / pageSize
	if int(totalCount)%pageSize > 0 {
		pages++
	}
	return pages
}

// normalizePaging clamps page and page size to sane bounds
func normalizePaging(page, pageSize *int) {
	if *page < 1 {
		*page = 1
	}
	if *pageSize < 1 {
		*pageSize = 50
	}
	if *pageSize > 1000 {
		*pageSize = 1000
	}
}
