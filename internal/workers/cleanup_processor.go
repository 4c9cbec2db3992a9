// internal/workers/cleanup_processor.go
package workers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hibiken/asynq"

	"github.com/fruimex/fruimex-be/internal/adapters/db"
	"github.com/fruimex/fruimex-be/internal/pkg/config"
)

// CleanupProcessor handles scheduled housekeeping tasks
type CleanupProcessor struct {
	db     *db.Database
	config *config.Config
	logger *slog.Logger
}

// NewCleanupProcessor creates a new cleanup processor
func NewCleanupProcessor(database *db.Database, cfg *config.Config, logger *slog.Logger) *CleanupProcessor {
	return &CleanupProcessor{
		db:     database,
		config: cfg,
		logger: logger.With(slog.String("processor", "cleanup")),
	}
}

// CleanupOldData purges soft-deleted directory rows once nothing can
// reference them anymore. Products and customers stay as long as any
// sale line or sale still resolves to them.
func (p *CleanupProcessor) CleanupOldData(ctx context.Context, t *asynq.Task) error {
	p.logger.InfoContext(ctx, "purging old soft-deleted rows")

	queries := map[string]string{
		"products": `
			DELETE FROM products p
			WHERE p.deleted_at < NOW() - INTERVAL '180 days'
			  AND NOT EXISTS (SELECT 1 FROM sale_items si WHERE si.product_id = p.id)
			  AND NOT EXISTS (SELECT 1 FROM inventory i WHERE i.product_id = p.id)`,
		"customers": `
			DELETE FROM customers c
			WHERE c.deleted_at < NOW() - INTERVAL '180 days'
			  AND NOT EXISTS (SELECT 1 FROM sales s WHERE s.customer_id = c.id)`,
		"suppliers": `
			DELETE FROM suppliers sp
			WHERE sp.deleted_at < NOW() - INTERVAL '180 days'
			  AND NOT EXISTS (SELECT 1 FROM shipments sh WHERE sh.supplier_id = sp.id)`,
	}

	var total int64
	for table, query := range queries {
		result, err := p.db.Exec(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to purge %s: %w", table, err)
		}
		if n := result.RowsAffected(); n > 0 {
			p.logger.InfoContext(ctx, "purged soft-deleted rows",
				slog.String("table", table),
				slog.Int64("rows", n))
			total += n
		}
	}

	p.logger.InfoContext(ctx, "old data purge completed",
		slog.Int64("rows_deleted", total))

	return nil
}

// CleanupTempFiles removes stale upload scratch files
func (p *CleanupProcessor) CleanupTempFiles(ctx context.Context, t *asynq.Task) error {
	p.logger.InfoContext(ctx, "cleaning up temp files")

	tempDir := p.config.Documents.TempDir
	maxAge := 24 * time.Hour

	var deletedCount int
	err := filepath.Walk(tempDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() && time.Since(info.ModTime()) > maxAge {
			if err := os.Remove(path); err != nil {
				p.logger.WarnContext(ctx, "failed to delete temp file",
					slog.String("file", path),
					slog.String("error", err.Error()))
			} else {
				deletedCount++
			}
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("failed to walk temp directory: %w", err)
	}

	p.logger.InfoContext(ctx, "temp files cleaned up",
		slog.Int("files_deleted", deletedCount))

	return nil
}
