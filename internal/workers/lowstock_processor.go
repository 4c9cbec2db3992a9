// internal/workers/lowstock_processor.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"

	redis_a "github.com/fruimex/fruimex-be/internal/adapters/redis_adapter"
	"github.com/fruimex/fruimex-be/internal/core/ports"
)

// DefaultLowStockThreshold is used when the scheduled task carries no
// threshold of its own.
var DefaultLowStockThreshold = decimal.NewFromInt(10)

// LowStockPayload is the optional payload for low stock scans
type LowStockPayload struct {
	Threshold string `json:"threshold,omitempty"`
}

// LowStockAlert is one ledger row at or under the threshold
type LowStockAlert struct {
	RecordID    string    `json:"record_id"`
	ProductID   string    `json:"product_id"`
	Quantity    string    `json:"quantity"`
	Unit        string    `json:"unit"`
	BatchNumber string    `json:"batch_number,omitempty"`
	ScannedAt   time.Time `json:"scanned_at"`
}

// LowStockProcessor periodically scans the ledger for rows running out
// of stock and publishes the snapshot the dashboard reads.
type LowStockProcessor struct {
	repo   ports.InventoryRepository
	cache  ports.CacheRepository
	logger *slog.Logger
}

// NewLowStockProcessor creates a new low stock processor
func NewLowStockProcessor(repo ports.InventoryRepository, cache ports.CacheRepository, logger *slog.Logger) *LowStockProcessor {
	return &LowStockProcessor{
		repo:   repo,
		cache:  cache,
		logger: logger.With(slog.String("processor", "low_stock")),
	}
}

// ScanLowStock finds ledger rows at or under the threshold and caches
// the alert list.
func (p *LowStockProcessor) ScanLowStock(ctx context.Context, t *asynq.Task) error {
	threshold := DefaultLowStockThreshold

	if len(t.Payload()) > 0 {
		var payload LowStockPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("failed to unmarshal payload: %w", err)
		}
		if payload.Threshold != "" {
			parsed, err := decimal.NewFromString(payload.Threshold)
			if err != nil {
				return fmt.Errorf("invalid threshold %q: %w", payload.Threshold, err)
			}
			threshold = parsed
		}
	}

	records, err := p.repo.Below(ctx, threshold)
	if err != nil {
		return fmt.Errorf("failed to scan ledger: %w", err)
	}

	now := time.Now()
	alerts := make([]LowStockAlert, 0, len(records))
	for _, record := range records {
		alerts = append(alerts, LowStockAlert{
			RecordID:    record.ID.String(),
			ProductID:   record.ProductID.String(),
			Quantity:    record.Quantity.String(),
			Unit:        record.Unit,
			BatchNumber: record.BatchNumber,
			ScannedAt:   now,
		})

		p.logger.WarnContext(ctx, "product running low",
			slog.String("product_id", record.ProductID.String()),
			slog.String("quantity", record.Quantity.String()),
			slog.String("unit", record.Unit))
	}

	key := redis_a.BuildKey(redis_a.PrefixInventory, "low_stock")
	if err := p.cache.SetWithTTL(ctx, key, alerts, 30*time.Minute); err != nil {
		p.logger.WarnContext(ctx, "failed to cache low stock snapshot",
			slog.String("error", err.Error()))
	}

	p.logger.InfoContext(ctx, "low stock scan completed",
		slog.String("threshold", threshold.String()),
		slog.Int("alerts", len(alerts)))

	return nil
}
