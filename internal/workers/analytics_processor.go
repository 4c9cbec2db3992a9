// internal/workers/analytics_processor.go
package workers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/fruimex/fruimex-be/internal/adapters/db"
	redis_a "github.com/fruimex/fruimex-be/internal/adapters/redis_adapter"
	"github.com/fruimex/fruimex-be/internal/core/ports"
	"github.com/fruimex/fruimex-be/internal/core/services"
)

// Task type names. Re-exported so cmd/worker can register handlers
// without importing the services package for routing alone.
const (
	TypeRefreshAnalytics = services.TypeRefreshAnalytics
	TypeLowStockScan     = services.TypeLowStockScan
	TypeCustomsDocScan   = services.TypeCustomsDocScan
	TypeCleanupOldData   = services.TypeCleanupOldData
	TypeCleanupTempFiles = "cleanup:temp_files"
)

// AnalyticsProcessor rebuilds the cached revenue rollups after a sale
// changes, so the dashboard serves warm data instead of recomputing on
// the next request.
type AnalyticsProcessor struct {
	db     *db.Database
	cache  ports.CacheRepository
	logger *slog.Logger
}

// NewAnalyticsProcessor creates a new analytics processor
func NewAnalyticsProcessor(database *db.Database, cache ports.CacheRepository, logger *slog.Logger) *AnalyticsProcessor {
	return &AnalyticsProcessor{
		db:     database,
		cache:  cache,
		logger: logger.With(slog.String("processor", "analytics")),
	}
}

type revenueRollup struct {
	Period       string          `json:"period"`
	DailyRevenue []dailyRevenue  `json:"daily_revenue"`
	TopCustomers []customerTotal `json:"top_customers"`
	RefreshedAt  time.Time       `json:"refreshed_at"`
}

type dailyRevenue struct {
	Date      time.Time `json:"date"`
	Revenue   string    `json:"revenue"`
	SaleCount int       `json:"sale_count"`
}

type customerTotal struct {
	CompanyName string `json:"company_name"`
	Revenue     string `json:"revenue"`
	SaleCount   int    `json:"sale_count"`
}

// RefreshAnalytics drops the stale dashboard entries and precomputes
// the rollup for each supported reporting window.
func (p *AnalyticsProcessor) RefreshAnalytics(ctx context.Context, t *asynq.Task) error {
	p.logger.InfoContext(ctx, "refreshing analytics rollups")

	patterns := []string{
		fmt.Sprintf("%s:*", redis_a.PrefixDashboard),
		fmt.Sprintf("%s:*", redis_a.PrefixAnalytics),
	}
	for _, pattern := range patterns {
		if err := p.cache.DeletePattern(ctx, pattern); err != nil {
			p.logger.WarnContext(ctx, "failed to drop stale cache entries",
				slog.String("pattern", pattern),
				slog.String("error", err.Error()))
		}
	}

	for _, window := range []struct {
		period string
		days   int
	}{
		{"7d", 7},
		{"30d", 30},
		{"90d", 90},
	} {
		rollup, err := p.computeRollup(ctx, window.period, window.days)
		if err != nil {
			return fmt.Errorf("failed to compute %s rollup: %w", window.period, err)
		}

		key := redis_a.BuildKey(redis_a.PrefixAnalytics, "rollup", window.period)
		if err := p.cache.SetWithTTL(ctx, key, rollup, 1*time.Hour); err != nil {
			p.logger.WarnContext(ctx, "failed to cache rollup",
				slog.String("period", window.period),
				slog.String("error", err.Error()))
		}
	}

	p.logger.InfoContext(ctx, "analytics rollups refreshed")
	return nil
}

func (p *AnalyticsProcessor) computeRollup(ctx context.Context, period string, days int) (*revenueRollup, error) {
	rollup := &revenueRollup{
		Period:      period,
		RefreshedAt: time.Now(),
	}

	dailyQuery := `
		SELECT
			DATE(created_at) as date,
			COALESCE(SUM(total_amount), 0)::TEXT as revenue,
			COUNT(*) as sale_count
		FROM sales
		WHERE created_at >= NOW() - ($1 * INTERVAL '1 day')
		GROUP BY DATE(created_at)
		ORDER BY date`

	rows, err := p.db.Query(ctx, dailyQuery, days)
	if err != nil {
		return nil, fmt.Errorf("daily revenue query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var d dailyRevenue
		if err := rows.Scan(&d.Date, &d.Revenue, &d.SaleCount); err != nil {
			return nil, fmt.Errorf("scan daily revenue: %w", err)
		}
		rollup.DailyRevenue = append(rollup.DailyRevenue, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	customerQuery := `
		SELECT
			c.company_name,
			COALESCE(SUM(s.total_amount), 0)::TEXT as revenue,
			COUNT(s.id) as sale_count
		FROM sales s
		JOIN customers c ON c.id = s.customer_id
		WHERE s.created_at >= NOW() - ($1 * INTERVAL '1 day')
		GROUP BY c.company_name
		ORDER BY SUM(s.total_amount) DESC
		LIMIT 10`

	customerRows, err := p.db.Query(ctx, customerQuery, days)
	if err != nil {
		return nil, fmt.Errorf("top customers query: %w", err)
	}
	defer customerRows.Close()

	for customerRows.Next() {
		var c customerTotal
		if err := customerRows.Scan(&c.CompanyName, &c.Revenue, &c.SaleCount); err != nil {
			return nil, fmt.Errorf("scan customer total: %w", err)
		}
		rollup.TopCustomers = append(rollup.TopCustomers, c)
	}
	return rollup, customerRows.Err()
}
