// internal/handlers/dashboard.go
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fruimex/fruimex-be/internal/adapters/db"
	redis_a "github.com/fruimex/fruimex-be/internal/adapters/redis_adapter"
	"github.com/fruimex/fruimex-be/internal/core/ports"
)

// DashboardHandler serves the back-office overview screen. It queries the
// database directly and caches the aggregates, bypassing the domain services.
type DashboardHandler struct {
	db     *db.Database
	cache  ports.CacheRepository
	logger *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(database *db.Database, cache ports.CacheRepository, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		db:     database,
		cache:  cache,
		logger: logger.With(slog.String("handler", "dashboard")),
	}
}

// GetDashboard handles GET /api/v1/dashboard
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cacheKey := redis_a.BuildKey(redis_a.PrefixDashboard, "main")
	var dashboard DashboardData

	err := h.cache.GetOrSet(ctx, cacheKey, &dashboard, func() (interface{}, error) {
		return h.loadDashboardData(ctx)
	}, 5*time.Minute)

	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load dashboard",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	h.respondJSON(w, http.StatusOK, dashboard)
}

// GetAnalytics handles GET /api/v1/dashboard/analytics
func (h *DashboardHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	period := r.URL.Query().Get("period")
	switch period {
	case "7d", "30d", "90d":
	default:
		period = "30d"
	}

	cacheKey := redis_a.BuildKey(redis_a.PrefixAnalytics, period)
	var analytics AnalyticsData

	err := h.cache.GetOrSet(ctx, cacheKey, &analytics, func() (interface{}, error) {
		return h.loadAnalyticsData(ctx, period)
	}, 15*time.Minute)

	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load analytics",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to load analytics")
		return
	}

	h.respondJSON(w, http.StatusOK, analytics)
}

func (h *DashboardHandler) loadDashboardData(ctx context.Context) (*DashboardData, error) {
	dashboard := &DashboardData{
		Timestamp: time.Now(),
	}

	summaryQuery := `
		SELECT
			COUNT(*) AS total_sales,
			COALESCE(SUM(total_amount), 0) AS total_revenue,
			COUNT(*) FILTER (WHERE payment_status = 'unpaid') AS unpaid_sales,
			COALESCE(SUM(total_amount) FILTER (WHERE payment_status = 'unpaid'), 0) AS outstanding
		FROM sales
	`

	err := h.db.QueryRow(ctx, summaryQuery).Scan(
		&dashboard.Summary.TotalSales,
		&dashboard.Summary.TotalRevenue,
		&dashboard.Summary.UnpaidSales,
		&dashboard.Summary.Outstanding,
	)
	if err != nil {
		return nil, err
	}

	ledgerQuery := `
		SELECT
			COUNT(*) AS tracked_products,
			COUNT(*) FILTER (WHERE quantity <= 0) AS out_of_stock,
			COUNT(*) FILTER (WHERE expiration_date IS NOT NULL
				AND expiration_date < NOW() + INTERVAL '7 days') AS expiring_soon
		FROM inventory
	`

	err = h.db.QueryRow(ctx, ledgerQuery).Scan(
		&dashboard.Summary.TrackedProducts,
		&dashboard.Summary.OutOfStock,
		&dashboard.Summary.ExpiringSoon,
	)
	if err != nil {
		return nil, err
	}

	err = h.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM customs_clearances WHERE status IN ('pending', 'in_progress')`,
	).Scan(&dashboard.Summary.OpenClearances)
	if err != nil {
		return nil, err
	}

	topProductsQuery := `
		SELECT si.product_name,
			SUM(si.quantity) AS quantity,
			SUM(si.quantity * si.unit_price) AS revenue
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		WHERE s.created_at > NOW() - INTERVAL '30 days'
		GROUP BY si.product_name
		ORDER BY revenue DESC
		LIMIT 10
	`

	rows, err := h.db.Query(ctx, topProductsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var top TopProduct
		if err := rows.Scan(&top.ProductName, &top.Quantity, &top.Revenue); err != nil {
			continue
		}
		dashboard.TopProducts = append(dashboard.TopProducts, top)
	}

	recentQuery := `
		SELECT s.id, c.company_name, s.total_amount, s.status, s.created_at
		FROM sales s
		JOIN customers c ON c.id = s.customer_id
		ORDER BY s.created_at DESC
		LIMIT 20
	`

	saleRows, err := h.db.Query(ctx, recentQuery)
	if err == nil {
		defer saleRows.Close()
		for saleRows.Next() {
			var recent RecentSale
			if err := saleRows.Scan(&recent.SaleID, &recent.CustomerName, &recent.Total, &recent.Status, &recent.CreatedAt); err == nil {
				dashboard.RecentSales = append(dashboard.RecentSales, recent)
			}
		}
	}

	return dashboard, nil
}

func (h *DashboardHandler) loadAnalyticsData(ctx context.Context, period string) (*AnalyticsData, error) {
	days := map[string]int{"7d": 7, "30d": 30, "90d": 90}[period]

	analytics := &AnalyticsData{Period: period}

	revenueQuery := `
		SELECT DATE(created_at) AS day,
			COUNT(*) AS sales,
			COALESCE(SUM(total_amount), 0) AS revenue
		FROM sales
		WHERE created_at > NOW() - ($1 * INTERVAL '1 day')
		GROUP BY DATE(created_at)
		ORDER BY day ASC
	`

	rows, err := h.db.Query(ctx, revenueQuery, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var point DailyRevenue
		if err := rows.Scan(&point.Day, &point.Sales, &point.Revenue); err != nil {
			continue
		}
		analytics.DailyRevenue = append(analytics.DailyRevenue, point)
	}

	customerQuery := `
		SELECT c.company_name,
			COUNT(*) AS sales,
			COALESCE(SUM(s.total_amount), 0) AS revenue
		FROM sales s
		JOIN customers c ON c.id = s.customer_id
		WHERE s.created_at > NOW() - ($1 * INTERVAL '1 day')
		GROUP BY c.company_name
		ORDER BY revenue DESC
		LIMIT 10
	`

	custRows, err := h.db.Query(ctx, customerQuery, days)
	if err != nil {
		return nil, err
	}
	defer custRows.Close()

	for custRows.Next() {
		var top TopCustomer
		if err := custRows.Scan(&top.CompanyName, &top.Sales, &top.Revenue); err != nil {
			continue
		}
		analytics.TopCustomers = append(analytics.TopCustomers, top)
	}

	return analytics, nil
}

// Type definitions

type DashboardData struct {
	Summary     DashboardSummary `json:"summary"`
	TopProducts []TopProduct     `json:"top_products"`
	RecentSales []RecentSale     `json:"recent_sales"`
	Timestamp   time.Time        `json:"timestamp"`
}

type DashboardSummary struct {
	TotalSales      int64           `json:"total_sales"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	UnpaidSales     int64           `json:"unpaid_sales"`
	Outstanding     decimal.Decimal `json:"outstanding"`
	TrackedProducts int64           `json:"tracked_products"`
	OutOfStock      int64           `json:"out_of_stock"`
	ExpiringSoon    int64           `json:"expiring_soon"`
	OpenClearances  int64           `json:"open_clearances"`
}

type TopProduct struct {
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Revenue     decimal.Decimal `json:"revenue"`
}

type RecentSale struct {
	SaleID       string          `json:"sale_id"`
	CustomerName string          `json:"customer_name"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
}

type AnalyticsData struct {
	Period       string         `json:"period"`
	DailyRevenue []DailyRevenue `json:"daily_revenue"`
	TopCustomers []TopCustomer  `json:"top_customers"`
}

type DailyRevenue struct {
	Day     time.Time       `json:"day"`
	Sales   int64           `json:"sales"`
	Revenue decimal.Decimal `json:"revenue"`
}

type TopCustomer struct {
	CompanyName string          `json:"company_name"`
	Sales       int64           `json:"sales"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// Helper methods

func (h *DashboardHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func (h *DashboardHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
