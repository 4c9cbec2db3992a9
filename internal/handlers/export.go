// internal/handlers/export.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx/v3"

	redis_a "github.com/fruimex/fruimex-be/internal/adapters/redis_adapter"
	"github.com/fruimex/fruimex-be/internal/core/ports"
)

// ExportParams defines parameters for the sales report export
type ExportParams struct {
	DateFrom *time.Time `json:"date_from"`
	DateTo   *time.Time `json:"date_to"`
	Status   string     `json:"status"`
}

// SalesExportRow is one sale line in the report, joined with its sale
// header and buyer.
type SalesExportRow struct {
	SaleID        string          `db:"sale_id"`
	CustomerName  string          `db:"customer_name"`
	Status        string          `db:"status"`
	PaymentStatus string          `db:"payment_status"`
	ProductName   string          `db:"product_name"`
	Quantity      decimal.Decimal `db:"quantity"`
	UnitPrice     decimal.Decimal `db:"unit_price"`
	LineTotal     decimal.Decimal `db:"line_total"`
	SaleTotal     decimal.Decimal `db:"sale_total"`
	CreatedAt     time.Time       `db:"created_at"`
}

// JSONExportResponse represents the JSON export response structure
type JSONExportResponse struct {
	Sales    []SalesExportRow `json:"sales"`
	Metadata ExportMetadata   `json:"metadata"`
}

// ExportMetadata contains metadata about the export
type ExportMetadata struct {
	ExportDate time.Time  `json:"export_date"`
	TotalRows  int        `json:"total_rows"`
	DateFrom   *time.Time `json:"date_from,omitempty"`
	DateTo     *time.Time `json:"date_to,omitempty"`
	Status     string     `json:"status,omitempty"`
}

// ExportHandler handles sales report export operations
type ExportHandler struct {
	db     ports.Database
	cache  ports.CacheRepository
	logger *slog.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(db ports.Database, cache ports.CacheRepository, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		db:     db,
		cache:  cache,
		logger: logger.With(slog.String("handler", "export")),
	}
}

// ExportExcel handles GET /api/v1/export/sales/excel
func (h *ExportHandler) ExportExcel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	params := h.parseExportParams(r)

	h.logger.InfoContext(ctx, "starting Excel export")

	data, err := h.getSalesData(ctx, params)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to retrieve sales data", slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve data")
		return
	}

	excelData, err := h.generateExcelFile(data)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate Excel file", slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to generate report")
		return
	}

	filename := fmt.Sprintf("sales_report_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(excelData)))

	if _, err := w.Write(excelData); err != nil {
		h.logger.ErrorContext(ctx, "failed to write Excel response", slog.String("error", err.Error()))
		return
	}

	h.logger.InfoContext(ctx, "Excel export completed",
		slog.Int("total_rows", len(data)))
}

// ExportJSON handles GET /api/v1/export/sales/json
func (h *ExportHandler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	params := h.parseExportParams(r)

	cacheKey := redis_a.BuildKey(redis_a.PrefixExport, "json", h.cacheKeyFromParams(params))
	var cachedData []byte
	if err := h.cache.Get(ctx, cacheKey, &cachedData); err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "HIT")
		w.Header().Set("Content-Length", strconv.Itoa(len(cachedData)))

		if _, err := w.Write(cachedData); err != nil {
			h.logger.ErrorContext(ctx, "failed to write cached JSON response", slog.String("error", err.Error()))
		}
		return
	}

	data, err := h.getSalesData(ctx, params)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to retrieve sales data", slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve data")
		return
	}

	response := JSONExportResponse{
		Sales: data,
		Metadata: ExportMetadata{
			ExportDate: time.Now(),
			TotalRows:  len(data),
			DateFrom:   params.DateFrom,
			DateTo:     params.DateTo,
			Status:     params.Status,
		},
	}

	responseData, err := json.Marshal(response)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to marshal JSON response", slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to generate JSON")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "MISS")
	w.Header().Set("Content-Length", strconv.Itoa(len(responseData)))

	if _, err := w.Write(responseData); err != nil {
		h.logger.ErrorContext(ctx, "failed to write JSON response", slog.String("error", err.Error()))
		return
	}

	// Cache the result off the request path
	go func() {
		cacheCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := h.cache.SetWithTTL(cacheCtx, cacheKey, responseData, 5*time.Minute); err != nil {
			h.logger.WarnContext(cacheCtx, "failed to cache JSON export", slog.String("error", err.Error()))
		}
	}()

	h.logger.InfoContext(ctx, "JSON export completed",
		slog.Int("total_rows", len(data)))
}

// Helper methods

func (h *ExportHandler) parseExportParams(r *http.Request) *ExportParams {
	params := &ExportParams{}

	if from := r.URL.Query().Get("from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			params.DateFrom = &t
		}
	}
	if to := r.URL.Query().Get("to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			params.DateTo = &t
		}
	}
	params.Status = r.URL.Query().Get("status")

	return params
}

func (h *ExportHandler) getSalesData(ctx context.Context, params *ExportParams) ([]SalesExportRow, error) {
	query := `
		SELECT s.id, c.company_name, s.status, s.payment_status,
			si.product_name, si.quantity, si.unit_price,
			si.quantity * si.unit_price AS line_total,
			s.total_amount, s.created_at
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		JOIN customers c ON c.id = s.customer_id
		WHERE 1=1
	`
	args := []interface{}{}

	if params.DateFrom != nil {
		args = append(args, *params.DateFrom)
		query += fmt.Sprintf(" AND s.created_at >= $%d", len(args))
	}
	if params.DateTo != nil {
		args = append(args, *params.DateTo)
		query += fmt.Sprintf(" AND s.created_at <= $%d", len(args))
	}
	if params.Status != "" {
		args = append(args, params.Status)
		query += fmt.Sprintf(" AND s.status = $%d", len(args))
	}

	query += " ORDER BY s.created_at DESC, si.position ASC"

	rows, err := h.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sales export: %w", err)
	}
	defer rows.Close()

	var data []SalesExportRow
	for rows.Next() {
		var row SalesExportRow
		if err := rows.Scan(
			&row.SaleID,
			&row.CustomerName,
			&row.Status,
			&row.PaymentStatus,
			&row.ProductName,
			&row.Quantity,
			&row.UnitPrice,
			&row.LineTotal,
			&row.SaleTotal,
			&row.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sales export row: %w", err)
		}
		data = append(data, row)
	}

	return data, rows.Err()
}

// generateExcelFile creates an Excel file in memory from the data
func (h *ExportHandler) generateExcelFile(data []SalesExportRow) ([]byte, error) {
	file := xlsx.NewFile()

	sheet, err := file.AddSheet("Sales")
	if err != nil {
		return nil, fmt.Errorf("failed to add worksheet: %w", err)
	}

	headers := []string{
		"Sale ID", "Customer", "Status", "Payment Status",
		"Product", "Quantity", "Unit Price", "Line Total",
		"Sale Total", "Created At",
	}

	headerRow := sheet.AddRow()
	for _, header := range headers {
		cell := headerRow.AddCell()
		cell.Value = header
		cell.GetStyle().Font.Bold = true
		cell.GetStyle().Fill.PatternType = "solid"
		cell.GetStyle().Fill.FgColor = "CCCCCC"
	}

	for _, row := range data {
		dataRow := sheet.AddRow()
		for _, value := range []string{
			row.SaleID,
			row.CustomerName,
			row.Status,
			row.PaymentStatus,
			row.ProductName,
			row.Quantity.String(),
			row.UnitPrice.StringFixed(2),
			row.LineTotal.StringFixed(2),
			row.SaleTotal.StringFixed(2),
			row.CreatedAt.Format("2006-01-02 15:04:05"),
		} {
			dataRow.AddCell().Value = value
		}
	}

	for i := 0; i < len(headers); i++ {
		sheet.SetColWidth(i, i, 15)
	}

	var buffer bytes.Buffer
	if err := file.Write(&buffer); err != nil {
		return nil, fmt.Errorf("failed to write Excel file to buffer: %w", err)
	}

	return buffer.Bytes(), nil
}

func (h *ExportHandler) cacheKeyFromParams(params *ExportParams) string {
	key := "all"
	if params.DateFrom != nil {
		key += "_from_" + params.DateFrom.Format("20060102")
	}
	if params.DateTo != nil {
		key += "_to_" + params.DateTo.Format("20060102")
	}
	if params.Status != "" {
		key += "_" + params.Status
	}
	return key
}

func (h *ExportHandler) respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		h.logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}
