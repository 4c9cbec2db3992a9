// internal/handlers/sales.go
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fruimex/fruimex-be/internal/core/domain"
	"github.com/fruimex/fruimex-be/internal/core/ports"
	"github.com/fruimex/fruimex-be/internal/core/services"
	"github.com/fruimex/fruimex-be/internal/handlers/middleware"
)

// SaleHandler handles sale-related HTTP requests
type SaleHandler struct {
	service ports.SaleService
	logger  *slog.Logger
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(service ports.SaleService, logger *slog.Logger) *SaleHandler {
	return &SaleHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "sales")),
	}
}

// PlaceSale handles POST /api/v1/sales
func (h *SaleHandler) PlaceSale(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sale, err := h.service.PlaceSale(ctx, req.ToDraft(), middleware.OperatorIDFromContext(ctx))
	if err != nil {
		h.respondSaleError(w, r, err, "failed to place sale")
		return
	}

	h.logger.InfoContext(ctx, "sale placed",
		slog.String("sale_id", sale.ID.String()),
		slog.String("total", sale.TotalAmount.String()))

	h.respondJSON(w, http.StatusCreated, sale)
}

// ReviseSale handles PUT /api/v1/sales/{id}
func (h *SaleHandler) ReviseSale(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	idStr := r.PathValue("id")

	saleID, err := uuid.Parse(idStr)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid sale ID format")
		return
	}

	var req SaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sale, err := h.service.ReviseSale(ctx, saleID, req.ToDraft())
	if err != nil {
		h.respondSaleError(w, r, err, "failed to revise sale")
		return
	}

	h.logger.InfoContext(ctx, "sale revised",
		slog.String("sale_id", idStr),
		slog.String("total", sale.TotalAmount.String()))

	h.respondJSON(w, http.StatusOK, sale)
}

// GetSale handles GET /api/v1/sales/{id}
func (h *SaleHandler) GetSale(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	idStr := r.PathValue("id")

	saleID, err := uuid.Parse(idStr)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid sale ID format")
		return
	}

	sale, err := h.service.GetByID(ctx, saleID)
	if err != nil {
		if errors.Is(err, services.ErrSaleNotFound) {
			h.respondError(w, http.StatusNotFound, "Sale not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to get sale",
			slog.String("sale_id", idStr),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve sale")
		return
	}

	h.respondJSON(w, http.StatusOK, sale)
}

// ListSales handles GET /api/v1/sales
func (h *SaleHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := h.service.List(ctx, h.parseListParams(r))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list sales",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to list sales")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// DeleteSale handles DELETE /api/v1/sales/{id}
func (h *SaleHandler) DeleteSale(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	idStr := r.PathValue("id")

	saleID, err := uuid.Parse(idStr)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid sale ID format")
		return
	}

	if err := h.service.DeleteSale(ctx, saleID); err != nil {
		if errors.Is(err, services.ErrSaleNotFound) {
			h.respondError(w, http.StatusNotFound, "Sale not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete sale",
			slog.String("sale_id", idStr),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to delete sale")
		return
	}

	h.logger.InfoContext(ctx, "sale deleted", slog.String("sale_id", idStr))

	h.respondJSON(w, http.StatusOK, map[string]string{
		"message": "Sale deleted successfully",
		"sale_id": idStr,
	})
}

// respondSaleError renders validation failures as structured fault payloads.
// Insufficient stock maps to 409 because the draft was well-formed and only
// lost the race against the ledger.
func (h *SaleHandler) respondSaleError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	ctx := r.Context()

	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		status := http.StatusBadRequest
		if vErr.Has(domain.FaultInsufficientStock) {
			status = http.StatusConflict
		}
		h.respondJSON(w, status, SaleFaultResponse{
			Error:  vErr.Error(),
			Faults: vErr.Faults,
		})
		return
	}

	if errors.Is(err, services.ErrSaleNotFound) {
		h.respondError(w, http.StatusNotFound, "Sale not found")
		return
	}

	h.logger.ErrorContext(ctx, msg, slog.String("error", err.Error()))
	h.respondError(w, http.StatusInternalServerError, "Failed to save sale")
}

// parseListParams parses query parameters for listing sales
func (h *SaleHandler) parseListParams(r *http.Request) ports.SaleListParams {
	params := ports.SaleListParams{
		Page:      1,
		PageSize:  50,
		SortBy:    "created_at",
		SortOrder: "desc",
	}

	if page := r.URL.Query().Get("page"); page != "" {
		if p, err := strconv.Atoi(page); err == nil && p > 0 {
			params.Page = p
		}
	}

	if limit := r.URL.Query().Get("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil && l > 0 {
			if l > 100 {
				params.PageSize = 100
			} else {
				params.PageSize = l
			}
		}
	}

	params.Search = r.URL.Query().Get("search")
	params.Status = r.URL.Query().Get("status")
	params.PaymentStatus = r.URL.Query().Get("payment_status")

	if customerID := r.URL.Query().Get("customer_id"); customerID != "" {
		if id, err := uuid.Parse(customerID); err == nil {
			params.CustomerID = id
		}
	}

	if from := r.URL.Query().Get("from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			params.From = &t
		}
	}
	if to := r.URL.Query().Get("to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			params.To = &t
		}
	}

	if sortBy := r.URL.Query().Get("sort"); sortBy != "" {
		params.SortBy = sortBy
	}
	if order := r.URL.Query().Get("order"); order == "asc" || order == "desc" {
		params.SortOrder = order
	}

	return params
}

// Helper methods

func (h *SaleHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func (h *SaleHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// Request/Response DTOs

// SaleItemRequest is one submitted order line
type SaleItemRequest struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// SaleRequest represents the request body for placing or revising a sale
type SaleRequest struct {
	CustomerID    uuid.UUID         `json:"customer_id"`
	Items         []SaleItemRequest `json:"items"`
	Status        string            `json:"status,omitempty"`
	PaymentStatus string            `json:"payment_status,omitempty"`
}

// ToDraft converts the request into a sale draft. Structural validation is
// the service's job; the handler only shapes the payload.
func (r *SaleRequest) ToDraft() domain.SaleDraft {
	draft := domain.NewSaleDraft().WithCustomer(r.CustomerID)

	items := make([]domain.SaleItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, domain.SaleItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	draft.Items = items

	if r.Status != "" {
		draft = draft.WithStatus(domain.SaleStatus(r.Status))
	}
	if r.PaymentStatus != "" {
		draft = draft.WithPaymentStatus(domain.PaymentStatus(r.PaymentStatus))
	}

	return draft
}

// SaleFaultResponse is the error payload for rejected sale submissions
type SaleFaultResponse struct {
	Error  string         `json:"error"`
	Faults []domain.Fault `json:"faults"`
}
