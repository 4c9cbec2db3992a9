// internal/handlers/inventory.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fruimex/fruimex-be/internal/core/domain"
	"github.com/fruimex/fruimex-be/internal/core/ports"
	"github.com/fruimex/fruimex-be/internal/core/services"
)

// InventoryHandler handles stock ledger HTTP requests
type InventoryHandler struct {
	service ports.InventoryService
	logger  *slog.Logger
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(service ports.InventoryService, logger *slog.Logger) *InventoryHandler {
	return &InventoryHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "inventory")),
	}
}

// GetRecord handles GET /api/v1/inventory/{id}
func (h *InventoryHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	idStr := r.PathValue("id")

	id, err := uuid.Parse(idStr)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid inventory ID format")
		return
	}

	record, err := h.service.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrInventoryNotFound) {
			h.respondError(w, http.StatusNotFound, "Inventory record not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to get inventory record",
			slog.String("id", idStr),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve inventory record")
		return
	}

	h.respondJSON(w, http.StatusOK, record)
}

// ListRecords handles GET /api/v1/inventory
func (h *InventoryHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := h.service.List(ctx, h.parseListParams(r))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list inventory records",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to list inventory records")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// CreateRecord handles POST /api/v1/inventory
func (h *InventoryHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req InventoryRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	record := req.ToDomain()
	if err := h.service.SaveRecord(ctx, record); err != nil {
		h.logger.ErrorContext(ctx, "failed to create inventory record",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to create inventory record")
		return
	}

	h.logger.InfoContext(ctx, "inventory record created",
		slog.String("id", record.ID.String()),
		slog.String("product_id", record.ProductID.String()))

	h.respondJSON(w, http.StatusCreated, record)
}

// UpdateRecord handles PUT /api/v1/inventory/{id}
func (h *InventoryHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	idStr := r.PathValue("id")

	id, err := uuid.Parse(idStr)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid inventory ID format")
		return
	}

	var req InventoryRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	record := req.ToDomain()
	if err := h.service.UpdateRecord(ctx, id, record); err != nil {
		if errors.Is(err, services.ErrInventoryNotFound) {
			h.respondError(w, http.StatusNotFound, "Inventory record not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to update inventory record",
			slog.String("id", idStr),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to update inventory record")
		return
	}

	h.logger.InfoContext(ctx, "inventory record updated", slog.String("id", idStr))

	updated, err := h.service.GetByID(ctx, id)
	if err != nil {
		h.respondJSON(w, http.StatusOK, map[string]string{"message": "Inventory record updated successfully"})
		return
	}

	h.respondJSON(w, http.StatusOK, updated)
}

// DeleteRecord handles DELETE /api/v1/inventory/{id}
func (h *InventoryHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	idStr := r.PathValue("id")

	id, err := uuid.Parse(idStr)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid inventory ID format")
		return
	}

	if err := h.service.DeleteRecord(ctx, id); err != nil {
		if errors.Is(err, services.ErrInventoryNotFound) {
			h.respondError(w, http.StatusNotFound, "Inventory record not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete inventory record",
			slog.String("id", idStr),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to delete inventory record")
		return
	}

	h.logger.InfoContext(ctx, "inventory record deleted", slog.String("id", idStr))

	h.respondJSON(w, http.StatusOK, map[string]string{
		"message": "Inventory record deleted successfully",
		"id":      idStr,
	})
}

// parseListParams parses query parameters for listing ledger rows
func (h *InventoryHandler) parseListParams(r *http.Request) ports.InventoryListParams {
	params := ports.InventoryListParams{
		Page:      1,
		PageSize:  50,
		SortBy:    "updated_at",
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
	params.StorageLocation = r.URL.Query().Get("storage_location")
	params.BatchNumber = r.URL.Query().Get("batch_number")

	if expiring := r.URL.Query().Get("expiring_before"); expiring != "" {
		if t, err := time.Parse(time.RFC3339, expiring); err == nil {
			params.ExpiringBefore = &t
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

func (h *InventoryHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func (h *InventoryHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// Request/Response DTOs

// InventoryRecordRequest represents the request body for ledger writes
type InventoryRecordRequest struct {
	ProductID       uuid.UUID       `json:"product_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	Unit            string          `json:"unit"`
	BatchNumber     string          `json:"batch_number,omitempty"`
	ExpirationDate  *time.Time      `json:"expiration_date,omitempty"`
	StorageLocation string          `json:"storage_location,omitempty"`
}

// Validate validates the inventory record request
func (r *InventoryRecordRequest) Validate() error {
	if r.ProductID == uuid.Nil {
		return fmt.Errorf("product_id is required")
	}
	if r.Quantity.IsNegative() {
		return fmt.Errorf("quantity cannot be negative")
	}
	if r.Unit == "" {
		return fmt.Errorf("unit is required")
	}
	return nil
}

// ToDomain converts the request to a domain model
func (r *InventoryRecordRequest) ToDomain() *domain.InventoryRecord {
	return &domain.InventoryRecord{
		ProductID:       r.ProductID,
		Quantity:        r.Quantity,
		Unit:            r.Unit,
		BatchNumber:     r.BatchNumber,
		ExpirationDate:  r.ExpirationDate,
		StorageLocation: r.StorageLocation,
	}
}
