// internal/handlers/customs.go
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

// CustomsHandler handles shipment and customs clearance HTTP requests
type CustomsHandler struct {
	service     ports.CustomsService
	maxFileSize int64
	logger      *slog.Logger
}

// NewCustomsHandler creates a new customs handler
func NewCustomsHandler(service ports.CustomsService, maxFileSize int64, logger *slog.Logger) *CustomsHandler {
	return &CustomsHandler{
		service:     service,
		maxFileSize: maxFileSize,
		logger:      logger.With(slog.String("handler", "customs")),
	}
}

// GetShipment handles GET /api/v1/shipments/{id}
func (h *CustomsHandler) GetShipment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	idStr := r.PathValue("id")

	id, err := uuid.Parse(idStr)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid shipment ID format")
		return
	}

	shipment, err := h.service.GetShipment(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrShipmentNotFound) {
			h.respondError(w, http.StatusNotFound, "Shipment not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to get shipment",
			slog.String("id", idStr),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve shipment")
		return
	}

	h.respondJSON(w, http.StatusOK, shipment)
}

// ListShipments handles GET /api/v1/shipments
func (h *CustomsHandler) ListShipments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := h.service.ListShipments(ctx, h.parseShipmentParams(r))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list shipments",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to list shipments")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// CreateShipment handles POST /api/v1/shipments
func (h *CustomsHandler) CreateShipment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ShipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	shipment := req.ToDomain()
	if err := h.service.CreateShipment(ctx, shipment); err != nil {
		h.logger.ErrorContext(ctx, "failed to create shipment",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to create shipment")
		return
	}

	h.logger.InfoContext(ctx, "shipment created",
		slog.String("id", shipment.ID.String()),
		slog.String("tracking_number", shipment.TrackingNumber))

	h.respondJSON(w, http.StatusCreated, shipment)
}

// UpdateShipment handles PUT /api/v1/shipments/{id}
func (h *CustomsHandler) UpdateShipment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	idStr := r.PathValue("id")

	id, err := uuid.Parse(idStr)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid shipment ID format")
		return
	}

	var req ShipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	shipment := req.ToDomain()
	if err := h.service.UpdateShipment(ctx, id, shipment); err != nil {
		if errors.Is(err, services.ErrShipmentNotFound) {
			h.respondError(w, http.StatusNotFound, "Shipment not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to update shipment",
			slog.String("id", idStr),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to update shipment")
		return
	}

	h.logger.InfoContext(ctx, "shipment updated", slog.String("id", idStr))

	updated, err := h.service.GetShipment(ctx, id)
	if err != nil {
		h.respondJSON(w, http.StatusOK, map[string]string{"message": "Shipment updated successfully"})
		return
	}

	h.respondJSON(w, http.StatusOK, updated)
}

// GetClearance handles GET /api/v1/clearances/{id}
func (h *CustomsHandler) GetClearance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	idStr := r.PathValue("id")

	id, err := uuid.Parse(idStr)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid clearance ID format")
		return
	}

	clearance, err := h.service.GetClearance(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrClearanceNotFound) {
			h.respondError(w, http.StatusNotFound, "Customs clearance not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to get clearance",
			slog.String("id", idStr),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve customs clearance")
		return
	}

	h.respondJSON(w, http.StatusOK, clearance)
}

// ListClearances handles GET /api/v1/clearances
func (h *CustomsHandler) ListClearances(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := h.service.ListClearances(ctx, h.parseClearanceParams(r))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list clearances",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to list customs clearances")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// CreateClearance handles POST /api/v1/clearances
func (h *CustomsHandler) CreateClearance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ClearanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	clearance := req.ToDomain()
	if err := h.service.CreateClearance(ctx, clearance); err != nil {
		h.logger.ErrorContext(ctx, "failed to create clearance",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to create customs clearance")
		return
	}

	h.logger.InfoContext(ctx, "clearance created",
		slog.String("id", clearance.ID.String()),
		slog.String("shipment_id", clearance.ShipmentID.String()))

	h.respondJSON(w, http.StatusCreated, clearance)
}

// UpdateClearance handles PUT /api/v1/clearances/{id}
func (h *CustomsHandler) UpdateClearance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	idStr := r.PathValue("id")

	id, err := uuid.Parse(idStr)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid clearance ID format")
		return
	}

	var req ClearanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	clearance := req.ToDomain()
	if err := h.service.UpdateClearance(ctx, id, clearance); err != nil {
		if errors.Is(err, services.ErrClearanceNotFound) {
			h.respondError(w, http.StatusNotFound, "Customs clearance not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to update clearance",
			slog.String("id", idStr),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to update customs clearance")
		return
	}

	h.logger.InfoContext(ctx, "clearance updated", slog.String("id", idStr))

	updated, err := h.service.GetClearance(ctx, id)
	if err != nil {
		h.respondJSON(w, http.StatusOK, map[string]string{"message": "Customs clearance updated successfully"})
		return
	}

	h.respondJSON(w, http.StatusOK, updated)
}

// DeleteClearance handles DELETE /api/v1/clearances/{id}
func (h *CustomsHandler) DeleteClearance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	idStr := r.PathValue("id")

	id, err := uuid.Parse(idStr)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid clearance ID format")
		return
	}

	if err := h.service.DeleteClearance(ctx, id); err != nil {
		if errors.Is(err, services.ErrClearanceNotFound) {
			h.respondError(w, http.StatusNotFound, "Customs clearance not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete clearance",
			slog.String("id", idStr),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to delete customs clearance")
		return
	}

	h.logger.InfoContext(ctx, "clearance deleted", slog.String("id", idStr))

	h.respondJSON(w, http.StatusOK, map[string]string{
		"message": "Customs clearance deleted successfully",
		"id":      idStr,
	})
}

// UploadDocument handles POST /api/v1/clearances/{id}/documents.
// PDF uploads are scanned asynchronously for the declaration number.
func (h *CustomsHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	idStr := r.PathValue("id")

	id, err := uuid.Parse(idStr)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid clearance ID format")
		return
	}

	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		h.respondError(w, http.StatusBadRequest, "Failed to parse multipart form. File may be too large.")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "No file provided. Use 'file' form field.")
		return
	}
	defer file.Close()

	key, err := h.service.UploadDocument(ctx, id, header.Filename, file)
	if err != nil {
		if errors.Is(err, services.ErrClearanceNotFound) {
			h.respondError(w, http.StatusNotFound, "Customs clearance not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to upload document",
			slog.String("clearance_id", idStr),
			slog.String("filename", header.Filename),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to upload document")
		return
	}

	h.logger.InfoContext(ctx, "document uploaded",
		slog.String("clearance_id", idStr),
		slog.String("key", key))

	h.respondJSON(w, http.StatusCreated, map[string]string{
		"key":      key,
		"filename": header.Filename,
	})
}

// GetDocumentURL handles GET /api/v1/clearances/{id}/documents/url?key=...
func (h *CustomsHandler) GetDocumentURL(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	idStr := r.PathValue("id")

	id, err := uuid.Parse(idStr)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid clearance ID format")
		return
	}

	key := r.URL.Query().Get("key")
	if key == "" {
		h.respondError(w, http.StatusBadRequest, "Missing 'key' query parameter")
		return
	}

	url, err := h.service.DocumentURL(ctx, id, key)
	if err != nil {
		if errors.Is(err, services.ErrClearanceNotFound) {
			h.respondError(w, http.StatusNotFound, "Customs clearance not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to presign document",
			slog.String("clearance_id", idStr),
			slog.String("key", key),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to generate document URL")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"url": url})
}

// parseShipmentParams parses query parameters for listing shipments
func (h *CustomsHandler) parseShipmentParams(r *http.Request) ports.ShipmentListParams {
	params := ports.ShipmentListParams{
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
	params.Carrier = r.URL.Query().Get("carrier")

	if supplierID := r.URL.Query().Get("supplier_id"); supplierID != "" {
		if id, err := uuid.Parse(supplierID); err == nil {
			params.SupplierID = id
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

// parseClearanceParams parses query parameters for listing clearances
func (h *CustomsHandler) parseClearanceParams(r *http.Request) ports.ClearanceListParams {
	params := ports.ClearanceListParams{
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

	if sortBy := r.URL.Query().Get("sort"); sortBy != "" {
		params.SortBy = sortBy
	}
	if order := r.URL.Query().Get("order"); order == "asc" || order == "desc" {
		params.SortOrder = order
	}

	return params
}

// Helper methods

func (h *CustomsHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func (h *CustomsHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// Request/Response DTOs

// ShipmentRequest represents the request body for shipment writes
type ShipmentRequest struct {
	SupplierID     uuid.UUID  `json:"supplier_id"`
	TrackingNumber string     `json:"tracking_number"`
	Carrier        string     `json:"carrier"`
	ArrivalDate    *time.Time `json:"arrival_date,omitempty"`
}

// Validate validates the shipment request
func (r *ShipmentRequest) Validate() error {
	if r.SupplierID == uuid.Nil {
		return fmt.Errorf("supplier_id is required")
	}
	if r.TrackingNumber == "" {
		return fmt.Errorf("tracking_number is required")
	}
	return nil
}

// ToDomain converts the request to a domain model
func (r *ShipmentRequest) ToDomain() *domain.Shipment {
	return &domain.Shipment{
		SupplierID:     r.SupplierID,
		TrackingNumber: r.TrackingNumber,
		Carrier:        r.Carrier,
		ArrivalDate:    r.ArrivalDate,
	}
}

// ClearanceRequest represents the request body for clearance writes
type ClearanceRequest struct {
	ShipmentID        uuid.UUID        `json:"shipment_id"`
	DeclarationNumber string           `json:"declaration_number,omitempty"`
	Status            string           `json:"status,omitempty"`
	CustomsFees       *decimal.Decimal `json:"customs_fees,omitempty"`
	ClearanceDate     *time.Time       `json:"clearance_date,omitempty"`
}

// Validate validates the clearance request
func (r *ClearanceRequest) Validate() error {
	if r.ShipmentID == uuid.Nil {
		return fmt.Errorf("shipment_id is required")
	}
	if r.CustomsFees != nil && r.CustomsFees.IsNegative() {
		return fmt.Errorf("customs_fees cannot be negative")
	}
	switch domain.ClearanceStatus(r.Status) {
	case "", domain.ClearancePending, domain.ClearanceInProgress, domain.ClearanceCleared, domain.ClearanceBlocked:
	default:
		return fmt.Errorf("invalid status: %s", r.Status)
	}
	return nil
}

// ToDomain converts the request to a domain model
func (r *ClearanceRequest) ToDomain() *domain.CustomsClearance {
	return &domain.CustomsClearance{
		ShipmentID:        r.ShipmentID,
		DeclarationNumber: r.DeclarationNumber,
		Status:            domain.ClearanceStatus(r.Status),
		CustomsFees:       r.CustomsFees,
		ClearanceDate:     r.ClearanceDate,
	}
}
