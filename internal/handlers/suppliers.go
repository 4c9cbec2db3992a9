// internal/handlers/suppliers.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/fruimex/fruimex-be/internal/core/domain"
	"github.com/fruimex/fruimex-be/internal/core/ports"
	"github.com/fruimex/fruimex-be/internal/core/services"
)

// SupplierHandler handles supplier directory HTTP requests
type SupplierHandler struct {
	service ports.SupplierService
	logger  *slog.Logger
}

// NewSupplierHandler creates a new supplier handler
func NewSupplierHandler(service ports.SupplierService, logger *slog.Logger) *SupplierHandler {
	return &SupplierHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "suppliers")),
	}
}

// GetSupplier handles GET /api/v1/suppliers/{id}
func (h *SupplierHandler) GetSupplier(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	idStr := r.PathValue("id")

	id, err := uuid.Parse(idStr)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid supplier ID format")
		return
	}

	supplier, err := h.service.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrSupplierNotFound) {
			h.respondError(w, http.StatusNotFound, "Supplier not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to get supplier",
			slog.String("id", idStr),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve supplier")
		return
	}

	h.respondJSON(w, http.StatusOK, supplier)
}

// ListSuppliers handles GET /api/v1/suppliers
func (h *SupplierHandler) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := h.service.List(ctx, parseDirectoryParams(r))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list suppliers",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to list suppliers")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// CreateSupplier handles POST /api/v1/suppliers
func (h *SupplierHandler) CreateSupplier(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SupplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	supplier := req.ToDomain()
	if err := h.service.CreateSupplier(ctx, supplier); err != nil {
		h.logger.ErrorContext(ctx, "failed to create supplier",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to create supplier")
		return
	}

	h.logger.InfoContext(ctx, "supplier created",
		slog.String("id", supplier.ID.String()),
		slog.String("company", supplier.CompanyName))

	h.respondJSON(w, http.StatusCreated, supplier)
}

// UpdateSupplier handles PUT /api/v1/suppliers/{id}
func (h *SupplierHandler) UpdateSupplier(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	idStr := r.PathValue("id")

	id, err := uuid.Parse(idStr)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid supplier ID format")
		return
	}

	var req SupplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	supplier := req.ToDomain()
	if err := h.service.UpdateSupplier(ctx, id, supplier); err != nil {
		if errors.Is(err, services.ErrSupplierNotFound) {
			h.respondError(w, http.StatusNotFound, "Supplier not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to update supplier",
			slog.String("id", idStr),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to update supplier")
		return
	}

	h.logger.InfoContext(ctx, "supplier updated", slog.String("id", idStr))

	updated, err := h.service.GetByID(ctx, id)
	if err != nil {
		h.respondJSON(w, http.StatusOK, map[string]string{"message": "Supplier updated successfully"})
		return
	}

	h.respondJSON(w, http.StatusOK, updated)
}

// DeleteSupplier handles DELETE /api/v1/suppliers/{id}
func (h *SupplierHandler) DeleteSupplier(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	idStr := r.PathValue("id")

	id, err := uuid.Parse(idStr)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid supplier ID format")
		return
	}

	if err := h.service.DeleteSupplier(ctx, id); err != nil {
		if errors.Is(err, services.ErrSupplierNotFound) {
			h.respondError(w, http.StatusNotFound, "Supplier not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete supplier",
			slog.String("id", idStr),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to delete supplier")
		return
	}

	h.logger.InfoContext(ctx, "supplier deleted", slog.String("id", idStr))

	h.respondJSON(w, http.StatusOK, map[string]string{
		"message": "Supplier deleted successfully",
		"id":      idStr,
	})
}

// Helper methods

func (h *SupplierHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func (h *SupplierHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// Request/Response DTOs

// SupplierRequest represents the request body for supplier writes
type SupplierRequest struct {
	CompanyName       string   `json:"company_name"`
	ContactName       string   `json:"contact_name,omitempty"`
	Email             string   `json:"email,omitempty"`
	Phone             string   `json:"phone,omitempty"`
	Address           string   `json:"address,omitempty"`
	Country           string   `json:"country,omitempty"`
	ProductCategories []string `json:"product_categories,omitempty"`
}

// Validate validates the supplier request
func (r *SupplierRequest) Validate() error {
	if r.CompanyName == "" {
		return fmt.Errorf("company_name is required")
	}
	return nil
}

// ToDomain converts the request to a domain model
func (r *SupplierRequest) ToDomain() *domain.Supplier {
	return &domain.Supplier{
		CompanyName:       r.CompanyName,
		ContactName:       r.ContactName,
		Email:             r.Email,
		Phone:             r.Phone,
		Address:           r.Address,
		Country:           r.Country,
		ProductCategories: r.ProductCategories,
	}
}
