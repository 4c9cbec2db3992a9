// internal/handlers/customers.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/fruimex/fruimex-be/internal/core/domain"
	"github.com/fruimex/fruimex-be/internal/core/ports"
	"github.com/fruimex/fruimex-be/internal/core/services"
)

// CustomerHandler handles customer directory HTTP requests
type CustomerHandler struct {
	service ports.CustomerService
	logger  *slog.Logger
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(service ports.CustomerService, logger *slog.Logger) *CustomerHandler {
	return &CustomerHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "customers")),
	}
}

// GetCustomer handles GET /api/v1/customers/{id}
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	idStr := r.PathValue("id")

	id, err := uuid.Parse(idStr)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	customer, err := h.service.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrCustomerNotFound) {
			h.respondError(w, http.StatusNotFound, "Customer not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to get customer",
			slog.String("id", idStr),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve customer")
		return
	}

	h.respondJSON(w, http.StatusOK, customer)
}

// ListCustomers handles GET /api/v1/customers
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := h.service.List(ctx, parseDirectoryParams(r))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list customers",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to list customers")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// GetRefs handles GET /api/v1/customers/refs.
// The sale screen uses this projection to populate its customer selector.
func (h *CustomerHandler) GetRefs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	refs, err := h.service.Refs(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load customer refs",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to load customer refs")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{"customers": refs})
}

// CreateCustomer handles POST /api/v1/customers
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	customer := req.ToDomain()
	if err := h.service.CreateCustomer(ctx, customer); err != nil {
		h.logger.ErrorContext(ctx, "failed to create customer",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	h.logger.InfoContext(ctx, "customer created",
		slog.String("id", customer.ID.String()),
		slog.String("company", customer.CompanyName))

	h.respondJSON(w, http.StatusCreated, customer)
}

// UpdateCustomer handles PUT /api/v1/customers/{id}
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	idStr := r.PathValue("id")

	id, err := uuid.Parse(idStr)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var req CustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	customer := req.ToDomain()
	if err := h.service.UpdateCustomer(ctx, id, customer); err != nil {
		if errors.Is(err, services.ErrCustomerNotFound) {
			h.respondError(w, http.StatusNotFound, "Customer not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to update customer",
			slog.String("id", idStr),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to update customer")
		return
	}

	h.logger.InfoContext(ctx, "customer updated", slog.String("id", idStr))

	updated, err := h.service.GetByID(ctx, id)
	if err != nil {
		h.respondJSON(w, http.StatusOK, map[string]string{"message": "Customer updated successfully"})
		return
	}

	h.respondJSON(w, http.StatusOK, updated)
}

// DeleteCustomer handles DELETE /api/v1/customers/{id}.
// Customers are soft deleted so past sales keep resolving their buyer.
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	idStr := r.PathValue("id")

	id, err := uuid.Parse(idStr)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	if err := h.service.DeleteCustomer(ctx, id); err != nil {
		if errors.Is(err, services.ErrCustomerNotFound) {
			h.respondError(w, http.StatusNotFound, "Customer not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete customer",
			slog.String("id", idStr),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to delete customer")
		return
	}

	h.logger.InfoContext(ctx, "customer deleted", slog.String("id", idStr))

	h.respondJSON(w, http.StatusOK, map[string]string{
		"message": "Customer deleted successfully",
		"id":      idStr,
	})
}

// Helper methods

func (h *CustomerHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func (h *CustomerHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// parseDirectoryParams parses query parameters shared by the customer and
// supplier directory listings.
func parseDirectoryParams(r *http.Request) ports.DirectoryListParams {
	params := ports.DirectoryListParams{
		Page:      1,
		PageSize:  50,
		SortBy:    "company_name",
		SortOrder: "asc",
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
	params.Country = r.URL.Query().Get("country")

	if sortBy := r.URL.Query().Get("sort"); sortBy != "" {
		params.SortBy = sortBy
	}
	if order := r.URL.Query().Get("order"); order == "asc" || order == "desc" {
		params.SortOrder = order
	}

	return params
}

// Request/Response DTOs

// CustomerRequest represents the request body for customer writes
type CustomerRequest struct {
	CompanyName string `json:"company_name"`
	ContactName string `json:"contact_name,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	Country     string `json:"country,omitempty"`
}

// Validate validates the customer request
func (r *CustomerRequest) Validate() error {
	if r.CompanyName == "" {
		return fmt.Errorf("company_name is required")
	}
	return nil
}

// ToDomain converts the request to a domain model
func (r *CustomerRequest) ToDomain() *domain.Customer {
	return &domain.Customer{
		CompanyName: r.CompanyName,
		ContactName: r.ContactName,
		Email:       r.Email,
		Phone:       r.Phone,
		Address:     r.Address,
		City:        r.City,
		Country:     r.Country,
	}
}
