package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fruimex/fruimex-be/internal/core/domain"
	"github.com/fruimex/fruimex-be/internal/core/services"
	"github.com/fruimex/fruimex-be/internal/handlers"
	"github.com/fruimex/fruimex-be/test/helpers"
	"github.com/fruimex/fruimex-be/test/mocks"
)

func newSaleMux(h *handlers.SaleHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/sales", h.PlaceSale)
	mux.HandleFunc("PUT /api/v1/sales/{id}", h.ReviseSale)
	mux.HandleFunc("GET /api/v1/sales/{id}", h.GetSale)
	mux.HandleFunc("DELETE /api/v1/sales/{id}", h.DeleteSale)
	mux.HandleFunc("GET /api/v1/sales", h.ListSales)
	return mux
}

func saleRequestBody(t *testing.T, customerID uuid.UUID) *bytes.Buffer {
	t.Helper()

	body, err := json.Marshal(map[string]interface{}{
		"customer_id": customerID,
		"items": []map[string]interface{}{
			{
				"product_id": uuid.New(),
				"quantity":   "10",
				"unit_price": "2.50",
			},
		},
	})
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func TestSaleHandler_PlaceSale(t *testing.T) {
	logger := helpers.TestLogger()

	t.Run("creates_sale", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := mocks.NewMockSaleService(ctrl)
		customerID := uuid.New()
		placed := &domain.Sale{
			ID:          uuid.New(),
			CustomerID:  customerID,
			TotalAmount: decimal.RequireFromString("25.00"),
		}
		service.EXPECT().
			PlaceSale(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(placed, nil)

		mux := newSaleMux(handlers.NewSaleHandler(service, logger))
		req := httptest.NewRequest("POST", "/api/v1/sales", saleRequestBody(t, customerID))
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var got domain.Sale
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, placed.ID, got.ID)
	})

	t.Run("maps_structural_faults_to_400", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := mocks.NewMockSaleService(ctrl)
		service.EXPECT().
			PlaceSale(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, &domain.ValidationError{Faults: []domain.Fault{
				{Kind: domain.FaultMissingCustomer, Message: "customer is required"},
			}})

		mux := newSaleMux(handlers.NewSaleHandler(service, logger))
		req := httptest.NewRequest("POST", "/api/v1/sales", saleRequestBody(t, uuid.Nil))
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp handlers.SaleFaultResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		require.Len(t, resp.Faults, 1)
		assert.Equal(t, domain.FaultMissingCustomer, resp.Faults[0].Kind)
	})

	t.Run("maps_insufficient_stock_to_409", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		shortProduct := uuid.New()
		service := mocks.NewMockSaleService(ctrl)
		service.EXPECT().
			PlaceSale(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, &domain.ValidationError{Faults: []domain.Fault{
				{
					Kind:       domain.FaultInsufficientStock,
					Message:    "insufficient stock",
					ProductIDs: []uuid.UUID{shortProduct},
				},
			}})

		mux := newSaleMux(handlers.NewSaleHandler(service, logger))
		req := httptest.NewRequest("POST", "/api/v1/sales", saleRequestBody(t, uuid.New()))
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)

		var resp handlers.SaleFaultResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		require.Len(t, resp.Faults, 1)
		assert.Equal(t, []uuid.UUID{shortProduct}, resp.Faults[0].ProductIDs)
	})

	t.Run("rejects_malformed_body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := mocks.NewMockSaleService(ctrl)

		mux := newSaleMux(handlers.NewSaleHandler(service, logger))
		req := httptest.NewRequest("POST", "/api/v1/sales", bytes.NewBufferString("{not json"))
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSaleHandler_ReviseSale(t *testing.T) {
	logger := helpers.TestLogger()

	t.Run("revises_sale", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		saleID := uuid.New()
		customerID := uuid.New()
		service := mocks.NewMockSaleService(ctrl)
		service.EXPECT().
			ReviseSale(gomock.Any(), saleID, gomock.Any()).
			Return(&domain.Sale{ID: saleID, CustomerID: customerID}, nil)

		mux := newSaleMux(handlers.NewSaleHandler(service, logger))
		req := httptest.NewRequest("PUT", fmt.Sprintf("/api/v1/sales/%s", saleID), saleRequestBody(t, customerID))
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects_invalid_id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := mocks.NewMockSaleService(ctrl)

		mux := newSaleMux(handlers.NewSaleHandler(service, logger))
		req := httptest.NewRequest("PUT", "/api/v1/sales/not-a-uuid", saleRequestBody(t, uuid.New()))
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSaleHandler_GetSale(t *testing.T) {
	logger := helpers.TestLogger()

	t.Run("returns_sale", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		saleID := uuid.New()
		service := mocks.NewMockSaleService(ctrl)
		service.EXPECT().
			GetByID(gomock.Any(), saleID).
			Return(&domain.Sale{ID: saleID}, nil)

		mux := newSaleMux(handlers.NewSaleHandler(service, logger))
		req := httptest.NewRequest("GET", fmt.Sprintf("/api/v1/sales/%s", saleID), nil)
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing_sale_is_404", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		saleID := uuid.New()
		service := mocks.NewMockSaleService(ctrl)
		service.EXPECT().
			GetByID(gomock.Any(), saleID).
			Return(nil, fmt.Errorf("load sale: %w", services.ErrSaleNotFound))

		mux := newSaleMux(handlers.NewSaleHandler(service, logger))
		req := httptest.NewRequest("GET", fmt.Sprintf("/api/v1/sales/%s", saleID), nil)
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSaleHandler_DeleteSale(t *testing.T) {
	logger := helpers.TestLogger()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	saleID := uuid.New()
	service := mocks.NewMockSaleService(ctrl)
	service.EXPECT().
		DeleteSale(gomock.Any(), saleID).
		Return(nil)

	mux := newSaleMux(handlers.NewSaleHandler(service, logger))
	req := httptest.NewRequest("DELETE", fmt.Sprintf("/api/v1/sales/%s", saleID), nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
