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
	"github.com/fruimex/fruimex-be/internal/core/ports"
	"github.com/fruimex/fruimex-be/internal/core/services"
	"github.com/fruimex/fruimex-be/internal/handlers"
	"github.com/fruimex/fruimex-be/test/helpers"
	"github.com/fruimex/fruimex-be/test/mocks"
)

func newInventoryMux(h *handlers.InventoryHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/inventory", h.CreateRecord)
	mux.HandleFunc("PUT /api/v1/inventory/{id}", h.UpdateRecord)
	mux.HandleFunc("GET /api/v1/inventory/{id}", h.GetRecord)
	mux.HandleFunc("DELETE /api/v1/inventory/{id}", h.DeleteRecord)
	mux.HandleFunc("GET /api/v1/inventory", h.ListRecords)
	return mux
}

func TestInventoryHandler_CreateRecord(t *testing.T) {
	logger := helpers.TestLogger()

	t.Run("creates_record", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		productID := uuid.New()
		service := mocks.NewMockInventoryService(ctrl)
		service.EXPECT().
			SaveRecord(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ interface{}, record *domain.InventoryRecord) error {
				assert.Equal(t, productID, record.ProductID)
				assert.True(t, record.Quantity.Equal(decimal.RequireFromString("120")))
				return nil
			})

		body, err := json.Marshal(map[string]interface{}{
			"product_id":       productID,
			"quantity":         "120",
			"unit":             "kg",
			"batch_number":     "B-2026-014",
			"storage_location": "Cold room 2",
		})
		require.NoError(t, err)

		mux := newInventoryMux(handlers.NewInventoryHandler(service, logger))
		req := httptest.NewRequest("POST", "/api/v1/inventory", bytes.NewBuffer(body))
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("rejects_negative_quantity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := mocks.NewMockInventoryService(ctrl)

		body, err := json.Marshal(map[string]interface{}{
			"product_id": uuid.New(),
			"quantity":   "-5",
			"unit":       "kg",
		})
		require.NoError(t, err)

		mux := newInventoryMux(handlers.NewInventoryHandler(service, logger))
		req := httptest.NewRequest("POST", "/api/v1/inventory", bytes.NewBuffer(body))
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects_missing_product", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := mocks.NewMockInventoryService(ctrl)

		body, err := json.Marshal(map[string]interface{}{
			"quantity": "10",
			"unit":     "kg",
		})
		require.NoError(t, err)

		mux := newInventoryMux(handlers.NewInventoryHandler(service, logger))
		req := httptest.NewRequest("POST", "/api/v1/inventory", bytes.NewBuffer(body))
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestInventoryHandler_GetRecord(t *testing.T) {
	logger := helpers.TestLogger()

	t.Run("returns_record", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		recordID := uuid.New()
		service := mocks.NewMockInventoryService(ctrl)
		service.EXPECT().
			GetByID(gomock.Any(), recordID).
			Return(&domain.InventoryRecord{ID: recordID}, nil)

		mux := newInventoryMux(handlers.NewInventoryHandler(service, logger))
		req := httptest.NewRequest("GET", fmt.Sprintf("/api/v1/inventory/%s", recordID), nil)
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing_record_is_404", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		recordID := uuid.New()
		service := mocks.NewMockInventoryService(ctrl)
		service.EXPECT().
			GetByID(gomock.Any(), recordID).
			Return(nil, services.ErrInventoryNotFound)

		mux := newInventoryMux(handlers.NewInventoryHandler(service, logger))
		req := httptest.NewRequest("GET", fmt.Sprintf("/api/v1/inventory/%s", recordID), nil)
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("rejects_invalid_id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := mocks.NewMockInventoryService(ctrl)

		mux := newInventoryMux(handlers.NewInventoryHandler(service, logger))
		req := httptest.NewRequest("GET", "/api/v1/inventory/not-a-uuid", nil)
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestInventoryHandler_ListRecords(t *testing.T) {
	logger := helpers.TestLogger()

	t.Run("applies_default_pagination", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := mocks.NewMockInventoryService(ctrl)
		service.EXPECT().
			List(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ interface{}, params ports.InventoryListParams) (*ports.InventoryListResult, error) {
				assert.Equal(t, 1, params.Page)
				assert.Equal(t, 50, params.PageSize)
				assert.Equal(t, "updated_at", params.SortBy)
				assert.Equal(t, "desc", params.SortOrder)
				return &ports.InventoryListResult{Page: 1, PageSize: 50}, nil
			})

		mux := newInventoryMux(handlers.NewInventoryHandler(service, logger))
		req := httptest.NewRequest("GET", "/api/v1/inventory", nil)
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("passes_filters", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := mocks.NewMockInventoryService(ctrl)
		service.EXPECT().
			List(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ interface{}, params ports.InventoryListParams) (*ports.InventoryListResult, error) {
				assert.Equal(t, "Cold room 2", params.StorageLocation)
				assert.Equal(t, "B-2026-014", params.BatchNumber)
				require.NotNil(t, params.ExpiringBefore)
				return &ports.InventoryListResult{}, nil
			})

		mux := newInventoryMux(handlers.NewInventoryHandler(service, logger))
		req := httptest.NewRequest("GET",
			"/api/v1/inventory?storage_location=Cold+room+2&batch_number=B-2026-014&expiring_before=2026-10-01T00:00:00Z", nil)
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestInventoryHandler_DeleteRecord(t *testing.T) {
	logger := helpers.TestLogger()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	recordID := uuid.New()
	service := mocks.NewMockInventoryService(ctrl)
	service.EXPECT().
		DeleteRecord(gomock.Any(), recordID).
		Return(nil)

	mux := newInventoryMux(handlers.NewInventoryHandler(service, logger))
	req := httptest.NewRequest("DELETE", fmt.Sprintf("/api/v1/inventory/%s", recordID), nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
