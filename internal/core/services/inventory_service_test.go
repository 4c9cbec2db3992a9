// internal/core/services/inventory_service_test.go
package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fruimex/fruimex-be/internal/core/domain"
	"github.com/fruimex/fruimex-be/internal/core/ports"
	"github.com/fruimex/fruimex-be/internal/core/services"
	"github.com/fruimex/fruimex-be/test/helpers"
	"github.com/fruimex/fruimex-be/test/mocks"
)

func TestInventoryService_SaveRecord(t *testing.T) {
	tests := []struct {
		name          string
		record        *domain.InventoryRecord
		setupMocks    func(*mocks.MockInventoryRepository)
		expectedError bool
		errorContains string
	}{
		{
			name:   "successful_save_with_valid_record",
			record: helpers.CreateTestInventoryRecord(),
			setupMocks: func(m *mocks.MockInventoryRepository) {
				m.EXPECT().
					Save(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			expectedError: false,
		},
		{
			name: "validation_fails_for_missing_product_id",
			record: helpers.CreateTestInventoryRecord(func(r *domain.InventoryRecord) {
				r.ProductID = uuid.Nil
			}),
			setupMocks:    func(m *mocks.MockInventoryRepository) {},
			expectedError: true,
			errorContains: "product_id is required",
		},
		{
			name: "validation_fails_for_negative_quantity",
			record: helpers.CreateTestInventoryRecord(func(r *domain.InventoryRecord) {
				r.Quantity = decimal.NewFromInt(-5)
			}),
			setupMocks:    func(m *mocks.MockInventoryRepository) {},
			expectedError: true,
			errorContains: "quantity cannot be negative",
		},
		{
			name: "validation_fails_for_missing_unit",
			record: helpers.CreateTestInventoryRecord(func(r *domain.InventoryRecord) {
				r.Unit = ""
			}),
			setupMocks:    func(m *mocks.MockInventoryRepository) {},
			expectedError: true,
			errorContains: "unit is required",
		},
		{
			name:   "repository_save_error",
			record: helpers.CreateTestInventoryRecord(),
			setupMocks: func(m *mocks.MockInventoryRepository) {
				m.EXPECT().
					Save(gomock.Any(), gomock.Any()).
					Return(errors.New("database connection failed"))
			},
			expectedError: true,
			errorContains: "database connection failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := mocks.NewMockInventoryRepository(ctrl)
			service := services.NewInventoryService(mockRepo, helpers.TestLogger())

			tt.setupMocks(mockRepo)

			err := service.SaveRecord(context.Background(), tt.record)

			if tt.expectedError {
				require.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
			} else {
				require.NoError(t, err)
				assert.NotEqual(t, uuid.Nil, tt.record.ID)
			}
		})
	}
}

func TestInventoryService_GetByID(t *testing.T) {
	testRecord := helpers.CreateTestInventoryRecord()

	tests := []struct {
		name          string
		id            uuid.UUID
		setupMocks    func(*mocks.MockInventoryRepository)
		expectedError error
	}{
		{
			name: "successfully_retrieves_record",
			id:   testRecord.ID,
			setupMocks: func(m *mocks.MockInventoryRepository) {
				m.EXPECT().
					FindByID(gomock.Any(), testRecord.ID).
					Return(testRecord, nil)
			},
		},
		{
			name: "record_not_found",
			id:   uuid.New(),
			setupMocks: func(m *mocks.MockInventoryRepository) {
				m.EXPECT().
					FindByID(gomock.Any(), gomock.Any()).
					Return(nil, nil)
			},
			expectedError: services.ErrInventoryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := mocks.NewMockInventoryRepository(ctrl)
			service := services.NewInventoryService(mockRepo, helpers.TestLogger())

			tt.setupMocks(mockRepo)

			result, err := service.GetByID(context.Background(), tt.id)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				require.NoError(t, err)
				require.NotNil(t, result)
				assert.Equal(t, testRecord.ID, result.ID)
			}
		})
	}
}

func TestInventoryService_DeleteRecord(t *testing.T) {
	testID := uuid.New()

	t.Run("successfully_deletes_record", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := mocks.NewMockInventoryRepository(ctrl)
		service := services.NewInventoryService(mockRepo, helpers.TestLogger())

		mockRepo.EXPECT().Exists(gomock.Any(), testID).Return(true, nil)
		mockRepo.EXPECT().Delete(gomock.Any(), testID).Return(nil)

		require.NoError(t, service.DeleteRecord(context.Background(), testID))
	})

	t.Run("record_not_found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := mocks.NewMockInventoryRepository(ctrl)
		service := services.NewInventoryService(mockRepo, helpers.TestLogger())

		mockRepo.EXPECT().Exists(gomock.Any(), testID).Return(false, nil)

		assert.ErrorIs(t, service.DeleteRecord(context.Background(), testID), services.ErrInventoryNotFound)
	})
}

func TestInventoryService_List(t *testing.T) {
	ctx := context.Background()
	testRecords := []*domain.InventoryRecord{helpers.CreateTestInventoryRecord()}

	tests := []struct {
		name               string
		inputParams        ports.InventoryListParams
		mockRepoResponse   []*domain.InventoryRecord
		mockRepoTotal      int64
		mockRepoErr        error
		expectedResult     *ports.InventoryListResult
		expectedError      bool
		expectedErrorMsg   string
		expectedRepoParams ports.InventoryListParams
	}{
		{
			name:             "successfully_lists_records",
			inputParams:      ports.InventoryListParams{Page: 1, PageSize: 10, StorageLocation: "cold-1"},
			mockRepoResponse: testRecords,
			mockRepoTotal:    1,
			expectedResult: &ports.InventoryListResult{
				Records:    testRecords,
				Page:       1,
				PageSize:   10,
				TotalCount: 1,
				TotalPages: 1,
			},
			expectedRepoParams: ports.InventoryListParams{Page: 1, PageSize: 10, StorageLocation: "cold-1"},
		},
		{
			name:             "normalizes_invalid_page_and_page_size",
			inputParams:      ports.InventoryListParams{Page: 0, PageSize: 2000},
			mockRepoResponse: testRecords,
			mockRepoTotal:    1,
			expectedResult: &ports.InventoryListResult{
				Records:    testRecords,
				Page:       1,
				PageSize:   1000,
				TotalCount: 1,
				TotalPages: 1,
			},
			expectedRepoParams: ports.InventoryListParams{Page: 1, PageSize: 1000},
		},
		{
			name:               "handles_repository_error",
			inputParams:        ports.InventoryListParams{Page: 1, PageSize: 10},
			mockRepoErr:        errors.New("database connection failed"),
			expectedError:      true,
			expectedErrorMsg:   "failed to list inventory records",
			expectedRepoParams: ports.InventoryListParams{Page: 1, PageSize: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := mocks.NewMockInventoryRepository(ctrl)
			service := services.NewInventoryService(mockRepo, helpers.TestLogger())

			mockRepo.EXPECT().
				FindAll(ctx, tt.expectedRepoParams).
				Return(tt.mockRepoResponse, tt.mockRepoTotal, tt.mockRepoErr)

			result, err := service.List(ctx, tt.inputParams)

			if tt.expectedError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErrorMsg)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedResult, result)
			}
		})
	}
}

func TestInventoryService_Quantities(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()

	t.Run("returns_snapshot_from_repository", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := mocks.NewMockInventoryRepository(ctrl)
		service := services.NewInventoryService(mockRepo, helpers.TestLogger())

		expected := map[uuid.UUID]domain.StockLevel{
			productID: {ProductID: productID, Quantity: decimal.NewFromInt(42), Unit: "kg"},
		}
		mockRepo.EXPECT().
			Quantities(gomock.Any(), []uuid.UUID{productID}).
			Return(expected, nil)

		levels, err := service.Quantities(ctx, []uuid.UUID{productID})

		require.NoError(t, err)
		assert.Equal(t, expected, levels)
	})
}
