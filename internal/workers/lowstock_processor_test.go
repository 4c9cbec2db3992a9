// internal/workers/lowstock_processor_test.go
package workers_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fruimex/fruimex-be/internal/core/domain"
	"github.com/fruimex/fruimex-be/internal/workers"
	"github.com/fruimex/fruimex-be/test/helpers"
	"github.com/fruimex/fruimex-be/test/mocks"
)

func TestLowStockProcessor_ScanLowStock(t *testing.T) {
	logger := helpers.TestLogger()

	t.Run("uses_default_threshold_for_empty_payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockInventoryRepository(ctrl)
		cache := mocks.NewMockCacheRepository(ctrl)

		repo.EXPECT().
			Below(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, threshold decimal.Decimal) ([]domain.InventoryRecord, error) {
				assert.True(t, threshold.Equal(workers.DefaultLowStockThreshold))
				return []domain.InventoryRecord{
					{
						ID:        uuid.New(),
						ProductID: uuid.New(),
						Quantity:  decimal.NewFromInt(3),
						Unit:      "kg",
					},
				}, nil
			})

		cache.EXPECT().
			SetWithTTL(gomock.Any(), "inv:low_stock", gomock.Any(), gomock.Any()).
			Return(nil)

		processor := workers.NewLowStockProcessor(repo, cache, logger)
		task := asynq.NewTask(workers.TypeLowStockScan, nil)

		require.NoError(t, processor.ScanLowStock(context.Background(), task))
	})

	t.Run("honors_payload_threshold", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockInventoryRepository(ctrl)
		cache := mocks.NewMockCacheRepository(ctrl)

		repo.EXPECT().
			Below(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, threshold decimal.Decimal) ([]domain.InventoryRecord, error) {
				assert.True(t, threshold.Equal(decimal.RequireFromString("25.5")))
				return nil, nil
			})

		cache.EXPECT().
			SetWithTTL(gomock.Any(), "inv:low_stock", gomock.Any(), gomock.Any()).
			Return(nil)

		payload, err := json.Marshal(workers.LowStockPayload{Threshold: "25.5"})
		require.NoError(t, err)

		processor := workers.NewLowStockProcessor(repo, cache, logger)
		task := asynq.NewTask(workers.TypeLowStockScan, payload)

		require.NoError(t, processor.ScanLowStock(context.Background(), task))
	})

	t.Run("rejects_unparseable_threshold", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := mocks.NewMockInventoryRepository(ctrl)
		cache := mocks.NewMockCacheRepository(ctrl)

		payload, err := json.Marshal(workers.LowStockPayload{Threshold: "a lot"})
		require.NoError(t, err)

		processor := workers.NewLowStockProcessor(repo, cache, logger)
		task := asynq.NewTask(workers.TypeLowStockScan, payload)

		err = processor.ScanLowStock(context.Background(), task)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid threshold")
	})
}
