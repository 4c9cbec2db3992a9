package benchmarks

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fruimex/fruimex-be/internal/adapters/db"
	"github.com/fruimex/fruimex-be/internal/core/domain"
	"github.com/fruimex/fruimex-be/internal/core/ports"
	"github.com/fruimex/fruimex-be/internal/core/services"
	"github.com/fruimex/fruimex-be/test/helpers"
)

func BenchmarkInventoryOperations(b *testing.B) {
	// Setup
	t := &testing.T{}
	testDB := helpers.SetupTestDB(t)
	defer testDB.Database.Close()

	repo := db.NewInventoryRepository(testDB.Database, helpers.TestLogger())
	service := services.NewInventoryService(repo, helpers.TestLogger())
	ctx := context.Background()

	b.Run("Create", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			productID := helpers.SeedProductWithoutStock(t, testDB.PgxPool,
				fmt.Sprintf("Bench Oranges %d", i), "1.85")
			record := helpers.CreateTestInventoryRecord(func(r *domain.InventoryRecord) {
				r.ProductID = productID
				r.BatchNumber = fmt.Sprintf("BENCH-%d", i)
			})
			_ = service.SaveRecord(ctx, record)
		}
	})

	// Pre-create records for read benchmarks
	var recordIDs []uuid.UUID
	for i := 0; i < 100; i++ {
		productID := helpers.SeedProductWithoutStock(t, testDB.PgxPool,
			fmt.Sprintf("Read Oranges %d", i), "1.85")
		record := helpers.CreateTestInventoryRecord(func(r *domain.InventoryRecord) {
			r.ProductID = productID
		})
		_ = service.SaveRecord(ctx, record)
		recordIDs = append(recordIDs, record.ID)
	}

	b.Run("Read", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			id := recordIDs[i%len(recordIDs)]
			_, _ = service.GetByID(ctx, id)
		}
	})

	b.Run("List", func(b *testing.B) {
		params := ports.InventoryListParams{
			Page:     1,
			PageSize: 50,
		}

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = service.List(ctx, params)
		}
	})

	b.Run("Search", func(b *testing.B) {
		params := ports.InventoryListParams{
			Search:   "Oranges",
			Page:     1,
			PageSize: 50,
		}

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = service.List(ctx, params)
		}
	})

	b.Run("Quantities", func(b *testing.B) {
		var productIDs []uuid.UUID
		for _, id := range recordIDs[:20] {
			record, err := service.GetByID(ctx, id)
			if err != nil {
				b.Fatalf("load record: %v", err)
			}
			productIDs = append(productIDs, record.ProductID)
		}

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = service.Quantities(ctx, productIDs)
		}
	})
}

func BenchmarkSalePlacement(b *testing.B) {
	t := &testing.T{}
	testDB := helpers.SetupTestDB(t)
	defer testDB.Database.Close()

	saleRepo := db.NewSaleRepository(testDB.Database, helpers.TestLogger())
	inventoryRepo := db.NewInventoryRepository(testDB.Database, helpers.TestLogger())
	service := services.NewSaleService(saleRepo, inventoryRepo, nil, nil, helpers.TestLogger())
	ctx := context.Background()

	customerID := helpers.SeedCustomer(t, testDB.PgxPool, "Bench Fruits GmbH")
	// Enough stock that the guarded decrement never rejects a draft.
	productID := helpers.SeedProductWithStock(t, testDB.PgxPool, "Bench Lemons", "2.10", 100_000_000)
	operatorID := uuid.New()

	b.Run("SingleLine", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			draft := helpers.CreateTestSaleDraft(customerID, productID, 1)
			_, _ = service.PlaceSale(ctx, draft, operatorID)
		}
	})

	b.Run("List", func(b *testing.B) {
		params := ports.SaleListParams{
			Page:     1,
			PageSize: 50,
		}

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = service.List(ctx, params)
		}
	})
}

// Memory allocation benchmarks
func BenchmarkMemoryAllocation(b *testing.B) {
	b.Run("InventoryRecord", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = &domain.InventoryRecord{
				ID:          uuid.New(),
				ProductID:   uuid.New(),
				ProductName: "Valencia Oranges",
				Quantity:    decimal.NewFromInt(500),
				Unit:        "kg",
			}
		}
	})

	b.Run("ListResult", func(b *testing.B) {
		records := make([]*domain.InventoryRecord, 100)
		for i := range records {
			records[i] = helpers.CreateTestInventoryRecord()
		}

		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = &ports.InventoryListResult{
				Records:    records,
				Page:       1,
				PageSize:   50,
				TotalCount: 100,
				TotalPages: 2,
			}
		}
	})
}
