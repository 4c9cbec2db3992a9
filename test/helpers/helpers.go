// test/helpers/helpers.go
package helpers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/fruimex/fruimex-be/internal/adapters/db"
	"github.com/fruimex/fruimex-be/internal/core/domain"
	"github.com/fruimex/fruimex-be/internal/pkg/config"
)

// TestDB represents a test database instance
type TestDB struct {
	PgxPool  *pgxpool.Pool
	Database *db.Database
	Resource *dockertest.Resource
	Pool     *dockertest.Pool
	Config   *db.Config
}

// TestRedis represents a test Redis instance
type TestRedis struct {
	Client *redis.Client
	Server *miniredis.Miniredis
}

// TestLogger returns a test logger
func TestLogger() *slog.Logger {
	if testing.Verbose() {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// SetupTestDB creates a PostgreSQL container for integration tests
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err, "Could not connect to Docker")

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=test_fruimex",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "Could not start PostgreSQL container")

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("Could not purge resource: %s", err)
		}
	})

	dbConfig := &db.Config{
		Host:               "localhost",
		Port:               resource.GetPort("5432/tcp"),
		User:               "test",
		Password:           "test",
		Database:           "test_fruimex",
		SSLMode:            "disable",
		MaxConnections:     5,
		MinConnections:     1,
		MaxConnLifetime:    time.Hour,
		MaxConnIdleTime:    time.Minute * 30,
		HealthCheckPeriod:  time.Minute,
		ConnectTimeout:     time.Second * 10,
		StatementCacheMode: "describe",
		EnableQueryLogging: testing.Verbose(),
	}

	// Wait for database to be ready
	var database *db.Database
	err = pool.Retry(func() error {
		ctx := context.Background()
		var err error
		database, err = db.NewDatabase(ctx, dbConfig, TestLogger())
		if err != nil {
			return err
		}
		return database.Ping(ctx)
	})
	require.NoError(t, err, "Could not connect to PostgreSQL")

	ctx := context.Background()
	migrationConfig := &db.MigrationConfig{
		DatabaseURL: fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
			dbConfig.User, dbConfig.Password, dbConfig.Host, dbConfig.Port,
			dbConfig.Database, dbConfig.SSLMode),
		SourcePath: "../../migrations",
		TableName:  "schema_migrations",
		SchemaName: "public",
	}

	err = db.RunMigrationsWithRetry(ctx, migrationConfig, TestLogger(), 3)
	require.NoError(t, err, "Could not run migrations")

	return &TestDB{
		PgxPool:  database.Pool(),
		Database: database,
		Resource: resource,
		Pool:     pool,
		Config:   dbConfig,
	}
}

// SetupTestRedis creates a mock Redis instance for testing
func SetupTestRedis(t *testing.T) *TestRedis {
	t.Helper()

	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	return &TestRedis{
		Client: client,
		Server: mr,
	}
}

// LoadTestConfig returns a test configuration
func LoadTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "test-api",
			Environment: "test",
			Version:     "test",
			LogLevel:    "debug",
			LogFormat:   "text",
			Debug:       true,
		},
		Database: config.DatabaseConfig{
			Host:               "localhost",
			Port:               "5432",
			User:               "test",
			Password:           "test",
			Name:               "test_fruimex",
			SSLMode:            "disable",
			MaxConnections:     10,
			MinConnections:     2,
			EnableQueryLogging: true,
		},
		Redis: config.RedisConfig{
			Host:     "localhost",
			Port:     "6379",
			DB:       0,
			TTL:      time.Hour,
			PoolSize: 10,
		},
		Documents: config.DocumentsConfig{
			PDFMaxSizeMB:      50,
			ProcessingTimeout: 5 * time.Minute,
			TempDir:           "/tmp",
			PresignTTL:        15 * time.Minute,
		},
		Security: config.SecurityConfig{
			SessionTTL:        24 * time.Hour,
			BcryptCost:        4, // Weakest cost, tests only
			RateLimitRequests: 100,
			RateLimitDuration: time.Minute,
			AllowedOrigins:    []string{"*"},
			SecureHeaders:     false,
		},
		Server: config.ServerConfig{
			Host:         "localhost",
			Port:         "8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
	}
}

// CreateTestProduct creates a product fixture
func CreateTestProduct(overrides ...func(*domain.Product)) *domain.Product {
	product := &domain.Product{
		ID:            uuid.New(),
		Name:          "Valencia Oranges",
		Description:   "Juicy oranges from the Valencia region",
		Price:         decimal.RequireFromString("1.85"),
		Category:      "citrus",
		OriginCountry: "ES",
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	for _, override := range overrides {
		override(product)
	}

	return product
}

// CreateTestInventoryRecord creates a ledger row fixture
func CreateTestInventoryRecord(overrides ...func(*domain.InventoryRecord)) *domain.InventoryRecord {
	expiration := time.Now().AddDate(0, 0, 21)
	record := &domain.InventoryRecord{
		ID:              uuid.New(),
		ProductID:       uuid.New(),
		ProductName:     "Valencia Oranges",
		Quantity:        decimal.NewFromInt(500),
		Unit:            "kg",
		BatchNumber:     "VAL-2026-031",
		ExpirationDate:  &expiration,
		StorageLocation: "Cold room 1",
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	for _, override := range overrides {
		override(record)
	}

	return record
}

// CreateTestCustomer creates a customer fixture
func CreateTestCustomer(overrides ...func(*domain.Customer)) *domain.Customer {
	customer := &domain.Customer{
		ID:          uuid.New(),
		CompanyName: "Nordfrukt AB",
		ContactName: "Elsa Lindqvist",
		Email:       "orders@nordfrukt.se",
		City:        "Malmö",
		Country:     "SE",
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	for _, override := range overrides {
		override(customer)
	}

	return customer
}

// CreateTestSaleDraft creates a one-line draft against the given
// product, priced at 2.50 per unit
func CreateTestSaleDraft(customerID, productID uuid.UUID, quantity int64) domain.SaleDraft {
	draft := domain.NewSaleDraft().WithCustomer(customerID)
	draft.Items = []domain.SaleItem{
		{
			ProductID: productID,
			Quantity:  decimal.NewFromInt(quantity),
			UnitPrice: decimal.RequireFromString("2.50"),
		},
	}
	return draft
}

// SeedProductWithStock inserts a product and its ledger row, returning
// the product ID
func SeedProductWithStock(t *testing.T, pool *pgxpool.Pool, name string, price string, quantity int64) uuid.UUID {
	t.Helper()

	ctx := context.Background()
	productID := uuid.New()

	_, err := pool.Exec(ctx,
		`INSERT INTO products (id, name, price, category) VALUES ($1, $2, $3, 'citrus')`,
		productID, name, decimal.RequireFromString(price))
	require.NoError(t, err, "Failed to seed product")

	_, err = pool.Exec(ctx,
		`INSERT INTO inventory (id, product_id, quantity, unit) VALUES ($1, $2, $3, 'kg')`,
		uuid.New(), productID, decimal.NewFromInt(quantity))
	require.NoError(t, err, "Failed to seed inventory")

	return productID
}

// SeedProductWithoutStock inserts a product with no ledger row, returning
// the product ID
func SeedProductWithoutStock(t *testing.T, pool *pgxpool.Pool, name string, price string) uuid.UUID {
	t.Helper()

	ctx := context.Background()
	productID := uuid.New()

	_, err := pool.Exec(ctx,
		`INSERT INTO products (id, name, price, category) VALUES ($1, $2, $3, 'citrus')`,
		productID, name, decimal.RequireFromString(price))
	require.NoError(t, err, "Failed to seed product")

	return productID
}

// SeedCustomer inserts a customer row and returns its ID
func SeedCustomer(t *testing.T, pool *pgxpool.Pool, company string) uuid.UUID {
	t.Helper()

	ctx := context.Background()
	customerID := uuid.New()

	_, err := pool.Exec(ctx,
		`INSERT INTO customers (id, company_name) VALUES ($1, $2)`,
		customerID, company)
	require.NoError(t, err, "Failed to seed customer")

	return customerID
}

// TruncateAllTables truncates all tables in the test database
func TruncateAllTables(t *testing.T, db *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()
	tables := []string{
		"sale_items",
		"sales",
		"customs_clearances",
		"shipments",
		"inventory",
		"products",
		"customers",
		"suppliers",
		"operators",
	}

	for _, table := range tables {
		_, err := db.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err, "Failed to truncate table: %s", table)
	}
}

// AssertEventuallyWithTimeout asserts that a condition is met within a timeout
func AssertEventuallyWithTimeout(t *testing.T, condition func() bool, timeout time.Duration, msg string) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(100 * time.Millisecond)
	}

	t.Errorf("Condition not met within %v: %s", timeout, msg)
}

// CreateTempFile creates a temporary file for testing
func CreateTempFile(t *testing.T, content []byte, extension string) string {
	t.Helper()

	file, err := os.CreateTemp("", fmt.Sprintf("test-*%s", extension))
	require.NoError(t, err, "Failed to create temp file")

	_, err = file.Write(content)
	require.NoError(t, err, "Failed to write to temp file")

	file.Close()

	t.Cleanup(func() {
		os.Remove(file.Name())
	})

	return file.Name()
}
