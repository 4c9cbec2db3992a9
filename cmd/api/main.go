// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/fruimex/fruimex-be/internal/adapters/db"
	redis_a "github.com/fruimex/fruimex-be/internal/adapters/redis_adapter"
	"github.com/fruimex/fruimex-be/internal/adapters/storage"
	"github.com/fruimex/fruimex-be/internal/core/ports"
	"github.com/fruimex/fruimex-be/internal/core/services"
	"github.com/fruimex/fruimex-be/internal/handlers"
	"github.com/fruimex/fruimex-be/internal/handlers/middleware"
	"github.com/fruimex/fruimex-be/internal/pkg/config"
	"github.com/fruimex/fruimex-be/internal/pkg/logger"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
	GoVersion = "unknown"
)

func main() {
	enhanced := logger.SetupLogger("debug", "json")
	slogger := enhanced.Logger

	slogger.Info("starting fruimex back office",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
		slog.String("go_version", GoVersion),
	)

	slogger.Info("loading configuration")
	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	enhanced = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	slogger = enhanced.Logger
	slogger.Info("configuration loaded",
		slog.String("environment", cfg.App.Environment),
		slog.String("log_level", cfg.App.LogLevel),
	)

	ctx := context.Background()

	deps, err := initializeDependencies(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize dependencies", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer deps.cleanup()

	// Run database migrations if enabled
	if cfg.App.Environment != "production" {
		if err := runMigrations(ctx, cfg, slogger); err != nil {
			slogger.Error("failed to run migrations", slog.String("error", err.Error()))
			// Don't exit in development, just warn
		}
	}

	server := setupHTTPServer(cfg, deps, enhanced)

	serverErrors := make(chan error, 1)
	go func() {
		slogger.Info("starting HTTP server",
			slog.String("address", cfg.GetServerAddress()),
			slog.Bool("tls", cfg.Server.TLSEnabled),
		)

		if cfg.Server.TLSEnabled {
			serverErrors <- server.ListenAndServeTLS(cfg.Server.TLSCertFile, cfg.Server.TLSKeyFile)
		} else {
			serverErrors <- server.ListenAndServe()
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogger.Error("server error", slog.String("error", err.Error()))
		}
	case sig := <-shutdown:
		slogger.Info("shutdown signal received",
			slog.String("signal", sig.String()),
		)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slogger.Error("failed to gracefully shutdown server", slog.String("error", err.Error()))
			server.Close()
		}

		if deps.asynqClient != nil {
			if err := deps.asynqClient.Close(); err != nil {
				slogger.Error("failed to close Asynq client", slog.String("error", err.Error()))
			}
		}

		slogger.Info("server shutdown complete")
	}
}

// dependencies holds all application dependencies
type dependencies struct {
	database       *db.Database
	redisClient    *redis.Client
	redisCache     ports.CacheRepository
	asynqClient    *asynq.Client
	asynqInspector *asynq.Inspector

	authService ports.AuthService

	saleHandler      *handlers.SaleHandler
	inventoryHandler *handlers.InventoryHandler
	productHandler   *handlers.ProductHandler
	customerHandler  *handlers.CustomerHandler
	supplierHandler  *handlers.SupplierHandler
	customsHandler   *handlers.CustomsHandler
	authHandler      *handlers.AuthHandler
	dashboardHandler *handlers.DashboardHandler
	exportHandler    *handlers.ExportHandler
	healthHandler    *handlers.HealthHandler
}

func (d *dependencies) cleanup() {
	if d.database != nil {
		d.database.Close()
	}
	if d.redisClient != nil {
		d.redisClient.Close()
	}
	if d.asynqClient != nil {
		d.asynqClient.Close()
	}
}

func initializeDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*dependencies, error) {
	deps := &dependencies{}

	logger.Info("connecting to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Name),
	)

	database, err := db.NewDatabase(ctx, &db.Config{
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		User:               cfg.Database.User,
		Password:           cfg.Database.Password,
		Database:           cfg.Database.Name,
		SSLMode:            cfg.Database.SSLMode,
		MaxConnections:     cfg.Database.MaxConnections,
		MinConnections:     cfg.Database.MinConnections,
		MaxConnLifetime:    cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:    cfg.Database.MaxConnIdleTime,
		HealthCheckPeriod:  cfg.Database.HealthCheckPeriod,
		ConnectTimeout:     cfg.Database.ConnectTimeout,
		StatementCacheMode: cfg.Database.StatementCacheMode,
		EnableQueryLogging: cfg.Database.EnableQueryLogging,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	deps.database = database

	logger.Info("connecting to Redis",
		slog.String("host", cfg.Redis.Host),
		slog.String("port", cfg.Redis.Port),
	)

	redisOpts := &redis.Options{
		Addr:            fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password:        cfg.Redis.Password,
		DB:              cfg.Redis.DB,
		MaxRetries:      cfg.Redis.MaxRetries,
		MinRetryBackoff: cfg.Redis.MinRetryBackoff,
		MaxRetryBackoff: cfg.Redis.MaxRetryBackoff,
		DialTimeout:     cfg.Redis.DialTimeout,
		ReadTimeout:     cfg.Redis.ReadTimeout,
		WriteTimeout:    cfg.Redis.WriteTimeout,
		PoolSize:        cfg.Redis.PoolSize,
		MinIdleConns:    cfg.Redis.MinIdleConns,
		ConnMaxLifetime: cfg.Redis.MaxConnAge,
		PoolTimeout:     cfg.Redis.PoolTimeout,
		ConnMaxIdleTime: cfg.Redis.IdleTimeout,
	}

	redisClient := redis.NewClient(redisOpts)

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	deps.redisClient = redisClient

	deps.redisCache = redis_a.NewCache(redisClient, cfg.Redis.TTL, logger)

	logger.Info("initializing Asynq client")

	asynqRedisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Asynq.RedisAddr,
		Password: cfg.Asynq.RedisPassword,
		DB:       cfg.Asynq.RedisDB,
	}

	asynqClient := asynq.NewClient(asynqRedisOpt)
	deps.asynqClient = asynqClient

	asynqInspector := asynq.NewInspector(asynqRedisOpt)
	deps.asynqInspector = asynqInspector

	logger.Info("initializing document storage",
		slog.String("bucket", cfg.AWS.S3Bucket),
	)

	documentStorage, err := storage.NewS3Storage(ctx, &storage.S3Config{
		Region:          cfg.AWS.Region,
		Bucket:          cfg.AWS.S3Bucket,
		AccessKeyID:     cfg.AWS.AccessKeyID,
		SecretAccessKey: cfg.AWS.SecretAccessKey,
		Endpoint:        cfg.AWS.S3Endpoint,
		UsePathStyle:    cfg.AWS.UsePathStyle,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize document storage: %w", err)
	}

	// Repositories
	saleRepo := db.NewSaleRepository(database, logger)
	inventoryRepo := db.NewInventoryRepository(database, logger)
	productRepo := db.NewProductRepository(database, logger)
	customerRepo := db.NewCustomerRepository(database, logger)
	supplierRepo := db.NewSupplierRepository(database, logger)
	shipmentRepo := db.NewShipmentRepository(database, logger)
	customsRepo := db.NewCustomsRepository(database, logger)
	operatorRepo := db.NewOperatorRepository(database, logger)

	// Services
	saleService := services.NewSaleService(saleRepo, inventoryRepo, deps.redisCache, asynqClient, logger)
	inventoryService := services.NewInventoryService(inventoryRepo, logger)
	catalogService := services.NewCatalogService(productRepo, deps.redisCache, logger)
	customerService := services.NewCustomerService(customerRepo, logger)
	supplierService := services.NewSupplierService(supplierRepo, logger)
	customsService := services.NewCustomsService(shipmentRepo, customsRepo, documentStorage, asynqClient, logger)
	deps.authService = services.NewAuthService(operatorRepo, deps.redisCache, cfg.Security.SessionTTL, logger)

	// Handlers
	maxFileSize := int64(cfg.Documents.PDFMaxSizeMB) * 1024 * 1024
	deps.saleHandler = handlers.NewSaleHandler(saleService, logger)
	deps.inventoryHandler = handlers.NewInventoryHandler(inventoryService, logger)
	deps.productHandler = handlers.NewProductHandler(catalogService, logger)
	deps.customerHandler = handlers.NewCustomerHandler(customerService, logger)
	deps.supplierHandler = handlers.NewSupplierHandler(supplierService, logger)
	deps.customsHandler = handlers.NewCustomsHandler(customsService, maxFileSize, logger)
	deps.authHandler = handlers.NewAuthHandler(deps.authService, cfg.Security.SessionTTL, logger)
	deps.dashboardHandler = handlers.NewDashboardHandler(database, deps.redisCache, logger)
	deps.exportHandler = handlers.NewExportHandler(database, deps.redisCache, logger)
	deps.healthHandler = handlers.NewHealthHandler(
		database,
		redisClient,
		asynqInspector,
		cfg,
		logger,
	)

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

func setupHTTPServer(cfg *config.Config, deps *dependencies, enhanced *logger.Logger) *http.Server {
	mux := http.NewServeMux()
	slogger := enhanced.Logger

	// Apply middleware in reverse order (innermost first)
	var handler http.Handler = mux

	if cfg.App.Environment != "test" {
		handler = middleware.RequestID(handler)
		handler = middleware.Logger(enhanced)(handler)
		handler = middleware.Recovery(slogger)(handler)
	}

	if cfg.Server.EnableMetrics {
		handler = middleware.Metrics(handler)
	}

	if cfg.Security.RateLimitRequests > 0 {
		handler = middleware.RateLimit(cfg.Security.RateLimitRequests, cfg.Security.RateLimitDuration)(handler)
	}

	if len(cfg.Security.AllowedOrigins) > 0 {
		handler = middleware.CORS(cfg.Security.AllowedOrigins)(handler)
	}

	if cfg.Security.SecureHeaders {
		handler = middleware.SecureHeaders(handler)
	}

	handler = middleware.Compression(handler)

	registerRoutes(mux, deps, cfg)

	server := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        handler,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(slogger.Handler(), slog.LevelError),
	}

	return server
}

func registerRoutes(mux *http.ServeMux, deps *dependencies, cfg *config.Config) {
	apiV1 := "/api/v1"

	if cfg.Server.EnableHealthCheck {
		mux.HandleFunc("GET /health", deps.healthHandler.Health)
		mux.HandleFunc("GET /ready", deps.healthHandler.Readiness)
		mux.HandleFunc("GET "+apiV1+"/health", deps.healthHandler.Health)
	}

	// Login is the only open API route; everything else requires a session.
	mux.HandleFunc("POST "+apiV1+"/auth/login", deps.authHandler.Login)

	authed := http.NewServeMux()
	sessionAuth := middleware.SessionAuth(deps.authService)
	mux.Handle(apiV1+"/", sessionAuth(authed))

	authed.HandleFunc("POST "+apiV1+"/auth/logout", deps.authHandler.Logout)
	authed.HandleFunc("GET "+apiV1+"/auth/me", deps.authHandler.Me)

	// Sales
	authed.HandleFunc("POST "+apiV1+"/sales", deps.saleHandler.PlaceSale)
	authed.HandleFunc("GET "+apiV1+"/sales", deps.saleHandler.ListSales)
	authed.HandleFunc("GET "+apiV1+"/sales/{id}", deps.saleHandler.GetSale)
	authed.HandleFunc("PUT "+apiV1+"/sales/{id}", deps.saleHandler.ReviseSale)
	authed.HandleFunc("DELETE "+apiV1+"/sales/{id}", deps.saleHandler.DeleteSale)

	// Inventory ledger
	authed.HandleFunc("GET "+apiV1+"/inventory", deps.inventoryHandler.ListRecords)
	authed.HandleFunc("POST "+apiV1+"/inventory", deps.inventoryHandler.CreateRecord)
	authed.HandleFunc("GET "+apiV1+"/inventory/{id}", deps.inventoryHandler.GetRecord)
	authed.HandleFunc("PUT "+apiV1+"/inventory/{id}", deps.inventoryHandler.UpdateRecord)
	authed.HandleFunc("DELETE "+apiV1+"/inventory/{id}", deps.inventoryHandler.DeleteRecord)

	// Product catalog
	authed.HandleFunc("GET "+apiV1+"/products", deps.productHandler.ListProducts)
	authed.HandleFunc("POST "+apiV1+"/products", deps.productHandler.CreateProduct)
	authed.HandleFunc("GET "+apiV1+"/products/catalog", deps.productHandler.GetCatalog)
	authed.HandleFunc("GET "+apiV1+"/products/{id}", deps.productHandler.GetProduct)
	authed.HandleFunc("PUT "+apiV1+"/products/{id}", deps.productHandler.UpdateProduct)
	authed.HandleFunc("DELETE "+apiV1+"/products/{id}", deps.productHandler.DeleteProduct)

	// Customers
	authed.HandleFunc("GET "+apiV1+"/customers", deps.customerHandler.ListCustomers)
	authed.HandleFunc("POST "+apiV1+"/customers", deps.customerHandler.CreateCustomer)
	authed.HandleFunc("GET "+apiV1+"/customers/refs", deps.customerHandler.GetRefs)
	authed.HandleFunc("GET "+apiV1+"/customers/{id}", deps.customerHandler.GetCustomer)
	authed.HandleFunc("PUT "+apiV1+"/customers/{id}", deps.customerHandler.UpdateCustomer)
	authed.HandleFunc("DELETE "+apiV1+"/customers/{id}", deps.customerHandler.DeleteCustomer)

	// Suppliers
	authed.HandleFunc("GET "+apiV1+"/suppliers", deps.supplierHandler.ListSuppliers)
	authed.HandleFunc("POST "+apiV1+"/suppliers", deps.supplierHandler.CreateSupplier)
	authed.HandleFunc("GET "+apiV1+"/suppliers/{id}", deps.supplierHandler.GetSupplier)
	authed.HandleFunc("PUT "+apiV1+"/suppliers/{id}", deps.supplierHandler.UpdateSupplier)
	authed.HandleFunc("DELETE "+apiV1+"/suppliers/{id}", deps.supplierHandler.DeleteSupplier)

	// Shipments and customs clearances
	authed.HandleFunc("GET "+apiV1+"/shipments", deps.customsHandler.ListShipments)
	authed.HandleFunc("POST "+apiV1+"/shipments", deps.customsHandler.CreateShipment)
	authed.HandleFunc("GET "+apiV1+"/shipments/{id}", deps.customsHandler.GetShipment)
	authed.HandleFunc("PUT "+apiV1+"/shipments/{id}", deps.customsHandler.UpdateShipment)
	authed.HandleFunc("GET "+apiV1+"/clearances", deps.customsHandler.ListClearances)
	authed.HandleFunc("POST "+apiV1+"/clearances", deps.customsHandler.CreateClearance)
	authed.HandleFunc("GET "+apiV1+"/clearances/{id}", deps.customsHandler.GetClearance)
	authed.HandleFunc("PUT "+apiV1+"/clearances/{id}", deps.customsHandler.UpdateClearance)
	authed.HandleFunc("DELETE "+apiV1+"/clearances/{id}", deps.customsHandler.DeleteClearance)
	authed.HandleFunc("POST "+apiV1+"/clearances/{id}/documents", deps.customsHandler.UploadDocument)
	authed.HandleFunc("GET "+apiV1+"/clearances/{id}/documents/url", deps.customsHandler.GetDocumentURL)

	// Dashboard
	authed.HandleFunc("GET "+apiV1+"/dashboard", deps.dashboardHandler.GetDashboard)
	authed.HandleFunc("GET "+apiV1+"/dashboard/analytics", deps.dashboardHandler.GetAnalytics)

	// Exports
	authed.HandleFunc("GET "+apiV1+"/export/sales/excel", deps.exportHandler.ExportExcel)
	authed.HandleFunc("GET "+apiV1+"/export/sales/json", deps.exportHandler.ExportJSON)

	if cfg.Server.EnableMetrics {
		mux.HandleFunc("GET /metrics", middleware.MetricsHandler())
	}

	if cfg.Server.EnablePprof && cfg.IsDevelopment() {
		mux.HandleFunc("GET /debug/pprof/", http.HandlerFunc(http.DefaultServeMux.ServeHTTP))
	}
}

func runMigrations(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("running database migrations")

	migrationConfig := &db.MigrationConfig{
		DatabaseURL: cfg.GetDatabaseURL(),
		SourcePath:  cfg.Database.MigrationPath,
		TableName:   "schema_migrations",
		SchemaName:  "public",
	}

	return db.RunMigrationsWithRetry(ctx, migrationConfig, logger, 3)
}
