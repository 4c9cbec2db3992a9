// cmd/seeder/main.go
//
// Seeds a development database with a realistic set of products,
// trading partners, inventory and sample sales. Safe to run twice:
// rows are keyed on natural identifiers and skipped when present.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type seedProduct struct {
	name          string
	description   string
	price         string
	category      string
	originCountry string
	quantity      string
	unit          string
	batchNumber   string
	location      string
	expiresInDays int
}

var seedProducts = []seedProduct{
	{"Valencia Oranges", "Juicy oranges from the Valencia region", "1.85", "citrus", "ES", "1200", "kg", "VAL-2026-031", "Cold room 1", 21},
	{"Cavendish Bananas", "Class I bananas, 18kg boxes", "1.10", "tropical", "EC", "3600", "kg", "BAN-2026-118", "Ripening room A", 12},
	{"Hass Avocados", "Ready-to-eat avocados, size 16", "4.60", "tropical", "PE", "800", "kg", "AVO-2026-077", "Cold room 2", 9},
	{"Golden Delicious Apples", "Crisp apples, 70-80mm", "1.40", "pome", "PL", "2400", "kg", "APP-2026-204", "CA store 3", 90},
	{"Red Globe Grapes", "Seeded table grapes, 4.5kg punnets", "2.95", "berries", "CL", "950", "kg", "GRA-2026-055", "Cold room 1", 18},
	{"Piel de Sapo Melons", "Sweet melons, calibre 4", "1.75", "melons", "BR", "620", "kg", "MEL-2026-090", "Ambient bay 2", 14},
	{"Limes", "Seedless Persian limes", "2.30", "citrus", "MX", "480", "kg", "LIM-2026-142", "Cold room 2", 25},
	{"Pineapples MD2", "Extra sweet pineapples, crownless", "1.60", "tropical", "CR", "1100", "kg", "PIN-2026-036", "Ambient bay 1", 16},
	{"Mangoes Kent", "Air-freight mangoes, ready to eat", "5.20", "tropical", "BR", "350", "kg", "MAN-2026-081", "Cold room 2", 7},
	{"Conference Pears", "Class I pears, 60-65mm", "1.55", "pome", "NL", "1800", "kg", "PEA-2026-167", "CA store 1", 60},
}

type seedCustomer struct {
	company string
	contact string
	email   string
	city    string
	country string
}

var seedCustomers = []seedCustomer{
	{"Nordfrukt AB", "Elsa Lindqvist", "orders@nordfrukt.se", "Malmö", "SE"},
	{"Grünmarkt GmbH", "Jonas Weber", "einkauf@gruenmarkt.de", "Hamburg", "DE"},
	{"Fresh Direct Ltd", "Priya Shah", "buying@freshdirect.co.uk", "London", "GB"},
	{"Primeur & Fils", "Luc Moreau", "achat@primeurfils.fr", "Rungis", "FR"},
	{"Ortofrutta Rossi", "Chiara Rossi", "acquisti@ortofruttarossi.it", "Verona", "IT"},
}

type seedSupplier struct {
	company    string
	contact    string
	email      string
	country    string
	categories []string
}

var seedSuppliers = []seedSupplier{
	{"Agricola del Sur S.A.", "Diego Fuentes", "export@agricoladelsur.cl", "CL", []string{"berries", "pome"}},
	{"Tropical Harvest Ltda", "Ana Souza", "vendas@tropicalharvest.com.br", "BR", []string{"tropical", "melons"}},
	{"Citrus Valencia Coop", "Marta Ferrer", "ventas@citrusvalencia.es", "ES", []string{"citrus"}},
	{"Andes Fresh Export", "Carlos Quispe", "sales@andesfresh.pe", "PE", []string{"tropical"}},
}

func main() {
	var (
		adminEmail    = flag.String("admin-email", "admin@fruimex.test", "Email for the seeded operator account")
		adminPassword = flag.String("admin-password", "fruimex-dev", "Password for the seeded operator account")
		withSales     = flag.Bool("with-sales", true, "Also create a handful of sample sales")
		dryRun        = flag.Bool("dry-run", false, "Preview changes without modifying the database")
		logLevel      = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	)
	flag.Parse()

	var slogLevel slog.Level
	switch *logLevel {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slogLevel}))
	slog.SetDefault(logger)

	dbURL := fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		getEnv("DB_USER", "fruimex"),
		getEnv("DB_PASSWORD", "fruimex_dev_2026"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "fruimex"),
		getEnv("DB_SSL_MODE", "disable"),
	)

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		logger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Error("database unreachable", slog.String("error", err.Error()))
		os.Exit(1)
	}

	s := &seeder{pool: pool, logger: logger, dryRun: *dryRun}

	if err := s.seedOperator(ctx, *adminEmail, *adminPassword); err != nil {
		logger.Error("failed to seed operator", slog.String("error", err.Error()))
		os.Exit(1)
	}

	productIDs, err := s.seedCatalogAndInventory(ctx)
	if err != nil {
		logger.Error("failed to seed catalog", slog.String("error", err.Error()))
		os.Exit(1)
	}

	customerIDs, err := s.seedCustomers(ctx)
	if err != nil {
		logger.Error("failed to seed customers", slog.String("error", err.Error()))
		os.Exit(1)
	}

	supplierIDs, err := s.seedSuppliers(ctx)
	if err != nil {
		logger.Error("failed to seed suppliers", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := s.seedShipments(ctx, supplierIDs); err != nil {
		logger.Error("failed to seed shipments", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *withSales {
		if err := s.seedSales(ctx, customerIDs, productIDs); err != nil {
			logger.Error("failed to seed sales", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	if *dryRun {
		fmt.Println("[DRY RUN] No changes were made to the database")
		return
	}

	logger.Info("seed completed",
		slog.Int("products", len(productIDs)),
		slog.Int("customers", len(customerIDs)),
		slog.Int("suppliers", len(supplierIDs)))
}

type seeder struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
	dryRun bool
}

func (s *seeder) seedOperator(ctx context.Context, email, password string) error {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM operators WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		s.logger.Info("operator already present", slog.String("email", email))
		return nil
	}

	if s.dryRun {
		s.logger.Info("would create operator", slog.String("email", email))
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO operators (id, email, display_name, password_hash) VALUES ($1, $2, $3, $4)`,
		uuid.New(), email, "Seed Admin", string(hash))
	if err != nil {
		return err
	}

	s.logger.Info("operator created", slog.String("email", email))
	return nil
}

func (s *seeder) seedCatalogAndInventory(ctx context.Context) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(seedProducts))

	for _, p := range seedProducts {
		var id uuid.UUID
		err := s.pool.QueryRow(ctx,
			`SELECT id FROM products WHERE name = $1 AND deleted_at IS NULL`, p.name).Scan(&id)
		if err == nil {
			ids = append(ids, id)
			continue
		}
		if err != pgx.ErrNoRows {
			return nil, err
		}

		if s.dryRun {
			s.logger.Info("would create product", slog.String("name", p.name))
			continue
		}

		id = uuid.New()
		price := decimal.RequireFromString(p.price)

		tx, err := s.pool.Begin(ctx)
		if err != nil {
			return nil, err
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO products (id, name, description, price, category, origin_country)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			id, p.name, p.description, price, p.category, p.originCountry)
		if err != nil {
			tx.Rollback(ctx)
			return nil, fmt.Errorf("insert product %s: %w", p.name, err)
		}

		expiration := time.Now().AddDate(0, 0, p.expiresInDays)
		_, err = tx.Exec(ctx,
			`INSERT INTO inventory (id, product_id, quantity, unit, batch_number, expiration_date, storage_location)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			uuid.New(), id, decimal.RequireFromString(p.quantity), p.unit, p.batchNumber, expiration, p.location)
		if err != nil {
			tx.Rollback(ctx)
			return nil, fmt.Errorf("insert inventory for %s: %w", p.name, err)
		}

		if err := tx.Commit(ctx); err != nil {
			return nil, err
		}

		ids = append(ids, id)
		s.logger.Debug("product seeded", slog.String("name", p.name))
	}

	return ids, nil
}

func (s *seeder) seedCustomers(ctx context.Context) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(seedCustomers))

	for _, c := range seedCustomers {
		var id uuid.UUID
		err := s.pool.QueryRow(ctx,
			`SELECT id FROM customers WHERE company_name = $1 AND deleted_at IS NULL`, c.company).Scan(&id)
		if err == nil {
			ids = append(ids, id)
			continue
		}
		if err != pgx.ErrNoRows {
			return nil, err
		}

		if s.dryRun {
			s.logger.Info("would create customer", slog.String("company", c.company))
			continue
		}

		id = uuid.New()
		_, err = s.pool.Exec(ctx,
			`INSERT INTO customers (id, company_name, contact_name, email, city, country)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			id, c.company, c.contact, c.email, c.city, c.country)
		if err != nil {
			return nil, fmt.Errorf("insert customer %s: %w", c.company, err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func (s *seeder) seedSuppliers(ctx context.Context) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(seedSuppliers))

	for _, sp := range seedSuppliers {
		var id uuid.UUID
		err := s.pool.QueryRow(ctx,
			`SELECT id FROM suppliers WHERE company_name = $1 AND deleted_at IS NULL`, sp.company).Scan(&id)
		if err == nil {
			ids = append(ids, id)
			continue
		}
		if err != pgx.ErrNoRows {
			return nil, err
		}

		if s.dryRun {
			s.logger.Info("would create supplier", slog.String("company", sp.company))
			continue
		}

		id = uuid.New()
		_, err = s.pool.Exec(ctx,
			`INSERT INTO suppliers (id, company_name, contact_name, email, country, product_categories)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			id, sp.company, sp.contact, sp.email, sp.country, sp.categories)
		if err != nil {
			return nil, fmt.Errorf("insert supplier %s: %w", sp.company, err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func (s *seeder) seedShipments(ctx context.Context, supplierIDs []uuid.UUID) error {
	if len(supplierIDs) == 0 || s.dryRun {
		return nil
	}

	carriers := []string{"Maersk", "MSC", "CMA CGM", "Hapag-Lloyd"}

	for i, supplierID := range supplierIDs {
		tracking := fmt.Sprintf("FRX-%d-%04d", time.Now().Year(), 1000+i)

		var exists bool
		err := s.pool.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM shipments WHERE tracking_number = $1)`, tracking).Scan(&exists)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		shipmentID := uuid.New()
		arrival := time.Now().AddDate(0, 0, 3+i*2)
		_, err = s.pool.Exec(ctx,
			`INSERT INTO shipments (id, supplier_id, tracking_number, carrier, arrival_date)
			 VALUES ($1, $2, $3, $4, $5)`,
			shipmentID, supplierID, tracking, carriers[i%len(carriers)], arrival)
		if err != nil {
			return fmt.Errorf("insert shipment %s: %w", tracking, err)
		}

		_, err = s.pool.Exec(ctx,
			`INSERT INTO customs_clearances (id, shipment_id, status) VALUES ($1, $2, 'pending')`,
			uuid.New(), shipmentID)
		if err != nil {
			return fmt.Errorf("insert clearance for %s: %w", tracking, err)
		}
	}

	return nil
}

// seedSales writes a few paid historical sales directly, bypassing the
// service layer so the seeded inventory quantities stay untouched.
func (s *seeder) seedSales(ctx context.Context, customerIDs, productIDs []uuid.UUID) error {
	if len(customerIDs) == 0 || len(productIDs) < 3 || s.dryRun {
		return nil
	}

	var existing int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM sales`).Scan(&existing); err != nil {
		return err
	}
	if existing > 0 {
		s.logger.Info("sales already present, skipping sample sales")
		return nil
	}

	for i := 0; i < 8; i++ {
		customerID := customerIDs[i%len(customerIDs)]
		saleID := uuid.New()
		createdAt := time.Now().AddDate(0, 0, -(i*3 + 1))

		total := decimal.Zero
		type line struct {
			productID uuid.UUID
			name      string
			qty       decimal.Decimal
			price     decimal.Decimal
		}
		var lines []line

		for j := 0; j < 2+i%2; j++ {
			productID := productIDs[(i+j)%len(productIDs)]

			var name string
			var price decimal.Decimal
			err := s.pool.QueryRow(ctx,
				`SELECT name, price FROM products WHERE id = $1`, productID).Scan(&name, &price)
			if err != nil {
				return err
			}

			qty := decimal.NewFromInt(int64(50 + 25*j))
			lines = append(lines, line{productID, name, qty, price})
			total = total.Add(qty.Mul(price))
		}

		tx, err := s.pool.Begin(ctx)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO sales (id, customer_id, status, payment_status, total_amount, created_at, updated_at)
			 VALUES ($1, $2, 'completed', 'paid', $3, $4, $4)`,
			saleID, customerID, total, createdAt)
		if err != nil {
			tx.Rollback(ctx)
			return fmt.Errorf("insert sale: %w", err)
		}

		for pos, l := range lines {
			_, err = tx.Exec(ctx,
				`INSERT INTO sale_items (id, sale_id, product_id, product_name, quantity, unit_price, position)
				 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				uuid.New(), saleID, l.productID, l.name, l.qty, l.price, pos)
			if err != nil {
				tx.Rollback(ctx)
				return fmt.Errorf("insert sale item: %w", err)
			}
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}
	}

	s.logger.Info("sample sales created", slog.Int("count", 8))
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
