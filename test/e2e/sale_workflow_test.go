//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/fruimex/fruimex-be/internal/adapters/db"
	redis_a "github.com/fruimex/fruimex-be/internal/adapters/redis_adapter"
	"github.com/fruimex/fruimex-be/internal/core/services"
	"github.com/fruimex/fruimex-be/internal/handlers"
	"github.com/fruimex/fruimex-be/test/helpers"
)

type SaleE2ESuite struct {
	suite.Suite
	server    *httptest.Server
	client    *http.Client
	baseURL   string
	testDB    *helpers.TestDB
	testRedis *helpers.TestRedis
}

func (s *SaleE2ESuite) SetupSuite() {
	s.testDB = helpers.SetupTestDB(s.T())
	s.testRedis = helpers.SetupTestRedis(s.T())

	s.server = s.startTestServer()
	s.client = &http.Client{Timeout: 10 * time.Second}
	s.baseURL = s.server.URL + "/api/v1"
}

func (s *SaleE2ESuite) TearDownSuite() {
	s.server.Close()
}

func (s *SaleE2ESuite) SetupTest() {
	helpers.TruncateAllTables(s.T(), s.testDB.PgxPool)
	s.testRedis.Server.FlushAll()
}

// startTestServer wires real repositories, services and handlers
// against the containerized database, bypassing session auth.
func (s *SaleE2ESuite) startTestServer() *httptest.Server {
	logger := helpers.TestLogger()
	database := s.testDB.Database
	cache := redis_a.NewCache(s.testRedis.Client, time.Hour, logger)

	saleRepo := db.NewSaleRepository(database, logger)
	inventoryRepo := db.NewInventoryRepository(database, logger)

	saleService := services.NewSaleService(saleRepo, inventoryRepo, cache, nil, logger)
	inventoryService := services.NewInventoryService(inventoryRepo, logger)

	saleHandler := handlers.NewSaleHandler(saleService, logger)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/sales", saleHandler.PlaceSale)
	mux.HandleFunc("GET /api/v1/sales", saleHandler.ListSales)
	mux.HandleFunc("GET /api/v1/sales/{id}", saleHandler.GetSale)
	mux.HandleFunc("PUT /api/v1/sales/{id}", saleHandler.ReviseSale)
	mux.HandleFunc("DELETE /api/v1/sales/{id}", saleHandler.DeleteSale)
	mux.HandleFunc("GET /api/v1/inventory", inventoryHandler.ListRecords)

	return httptest.NewServer(mux)
}

func (s *SaleE2ESuite) TestSaleLifecycle() {
	customerID := helpers.SeedCustomer(s.T(), s.testDB.PgxPool, "Nordfrukt AB")
	productID := helpers.SeedProductWithStock(s.T(), s.testDB.PgxPool, "Valencia Oranges", "1.85", 500)

	// 1. Place a sale for 100 kg
	placeReq := map[string]interface{}{
		"customer_id": customerID,
		"items": []map[string]interface{}{
			{"product_id": productID, "quantity": "100", "unit_price": "1.85"},
		},
	}

	resp := s.makeRequest("POST", "/sales", placeReq)
	s.Equal(http.StatusCreated, resp.StatusCode)

	var sale map[string]interface{}
	s.decodeResponse(resp, &sale)
	saleID := sale["id"].(string)
	s.NotEmpty(saleID)
	s.Equal("185", decimal.RequireFromString(sale["total_amount"].(string)).String())

	// 2. Stock went down to 400
	s.assertQuantity(productID, "400")

	// 3. Revise the sale down to 60 kg; the prior 100 is restored first
	reviseReq := map[string]interface{}{
		"customer_id": customerID,
		"items": []map[string]interface{}{
			{"product_id": productID, "quantity": "60", "unit_price": "1.85"},
		},
	}

	resp = s.makeRequest("PUT", fmt.Sprintf("/sales/%s", saleID), reviseReq)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.drainBody(resp)

	s.assertQuantity(productID, "440")

	// 4. Deleting the sale keeps inventory untouched; the goods left
	// the warehouse regardless of the record
	resp = s.makeRequest("DELETE", fmt.Sprintf("/sales/%s", saleID), nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.drainBody(resp)

	s.assertQuantity(productID, "440")

	// 5. The sale is gone
	resp = s.makeRequest("GET", fmt.Sprintf("/sales/%s", saleID), nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
	s.drainBody(resp)
}

func (s *SaleE2ESuite) TestOversellRejected() {
	customerID := helpers.SeedCustomer(s.T(), s.testDB.PgxPool, "Grünmarkt GmbH")
	productID := helpers.SeedProductWithStock(s.T(), s.testDB.PgxPool, "Hass Avocados", "4.60", 50)

	placeReq := map[string]interface{}{
		"customer_id": customerID,
		"items": []map[string]interface{}{
			{"product_id": productID, "quantity": "80", "unit_price": "4.60"},
		},
	}

	resp := s.makeRequest("POST", "/sales", placeReq)
	s.Equal(http.StatusConflict, resp.StatusCode)

	var faultResp struct {
		Faults []struct {
			Kind       string   `json:"kind"`
			ProductIDs []string `json:"product_ids"`
		} `json:"faults"`
	}
	s.decodeResponse(resp, &faultResp)
	s.Require().Len(faultResp.Faults, 1)
	s.Equal("insufficient_stock", faultResp.Faults[0].Kind)
	s.Contains(faultResp.Faults[0].ProductIDs, productID.String())

	// Nothing was written
	s.assertQuantity(productID, "50")

	resp = s.makeRequest("GET", "/sales", nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var list struct {
		TotalCount int64 `json:"total_count"`
	}
	s.decodeResponse(resp, &list)
	s.Equal(int64(0), list.TotalCount)
}

func (s *SaleE2ESuite) TestValidationFaults() {
	productID := helpers.SeedProductWithStock(s.T(), s.testDB.PgxPool, "Limes", "2.30", 100)

	// Missing customer
	resp := s.makeRequest("POST", "/sales", map[string]interface{}{
		"items": []map[string]interface{}{
			{"product_id": productID, "quantity": "10", "unit_price": "2.30"},
		},
	})
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	var faultResp struct {
		Faults []struct {
			Kind string `json:"kind"`
		} `json:"faults"`
	}
	s.decodeResponse(resp, &faultResp)
	s.Require().Len(faultResp.Faults, 1)
	s.Equal("missing_customer", faultResp.Faults[0].Kind)

	// Empty order
	customerID := helpers.SeedCustomer(s.T(), s.testDB.PgxPool, "Fresh Direct Ltd")
	resp = s.makeRequest("POST", "/sales", map[string]interface{}{
		"customer_id": customerID,
		"items":       []map[string]interface{}{},
	})
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	s.decodeResponse(resp, &faultResp)
	s.Require().Len(faultResp.Faults, 1)
	s.Equal("empty_order", faultResp.Faults[0].Kind)

	// Non-positive quantity
	resp = s.makeRequest("POST", "/sales", map[string]interface{}{
		"customer_id": customerID,
		"items": []map[string]interface{}{
			{"product_id": productID, "quantity": "0", "unit_price": "2.30"},
		},
	})
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	s.decodeResponse(resp, &faultResp)
	s.Require().Len(faultResp.Faults, 1)
	s.Equal("invalid_line_item", faultResp.Faults[0].Kind)

	// Out-of-enumeration status
	resp = s.makeRequest("POST", "/sales", map[string]interface{}{
		"customer_id": customerID,
		"status":      "frobnicated",
		"items": []map[string]interface{}{
			{"product_id": productID, "quantity": "10", "unit_price": "2.30"},
		},
	})
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	s.decodeResponse(resp, &faultResp)
	s.Require().Len(faultResp.Faults, 1)
	s.Equal("invalid_status", faultResp.Faults[0].Kind)
}

func (s *SaleE2ESuite) TestStatusColumnsGuardedBySchema() {
	customerID := helpers.SeedCustomer(s.T(), s.testDB.PgxPool, "Citrus Belt SL")
	ctx := s.T().Context()

	// Defaults come out as the pending initial states
	var status, paymentStatus string
	err := s.testDB.PgxPool.QueryRow(ctx,
		`INSERT INTO sales (customer_id) VALUES ($1) RETURNING status, payment_status`,
		customerID).Scan(&status, &paymentStatus)
	s.Require().NoError(err)
	s.Equal("pending", status)
	s.Equal("pending", paymentStatus)

	// Values outside the enumerations never reach the table
	_, err = s.testDB.PgxPool.Exec(ctx,
		`INSERT INTO sales (customer_id, status) VALUES ($1, 'frobnicated')`, customerID)
	s.Require().Error(err)

	_, err = s.testDB.PgxPool.Exec(ctx,
		`INSERT INTO sales (customer_id, payment_status) VALUES ($1, 'iou')`, customerID)
	s.Require().Error(err)
}

func (s *SaleE2ESuite) TestConcurrentPlacementNeverOversells() {
	customerID := helpers.SeedCustomer(s.T(), s.testDB.PgxPool, "Primeur & Fils")
	productID := helpers.SeedProductWithStock(s.T(), s.testDB.PgxPool, "Mangoes Kent", "5.20", 100)

	// Ten competing sales of 30 kg against 100 kg of stock. At most
	// three can win; the guarded decrement refuses the rest.
	results := make(chan int, 10)
	for i := 0; i < 10; i++ {
		go func() {
			placeReq := map[string]interface{}{
				"customer_id": customerID,
				"items": []map[string]interface{}{
					{"product_id": productID, "quantity": "30", "unit_price": "5.20"},
				},
			}
			resp := s.makeRequest("POST", "/sales", placeReq)
			s.drainBody(resp)
			results <- resp.StatusCode
		}()
	}

	created := 0
	for i := 0; i < 10; i++ {
		if <-results == http.StatusCreated {
			created++
		}
	}

	s.LessOrEqual(created, 3)

	var quantity decimal.Decimal
	err := s.testDB.PgxPool.QueryRow(s.T().Context(),
		`SELECT quantity FROM inventory WHERE product_id = $1`, productID).Scan(&quantity)
	s.Require().NoError(err)
	s.True(quantity.GreaterThanOrEqual(decimal.Zero), "stock went negative: %s", quantity)
	s.True(quantity.Equal(decimal.NewFromInt(int64(100-30*created))))
}

// Helper methods

func (s *SaleE2ESuite) assertQuantity(productID uuid.UUID, expected string) {
	s.T().Helper()

	var quantity decimal.Decimal
	err := s.testDB.PgxPool.QueryRow(s.T().Context(),
		`SELECT quantity FROM inventory WHERE product_id = $1`, productID).Scan(&quantity)
	s.Require().NoError(err)
	s.True(quantity.Equal(decimal.RequireFromString(expected)),
		"expected quantity %s, got %s", expected, quantity)
}

func (s *SaleE2ESuite) makeRequest(method, path string, body interface{}) *http.Response {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		s.NoError(err)
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, s.baseURL+path, reqBody)
	s.NoError(err)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	s.NoError(err)

	return resp
}

func (s *SaleE2ESuite) decodeResponse(resp *http.Response, v interface{}) {
	defer resp.Body.Close()
	err := json.NewDecoder(resp.Body).Decode(v)
	s.NoError(err)
}

func (s *SaleE2ESuite) drainBody(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

func TestSaleE2ESuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E tests in short mode")
	}
	suite.Run(t, new(SaleE2ESuite))
}
