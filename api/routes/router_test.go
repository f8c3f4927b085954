package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dukkonapp/dukkon-backend/internal/cart"
	"github.com/dukkonapp/dukkon-backend/internal/catalog"
	checkoutsvc "github.com/dukkonapp/dukkon-backend/internal/checkout"
	"github.com/dukkonapp/dukkon-backend/internal/customers"
	"github.com/dukkonapp/dukkon-backend/internal/ledger"
	"github.com/dukkonapp/dukkon-backend/internal/sales"
	"github.com/dukkonapp/dukkon-backend/internal/tenants"
	"github.com/dukkonapp/dukkon-backend/pkg/config"
	"github.com/dukkonapp/dukkon-backend/pkg/db/models"
	"github.com/dukkonapp/dukkon-backend/pkg/enums"
	"github.com/dukkonapp/dukkon-backend/pkg/logger"
	"github.com/dukkonapp/dukkon-backend/pkg/types"
)

type sqliteTxRunner struct {
	db *gorm.DB
}

func (r sqliteTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

type routerFixture struct {
	db      *gorm.DB
	handler http.Handler
	tenant  *models.Tenant
	cashier uuid.UUID
}

func setupRouterTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:router_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE IF NOT EXISTS tenants (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  business_type TEXT NOT NULL DEFAULT 'retail',
  base_currency TEXT NOT NULL DEFAULT 'UZS',
  currency_rate NUMERIC NOT NULL DEFAULT 1,
  min_margin_percent NUMERIC NOT NULL DEFAULT 5,
  service_charge_percent NUMERIC NOT NULL DEFAULT 10,
  config TEXT,
  description TEXT,
  address TEXT,
  phone TEXT,
  email TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS customers (
  id TEXT PRIMARY KEY,
  tenant_id TEXT NOT NULL,
  name TEXT NOT NULL,
  phone TEXT,
  email TEXT,
  price_tier TEXT NOT NULL DEFAULT 'retail',
  balance NUMERIC NOT NULL DEFAULT 0,
  credit_limit NUMERIC NOT NULL DEFAULT 0,
  max_debt_allowed NUMERIC NOT NULL DEFAULT 0,
  loyalty_points NUMERIC NOT NULL DEFAULT 0,
  metadata TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS customer_ledger (
  id TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL,
  sale_id TEXT,
  debit NUMERIC NOT NULL DEFAULT 0,
  credit NUMERIC NOT NULL DEFAULT 0,
  balance_after NUMERIC NOT NULL,
  description TEXT,
  reference_number TEXT,
  created_by TEXT,
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  tenant_id TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT,
  type TEXT NOT NULL DEFAULT 'simple',
  base_price NUMERIC NOT NULL DEFAULT 0,
  base_cost NUMERIC NOT NULL DEFAULT 0,
  tax_rate NUMERIC NOT NULL DEFAULT 0,
  metadata TEXT,
  recipe TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS product_variants (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  tenant_id TEXT NOT NULL,
  sku TEXT NOT NULL,
  price NUMERIC NOT NULL DEFAULT 0,
  cost_price NUMERIC NOT NULL DEFAULT 0,
  stock_quantity NUMERIC NOT NULL DEFAULT 0,
  min_stock_level NUMERIC NOT NULL DEFAULT 0,
  max_stock_level NUMERIC,
  attributes TEXT,
  barcode_aliases TEXT,
  velocity_score NUMERIC NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS price_tiers (
  id TEXT PRIMARY KEY,
  variant_id TEXT NOT NULL,
  tenant_id TEXT NOT NULL,
  tier_type TEXT NOT NULL DEFAULT 'retail',
  min_quantity NUMERIC NOT NULL DEFAULT 1,
  max_quantity NUMERIC,
  price NUMERIC NOT NULL,
  customer_group TEXT,
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS sales (
  id TEXT PRIMARY KEY,
  tenant_id TEXT NOT NULL,
  cashier_id TEXT NOT NULL,
  customer_id TEXT,
  branch_id TEXT,
  subtotal NUMERIC NOT NULL DEFAULT 0,
  tax_amount NUMERIC NOT NULL DEFAULT 0,
  discount_amount NUMERIC NOT NULL DEFAULT 0,
  service_charge NUMERIC NOT NULL DEFAULT 0,
  total_amount NUMERIC NOT NULL DEFAULT 0,
  payment_method TEXT NOT NULL DEFAULT 'cash',
  status TEXT NOT NULL DEFAULT 'completed',
  is_debt INTEGER NOT NULL DEFAULT 0,
  debt_amount NUMERIC NOT NULL DEFAULT 0,
  notes TEXT,
  receipt_number TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS sale_items (
  id TEXT PRIMARY KEY,
  sale_id TEXT NOT NULL,
  variant_id TEXT NOT NULL,
  quantity NUMERIC NOT NULL DEFAULT 1,
  unit_price NUMERIC NOT NULL,
  cost_price NUMERIC NOT NULL DEFAULT 0,
  total NUMERIC NOT NULL,
  discount_percent NUMERIC NOT NULL DEFAULT 0,
  discount_amount NUMERIC NOT NULL DEFAULT 0,
  tax_rate NUMERIC NOT NULL DEFAULT 0,
  tax_amount NUMERIC NOT NULL DEFAULT 0
);`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()

	db := setupRouterTestDB(t)
	logg := logger.New(logger.Options{ServiceName: "router-test", Output: io.Discard})

	tenantsRepo := tenants.NewRepository(db)
	catalogRepo := catalog.NewRepository(db)
	customersRepo := customers.NewRepository(db)
	ledgerRepo := ledger.NewRepository(db)
	salesRepo := sales.NewRepository(db)

	tenantsService, err := tenants.NewService(tenantsRepo)
	require.NoError(t, err)

	calc, err := cart.NewCalculator(catalogRepo, customersRepo, tenantsService)
	require.NoError(t, err)

	salesService, err := sales.NewService(salesRepo)
	require.NoError(t, err)

	checkoutService, err := checkoutsvc.NewService(
		sqliteTxRunner{db: db},
		calc,
		tenantsService,
		catalogRepo,
		customersRepo,
		ledgerRepo,
		salesRepo,
		logg,
		nil,
	)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.App.Port = "0"

	handler := NewRouter(cfg, logg, Deps{
		CartCalculator:  calc,
		CheckoutService: checkoutService,
		SalesService:    salesService,
		TenantsService:  tenantsService,
		CatalogRepo:     catalogRepo,
		CustomersRepo:   customersRepo,
		LedgerRepo:      ledgerRepo,
	})

	tenant := &models.Tenant{
		ID:                   uuid.New(),
		Name:                 "Router Fixture",
		BusinessType:         enums.BusinessTypeRetail,
		BaseCurrency:         "UZS",
		CurrencyRate:         decimal.NewFromInt(1),
		MinMarginPercent:     decimal.NewFromInt(5),
		ServiceChargePercent: decimal.NewFromInt(10),
		IsActive:             true,
	}
	require.NoError(t, db.Create(tenant).Error)

	return &routerFixture{
		db:      db,
		handler: handler,
		tenant:  tenant,
		cashier: uuid.New(),
	}
}

func (f *routerFixture) addVariant(t *testing.T, sku, price, cost, stock string) *models.ProductVariant {
	t.Helper()

	product := &models.Product{
		ID:       uuid.New(),
		TenantID: f.tenant.ID,
		Name:     "Product " + sku,
		Recipe:   types.Recipe{},
	}
	require.NoError(t, f.db.Create(product).Error)

	variant := &models.ProductVariant{
		ID:            uuid.New(),
		ProductID:     product.ID,
		TenantID:      f.tenant.ID,
		SKU:           sku,
		Price:         decimal.RequireFromString(price),
		CostPrice:     decimal.RequireFromString(cost),
		StockQuantity: decimal.RequireFromString(stock),
		IsActive:      true,
	}
	require.NoError(t, f.db.Create(variant).Error)
	return variant
}

func (f *routerFixture) do(t *testing.T, method, target string, payload any, withCashier bool) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Tenant-ID", f.tenant.ID.String())
	if withCashier {
		req.Header.Set("X-Cashier-ID", f.cashier.String())
	}

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func TestRouterHealthLive(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterRequiresTenantHeader(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sales", nil)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouterCartCalculate(t *testing.T) {
	f := newRouterFixture(t)
	variant := f.addVariant(t, "SKU-001", "100", "50", "10")

	rec := f.do(t, http.MethodPost, "/api/v1/cart/calculate", map[string]any{
		"lines": []map[string]any{
			{"variant_id": variant.ID, "quantity": "2"},
		},
	}, false)

	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data struct {
			Subtotal decimal.Decimal `json:"subtotal"`
			Total    decimal.Decimal `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	assert.True(t, envelope.Data.Subtotal.Equal(decimal.NewFromInt(200)))
	assert.True(t, envelope.Data.Total.Equal(decimal.NewFromInt(200)))
}

func TestRouterCheckoutFlow(t *testing.T) {
	f := newRouterFixture(t)
	variant := f.addVariant(t, "SKU-002", "100", "50", "10")

	rec := f.do(t, http.MethodPost, "/api/v1/checkout", map[string]any{
		"payment_method": "cash",
		"lines": []map[string]any{
			{"variant_id": variant.ID, "quantity": "3"},
		},
	}, true)

	require.Equal(t, http.StatusCreated, rec.Code)

	var envelope struct {
		Data struct {
			SaleID        uuid.UUID       `json:"sale_id"`
			ReceiptNumber string          `json:"receipt_number"`
			Total         decimal.Decimal `json:"total"`
			Status        string          `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	assert.NotEmpty(t, envelope.Data.ReceiptNumber)
	assert.Equal(t, string(enums.SaleStatusCompleted), envelope.Data.Status)
	assert.True(t, envelope.Data.Total.Equal(decimal.NewFromInt(300)))

	var stored models.ProductVariant
	require.NoError(t, f.db.Where("id = ?", variant.ID).First(&stored).Error)
	assert.True(t, stored.StockQuantity.Equal(decimal.NewFromInt(7)))

	// listing shows the committed sale
	listRec := f.do(t, http.MethodGet, "/api/v1/sales", nil, false)
	require.Equal(t, http.StatusOK, listRec.Code)

	var listEnvelope struct {
		Data struct {
			Sales []struct {
				SaleID uuid.UUID `json:"sale_id"`
			} `json:"sales"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(listRec.Body).Decode(&listEnvelope))
	require.Len(t, listEnvelope.Data.Sales, 1)
	assert.Equal(t, envelope.Data.SaleID, listEnvelope.Data.Sales[0].SaleID)

	// refund reverses the sale and restores stock
	refundRec := f.do(t, http.MethodPost, "/api/v1/sales/"+envelope.Data.SaleID.String()+"/refund", nil, true)
	require.Equal(t, http.StatusOK, refundRec.Code)

	require.NoError(t, f.db.Where("id = ?", variant.ID).First(&stored).Error)
	assert.True(t, stored.StockQuantity.Equal(decimal.NewFromInt(10)))
}

func TestRouterCheckoutRequiresCashier(t *testing.T) {
	f := newRouterFixture(t)
	variant := f.addVariant(t, "SKU-003", "100", "50", "10")

	rec := f.do(t, http.MethodPost, "/api/v1/checkout", map[string]any{
		"payment_method": "cash",
		"lines": []map[string]any{
			{"variant_id": variant.ID, "quantity": "1"},
		},
	}, false)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouterTenantSettings(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/tenant/settings", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)

	patch := f.do(t, http.MethodPatch, "/api/v1/tenant/settings", map[string]any{
		"min_margin_percent": "12.5",
	}, false)
	require.Equal(t, http.StatusOK, patch.Code)

	var envelope struct {
		Data struct {
			MinMarginPercent decimal.Decimal `json:"min_margin_percent"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(patch.Body).Decode(&envelope))
	assert.True(t, envelope.Data.MinMarginPercent.Equal(decimal.RequireFromString("12.5")))
}

func TestRouterVariantLookup(t *testing.T) {
	f := newRouterFixture(t)
	variant := f.addVariant(t, "SKU-010", "100", "50", "4")

	rec := f.do(t, http.MethodGet, "/api/v1/catalog/variants/"+variant.ID.String(), nil, false)
	require.Equal(t, http.StatusOK, rec.Code)

	bySKU := f.do(t, http.MethodGet, "/api/v1/catalog/variants/SKU-010", nil, false)
	require.Equal(t, http.StatusOK, bySKU.Code)

	missing := f.do(t, http.MethodGet, "/api/v1/catalog/variants/"+uuid.NewString(), nil, false)
	require.Equal(t, http.StatusNotFound, missing.Code)
}

func TestRouterMetricsEndpoint(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}
