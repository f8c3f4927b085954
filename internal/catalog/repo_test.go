package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dukkonapp/dukkon-backend/pkg/db/models"
	pkgerrors "github.com/dukkonapp/dukkon-backend/pkg/errors"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:catalog_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	products := `
CREATE TABLE IF NOT EXISTS products (
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
);`
	variants := `
CREATE TABLE IF NOT EXISTS product_variants (
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
);`
	tiers := `
CREATE TABLE IF NOT EXISTS price_tiers (
  id TEXT PRIMARY KEY,
  variant_id TEXT NOT NULL,
  tenant_id TEXT NOT NULL,
  tier_type TEXT NOT NULL DEFAULT 'retail',
  min_quantity NUMERIC NOT NULL DEFAULT 1,
  max_quantity NUMERIC,
  price NUMERIC NOT NULL,
  customer_group TEXT,
  created_at DATETIME
);`

	for _, stmt := range []string{products, variants, tiers} {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func seedVariant(t *testing.T, db *gorm.DB, tenantID uuid.UUID, sku string, stock string) *models.ProductVariant {
	t.Helper()

	product := &models.Product{
		ID:       uuid.New(),
		TenantID: tenantID,
		Name:     "Test Product " + sku,
		TaxRate:  decimal.NewFromInt(12),
	}
	require.NoError(t, db.Create(product).Error)

	variant := &models.ProductVariant{
		ID:            uuid.New(),
		ProductID:     product.ID,
		TenantID:      tenantID,
		SKU:           sku,
		Price:         decimal.NewFromInt(1500),
		CostPrice:     decimal.NewFromInt(900),
		StockQuantity: decimal.RequireFromString(stock),
		IsActive:      true,
	}
	require.NoError(t, db.Create(variant).Error)
	return variant
}

func TestFindVariantScopedToTenant(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	otherTenant := uuid.New()
	variant := seedVariant(t, db, tenantID, "SKU-001", "10")

	found, err := repo.FindVariant(ctx, tenantID, variant.ID)
	require.NoError(t, err)
	assert.Equal(t, variant.ID, found.ID)
	require.NotNil(t, found.Product)
	assert.True(t, found.Product.TaxRate.Equal(decimal.NewFromInt(12)))

	_, err = repo.FindVariant(ctx, otherTenant, variant.ID)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestFindVariantBySKU(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	variant := seedVariant(t, db, tenantID, "SKU-XYZ", "5")

	found, err := repo.FindVariantBySKU(ctx, tenantID, "SKU-XYZ")
	require.NoError(t, err)
	assert.Equal(t, variant.ID, found.ID)

	_, err = repo.FindVariantBySKU(ctx, tenantID, "SKU-MISSING")
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestFindVariantIgnoresInactive(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	variant := seedVariant(t, db, tenantID, "SKU-OFF", "5")
	require.NoError(t, db.Model(&models.ProductVariant{}).
		Where("id = ?", variant.ID).
		Update("is_active", false).Error)

	_, err := repo.FindVariant(ctx, tenantID, variant.ID)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestFindPriceTiersOrdered(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	variant := seedVariant(t, db, tenantID, "SKU-TIER", "100")

	for _, minQty := range []int64{50, 1, 10} {
		tier := &models.PriceTier{
			ID:          uuid.New(),
			VariantID:   variant.ID,
			TenantID:    tenantID,
			MinQuantity: decimal.NewFromInt(minQty),
			Price:       decimal.NewFromInt(1000 - minQty),
		}
		require.NoError(t, db.Create(tier).Error)
	}

	tiers, err := repo.FindPriceTiers(ctx, variant.ID)
	require.NoError(t, err)
	require.Len(t, tiers, 3)
	assert.True(t, tiers[0].MinQuantity.Equal(decimal.NewFromInt(1)))
	assert.True(t, tiers[2].MinQuantity.Equal(decimal.NewFromInt(50)))
}

func TestAdjustStockGuardsAgainstOversell(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	variant := seedVariant(t, db, tenantID, "SKU-STOCK", "10")

	require.NoError(t, repo.AdjustStock(ctx, variant.ID, decimal.NewFromInt(4)))

	err := repo.AdjustStock(ctx, variant.ID, decimal.NewFromInt(7))
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeInsufficientStock, appErr.Code())

	var after models.ProductVariant
	require.NoError(t, db.Where("id = ?", variant.ID).First(&after).Error)
	assert.True(t, after.StockQuantity.Equal(decimal.NewFromInt(6)), "stock should remain 6, got %s", after.StockQuantity)
}

func TestAdjustStockFractionalQuantities(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	variant := seedVariant(t, db, tenantID, "SKU-KG", "2.500")

	require.NoError(t, repo.AdjustStock(ctx, variant.ID, decimal.RequireFromString("1.250")))

	var after models.ProductVariant
	require.NoError(t, db.Where("id = ?", variant.ID).First(&after).Error)
	assert.True(t, after.StockQuantity.Equal(decimal.RequireFromString("1.25")))
}

func TestRestoreStock(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	variant := seedVariant(t, db, tenantID, "SKU-RET", "3")

	require.NoError(t, repo.RestoreStock(ctx, variant.ID, decimal.NewFromInt(2)))

	var after models.ProductVariant
	require.NoError(t, db.Where("id = ?", variant.ID).First(&after).Error)
	assert.True(t, after.StockQuantity.Equal(decimal.NewFromInt(5)))

	err := repo.RestoreStock(ctx, uuid.New(), decimal.NewFromInt(1))
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestAdjustStockRejectsNonPositiveDelta(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	err := repo.AdjustStock(ctx, uuid.New(), decimal.Zero)
	require.Error(t, err)
}
