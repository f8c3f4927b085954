package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dukkonapp/dukkon-backend/pkg/db/models"
)

// Repository defines persistence operations for products, variants and
// price tiers. All reads are tenant-scoped.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindVariant(ctx context.Context, tenantID, variantID uuid.UUID) (*models.ProductVariant, error)
	FindVariantBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (*models.ProductVariant, error)
	FindVariantByBarcode(ctx context.Context, tenantID uuid.UUID, barcode string) (*models.ProductVariant, error)
	FindProduct(ctx context.Context, tenantID, productID uuid.UUID) (*models.Product, error)
	FindPriceTiers(ctx context.Context, variantID uuid.UUID) ([]models.PriceTier, error)
	ListVariants(ctx context.Context, tenantID uuid.UUID, filters VariantFilters) ([]models.ProductVariant, error)
	AdjustStock(ctx context.Context, variantID uuid.UUID, delta decimal.Decimal) error
	RestoreStock(ctx context.Context, variantID uuid.UUID, qty decimal.Decimal) error
}

// VariantFilters narrows catalog listings.
type VariantFilters struct {
	Search     string
	ActiveOnly bool
	Limit      int
}
