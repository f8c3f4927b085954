package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dukkonapp/dukkon-backend/pkg/db/models"
	pkgerrors "github.com/dukkonapp/dukkon-backend/pkg/errors"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindVariant(ctx context.Context, tenantID, variantID uuid.UUID) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("id = ? AND tenant_id = ? AND is_active = ?", variantID, tenantID, true).
		First(&variant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "variant %s not found", variantID)
		}
		return nil, err
	}
	return &variant, nil
}

func (r *repository) FindVariantBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("tenant_id = ? AND sku = ? AND is_active = ?", tenantID, sku, true).
		First(&variant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "sku %q not found", sku)
		}
		return nil, err
	}
	return &variant, nil
}

func (r *repository) FindVariantByBarcode(ctx context.Context, tenantID uuid.UUID, barcode string) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("tenant_id = ? AND is_active = ? AND ? = ANY(barcode_aliases)", tenantID, true, barcode).
		First(&variant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "barcode %q not found", barcode)
		}
		return nil, err
	}
	return &variant, nil
}

func (r *repository) FindProduct(ctx context.Context, tenantID, productID uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Variants").
		Where("id = ? AND tenant_id = ?", productID, tenantID).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "product %s not found", productID)
		}
		return nil, err
	}
	return &product, nil
}

func (r *repository) FindPriceTiers(ctx context.Context, variantID uuid.UUID) ([]models.PriceTier, error) {
	var tiers []models.PriceTier
	err := r.db.WithContext(ctx).
		Where("variant_id = ?", variantID).
		Order("min_quantity ASC").
		Find(&tiers).Error
	if err != nil {
		return nil, err
	}
	return tiers, nil
}

func (r *repository) ListVariants(ctx context.Context, tenantID uuid.UUID, filters VariantFilters) ([]models.ProductVariant, error) {
	query := r.db.WithContext(ctx).
		Preload("Product").
		Where("tenant_id = ?", tenantID)

	if filters.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filters.Search != "" {
		like := "%" + filters.Search + "%"
		query = query.Where("sku LIKE ?", like)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}

	var variants []models.ProductVariant
	if err := query.Order("sku ASC").Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}

// AdjustStock decrements stock by delta with a guarded update. The guard
// rejects the write instead of letting stock go negative, so a zero row
// count under sufficient prior reads means a concurrent sale won.
func (r *repository) AdjustStock(ctx context.Context, variantID uuid.UUID, delta decimal.Decimal) error {
	if delta.Sign() <= 0 {
		return fmt.Errorf("stock delta must be positive, got %s", delta)
	}

	res := r.db.WithContext(ctx).
		Model(&models.ProductVariant{}).
		Where("id = ? AND stock_quantity >= ?", variantID, delta).
		Update("stock_quantity", gorm.Expr("stock_quantity - ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.Newf(pkgerrors.CodeInsufficientStock, "insufficient stock for variant %s", variantID)
	}
	return nil
}

func (r *repository) RestoreStock(ctx context.Context, variantID uuid.UUID, qty decimal.Decimal) error {
	if qty.Sign() <= 0 {
		return fmt.Errorf("restore quantity must be positive, got %s", qty)
	}

	res := r.db.WithContext(ctx).
		Model(&models.ProductVariant{}).
		Where("id = ?", variantID).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.Newf(pkgerrors.CodeNotFound, "variant %s not found", variantID)
	}
	return nil
}
