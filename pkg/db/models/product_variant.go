package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/dukkonapp/dukkon-backend/pkg/types"
)

// ProductVariant is the concretely sellable SKU. Stock quantity never
// goes negative; the checkout path enforces that with guarded updates.
type ProductVariant struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;index"`
	TenantID  uuid.UUID `gorm:"column:tenant_id;type:uuid;not null;uniqueIndex:idx_variants_tenant_sku"`
	SKU       string    `gorm:"column:sku;not null;uniqueIndex:idx_variants_tenant_sku"`

	Price     decimal.Decimal `gorm:"column:price;type:numeric(14,2);not null;default:0"`
	CostPrice decimal.Decimal `gorm:"column:cost_price;type:numeric(14,2);not null;default:0"`

	StockQuantity decimal.Decimal  `gorm:"column:stock_quantity;type:numeric(14,3);not null;default:0"`
	MinStockLevel decimal.Decimal  `gorm:"column:min_stock_level;type:numeric(14,3);not null;default:0"`
	MaxStockLevel *decimal.Decimal `gorm:"column:max_stock_level;type:numeric(14,3)"`

	Attributes     types.Attributes `gorm:"column:attributes;type:jsonb;serializer:json"`
	BarcodeAliases pq.StringArray   `gorm:"column:barcode_aliases;type:text[]"`

	// VelocityScore is the rolling average of units sold per day.
	VelocityScore decimal.Decimal `gorm:"column:velocity_score;type:numeric(14,3);not null;default:0"`

	IsActive bool `gorm:"column:is_active;not null;default:true;index"`

	Product    *Product    `gorm:"foreignKey:ProductID"`
	PriceTiers []PriceTier `gorm:"foreignKey:VariantID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
