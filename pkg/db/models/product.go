package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukkonapp/dukkon-backend/pkg/enums"
	"github.com/dukkonapp/dukkon-backend/pkg/types"
)

// Product is the tenant-scoped listing a variant belongs to. Tax rate
// lives here, not on the variant.
type Product struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID    uuid.UUID         `gorm:"column:tenant_id;type:uuid;not null;index"`
	Name        string            `gorm:"column:name;not null"`
	Description *string           `gorm:"column:description"`
	Type        enums.ProductType `gorm:"column:type;type:product_type;not null;default:'simple'"`

	BasePrice decimal.Decimal `gorm:"column:base_price;type:numeric(14,2);not null;default:0"`
	BaseCost  decimal.Decimal `gorm:"column:base_cost;type:numeric(14,2);not null;default:0"`
	TaxRate   decimal.Decimal `gorm:"column:tax_rate;type:numeric(5,2);not null;default:0"`

	Metadata types.Attributes `gorm:"column:metadata;type:jsonb;serializer:json"`

	// Recipe holds the ingredient decomposition for prepared-food
	// products; empty everywhere else.
	Recipe types.Recipe `gorm:"column:recipe;type:jsonb;serializer:json"`

	IsActive bool             `gorm:"column:is_active;not null;default:true;index"`
	Variants []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
