package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukkonapp/dukkon-backend/pkg/enums"
)

// PriceTier is a quantity- or customer-group-conditioned price override
// for a variant. Managed by catalog administration; read-only to checkout.
type PriceTier struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VariantID uuid.UUID `gorm:"column:variant_id;type:uuid;not null;index:idx_price_tiers_variant_quantity"`
	TenantID  uuid.UUID `gorm:"column:tenant_id;type:uuid;not null;index"`

	TierType enums.PriceTierType `gorm:"column:tier_type;type:price_tier_type;not null;default:'retail'"`

	MinQuantity decimal.Decimal  `gorm:"column:min_quantity;type:numeric(14,3);not null;default:1;index:idx_price_tiers_variant_quantity"`
	MaxQuantity *decimal.Decimal `gorm:"column:max_quantity;type:numeric(14,3)"`

	Price decimal.Decimal `gorm:"column:price;type:numeric(14,2);not null"`

	// CustomerGroup restricts the tier to a labelled group; empty means
	// the tier is open to any customer passing the quantity window.
	CustomerGroup *string `gorm:"column:customer_group"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
