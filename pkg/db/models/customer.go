package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukkonapp/dukkon-backend/pkg/enums"
	"github.com/dukkonapp/dukkon-backend/pkg/types"
)

// Customer carries the running balance: negative means the customer owes
// money, positive means store credit. Balance mutates only through
// ledger postings.
type Customer struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID uuid.UUID `gorm:"column:tenant_id;type:uuid;not null;index:idx_customers_tenant_phone"`

	Name  string  `gorm:"column:name;not null"`
	Phone *string `gorm:"column:phone;index:idx_customers_tenant_phone"`
	Email *string `gorm:"column:email"`

	PriceTier enums.CustomerTier `gorm:"column:price_tier;type:customer_tier;not null;default:'retail';index"`

	Balance        decimal.Decimal `gorm:"column:balance;type:numeric(14,2);not null;default:0"`
	CreditLimit    decimal.Decimal `gorm:"column:credit_limit;type:numeric(14,2);not null;default:0"`
	MaxDebtAllowed decimal.Decimal `gorm:"column:max_debt_allowed;type:numeric(14,2);not null;default:0"`

	LoyaltyPoints decimal.Decimal `gorm:"column:loyalty_points;type:numeric(14,2);not null;default:0"`

	Metadata types.Attributes `gorm:"column:metadata;type:jsonb;serializer:json"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
