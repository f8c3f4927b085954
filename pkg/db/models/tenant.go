package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukkonapp/dukkon-backend/pkg/enums"
	"github.com/dukkonapp/dukkon-backend/pkg/types"
)

// Tenant is an isolated business account. Its business type drives the
// per-industry pricing and stock rules.
type Tenant struct {
	ID           uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string             `gorm:"column:name;not null"`
	BusinessType enums.BusinessType `gorm:"column:business_type;type:business_type;not null;default:'retail'"`

	BaseCurrency string          `gorm:"column:base_currency;not null;default:'UZS'"`
	CurrencyRate decimal.Decimal `gorm:"column:currency_rate;type:numeric(14,2);not null;default:1"`

	// MinMarginPercent is the margin-guard floor: any sale line whose
	// margin falls below it blocks the whole checkout.
	MinMarginPercent decimal.Decimal `gorm:"column:min_margin_percent;type:numeric(5,2);not null;default:5"`

	// ServiceChargePercent applies to hospitality tenants only.
	ServiceChargePercent decimal.Decimal `gorm:"column:service_charge_percent;type:numeric(5,2);not null;default:10"`

	Config types.Attributes `gorm:"column:config;type:jsonb;serializer:json"`

	Description *string `gorm:"column:description"`
	Address     *string `gorm:"column:address"`
	Phone       *string `gorm:"column:phone"`
	Email       *string `gorm:"column:email"`

	IsActive  bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
