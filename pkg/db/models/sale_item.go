package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleItem snapshots one priced cart line. CostPrice is captured at sale
// time and never recomputed.
type SaleItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SaleID    uuid.UUID `gorm:"column:sale_id;type:uuid;not null;index"`
	VariantID uuid.UUID `gorm:"column:variant_id;type:uuid;not null;index"`

	Quantity  decimal.Decimal `gorm:"column:quantity;type:numeric(14,3);not null;default:1"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(14,2);not null"`
	CostPrice decimal.Decimal `gorm:"column:cost_price;type:numeric(14,2);not null;default:0"`
	Total     decimal.Decimal `gorm:"column:total;type:numeric(14,2);not null"`

	DiscountPercent decimal.Decimal `gorm:"column:discount_percent;type:numeric(5,2);not null;default:0"`
	DiscountAmount  decimal.Decimal `gorm:"column:discount_amount;type:numeric(14,2);not null;default:0"`

	TaxRate   decimal.Decimal `gorm:"column:tax_rate;type:numeric(5,2);not null;default:0"`
	TaxAmount decimal.Decimal `gorm:"column:tax_amount;type:numeric(14,2);not null;default:0"`
}
