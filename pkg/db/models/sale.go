package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukkonapp/dukkon-backend/pkg/enums"
)

// Sale is the checkout commit unit. Once completed it is immutable
// history; refunds create inverse movements under a new status.
type Sale struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TenantID   uuid.UUID  `gorm:"column:tenant_id;type:uuid;not null;index:idx_sales_tenant_date"`
	CashierID  uuid.UUID  `gorm:"column:cashier_id;type:uuid;not null;index"`
	CustomerID *uuid.UUID `gorm:"column:customer_id;type:uuid;index"`
	BranchID   *uuid.UUID `gorm:"column:branch_id;type:uuid"`

	Subtotal       decimal.Decimal `gorm:"column:subtotal;type:numeric(14,2);not null;default:0"`
	TaxAmount      decimal.Decimal `gorm:"column:tax_amount;type:numeric(14,2);not null;default:0"`
	DiscountAmount decimal.Decimal `gorm:"column:discount_amount;type:numeric(14,2);not null;default:0"`
	ServiceCharge  decimal.Decimal `gorm:"column:service_charge;type:numeric(14,2);not null;default:0"`
	TotalAmount    decimal.Decimal `gorm:"column:total_amount;type:numeric(14,2);not null;default:0"`

	PaymentMethod enums.PaymentMethod `gorm:"column:payment_method;type:payment_method;not null;default:'cash'"`
	Status        enums.SaleStatus    `gorm:"column:status;type:sale_status;not null;default:'completed'"`

	IsDebt     bool            `gorm:"column:is_debt;not null;default:false;index"`
	DebtAmount decimal.Decimal `gorm:"column:debt_amount;type:numeric(14,2);not null;default:0"`

	Notes         *string `gorm:"column:notes"`
	ReceiptNumber string  `gorm:"column:receipt_number;not null;index"`

	Items []SaleItem `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index:idx_sales_tenant_date"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
