package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerLedger is the append-only debt/payment record. BalanceAfter
// must equal the customer's balance right after applying debit-credit;
// replaying all entries from zero reconstructs the stored balance.
type CustomerLedger struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID uuid.UUID  `gorm:"column:customer_id;type:uuid;not null;index:idx_ledger_customer_date"`
	SaleID     *uuid.UUID `gorm:"column:sale_id;type:uuid"`

	Debit        decimal.Decimal `gorm:"column:debit;type:numeric(14,2);not null;default:0"`
	Credit       decimal.Decimal `gorm:"column:credit;type:numeric(14,2);not null;default:0"`
	BalanceAfter decimal.Decimal `gorm:"column:balance_after;type:numeric(14,2);not null"`

	Description     *string `gorm:"column:description"`
	ReferenceNumber *string `gorm:"column:reference_number"`

	CreatedBy *uuid.UUID `gorm:"column:created_by;type:uuid"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime;index:idx_ledger_customer_date"`
}

// TableName keeps GORM on the singular table the migrations create.
func (CustomerLedger) TableName() string {
	return "customer_ledger"
}
