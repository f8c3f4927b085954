package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukkonapp/dukkon-backend/pkg/db/models"
	"github.com/dukkonapp/dukkon-backend/pkg/enums"
)

// LineInput is one requested cart line.
type LineInput struct {
	VariantID       uuid.UUID       `json:"variant_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

// Input is a cart pricing request.
type Input struct {
	TenantID   uuid.UUID
	CustomerID *uuid.UUID
	Lines      []LineInput
}

// LineDetail is one priced line of the quote.
type LineDetail struct {
	VariantID       uuid.UUID       `json:"variant_id"`
	SKU             string          `json:"sku"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	CostPrice       decimal.Decimal `json:"cost_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Total           decimal.Decimal `json:"total"`
	TierID          *uuid.UUID      `json:"tier_id,omitempty"`

	// Product backs recipe decomposition at checkout; not part of the
	// quote payload.
	Product *models.Product `json:"-"`
}

// Result is a priced cart. It is a quote only; nothing in the catalog
// changes while producing it.
type Result struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	ServiceCharge  decimal.Decimal `json:"service_charge"`
	Total          decimal.Decimal `json:"total"`
	Lines          []LineDetail    `json:"lines"`
	AppliedTiers   []uuid.UUID     `json:"applied_tiers"`

	BusinessType enums.BusinessType `json:"-"`
	CustomerTier enums.CustomerTier `json:"-"`
}
