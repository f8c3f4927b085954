package checkout

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukkonapp/dukkon-backend/internal/cart"
	"github.com/dukkonapp/dukkon-backend/pkg/enums"
)

// Input is one checkout request.
type Input struct {
	TenantID   uuid.UUID
	CashierID  uuid.UUID
	CustomerID *uuid.UUID
	BranchID   *uuid.UUID

	Lines         []cart.LineInput
	PaymentMethod enums.PaymentMethod

	// ExplicitDebtAmount overrides the cart total as the debt posted for
	// a debt payment; nil means the full total becomes debt.
	ExplicitDebtAmount *decimal.Decimal
	Notes              *string
}

// RefundInput identifies the sale to reverse.
type RefundInput struct {
	TenantID  uuid.UUID
	SaleID    uuid.UUID
	CashierID uuid.UUID
	Reason    *string
}
