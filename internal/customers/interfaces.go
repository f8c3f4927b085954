package customers

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dukkonapp/dukkon-backend/pkg/db/models"
)

// Repository defines persistence operations for customer accounts.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Find(ctx context.Context, tenantID, customerID uuid.UUID) (*models.Customer, error)
	Create(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	List(ctx context.Context, tenantID uuid.UUID, filters Filters) ([]models.Customer, error)
	// UpdateBalance swaps the stored balance only when it still equals
	// expected. Zero rows means a concurrent posting won and the caller
	// must retry or abort.
	UpdateBalance(ctx context.Context, customerID uuid.UUID, expected, next decimal.Decimal) error
}

// Filters narrows customer listings.
type Filters struct {
	Search  string
	Debtors bool
	Limit   int
}

// DebtCeiling returns the effective debt limit for a customer:
// max_debt_allowed when set, else credit_limit, else zero.
func DebtCeiling(c *models.Customer) decimal.Decimal {
	if c == nil {
		return decimal.Zero
	}
	if c.MaxDebtAllowed.Sign() > 0 {
		return c.MaxDebtAllowed
	}
	if c.CreditLimit.Sign() > 0 {
		return c.CreditLimit
	}
	return decimal.Zero
}
