package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dukkonapp/dukkon-backend/pkg/db/models"
)

// Repository defines append and read operations on the customer ledger.
// Entries are never updated or deleted.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Append(ctx context.Context, entry *models.CustomerLedger) (*models.CustomerLedger, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, limit int) ([]models.CustomerLedger, error)
	ReplayBalance(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error)
}
