package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dukkonapp/dukkon-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a ledger repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Append(ctx context.Context, entry *models.CustomerLedger) (*models.CustomerLedger, error) {
	if entry.Debit.IsNegative() || entry.Credit.IsNegative() {
		return nil, fmt.Errorf("ledger entry amounts must be non-negative")
	}
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *repository) ListByCustomer(ctx context.Context, customerID uuid.UUID, limit int) ([]models.CustomerLedger, error) {
	query := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var entries []models.CustomerLedger
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ReplayBalance folds every entry from zero. The result must match the
// customer's stored balance; a mismatch means a posting bypassed the
// ledger.
func (r *repository) ReplayBalance(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	var entries []models.CustomerLedger
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at ASC").
		Find(&entries).Error
	if err != nil {
		return decimal.Zero, err
	}

	balance := decimal.Zero
	for _, entry := range entries {
		balance = balance.Sub(entry.Debit).Add(entry.Credit)
	}
	return balance, nil
}
