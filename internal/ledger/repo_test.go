package ledger

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dukkonapp/dukkon-backend/pkg/db/models"
)

func setupLedgerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:ledger_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS customer_ledger (
  id TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL,
  sale_id TEXT,
  debit NUMERIC NOT NULL DEFAULT 0,
  credit NUMERIC NOT NULL DEFAULT 0,
  balance_after NUMERIC NOT NULL,
  description TEXT,
  reference_number TEXT,
  created_by TEXT,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func TestAppendAndReplay(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	customerID := uuid.New()
	base := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)

	// debt sale of 60000, then a 25000 repayment
	postings := []struct {
		debit  string
		credit string
		after  string
		offset time.Duration
	}{
		{"60000", "0", "-60000", 0},
		{"0", "25000", "-35000", time.Minute},
	}

	for _, p := range postings {
		entry := &models.CustomerLedger{
			ID:           uuid.New(),
			CustomerID:   customerID,
			Debit:        decimal.RequireFromString(p.debit),
			Credit:       decimal.RequireFromString(p.credit),
			BalanceAfter: decimal.RequireFromString(p.after),
			CreatedAt:    base.Add(p.offset),
		}
		_, err := repo.Append(ctx, entry)
		require.NoError(t, err)
	}

	balance, err := repo.ReplayBalance(ctx, customerID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(-35000)), "got %s", balance)

	entries, err := repo.ListByCustomer(ctx, customerID, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// newest first
	assert.True(t, entries[0].Credit.Equal(decimal.NewFromInt(25000)))
}

func TestAppendWritesSingularTable(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewRepository(db)

	entry := &models.CustomerLedger{
		ID:           uuid.New(),
		CustomerID:   uuid.New(),
		Debit:        decimal.NewFromInt(100),
		BalanceAfter: decimal.NewFromInt(-100),
	}
	_, err := repo.Append(context.Background(), entry)
	require.NoError(t, err)

	assert.Equal(t, "customer_ledger", models.CustomerLedger{}.TableName())

	var count int64
	require.NoError(t, db.Raw("SELECT COUNT(*) FROM customer_ledger").Scan(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAppendRejectsNegativeAmounts(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewRepository(db)

	entry := &models.CustomerLedger{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		Debit:      decimal.NewFromInt(-10),
	}
	_, err := repo.Append(context.Background(), entry)
	require.Error(t, err)
}

func TestReplayBalanceEmpty(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewRepository(db)

	balance, err := repo.ReplayBalance(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}
