package customers

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dukkonapp/dukkon-backend/pkg/db/models"
	"github.com/dukkonapp/dukkon-backend/pkg/enums"
	pkgerrors "github.com/dukkonapp/dukkon-backend/pkg/errors"
)

func setupCustomersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:customers_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS customers (
  id TEXT PRIMARY KEY,
  tenant_id TEXT NOT NULL,
  name TEXT NOT NULL,
  phone TEXT,
  email TEXT,
  price_tier TEXT NOT NULL DEFAULT 'retail',
  balance NUMERIC NOT NULL DEFAULT 0,
  credit_limit NUMERIC NOT NULL DEFAULT 0,
  max_debt_allowed NUMERIC NOT NULL DEFAULT 0,
  loyalty_points NUMERIC NOT NULL DEFAULT 0,
  metadata TEXT,
  created_at DATETIME,
  updated_at DATETIME
);
CREATE UNIQUE INDEX idx_customers_tenant_phone ON customers (tenant_id, phone) WHERE phone IS NOT NULL;`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func seedCustomer(t *testing.T, db *gorm.DB, tenantID uuid.UUID, balance string) *models.Customer {
	t.Helper()

	customer := &models.Customer{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Name:      "Aziz Karimov",
		PriceTier: enums.CustomerTierRetail,
		Balance:   decimal.RequireFromString(balance),
	}
	require.NoError(t, db.Create(customer).Error)
	return customer
}

func TestFindScopedToTenant(t *testing.T) {
	db := setupCustomersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	customer := seedCustomer(t, db, tenantID, "0")

	found, err := repo.Find(ctx, tenantID, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, customer.ID, found.ID)

	_, err = repo.Find(ctx, uuid.New(), customer.ID)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestCreateDuplicatePhoneConflicts(t *testing.T) {
	db := setupCustomersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	phone := "+998901234567"

	first := &models.Customer{
		ID:       uuid.New(),
		TenantID: tenantID,
		Name:     "Aziz Karimov",
		Phone:    &phone,
	}
	_, err := repo.Create(ctx, first)
	require.NoError(t, err)

	second := &models.Customer{
		ID:       uuid.New(),
		TenantID: tenantID,
		Name:     "Second Aziz",
		Phone:    &phone,
	}
	_, err = repo.Create(ctx, second)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeConflict, appErr.Code())
}

func TestUpdateBalanceOptimistic(t *testing.T) {
	db := setupCustomersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	customer := seedCustomer(t, db, tenantID, "-50000")

	err := repo.UpdateBalance(ctx, customer.ID,
		decimal.NewFromInt(-50000), decimal.NewFromInt(-110000))
	require.NoError(t, err)

	// second writer still holding the stale prior balance loses and is
	// told to retry the transaction
	err = repo.UpdateBalance(ctx, customer.ID,
		decimal.NewFromInt(-50000), decimal.NewFromInt(-80000))
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeTransaction, appErr.Code())
	assert.True(t, pkgerrors.MetadataFor(appErr.Code()).Retryable)

	var after models.Customer
	require.NoError(t, db.Where("id = ?", customer.ID).First(&after).Error)
	assert.True(t, after.Balance.Equal(decimal.NewFromInt(-110000)))
}

func TestListDebtors(t *testing.T) {
	db := setupCustomersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	seedCustomer(t, db, tenantID, "-20000")
	seedCustomer(t, db, tenantID, "0")
	seedCustomer(t, db, tenantID, "15000")

	debtors, err := repo.List(ctx, tenantID, Filters{Debtors: true})
	require.NoError(t, err)
	require.Len(t, debtors, 1)
	assert.True(t, debtors[0].Balance.IsNegative())
}

func TestDebtCeilingPrecedence(t *testing.T) {
	cases := []struct {
		name           string
		maxDebtAllowed string
		creditLimit    string
		want           string
	}{
		{"max debt wins", "100000", "50000", "100000"},
		{"credit limit fallback", "0", "50000", "50000"},
		{"no limits", "0", "0", "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			customer := &models.Customer{
				MaxDebtAllowed: decimal.RequireFromString(tc.maxDebtAllowed),
				CreditLimit:    decimal.RequireFromString(tc.creditLimit),
			}
			got := DebtCeiling(customer)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)),
				"got %s want %s", got, tc.want)
		})
	}

	assert.True(t, DebtCeiling(nil).IsZero())
}
