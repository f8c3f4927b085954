package tenants

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dukkonapp/dukkon-backend/pkg/db/models"
	"github.com/dukkonapp/dukkon-backend/pkg/enums"
	"github.com/dukkonapp/dukkon-backend/pkg/types"
)

// Repository defines persistence operations for tenant accounts.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Find(ctx context.Context, tenantID uuid.UUID) (*models.Tenant, error)
	UpdateSettings(ctx context.Context, tenantID uuid.UUID, updates map[string]any) error
}

// Policy is the per-tenant pricing posture checkout reads on every run.
type Policy struct {
	TenantID             uuid.UUID
	BusinessType         enums.BusinessType
	BaseCurrency         string
	CurrencyRate         decimal.Decimal
	MinMarginPercent     decimal.Decimal
	ServiceChargePercent decimal.Decimal
}

// Service exposes tenant policy reads and settings updates.
type Service interface {
	GetPolicy(ctx context.Context, tenantID uuid.UUID) (*Policy, error)
	GetTenant(ctx context.Context, tenantID uuid.UUID) (*models.Tenant, error)
	UpdateSettings(ctx context.Context, tenantID uuid.UUID, input UpdateSettingsInput) (*models.Tenant, error)
}

// UpdateSettingsInput carries the mutable policy fields. Nil fields are
// left untouched.
type UpdateSettingsInput struct {
	MinMarginPercent     *decimal.Decimal
	ServiceChargePercent *decimal.Decimal
	CurrencyRate         *decimal.Decimal
	BusinessType         *enums.BusinessType
	Config               types.Attributes
}
