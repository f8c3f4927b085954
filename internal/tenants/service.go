package tenants

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukkonapp/dukkon-backend/pkg/db/models"
	"github.com/dukkonapp/dukkon-backend/pkg/enums"
	pkgerrors "github.com/dukkonapp/dukkon-backend/pkg/errors"
)

type service struct {
	repo Repository
}

// NewService builds a tenant policy service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("tenants repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetTenant(ctx context.Context, tenantID uuid.UUID) (*models.Tenant, error) {
	return s.repo.Find(ctx, tenantID)
}

func (s *service) GetPolicy(ctx context.Context, tenantID uuid.UUID) (*Policy, error) {
	tenant, err := s.repo.Find(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return &Policy{
		TenantID:             tenant.ID,
		BusinessType:         tenant.BusinessType,
		BaseCurrency:         tenant.BaseCurrency,
		CurrencyRate:         tenant.CurrencyRate,
		MinMarginPercent:     tenant.MinMarginPercent,
		ServiceChargePercent: tenant.ServiceChargePercent,
	}, nil
}

func (s *service) UpdateSettings(ctx context.Context, tenantID uuid.UUID, input UpdateSettingsInput) (*models.Tenant, error) {
	updates := map[string]any{}

	if input.MinMarginPercent != nil {
		if input.MinMarginPercent.IsNegative() || input.MinMarginPercent.GreaterThan(decimal.NewFromInt(100)) {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "min margin percent must be between 0 and 100, got %s", input.MinMarginPercent)
		}
		updates["min_margin_percent"] = *input.MinMarginPercent
	}
	if input.ServiceChargePercent != nil {
		if input.ServiceChargePercent.IsNegative() || input.ServiceChargePercent.GreaterThan(decimal.NewFromInt(100)) {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "service charge percent must be between 0 and 100, got %s", input.ServiceChargePercent)
		}
		updates["service_charge_percent"] = *input.ServiceChargePercent
	}
	if input.CurrencyRate != nil {
		if input.CurrencyRate.Sign() <= 0 {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "currency rate must be positive, got %s", input.CurrencyRate)
		}
		updates["currency_rate"] = *input.CurrencyRate
	}
	if input.BusinessType != nil {
		if !input.BusinessType.IsValid() {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "unknown business type %q", string(*input.BusinessType))
		}
		updates["business_type"] = *input.BusinessType
	}
	if input.Config != nil {
		// config keys follow the schema of the business type being
		// saved, not necessarily the one currently stored
		businessType, err := s.effectiveBusinessType(ctx, tenantID, input.BusinessType)
		if err != nil {
			return nil, err
		}
		if err := input.Config.Validate(businessType); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid tenant config")
		}
		// map-based Updates skip the model's json serializer
		payload, err := json.Marshal(input.Config)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode tenant config")
		}
		updates["config"] = string(payload)
	}

	if err := s.repo.UpdateSettings(ctx, tenantID, updates); err != nil {
		return nil, err
	}
	return s.repo.Find(ctx, tenantID)
}

func (s *service) effectiveBusinessType(ctx context.Context, tenantID uuid.UUID, override *enums.BusinessType) (enums.BusinessType, error) {
	if override != nil {
		return *override, nil
	}
	tenant, err := s.repo.Find(ctx, tenantID)
	if err != nil {
		return "", err
	}
	return tenant.BusinessType, nil
}
