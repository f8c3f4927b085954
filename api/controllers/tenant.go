package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukkonapp/dukkon-backend/api/responses"
	"github.com/dukkonapp/dukkon-backend/api/validators"
	"github.com/dukkonapp/dukkon-backend/internal/tenants"
	"github.com/dukkonapp/dukkon-backend/pkg/db/models"
	"github.com/dukkonapp/dukkon-backend/pkg/enums"
	pkgerrors "github.com/dukkonapp/dukkon-backend/pkg/errors"
	"github.com/dukkonapp/dukkon-backend/pkg/logger"
	"github.com/dukkonapp/dukkon-backend/pkg/types"
)

type tenantSettingsResponse struct {
	TenantID             uuid.UUID       `json:"tenant_id"`
	Name                 string          `json:"name"`
	BusinessType         string          `json:"business_type"`
	BaseCurrency         string          `json:"base_currency"`
	CurrencyRate         decimal.Decimal `json:"currency_rate"`
	MinMarginPercent     decimal.Decimal `json:"min_margin_percent"`
	ServiceChargePercent decimal.Decimal `json:"service_charge_percent"`
	IsActive             bool            `json:"is_active"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

type tenantSettingsRequest struct {
	MinMarginPercent     *decimal.Decimal `json:"min_margin_percent,omitempty"`
	ServiceChargePercent *decimal.Decimal `json:"service_charge_percent,omitempty"`
	CurrencyRate         *decimal.Decimal `json:"currency_rate,omitempty"`
	BusinessType         *string          `json:"business_type,omitempty"`
	Config               types.Attributes `json:"config,omitempty"`
}

// TenantSettings returns the tenant's pricing posture.
func TenantSettings(svc tenants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tenants service unavailable"))
			return
		}

		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tenant, err := svc.GetTenant(r.Context(), tenantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newTenantSettingsResponse(tenant))
	}
}

// TenantSettingsUpdate patches the mutable policy fields. Omitted
// fields keep their current values.
func TenantSettingsUpdate(svc tenants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tenants service unavailable"))
			return
		}

		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload tenantSettingsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := tenants.UpdateSettingsInput{
			MinMarginPercent:     payload.MinMarginPercent,
			ServiceChargePercent: payload.ServiceChargePercent,
			CurrencyRate:         payload.CurrencyRate,
			Config:               payload.Config,
		}
		if payload.BusinessType != nil {
			businessType, err := enums.ParseBusinessType(*payload.BusinessType)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid business type"))
				return
			}
			input.BusinessType = &businessType
		}

		tenant, err := svc.UpdateSettings(r.Context(), tenantID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newTenantSettingsResponse(tenant))
	}
}

func newTenantSettingsResponse(tenant *models.Tenant) tenantSettingsResponse {
	if tenant == nil {
		return tenantSettingsResponse{}
	}
	return tenantSettingsResponse{
		TenantID:             tenant.ID,
		Name:                 tenant.Name,
		BusinessType:         string(tenant.BusinessType),
		BaseCurrency:         tenant.BaseCurrency,
		CurrencyRate:         tenant.CurrencyRate,
		MinMarginPercent:     tenant.MinMarginPercent,
		ServiceChargePercent: tenant.ServiceChargePercent,
		IsActive:             tenant.IsActive,
		UpdatedAt:            tenant.UpdatedAt,
	}
}
