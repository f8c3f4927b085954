package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukkonapp/dukkon-backend/api/responses"
	"github.com/dukkonapp/dukkon-backend/api/validators"
	"github.com/dukkonapp/dukkon-backend/internal/cart"
	pkgerrors "github.com/dukkonapp/dukkon-backend/pkg/errors"
	"github.com/dukkonapp/dukkon-backend/pkg/logger"
)

// CartCalculator is the pricing surface the cart endpoint needs.
type CartCalculator interface {
	Calculate(ctx context.Context, input cart.Input) (*cart.Result, error)
}

type cartLineRequest struct {
	VariantID       uuid.UUID        `json:"variant_id" validate:"required"`
	Quantity        decimal.Decimal  `json:"quantity" validate:"required"`
	DiscountPercent *decimal.Decimal `json:"discount_percent,omitempty"`
}

type cartCalculateRequest struct {
	CustomerID *uuid.UUID        `json:"customer_id,omitempty"`
	Lines      []cartLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// CartCalculate prices a cart without touching stock or balances.
func CartCalculate(calc CartCalculator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if calc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart calculator unavailable"))
			return
		}

		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartCalculateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := calc.Calculate(r.Context(), cart.Input{
			TenantID:   tenantID,
			CustomerID: payload.CustomerID,
			Lines:      toCartLines(payload.Lines),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func toCartLines(lines []cartLineRequest) []cart.LineInput {
	out := make([]cart.LineInput, 0, len(lines))
	for _, line := range lines {
		in := cart.LineInput{
			VariantID: line.VariantID,
			Quantity:  line.Quantity,
		}
		if line.DiscountPercent != nil {
			in.DiscountPercent = *line.DiscountPercent
		}
		out = append(out, in)
	}
	return out
}
