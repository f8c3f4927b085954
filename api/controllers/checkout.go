package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukkonapp/dukkon-backend/api/responses"
	"github.com/dukkonapp/dukkon-backend/api/validators"
	"github.com/dukkonapp/dukkon-backend/internal/cart"
	checkoutsvc "github.com/dukkonapp/dukkon-backend/internal/checkout"
	"github.com/dukkonapp/dukkon-backend/pkg/enums"
	pkgerrors "github.com/dukkonapp/dukkon-backend/pkg/errors"
	"github.com/dukkonapp/dukkon-backend/pkg/logger"
)

type checkoutRequest struct {
	CustomerID    *uuid.UUID        `json:"customer_id,omitempty"`
	BranchID      *uuid.UUID        `json:"branch_id,omitempty"`
	Lines         []cartLineRequest `json:"lines" validate:"required,min=1,dive"`
	PaymentMethod string            `json:"payment_method" validate:"required"`
	DebtAmount    *decimal.Decimal  `json:"debt_amount,omitempty"`
	Notes         *string           `json:"notes,omitempty"`
}

type refundRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// Checkout commits a priced cart: stock moves, the sale is recorded and
// any debt is posted to the customer ledger, all in one transaction.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		cashierID, err := cashierIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParsePaymentMethod(payload.PaymentMethod)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
			return
		}

		lines := make([]cart.LineInput, 0, len(payload.Lines))
		for _, line := range payload.Lines {
			in := cart.LineInput{
				VariantID: line.VariantID,
				Quantity:  line.Quantity,
			}
			if line.DiscountPercent != nil {
				in.DiscountPercent = *line.DiscountPercent
			}
			lines = append(lines, in)
		}

		sale, err := svc.Execute(r.Context(), checkoutsvc.Input{
			TenantID:           tenantID,
			CashierID:          cashierID,
			CustomerID:         payload.CustomerID,
			BranchID:           payload.BranchID,
			Lines:              lines,
			PaymentMethod:      method,
			ExplicitDebtAmount: payload.DebtAmount,
			Notes:              payload.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newSaleResponse(sale))
	}
}

// Refund reverses a completed sale. Stock comes back and debt sales get
// a compensating credit posting.
func Refund(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		cashierID, err := cashierIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		saleID, err := uuid.Parse(chi.URLParam(r, "saleId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid sale identifier"))
			return
		}

		var payload refundRequest
		if r.ContentLength > 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		sale, err := svc.Refund(r.Context(), checkoutsvc.RefundInput{
			TenantID:  tenantID,
			SaleID:    saleID,
			CashierID: cashierID,
			Reason:    payload.Reason,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newSaleResponse(sale))
	}
}
