package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukkonapp/dukkon-backend/api/responses"
	"github.com/dukkonapp/dukkon-backend/internal/customers"
	"github.com/dukkonapp/dukkon-backend/internal/ledger"
	"github.com/dukkonapp/dukkon-backend/pkg/db/models"
	pkgerrors "github.com/dukkonapp/dukkon-backend/pkg/errors"
	"github.com/dukkonapp/dukkon-backend/pkg/logger"
)

type customerResponse struct {
	CustomerID     uuid.UUID       `json:"customer_id"`
	Name           string          `json:"name"`
	Phone          *string         `json:"phone,omitempty"`
	Email          *string         `json:"email,omitempty"`
	PriceTier      string          `json:"price_tier"`
	Balance        decimal.Decimal `json:"balance"`
	CreditLimit    decimal.Decimal `json:"credit_limit"`
	MaxDebtAllowed decimal.Decimal `json:"max_debt_allowed"`
	LoyaltyPoints  decimal.Decimal `json:"loyalty_points"`
	CreatedAt      time.Time       `json:"created_at"`
}

type ledgerEntryResponse struct {
	EntryID         uuid.UUID       `json:"entry_id"`
	SaleID          *uuid.UUID      `json:"sale_id,omitempty"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	BalanceAfter    decimal.Decimal `json:"balance_after"`
	Description     *string         `json:"description,omitempty"`
	ReferenceNumber *string         `json:"reference_number,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// CustomersList searches the tenant's customers. The debtors filter
// keeps only customers with a negative balance.
func CustomersList(repo customers.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customers repository unavailable"))
			return
		}

		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		q := r.URL.Query()
		filters := customers.Filters{
			Search:  q.Get("search"),
			Debtors: q.Get("debtors") == "true",
		}
		if raw := q.Get("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid limit"))
				return
			}
			filters.Limit = limit
		}

		list, err := repo.List(r.Context(), tenantID, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]customerResponse, 0, len(list))
		for i := range list {
			out = append(out, newCustomerResponse(&list[i]))
		}
		responses.WriteSuccess(w, map[string]any{"customers": out})
	}
}

// CustomerDetail returns one customer with the current balance.
func CustomerDetail(repo customers.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customers repository unavailable"))
			return
		}

		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customerID, err := uuid.Parse(chi.URLParam(r, "customerId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid customer identifier"))
			return
		}

		customer, err := repo.Find(r.Context(), tenantID, customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCustomerResponse(customer))
	}
}

// CustomerLedger lists the customer's debt history, newest first. The
// customer lookup runs first so foreign tenants cannot read entries.
func CustomerLedger(customersRepo customers.Repository, ledgerRepo ledger.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if customersRepo == nil || ledgerRepo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger repository unavailable"))
			return
		}

		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customerID, err := uuid.Parse(chi.URLParam(r, "customerId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid customer identifier"))
			return
		}

		customer, err := customersRepo.Find(r.Context(), tenantID, customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			limit, err = strconv.Atoi(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid limit"))
				return
			}
		}

		entries, err := ledgerRepo.ListByCustomer(r.Context(), customer.ID, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]ledgerEntryResponse, 0, len(entries))
		for _, entry := range entries {
			out = append(out, ledgerEntryResponse{
				EntryID:         entry.ID,
				SaleID:          entry.SaleID,
				Debit:           entry.Debit,
				Credit:          entry.Credit,
				BalanceAfter:    entry.BalanceAfter,
				Description:     entry.Description,
				ReferenceNumber: entry.ReferenceNumber,
				CreatedAt:       entry.CreatedAt,
			})
		}

		responses.WriteSuccess(w, map[string]any{
			"balance": customer.Balance,
			"entries": out,
		})
	}
}

func newCustomerResponse(customer *models.Customer) customerResponse {
	if customer == nil {
		return customerResponse{}
	}
	return customerResponse{
		CustomerID:     customer.ID,
		Name:           customer.Name,
		Phone:          customer.Phone,
		Email:          customer.Email,
		PriceTier:      string(customer.PriceTier),
		Balance:        customer.Balance,
		CreditLimit:    customer.CreditLimit,
		MaxDebtAllowed: customer.MaxDebtAllowed,
		LoyaltyPoints:  customer.LoyaltyPoints,
		CreatedAt:      customer.CreatedAt,
	}
}
