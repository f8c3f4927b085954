package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukkonapp/dukkon-backend/api/responses"
	"github.com/dukkonapp/dukkon-backend/internal/sales"
	"github.com/dukkonapp/dukkon-backend/pkg/db/models"
	"github.com/dukkonapp/dukkon-backend/pkg/enums"
	pkgerrors "github.com/dukkonapp/dukkon-backend/pkg/errors"
	"github.com/dukkonapp/dukkon-backend/pkg/logger"
	"github.com/dukkonapp/dukkon-backend/pkg/pagination"
)

type saleItemResponse struct {
	ItemID          uuid.UUID       `json:"item_id"`
	VariantID       uuid.UUID       `json:"variant_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	Total           decimal.Decimal `json:"total"`
}

type saleResponse struct {
	SaleID        uuid.UUID          `json:"sale_id"`
	ReceiptNumber string             `json:"receipt_number"`
	CashierID     uuid.UUID          `json:"cashier_id"`
	CustomerID    *uuid.UUID         `json:"customer_id,omitempty"`
	BranchID      *uuid.UUID         `json:"branch_id,omitempty"`
	Status        string             `json:"status"`
	PaymentMethod string             `json:"payment_method"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	DiscountTotal decimal.Decimal    `json:"discount_total"`
	TaxTotal      decimal.Decimal    `json:"tax_total"`
	ServiceCharge decimal.Decimal    `json:"service_charge"`
	Total         decimal.Decimal    `json:"total"`
	IsDebt        bool               `json:"is_debt"`
	DebtAmount    decimal.Decimal    `json:"debt_amount"`
	Notes         *string            `json:"notes,omitempty"`
	Items         []saleItemResponse `json:"items"`
	CreatedAt     time.Time          `json:"created_at"`
}

type saleListResponse struct {
	Sales      []saleResponse `json:"sales"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// SalesList returns the tenant's sale history, newest first, with
// cursor pagination.
func SalesList(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sales service unavailable"))
			return
		}

		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, filters, err := parseSaleQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), tenantID, params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := saleListResponse{
			Sales:      make([]saleResponse, 0, len(list.Sales)),
			NextCursor: list.NextCursor,
		}
		for i := range list.Sales {
			out.Sales = append(out.Sales, newSaleResponse(&list.Sales[i]))
		}

		responses.WriteSuccess(w, out)
	}
}

// SaleDetail returns one sale with its line items.
func SaleDetail(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sales service unavailable"))
			return
		}

		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		saleID, err := uuid.Parse(chi.URLParam(r, "saleId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid sale identifier"))
			return
		}

		sale, err := svc.Get(r.Context(), tenantID, saleID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newSaleResponse(sale))
	}
}

func parseSaleQuery(r *http.Request) (pagination.Params, sales.Filters, error) {
	q := r.URL.Query()

	params := pagination.Params{Cursor: q.Get("cursor")}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return params, sales.Filters{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid limit")
		}
		params.Limit = limit
	}

	filters := sales.Filters{}
	if raw := q.Get("status"); raw != "" {
		status, err := enums.ParseSaleStatus(raw)
		if err != nil {
			return params, filters, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter")
		}
		filters.Status = &status
	}
	if raw := q.Get("cashier_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return params, filters, pkgerrors.New(pkgerrors.CodeValidation, "invalid cashier filter")
		}
		filters.CashierID = &id
	}
	if raw := q.Get("customer_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return params, filters, pkgerrors.New(pkgerrors.CodeValidation, "invalid customer filter")
		}
		filters.CustomerID = &id
	}
	if raw := q.Get("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return params, filters, pkgerrors.New(pkgerrors.CodeValidation, "invalid from timestamp")
		}
		filters.From = &from
	}
	if raw := q.Get("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return params, filters, pkgerrors.New(pkgerrors.CodeValidation, "invalid to timestamp")
		}
		filters.To = &to
	}

	return params, filters, nil
}

func newSaleResponse(sale *models.Sale) saleResponse {
	if sale == nil {
		return saleResponse{}
	}
	items := make([]saleItemResponse, 0, len(sale.Items))
	for _, item := range sale.Items {
		items = append(items, saleItemResponse{
			ItemID:          item.ID,
			VariantID:       item.VariantID,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			DiscountPercent: item.DiscountPercent,
			DiscountAmount:  item.DiscountAmount,
			TaxRate:         item.TaxRate,
			TaxAmount:       item.TaxAmount,
			Total:           item.Total,
		})
	}
	return saleResponse{
		SaleID:        sale.ID,
		ReceiptNumber: sale.ReceiptNumber,
		CashierID:     sale.CashierID,
		CustomerID:    sale.CustomerID,
		BranchID:      sale.BranchID,
		Status:        string(sale.Status),
		PaymentMethod: string(sale.PaymentMethod),
		Subtotal:      sale.Subtotal,
		DiscountTotal: sale.DiscountAmount,
		TaxTotal:      sale.TaxAmount,
		ServiceCharge: sale.ServiceCharge,
		Total:         sale.TotalAmount,
		IsDebt:        sale.IsDebt,
		DebtAmount:    sale.DebtAmount,
		Notes:         sale.Notes,
		Items:         items,
		CreatedAt:     sale.CreatedAt,
	}
}
