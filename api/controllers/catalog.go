package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukkonapp/dukkon-backend/api/responses"
	"github.com/dukkonapp/dukkon-backend/internal/catalog"
	"github.com/dukkonapp/dukkon-backend/pkg/db/models"
	pkgerrors "github.com/dukkonapp/dukkon-backend/pkg/errors"
	"github.com/dukkonapp/dukkon-backend/pkg/logger"
)

type priceTierResponse struct {
	TierID      uuid.UUID        `json:"tier_id"`
	TierType    string           `json:"tier_type"`
	Price       decimal.Decimal  `json:"price"`
	MinQuantity decimal.Decimal  `json:"min_quantity"`
	MaxQuantity *decimal.Decimal `json:"max_quantity,omitempty"`
	Group       *string          `json:"group,omitempty"`
}

type variantResponse struct {
	VariantID     uuid.UUID           `json:"variant_id"`
	ProductID     uuid.UUID           `json:"product_id"`
	SKU           string              `json:"sku"`
	Name          string              `json:"name,omitempty"`
	Price         decimal.Decimal     `json:"price"`
	CostPrice     decimal.Decimal     `json:"cost_price"`
	StockQuantity decimal.Decimal     `json:"stock_quantity"`
	MinStockLevel decimal.Decimal     `json:"min_stock_level"`
	TaxRate       decimal.Decimal     `json:"tax_rate"`
	IsActive      bool                `json:"is_active"`
	Barcodes      []string            `json:"barcodes,omitempty"`
	PriceTiers    []priceTierResponse `json:"price_tiers,omitempty"`
}

// VariantsList searches the tenant's sellable SKUs.
func VariantsList(repo catalog.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog repository unavailable"))
			return
		}

		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		q := r.URL.Query()
		filters := catalog.VariantFilters{
			Search:     q.Get("search"),
			ActiveOnly: q.Get("include_inactive") != "true",
		}
		if raw := q.Get("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid limit"))
				return
			}
			filters.Limit = limit
		}

		variants, err := repo.ListVariants(r.Context(), tenantID, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]variantResponse, 0, len(variants))
		for i := range variants {
			out = append(out, newVariantResponse(&variants[i]))
		}
		responses.WriteSuccess(w, map[string]any{"variants": out})
	}
}

// VariantDetail fetches one variant by id, SKU or barcode alias. The
// lookup order is id first, then SKU, then barcode.
func VariantDetail(repo catalog.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog repository unavailable"))
			return
		}

		tenantID, err := tenantIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ref := chi.URLParam(r, "variantRef")
		variant, err := findVariantByRef(r, repo, tenantID, ref)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tiers, err := repo.FindPriceTiers(r.Context(), variant.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		variant.PriceTiers = tiers

		responses.WriteSuccess(w, newVariantResponse(variant))
	}
}

func findVariantByRef(r *http.Request, repo catalog.Repository, tenantID uuid.UUID, ref string) (*models.ProductVariant, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return repo.FindVariant(r.Context(), tenantID, id)
	}
	variant, err := repo.FindVariantBySKU(r.Context(), tenantID, ref)
	if err == nil {
		return variant, nil
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		return nil, err
	}
	return repo.FindVariantByBarcode(r.Context(), tenantID, ref)
}

func newVariantResponse(variant *models.ProductVariant) variantResponse {
	if variant == nil {
		return variantResponse{}
	}
	resp := variantResponse{
		VariantID:     variant.ID,
		ProductID:     variant.ProductID,
		SKU:           variant.SKU,
		Price:         variant.Price,
		CostPrice:     variant.CostPrice,
		StockQuantity: variant.StockQuantity,
		MinStockLevel: variant.MinStockLevel,
		IsActive:      variant.IsActive,
		Barcodes:      variant.BarcodeAliases,
	}
	if variant.Product != nil {
		resp.Name = variant.Product.Name
		resp.TaxRate = variant.Product.TaxRate
	}
	for _, tier := range variant.PriceTiers {
		resp.PriceTiers = append(resp.PriceTiers, priceTierResponse{
			TierID:      tier.ID,
			TierType:    string(tier.TierType),
			Price:       tier.Price,
			MinQuantity: tier.MinQuantity,
			MaxQuantity: tier.MaxQuantity,
			Group:       tier.CustomerGroup,
		})
	}
	return resp
}
