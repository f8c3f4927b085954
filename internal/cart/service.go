package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukkonapp/dukkon-backend/internal/industry"
	"github.com/dukkonapp/dukkon-backend/internal/pricing"
	"github.com/dukkonapp/dukkon-backend/internal/tenants"
	"github.com/dukkonapp/dukkon-backend/pkg/db/models"
	"github.com/dukkonapp/dukkon-backend/pkg/enums"
	pkgerrors "github.com/dukkonapp/dukkon-backend/pkg/errors"
)

const moneyPlaces = 2

var hundred = decimal.NewFromInt(100)

type catalogStore interface {
	FindVariant(ctx context.Context, tenantID, variantID uuid.UUID) (*models.ProductVariant, error)
	FindPriceTiers(ctx context.Context, variantID uuid.UUID) ([]models.PriceTier, error)
}

type customerLoader interface {
	Find(ctx context.Context, tenantID, customerID uuid.UUID) (*models.Customer, error)
}

type policySource interface {
	GetPolicy(ctx context.Context, tenantID uuid.UUID) (*tenants.Policy, error)
}

// Calculator prices carts without mutating the catalog.
type Calculator struct {
	catalog   catalogStore
	customers customerLoader
	tenants   policySource
}

// NewCalculator builds a cart calculator with the required collaborators.
func NewCalculator(catalog catalogStore, customers customerLoader, tenantPolicies policySource) (*Calculator, error) {
	if catalog == nil {
		return nil, fmt.Errorf("catalog store required")
	}
	if customers == nil {
		return nil, fmt.Errorf("customer loader required")
	}
	if tenantPolicies == nil {
		return nil, fmt.Errorf("tenant policy source required")
	}
	return &Calculator{
		catalog:   catalog,
		customers: customers,
		tenants:   tenantPolicies,
	}, nil
}

// Calculate prices every line and aggregates totals. A customer id that
// does not resolve within the tenant prices the cart anonymously; the
// checkout path tightens that for debt payments.
func (c *Calculator) Calculate(ctx context.Context, input Input) (*Result, error) {
	if len(input.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart has no lines")
	}

	policy, err := c.tenants.GetPolicy(ctx, input.TenantID)
	if err != nil {
		return nil, err
	}

	buyerTier := enums.CustomerTier("")
	if input.CustomerID != nil {
		customer, err := c.customers.Find(ctx, input.TenantID, *input.CustomerID)
		if err == nil {
			buyerTier = customer.PriceTier
		} else {
			appErr := pkgerrors.As(err)
			if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
				return nil, err
			}
		}
	}

	result := &Result{
		Subtotal:       decimal.Zero,
		TaxAmount:      decimal.Zero,
		DiscountAmount: decimal.Zero,
		ServiceCharge:  decimal.Zero,
		BusinessType:   policy.BusinessType,
		CustomerTier:   buyerTier,
		Lines:          make([]LineDetail, 0, len(input.Lines)),
	}

	for i, line := range input.Lines {
		detail, err := c.priceLine(ctx, input.TenantID, line, buyerTier, i)
		if err != nil {
			return nil, err
		}

		result.Subtotal = result.Subtotal.Add(detail.Subtotal)
		result.TaxAmount = result.TaxAmount.Add(detail.TaxAmount)
		result.DiscountAmount = result.DiscountAmount.Add(detail.DiscountAmount)
		if detail.TierID != nil {
			result.AppliedTiers = append(result.AppliedTiers, *detail.TierID)
		}
		result.Lines = append(result.Lines, *detail)
	}

	if industry.PolicyFor(policy.BusinessType).AppliesServiceCharge() {
		result.ServiceCharge = result.Subtotal.
			Mul(policy.ServiceChargePercent).
			Div(hundred).
			Round(moneyPlaces)
	}

	result.Total = result.Subtotal.Add(result.TaxAmount).Add(result.ServiceCharge)
	return result, nil
}

func (c *Calculator) priceLine(ctx context.Context, tenantID uuid.UUID, line LineInput, buyerTier enums.CustomerTier, index int) (*LineDetail, error) {
	if line.Quantity.Sign() <= 0 {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "line %d: quantity must be positive", index)
	}
	if line.DiscountPercent.IsNegative() || line.DiscountPercent.GreaterThan(hundred) {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "line %d: discount percent must be between 0 and 100", index)
	}

	variant, err := c.catalog.FindVariant(ctx, tenantID, line.VariantID)
	if err != nil {
		return nil, err
	}
	if variant.StockQuantity.LessThan(line.Quantity) {
		return nil, pkgerrors.Newf(pkgerrors.CodeInsufficientStock,
			"sku %s has %s in stock, requested %s", variant.SKU, variant.StockQuantity, line.Quantity)
	}

	tiers, err := c.catalog.FindPriceTiers(ctx, variant.ID)
	if err != nil {
		return nil, err
	}
	resolution := pricing.Resolve(variant, tiers, line.Quantity, buyerTier)

	gross := resolution.UnitPrice.Mul(line.Quantity)
	discount := decimal.Zero
	if line.DiscountPercent.Sign() > 0 {
		discount = gross.Mul(line.DiscountPercent).Div(hundred).Round(moneyPlaces)
	}
	subtotal := gross.Sub(discount)

	taxRate := decimal.Zero
	if variant.Product != nil {
		taxRate = variant.Product.TaxRate
	}
	tax := subtotal.Mul(taxRate).Div(hundred).Round(moneyPlaces)

	return &LineDetail{
		VariantID:       variant.ID,
		SKU:             variant.SKU,
		Quantity:        line.Quantity,
		UnitPrice:       resolution.UnitPrice,
		CostPrice:       variant.CostPrice,
		DiscountPercent: line.DiscountPercent,
		DiscountAmount:  discount,
		TaxRate:         taxRate,
		TaxAmount:       tax,
		Subtotal:        subtotal,
		Total:           subtotal.Add(tax),
		TierID:          resolution.TierID,
		Product:         variant.Product,
	}, nil
}
