package industry

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukkonapp/dukkon-backend/pkg/db/models"
	"github.com/dukkonapp/dukkon-backend/pkg/enums"
)

// Movement is one stock decrement a committed sale line produces.
type Movement struct {
	VariantID uuid.UUID
	Qty       decimal.Decimal
}

// Policy captures how a business vertical treats service charges and
// stock consumption at checkout.
type Policy interface {
	BusinessType() enums.BusinessType
	// AppliesServiceCharge reports whether the tenant's service charge
	// percent is added on top of the cart total.
	AppliesServiceCharge() bool
	// StockMovements maps a sold line onto the variants whose stock it
	// consumes. Most verticals consume the sold variant directly;
	// kitchens consume recipe ingredients instead.
	StockMovements(product *models.Product, variantID uuid.UUID, qty decimal.Decimal) []Movement
}

type directPolicy struct {
	businessType  enums.BusinessType
	serviceCharge bool
}

func (p directPolicy) BusinessType() enums.BusinessType { return p.businessType }
func (p directPolicy) AppliesServiceCharge() bool       { return p.serviceCharge }

func (p directPolicy) StockMovements(_ *models.Product, variantID uuid.UUID, qty decimal.Decimal) []Movement {
	return []Movement{{VariantID: variantID, Qty: qty}}
}

type kitchenPolicy struct{}

func (kitchenPolicy) BusinessType() enums.BusinessType { return enums.BusinessTypeHospitalityKitchen }
// Kitchen verticals decompose recipes but do not surcharge; only the
// front-of-house service vertical adds the tenant's service charge.
func (kitchenPolicy) AppliesServiceCharge() bool { return false }

// StockMovements decomposes prepared items into their ingredients. A
// product without a recipe falls back to consuming the sold variant.
func (kitchenPolicy) StockMovements(product *models.Product, variantID uuid.UUID, qty decimal.Decimal) []Movement {
	if product == nil || product.Recipe.Empty() {
		return []Movement{{VariantID: variantID, Qty: qty}}
	}

	movements := make([]Movement, 0, len(product.Recipe))
	for _, line := range product.Recipe {
		movements = append(movements, Movement{
			VariantID: line.IngredientVariantID,
			Qty:       line.QtyPerUnit.Mul(qty),
		})
	}
	return movements
}

var policies = map[enums.BusinessType]Policy{
	enums.BusinessTypeRetail:             directPolicy{businessType: enums.BusinessTypeRetail},
	enums.BusinessTypeFashion:            directPolicy{businessType: enums.BusinessTypeFashion},
	enums.BusinessTypeWholesale:          directPolicy{businessType: enums.BusinessTypeWholesale},
	enums.BusinessTypeJewelry:            directPolicy{businessType: enums.BusinessTypeJewelry},
	enums.BusinessTypeHospitalityService: directPolicy{businessType: enums.BusinessTypeHospitalityService, serviceCharge: true},
	enums.BusinessTypeHospitalityKitchen: kitchenPolicy{},
}

// PolicyFor returns the vertical policy for a business type. Unknown
// types get retail behavior.
func PolicyFor(businessType enums.BusinessType) Policy {
	if policy, ok := policies[businessType]; ok {
		return policy
	}
	return policies[enums.BusinessTypeRetail]
}
