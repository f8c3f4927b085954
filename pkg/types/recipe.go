package types

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecipeLine maps one ingredient variant to the quantity consumed per
// unit of the prepared product.
type RecipeLine struct {
	IngredientVariantID uuid.UUID       `json:"ingredient_variant_id"`
	QtyPerUnit          decimal.Decimal `json:"qty_per_unit"`
}

// Recipe is the ordered ingredient list of a prepared-food product.
// Kitchen tenants decompose sales through it instead of decrementing the
// sold variant's own stock.
type Recipe []RecipeLine

// Empty reports whether the recipe carries no ingredients.
func (r Recipe) Empty() bool {
	return len(r) == 0
}
