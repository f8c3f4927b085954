package types

import (
	"fmt"
	"sort"

	"github.com/dukkonapp/dukkon-backend/pkg/enums"
)

// Attributes is the industry-specific key-value map carried by products,
// variants, and customers. Keys are constrained per business type so each
// industry keeps a documented schema instead of a free-form blob.
type Attributes map[string]string

// Attribute keys shared by every business type.
var commonAttributeKeys = []string{
	"brand",
	"origin",
	"note",
}

var attributeKeysByBusinessType = map[enums.BusinessType][]string{
	enums.BusinessTypeRetail: {
		"expiry_date",
		"batch",
		"weight",
		"shelf",
	},
	enums.BusinessTypeFashion: {
		"size",
		"color",
		"fabric",
		"season",
		"material_code",
	},
	enums.BusinessTypeHospitalityService: {
		"portion",
		"spice_level",
		"dietary",
		"allergens",
		"prep_time_minutes",
	},
	enums.BusinessTypeHospitalityKitchen: {
		"portion",
		"spice_level",
		"dietary",
		"allergens",
		"prep_time_minutes",
	},
	enums.BusinessTypeWholesale: {
		"pack_size",
		"inner_sku",
		"pallet_qty",
		"tax_id",
		"payment_terms",
	},
	enums.BusinessTypeJewelry: {
		"metal",
		"purity",
		"weight_grams",
		"stone",
	},
}

// AllowedAttributeKeys returns the sorted key schema for a business type.
func AllowedAttributeKeys(businessType enums.BusinessType) []string {
	keys := append([]string{}, commonAttributeKeys...)
	keys = append(keys, attributeKeysByBusinessType[businessType]...)
	sort.Strings(keys)
	return keys
}

// Validate reports the first key outside the business type's schema.
func (a Attributes) Validate(businessType enums.BusinessType) error {
	if len(a) == 0 {
		return nil
	}
	allowed := map[string]struct{}{}
	for _, key := range AllowedAttributeKeys(businessType) {
		allowed[key] = struct{}{}
	}

	keys := make([]string, 0, len(a))
	for key := range a {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if _, ok := allowed[key]; !ok {
			return fmt.Errorf("attribute %q is not allowed for business type %s", key, businessType)
		}
	}
	return nil
}
