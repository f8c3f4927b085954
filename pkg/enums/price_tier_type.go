package enums

import "fmt"

// PriceTierType labels the audience of a quantity-conditioned price override.
type PriceTierType string

const (
	PriceTierTypeRetail     PriceTierType = "retail"
	PriceTierTypeVIP        PriceTierType = "vip"
	PriceTierTypeWholesaler PriceTierType = "wholesaler"
	PriceTierTypeBulk       PriceTierType = "bulk"
)

var validPriceTierTypes = []PriceTierType{
	PriceTierTypeRetail,
	PriceTierTypeVIP,
	PriceTierTypeWholesaler,
	PriceTierTypeBulk,
}

// String implements fmt.Stringer.
func (p PriceTierType) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PriceTierType.
func (p PriceTierType) IsValid() bool {
	for _, candidate := range validPriceTierTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePriceTierType converts raw input into a PriceTierType.
func ParsePriceTierType(value string) (PriceTierType, error) {
	for _, candidate := range validPriceTierTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid price tier type %q", value)
}
