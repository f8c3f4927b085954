package enums

import "fmt"

// CustomerTier ranks a customer for tier-restricted pricing.
type CustomerTier string

const (
	CustomerTierRetail     CustomerTier = "retail"
	CustomerTierVIP        CustomerTier = "vip"
	CustomerTierWholesaler CustomerTier = "wholesaler"
)

var validCustomerTiers = []CustomerTier{
	CustomerTierRetail,
	CustomerTierVIP,
	CustomerTierWholesaler,
}

// String implements fmt.Stringer.
func (c CustomerTier) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CustomerTier.
func (c CustomerTier) IsValid() bool {
	for _, candidate := range validCustomerTiers {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCustomerTier converts raw input into a CustomerTier.
func ParseCustomerTier(value string) (CustomerTier, error) {
	for _, candidate := range validCustomerTiers {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid customer tier %q", value)
}
