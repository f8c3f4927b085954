package enums

import "fmt"

// BusinessType categorizes a tenant's industry; pricing surcharges and
// stock decomposition rules key off it.
type BusinessType string

const (
	BusinessTypeRetail             BusinessType = "retail"
	BusinessTypeFashion            BusinessType = "fashion"
	BusinessTypeHospitalityService BusinessType = "hospitality_service"
	BusinessTypeHospitalityKitchen BusinessType = "hospitality_kitchen"
	BusinessTypeWholesale          BusinessType = "wholesale"
	BusinessTypeJewelry            BusinessType = "jewelry"
)

var validBusinessTypes = []BusinessType{
	BusinessTypeRetail,
	BusinessTypeFashion,
	BusinessTypeHospitalityService,
	BusinessTypeHospitalityKitchen,
	BusinessTypeWholesale,
	BusinessTypeJewelry,
}

// String implements fmt.Stringer.
func (b BusinessType) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BusinessType.
func (b BusinessType) IsValid() bool {
	for _, candidate := range validBusinessTypes {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBusinessType converts raw input into a BusinessType.
func ParseBusinessType(value string) (BusinessType, error) {
	for _, candidate := range validBusinessTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid business type %q", value)
}
