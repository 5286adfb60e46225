package enums

import "fmt"

// OptionGroup classifies a product customization option. The size, ice and
// sugar groups are exclusive (a cart line selects at most one option from
// each); addon allows any number of selections.
type OptionGroup string

const (
	OptionGroupSize  OptionGroup = "size"
	OptionGroupIce   OptionGroup = "ice"
	OptionGroupSugar OptionGroup = "sugar"
	OptionGroupAddon OptionGroup = "addon"
)

var validOptionGroups = []OptionGroup{
	OptionGroupSize,
	OptionGroupIce,
	OptionGroupSugar,
	OptionGroupAddon,
}

// OptionGroups returns every group in storefront display order.
func OptionGroups() []OptionGroup {
	groups := make([]OptionGroup, len(validOptionGroups))
	copy(groups, validOptionGroups)
	return groups
}

// String implements fmt.Stringer.
func (g OptionGroup) String() string {
	return string(g)
}

// IsValid reports whether the value is a known OptionGroup.
func (g OptionGroup) IsValid() bool {
	for _, candidate := range validOptionGroups {
		if candidate == g {
			return true
		}
	}
	return false
}

// IsExclusive reports whether at most one option of this group may be selected.
func (g OptionGroup) IsExclusive() bool {
	return g == OptionGroupSize || g == OptionGroupIce || g == OptionGroupSugar
}

// ParseOptionGroup converts raw input into an OptionGroup.
func ParseOptionGroup(value string) (OptionGroup, error) {
	for _, candidate := range validOptionGroups {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid option group %q", value)
}
