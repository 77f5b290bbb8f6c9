package enums

import (
	"fmt"
	"strings"
)

// ProductCategory represents the electronics categories supported by the catalog.
type ProductCategory string

const (
	ProductCategoryPhones      ProductCategory = "phones"
	ProductCategoryLaptops     ProductCategory = "laptops"
	ProductCategoryAudio       ProductCategory = "audio"
	ProductCategoryWearables   ProductCategory = "wearables"
	ProductCategoryAccessories ProductCategory = "accessories"
	ProductCategoryTablets     ProductCategory = "tablets"
	ProductCategoryCameras     ProductCategory = "cameras"
	ProductCategoryGaming      ProductCategory = "gaming"
)

var validProductCategories = []ProductCategory{
	ProductCategoryPhones,
	ProductCategoryLaptops,
	ProductCategoryAudio,
	ProductCategoryWearables,
	ProductCategoryAccessories,
	ProductCategoryTablets,
	ProductCategoryCameras,
	ProductCategoryGaming,
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCategory.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ProductCategories returns a copy of the supported categories.
func ProductCategories() []ProductCategory {
	out := make([]ProductCategory, len(validProductCategories))
	copy(out, validProductCategories)
	return out
}

// ParseProductCategory converts raw input into a ProductCategory. Matching is
// case-insensitive.
func ParseProductCategory(value string) (ProductCategory, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validProductCategories {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}
