package types

import "strings"

type SortKey string

const (
	SortRecommended  SortKey = "recommended"
	SortNewest       SortKey = "newest"
	SortDiscountDesc SortKey = "discount_desc"
	SortPriceAsc     SortKey = "price_asc"
	SortPriceDesc    SortKey = "price_desc"
	SortNameAsc      SortKey = "name_asc"
	SortNameDesc     SortKey = "name_desc"
)

var SortKeys = []SortKey{
	SortRecommended,
	SortNewest,
	SortDiscountDesc,
	SortPriceAsc,
	SortPriceDesc,
	SortNameAsc,
	SortNameDesc,
}

// ParseSortKey falls back to SortRecommended for unknown input.
func ParseSortKey(s string) SortKey {
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if key.IsValid() {
		return key
	}
	return SortRecommended
}

func (k SortKey) IsValid() bool {
	for _, known := range SortKeys {
		if k == known {
			return true
		}
	}
	return false
}
