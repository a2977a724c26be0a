package types

import "slices"

const (
	DefaultVisibleCount = 12
	LoadMoreStep        = 12
)

// ValueSet is an insertion ordered set of selected facet values. The zero
// value is an empty selection which never restricts a result.
type ValueSet []string

func NewValueSet(values ...string) ValueSet {
	ret := make(ValueSet, 0, len(values))
	for _, v := range values {
		if v == "" || ret.Contains(v) {
			continue
		}
		ret = append(ret, v)
	}
	return ret
}

func (s ValueSet) Contains(value string) bool {
	return slices.Contains(s, value)
}

func (s ValueSet) IsEmpty() bool {
	return len(s) == 0
}

// Toggle returns a new set with value removed if present, appended otherwise.
func (s ValueSet) Toggle(value string) ValueSet {
	if idx := slices.Index(s, value); idx >= 0 {
		return slices.Delete(slices.Clone(s), idx, idx+1)
	}
	if value == "" {
		return s
	}
	return append(slices.Clone(s), value)
}

// Lookup builds a map for repeated membership checks.
func (s ValueSet) Lookup() map[string]struct{} {
	ret := make(map[string]struct{}, len(s))
	for _, v := range s {
		ret[v] = struct{}{}
	}
	return ret
}

type PriceRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

func (r PriceRange) Contains(price float64) bool {
	return price >= r.Low && price <= r.High
}

// FilterState is the query a shopper builds inside one category.
type FilterState struct {
	ActiveSubcategory  *string    `json:"activeSubcategory"`
	PriceRange         PriceRange `json:"priceRange"`
	SelectedBrands     ValueSet   `json:"selectedBrands"`
	SelectedSizes      ValueSet   `json:"selectedSizes"`
	SelectedGenders    ValueSet   `json:"selectedGenders"`
	SelectedColors     ValueSet   `json:"selectedColors"`
	SelectedWheelSizes ValueSet   `json:"selectedWheelSizes"`
	InStockOnly        bool       `json:"inStockOnly"`
	SortKey            SortKey    `json:"sortKey"`
	VisibleCount       int        `json:"visibleCount"`
}

// NewFilterState returns the defaults used whenever a category is entered.
func NewFilterState(subcategory string, bounds PriceRange) FilterState {
	var sub *string
	if subcategory != "" {
		sub = &subcategory
	}
	return FilterState{
		ActiveSubcategory:  sub,
		PriceRange:         bounds,
		SelectedBrands:     ValueSet{},
		SelectedSizes:      ValueSet{},
		SelectedGenders:    ValueSet{},
		SelectedColors:     ValueSet{},
		SelectedWheelSizes: ValueSet{},
		SortKey:            SortRecommended,
		VisibleCount:       DefaultVisibleCount,
	}
}

// Subcategory returns the active subcategory or "" when none is selected.
func (f FilterState) Subcategory() string {
	if f.ActiveSubcategory == nil {
		return ""
	}
	return *f.ActiveSubcategory
}

func (f FilterState) HasSelections() bool {
	return f.ActiveSubcategory != nil ||
		f.InStockOnly ||
		len(f.SelectedBrands) > 0 ||
		len(f.SelectedSizes) > 0 ||
		len(f.SelectedGenders) > 0 ||
		len(f.SelectedColors) > 0 ||
		len(f.SelectedWheelSizes) > 0
}

type FacetName string

const (
	FacetBrand     FacetName = "brand"
	FacetSize      FacetName = "size"
	FacetGender    FacetName = "gender"
	FacetColor     FacetName = "color"
	FacetWheelSize FacetName = "wheelSize"
)

var FacetNames = []FacetName{FacetBrand, FacetSize, FacetGender, FacetColor, FacetWheelSize}

// Selected returns the selection set for a facet.
func (f FilterState) Selected(name FacetName) ValueSet {
	switch name {
	case FacetBrand:
		return f.SelectedBrands
	case FacetSize:
		return f.SelectedSizes
	case FacetGender:
		return f.SelectedGenders
	case FacetColor:
		return f.SelectedColors
	case FacetWheelSize:
		return f.SelectedWheelSizes
	}
	return nil
}

// WithSelected returns a copy of the state with the selection of one facet
// replaced. Unknown facet names leave the state unchanged.
func (f FilterState) WithSelected(name FacetName, values ValueSet) FilterState {
	switch name {
	case FacetBrand:
		f.SelectedBrands = values
	case FacetSize:
		f.SelectedSizes = values
	case FacetGender:
		f.SelectedGenders = values
	case FacetColor:
		f.SelectedColors = values
	case FacetWheelSize:
		f.SelectedWheelSizes = values
	}
	return f
}

// WithOut clears one facet so its own selection does not narrow its values.
func (f FilterState) WithOut(name FacetName) FilterState {
	return f.WithSelected(name, ValueSet{})
}
