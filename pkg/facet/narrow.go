package facet

import (
	"slices"
	"strings"

	"github.com/kubbkoz/MTSTORE-Next/pkg/filter"
	"github.com/kubbkoz/MTSTORE-Next/pkg/types"
)

// ComputeNarrowed lists, per facet, the values reachable with every other
// active filter applied. Selected values are always kept so they can be
// deselected. Price bounds stay those of the whole category.
func ComputeNarrowed(categoryProducts []*types.Product, state types.FilterState) types.FacetSet {
	base := Compute(categoryProducts)
	ret := types.FacetSet{
		PriceMin: base.PriceMin,
		PriceMax: base.PriceMax,
	}
	for _, name := range types.FacetNames {
		reachable := Compute(filter.Apply(categoryProducts, state.WithOut(name)))
		values := withSelected(Values(&reachable, name), state.Selected(name))
		if name == types.FacetWheelSize {
			values = SortWheelSizes(values)
		} else {
			slices.Sort(values)
		}
		setValues(&ret, name, values)
	}
	return ret
}

func withSelected(values []string, selected types.ValueSet) []string {
	for _, s := range selected {
		if !slices.Contains(values, s) {
			values = append(values, s)
		}
	}
	return values
}

// Values returns the value list of one facet.
func Values(f *types.FacetSet, name types.FacetName) []string {
	switch name {
	case types.FacetBrand:
		return f.Brands
	case types.FacetSize:
		return f.FrameSizes
	case types.FacetGender:
		return f.Genders
	case types.FacetColor:
		return f.Colors
	case types.FacetWheelSize:
		return f.WheelSizes
	}
	return []string{}
}

func setValues(f *types.FacetSet, name types.FacetName, values []string) {
	switch name {
	case types.FacetBrand:
		f.Brands = values
	case types.FacetSize:
		f.FrameSizes = values
	case types.FacetGender:
		f.Genders = values
	case types.FacetColor:
		f.Colors = values
	case types.FacetWheelSize:
		f.WheelSizes = values
	}
}

// SearchValues keeps the values containing term, ignoring case.
func SearchValues(values []string, term string) []string {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return values
	}
	ret := make([]string, 0, len(values))
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), term) {
			ret = append(ret, v)
		}
	}
	return ret
}
