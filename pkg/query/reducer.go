package query

import (
	"slices"

	"github.com/kubbkoz/MTSTORE-Next/pkg/facet"
	"github.com/kubbkoz/MTSTORE-Next/pkg/paging"
	"github.com/kubbkoz/MTSTORE-Next/pkg/types"
)

// Reduce applies one action and returns the next state. The input state is
// not modified and src is only read on category selection.
func Reduce(src Source, s State, action Action, opts Options) State {
	switch a := action.(type) {
	case SelectCategory:
		return selectCategory(src, a)
	case LoadMore:
		if s.Phase != CategorySelected {
			return s
		}
		s.Filter.VisibleCount = paging.LoadMore(s.Filter.VisibleCount)
		return s
	}

	if s.Phase != CategorySelected {
		return s
	}
	next, changed := mutateFilter(s, action)
	if changed && opts.ResetWindowOnFilter {
		next.Filter.VisibleCount = types.DefaultVisibleCount
	}
	return next
}

func selectCategory(src Source, a SelectCategory) State {
	var products []*types.Product
	if src != nil {
		products = src.CategoryProducts(a.Category)
	}
	facets := facet.Compute(products)
	return State{
		Phase:    CategorySelected,
		Category: a.Category,
		Products: products,
		Facets:   facets,
		Filter:   types.NewFilterState(a.Subcategory, facets.Bounds()),
	}
}

func mutateFilter(s State, action Action) (State, bool) {
	f := s.Filter
	switch a := action.(type) {
	case SetSubcategory:
		if a.Subcategory == "" {
			f.ActiveSubcategory = nil
		} else {
			sub := a.Subcategory
			f.ActiveSubcategory = &sub
		}
	case Toggle:
		if !slices.Contains(types.FacetNames, a.Facet) {
			return s, false
		}
		current := f.Selected(a.Facet)
		if !current.Contains(a.Value) && !isOffered(&s.Facets, a.Facet, a.Value) {
			return s, false
		}
		f = f.WithSelected(a.Facet, current.Toggle(a.Value))
	case SetInStockOnly:
		f.InStockOnly = a.Enabled
	case SetPriceRange:
		bounds := s.Facets.Bounds()
		low := types.ParsePriceBound(a.Low, bounds.Low)
		high := types.ParsePriceBound(a.High, bounds.High)
		f.PriceRange = types.SanitizePriceRange(low, high, bounds)
	case SetSort:
		f.SortKey = types.ParseSortKey(a.Key)
	case ClearFilters:
		cleared := types.NewFilterState("", s.Facets.Bounds())
		cleared.SortKey = f.SortKey
		cleared.VisibleCount = f.VisibleCount
		f = cleared
	default:
		return s, false
	}
	s.Filter = f
	return s, true
}

func isOffered(facets *types.FacetSet, name types.FacetName, value string) bool {
	for _, v := range facet.Values(facets, name) {
		if v == value {
			return true
		}
	}
	return false
}
