package filter

import (
	"github.com/kubbkoz/MTSTORE-Next/pkg/types"
)

type lookup map[string]struct{}

func (l lookup) has(v string) bool {
	_, ok := l[v]
	return ok
}

// Matcher is a FilterState compiled for repeated evaluation.
type Matcher struct {
	subcategory *string
	inStockOnly bool
	price       types.PriceRange
	brands      lookup
	sizes       lookup
	genders     lookup
	colors      lookup
	wheelSizes  lookup
}

func NewMatcher(state types.FilterState) *Matcher {
	m := &Matcher{
		subcategory: state.ActiveSubcategory,
		inStockOnly: state.InStockOnly,
		price:       state.PriceRange,
	}
	if !state.SelectedBrands.IsEmpty() {
		m.brands = state.SelectedBrands.Lookup()
	}
	if !state.SelectedSizes.IsEmpty() {
		m.sizes = state.SelectedSizes.Lookup()
	}
	if !state.SelectedGenders.IsEmpty() {
		m.genders = state.SelectedGenders.Lookup()
	}
	if !state.SelectedColors.IsEmpty() {
		m.colors = state.SelectedColors.Lookup()
	}
	if !state.SelectedWheelSizes.IsEmpty() {
		m.wheelSizes = state.SelectedWheelSizes.Lookup()
	}
	return m
}

// Matches is the conjunction of all facet predicates. Values within one
// facet are OR:ed and an empty selection never excludes anything.
func (m *Matcher) Matches(p *types.Product) bool {
	if p == nil {
		return false
	}
	if m.subcategory != nil && p.Subcategory != *m.subcategory {
		return false
	}
	if m.inStockOnly && !p.HasStock() {
		return false
	}
	if m.brands != nil && !m.brands.has(p.BrandOrOther()) {
		return false
	}
	if m.sizes != nil && !m.hasSize(p) {
		return false
	}
	if m.genders != nil && (p.Gender == "" || !m.genders.has(string(p.Gender))) {
		return false
	}
	if m.colors != nil && (p.Color == "" || !m.colors.has(p.Color)) {
		return false
	}
	if m.wheelSizes != nil && (p.WheelSize == "" || !m.wheelSizes.has(p.WheelSize)) {
		return false
	}
	return m.price.Contains(p.Price)
}

func (m *Matcher) hasSize(p *types.Product) bool {
	for _, v := range p.Variants {
		if m.sizes.has(v.Size) {
			return true
		}
	}
	return false
}

// Apply returns the products matching state, keeping their input order.
func Apply(products []*types.Product, state types.FilterState) []*types.Product {
	m := NewMatcher(state)
	ret := make([]*types.Product, 0, len(products))
	for _, p := range products {
		if m.Matches(p) {
			ret = append(ret, p)
		}
	}
	return ret
}

// Matches evaluates a single product against state.
func Matches(p *types.Product, state types.FilterState) bool {
	return NewMatcher(state).Matches(p)
}
