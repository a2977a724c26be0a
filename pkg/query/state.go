package query

import (
	"github.com/kubbkoz/MTSTORE-Next/pkg/sorting"
	"github.com/kubbkoz/MTSTORE-Next/pkg/types"
)

type Phase int

const (
	Idle Phase = iota
	CategorySelected
)

func (p Phase) String() string {
	if p == CategorySelected {
		return "category_selected"
	}
	return "idle"
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(b []byte) error {
	if string(b) == "category_selected" {
		*p = CategorySelected
	} else {
		*p = Idle
	}
	return nil
}

// Source looks up the products of a category, catalog.Catalog implements it.
type Source interface {
	CategoryProducts(name string) []*types.Product
}

type Options struct {
	// NarrowFacets computes facet values from the live filter combination
	// instead of the whole category.
	NarrowFacets bool
	// ResetWindowOnFilter sets the reveal window back to its default on
	// every filter or sort change, not only on category change.
	ResetWindowOnFilter bool
	Sorter              *sorting.Sorter
}

func (o Options) sorter() *sorting.Sorter {
	if o.Sorter == nil {
		return defaultSorter
	}
	return o.Sorter
}

var defaultSorter = sorting.NewSorter(sorting.DefaultLanguage)

// State is everything a browse session needs. Products and Facets are fixed
// for as long as the category stays selected.
type State struct {
	Phase    Phase             `json:"phase"`
	Category string            `json:"category"`
	Products []*types.Product  `json:"-"`
	Facets   types.FacetSet    `json:"facets"`
	Filter   types.FilterState `json:"filter"`
}

func NewState() State {
	return State{Phase: Idle, Filter: types.NewFilterState("", types.PriceRange{Low: types.DefaultPriceMin, High: types.DefaultPriceMax})}
}
