package query

import (
	"github.com/kubbkoz/MTSTORE-Next/pkg/facet"
	"github.com/kubbkoz/MTSTORE-Next/pkg/filter"
	"github.com/kubbkoz/MTSTORE-Next/pkg/paging"
	"github.com/kubbkoz/MTSTORE-Next/pkg/types"
)

// View holds everything derived from a State.
type View struct {
	Phase        Phase             `json:"phase"`
	Category     string            `json:"category"`
	Filter       types.FilterState `json:"filter"`
	Facets       types.FacetSet    `json:"facets"`
	Items        []*types.Product  `json:"items"`
	TotalCount   int               `json:"totalCount"`
	HasMore      bool              `json:"hasMore"`
	VisibleCount int               `json:"visibleCount"`
	Sorted       []*types.Product  `json:"-"`
}

// Derive recomputes filter, sort and reveal window for a state.
func Derive(s State, opts Options) View {
	v := View{
		Phase:        s.Phase,
		Category:     s.Category,
		Filter:       s.Filter,
		Facets:       s.Facets,
		Items:        []*types.Product{},
		Sorted:       []*types.Product{},
		VisibleCount: s.Filter.VisibleCount,
	}
	if s.Phase != CategorySelected {
		return v
	}
	filtered := filter.Apply(s.Products, s.Filter)
	if opts.NarrowFacets {
		v.Facets = facet.ComputeNarrowed(s.Products, s.Filter)
	}
	v.Sorted = opts.sorter().Sort(filtered, s.Filter.SortKey)
	v.Items, v.HasMore = paging.Window(v.Sorted, s.Filter.VisibleCount)
	v.TotalCount = len(v.Sorted)
	return v
}
