package query

import (
	"github.com/kubbkoz/MTSTORE-Next/pkg/facet"
	"github.com/kubbkoz/MTSTORE-Next/pkg/filter"
	"github.com/kubbkoz/MTSTORE-Next/pkg/paging"
	"github.com/kubbkoz/MTSTORE-Next/pkg/types"
)

// Run answers a stateless query. Selected values the category does not offer
// are dropped so they never exclude products.
func Run(src Source, req *types.QueryRequest, opts Options) types.QueryResponse {
	req.Sanitize()
	var products []*types.Product
	if src != nil {
		products = src.CategoryProducts(req.Category)
	}
	facets := facet.Compute(products)
	state := req.FilterState(facets.Bounds())
	for _, name := range types.FacetNames {
		state = state.WithSelected(name, offeredOnly(state.Selected(name), facet.Values(&facets, name)))
	}

	filtered := filter.Apply(products, state)
	if opts.NarrowFacets {
		facets = facet.ComputeNarrowed(products, state)
	}
	sorted := opts.sorter().Sort(filtered, state.SortKey)
	items, hasMore := paging.Slice(sorted, req.Offset, req.Limit)

	return types.QueryResponse{
		Items:      items,
		TotalCount: len(sorted),
		HasMore:    hasMore,
		Offset:     req.Offset,
		Limit:      req.Limit,
		Sort:       state.SortKey,
		PriceRange: state.PriceRange,
		Facets:     facets,
	}
}

func offeredOnly(selected types.ValueSet, offered []string) types.ValueSet {
	ret := make(types.ValueSet, 0, len(selected))
	for _, v := range selected {
		for _, o := range offered {
			if v == o {
				ret = append(ret, v)
				break
			}
		}
	}
	return ret
}
