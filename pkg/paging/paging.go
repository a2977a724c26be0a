package paging

import "github.com/kubbkoz/MTSTORE-Next/pkg/types"

// Window reveals the first visibleCount products.
func Window(sorted []*types.Product, visibleCount int) ([]*types.Product, bool) {
	visibleCount = max(visibleCount, 0)
	end := min(visibleCount, len(sorted))
	return sorted[:end:end], visibleCount < len(sorted)
}

// LoadMore grows the reveal window by one step.
func LoadMore(visibleCount int) int {
	return max(visibleCount, 0) + types.LoadMoreStep
}

// Slice returns the page starting at offset, used by the stateless query.
func Slice(sorted []*types.Product, offset, limit int) ([]*types.Product, bool) {
	offset = max(offset, 0)
	limit = max(limit, 0)
	if offset >= len(sorted) {
		return []*types.Product{}, false
	}
	end := min(offset+limit, len(sorted))
	return sorted[offset:end:end], end < len(sorted)
}
