package sorting

import (
	"cmp"
	"slices"
	"sync"

	"github.com/kubbkoz/MTSTORE-Next/pkg/types"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultLanguage is the storefront locale used for name ordering.
var DefaultLanguage = language.Slovak

// Sorter orders filtered products. Every strategy is stable, products that
// compare equal keep their input order.
type Sorter struct {
	tag       language.Tag
	collators sync.Pool
}

func NewSorter(tag language.Tag) *Sorter {
	s := &Sorter{tag: tag}
	// a collator keeps internal buffers and must not be shared between goroutines
	s.collators.New = func() any {
		return collate.New(tag, collate.IgnoreCase)
	}
	return s
}

func (s *Sorter) Language() language.Tag {
	return s.tag
}

var defaultSorter = NewSorter(DefaultLanguage)

// Sort orders products with the default storefront locale.
func Sort(products []*types.Product, key types.SortKey) []*types.Product {
	return defaultSorter.Sort(products, key)
}

// Sort returns a sorted copy, the input slice is never reordered.
// Unknown keys keep the input order.
func (s *Sorter) Sort(products []*types.Product, key types.SortKey) []*types.Product {
	ret := slices.Clone(products)
	if ret == nil {
		ret = []*types.Product{}
	}
	switch key {
	case types.SortNewest:
		return partitionNew(ret)
	case types.SortDiscountDesc:
		slices.SortStableFunc(ret, func(a, b *types.Product) int {
			return cmp.Compare(b.DiscountFraction(), a.DiscountFraction())
		})
	case types.SortPriceAsc:
		slices.SortStableFunc(ret, func(a, b *types.Product) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case types.SortPriceDesc:
		slices.SortStableFunc(ret, func(a, b *types.Product) int {
			return cmp.Compare(b.Price, a.Price)
		})
	case types.SortNameAsc, types.SortNameDesc:
		c := s.collators.Get().(*collate.Collator)
		defer s.collators.Put(c)
		desc := key == types.SortNameDesc
		slices.SortStableFunc(ret, func(a, b *types.Product) int {
			if desc {
				return c.CompareString(b.Name, a.Name)
			}
			return c.CompareString(a.Name, b.Name)
		})
	}
	return ret
}

// partitionNew moves products badged New ahead of the rest, keeping the
// relative order within both groups.
func partitionNew(products []*types.Product) []*types.Product {
	ret := make([]*types.Product, 0, len(products))
	rest := make([]*types.Product, 0, len(products))
	for _, p := range products {
		if p.Badge == types.BadgeNew {
			ret = append(ret, p)
		} else {
			rest = append(rest, p)
		}
	}
	return append(ret, rest...)
}
