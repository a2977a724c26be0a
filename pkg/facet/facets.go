package facet

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/kubbkoz/MTSTORE-Next/pkg/types"
)

// Compute derives the facet values offered by a category. The input is the
// unfiltered category product set, facets never follow the active filters.
func Compute(products []*types.Product) types.FacetSet {
	ret := types.FacetSet{
		Brands:     []string{},
		FrameSizes: []string{},
		Genders:    []string{},
		Colors:     []string{},
		WheelSizes: []string{},
		PriceMin:   types.DefaultPriceMin,
		PriceMax:   types.DefaultPriceMax,
	}
	if len(products) == 0 {
		return ret
	}

	brands := newCollector()
	sizes := newCollector()
	genders := newCollector()
	colors := newCollector()
	wheels := newCollector()

	ret.PriceMin = products[0].Price
	ret.PriceMax = products[0].Price
	for _, p := range products {
		brands.add(p.BrandOrOther())
		for _, v := range p.Variants {
			sizes.add(v.Size)
		}
		genders.add(string(p.Gender))
		colors.add(p.Color)
		wheels.add(p.WheelSize)
		ret.PriceMin = min(ret.PriceMin, p.Price)
		ret.PriceMax = max(ret.PriceMax, p.Price)
	}

	ret.Brands = brands.sorted()
	ret.FrameSizes = sizes.sorted()
	ret.Genders = genders.sorted()
	ret.Colors = colors.sorted()
	ret.WheelSizes = SortWheelSizes(wheels.values)
	return ret
}

type collector struct {
	seen   map[string]struct{}
	values []string
}

func newCollector() *collector {
	return &collector{seen: make(map[string]struct{}), values: []string{}}
}

func (c *collector) add(value string) {
	if value == "" {
		return
	}
	if _, ok := c.seen[value]; ok {
		return
	}
	c.seen[value] = struct{}{}
	c.values = append(c.values, value)
}

func (c *collector) sorted() []string {
	slices.Sort(c.values)
	return c.values
}

// SortWheelSizes orders wheel labels largest first by their leading number
// (29" before 27.5" before 20"). Labels without a number go last.
func SortWheelSizes(values []string) []string {
	slices.SortStableFunc(values, func(a, b string) int {
		na, okA := LeadingNumber(a)
		nb, okB := LeadingNumber(b)
		switch {
		case okA && okB:
			if c := cmp.Compare(nb, na); c != 0 {
				return c
			}
		case okA:
			return -1
		case okB:
			return 1
		}
		return strings.Compare(a, b)
	})
	return values
}

// LeadingNumber parses the numeric prefix of a label such as 27.5".
func LeadingNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	end := 0
	dot := false
	for end < len(s) {
		c := s[end]
		if c >= '0' && c <= '9' {
			end++
			continue
		}
		if (c == '.' || c == ',') && !dot {
			dot = true
			end++
			continue
		}
		break
	}
	if end == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimRight(strings.ReplaceAll(s[:end], ",", "."), "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
