package facet

import (
	"slices"
	"testing"

	"github.com/kubbkoz/MTSTORE-Next/pkg/types"
)

func product(id string, price float64, mods ...func(*types.Product)) *types.Product {
	p := &types.Product{Id: id, Name: id, Category: "Bicykle", Price: price}
	for _, m := range mods {
		m(p)
	}
	return p
}

func TestComputePriceBounds(t *testing.T) {
	products := []*types.Product{
		product("a", 4599),
		product("b", 2899),
		product("c", 7699),
	}
	f := Compute(products)
	if f.PriceMin != 2899 || f.PriceMax != 7699 {
		t.Errorf("Expected bounds 2899-7699, got %v-%v", f.PriceMin, f.PriceMax)
	}
}

func TestComputeEmptyCategory(t *testing.T) {
	f := Compute(nil)
	if f.PriceMin != 0 || f.PriceMax != 10000 {
		t.Errorf("Expected default bounds 0-10000, got %v-%v", f.PriceMin, f.PriceMax)
	}
	if len(f.Brands) != 0 || f.Brands == nil {
		t.Errorf("Expected empty non nil brands, got %v", f.Brands)
	}
	if len(f.FrameSizes) != 0 || len(f.Genders) != 0 || len(f.Colors) != 0 || len(f.WheelSizes) != 0 {
		t.Errorf("Expected empty facets, got %+v", f)
	}
}

func TestComputeBrandsFallbackToOther(t *testing.T) {
	products := []*types.Product{
		product("a", 1, func(p *types.Product) { p.Brand = "Scott" }),
		product("b", 1),
		product("c", 1, func(p *types.Product) { p.Brand = "KTM" }),
		product("d", 1, func(p *types.Product) { p.Brand = "Scott" }),
	}
	f := Compute(products)
	expected := []string{"KTM", "Other", "Scott"}
	if !slices.Equal(f.Brands, expected) {
		t.Errorf("Expected %v, got %v", expected, f.Brands)
	}
}

func TestComputeSizesFromVariants(t *testing.T) {
	products := []*types.Product{
		product("a", 1, func(p *types.Product) {
			p.Variants = []types.Variant{{Size: "M"}, {Size: "S"}}
		}),
		product("b", 1, func(p *types.Product) {
			p.Variants = []types.Variant{{Size: "XL"}, {Size: "L"}, {Size: "M"}}
		}),
		product("c", 1),
	}
	f := Compute(products)
	expected := []string{"L", "M", "S", "XL"}
	if !slices.Equal(f.FrameSizes, expected) {
		t.Errorf("Expected %v, got %v", expected, f.FrameSizes)
	}
}

func TestComputeSkipsMissingOptionalValues(t *testing.T) {
	products := []*types.Product{
		product("a", 1, func(p *types.Product) { p.Gender = types.GenderWomen; p.Color = "Modrá" }),
		product("b", 1),
		product("c", 1, func(p *types.Product) { p.Gender = types.GenderMen; p.Color = "Biela" }),
	}
	f := Compute(products)
	if !slices.Equal(f.Genders, []string{"Men", "Women"}) {
		t.Errorf("Unexpected genders %v", f.Genders)
	}
	if !slices.Equal(f.Colors, []string{"Biela", "Modrá"}) {
		t.Errorf("Unexpected colors %v", f.Colors)
	}
}

func TestWheelSizesLargestFirst(t *testing.T) {
	products := []*types.Product{
		product("a", 1, func(p *types.Product) { p.WheelSize = `20"` }),
		product("b", 1, func(p *types.Product) { p.WheelSize = `29"` }),
		product("c", 1, func(p *types.Product) { p.WheelSize = `27.5"` }),
		product("d", 1, func(p *types.Product) { p.WheelSize = `29"` }),
		product("e", 1, func(p *types.Product) { p.WheelSize = "balance" }),
	}
	f := Compute(products)
	expected := []string{`29"`, `27.5"`, `20"`, "balance"}
	if !slices.Equal(f.WheelSizes, expected) {
		t.Errorf("Expected %v, got %v", expected, f.WheelSizes)
	}
}

func TestLeadingNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{`29"`, 29, true},
		{`27.5"`, 27.5, true},
		{`27,5"`, 27.5, true},
		{" 26 in", 26, true},
		{"balance", 0, false},
		{".", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, ok := LeadingNumber(c.in)
		if ok != c.ok || got != c.want {
			t.Errorf("LeadingNumber(%q) = %v, %v, expected %v, %v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestComputeNarrowedKeepsSelected(t *testing.T) {
	products := []*types.Product{
		product("a", 100, func(p *types.Product) { p.Brand = "Scott"; p.Color = "Čierna" }),
		product("b", 200, func(p *types.Product) { p.Brand = "KTM"; p.Color = "Biela" }),
		product("c", 300, func(p *types.Product) { p.Brand = "Kellys"; p.Color = "Biela" }),
	}
	state := types.NewFilterState("", types.PriceRange{Low: 100, High: 300})
	state.SelectedColors = types.NewValueSet("Biela")
	state.SelectedBrands = types.NewValueSet("Scott")

	f := ComputeNarrowed(products, state)

	// brand values ignore the brand selection but respect the color one
	if !slices.Equal(f.Brands, []string{"KTM", "Kellys", "Scott"}) {
		t.Errorf("Unexpected brands %v", f.Brands)
	}
	// only Scott is selected and Scott products are black
	if !slices.Equal(f.Colors, []string{"Biela", "Čierna"}) {
		t.Errorf("Unexpected colors %v", f.Colors)
	}
	if f.PriceMin != 100 || f.PriceMax != 300 {
		t.Errorf("Expected category bounds, got %v-%v", f.PriceMin, f.PriceMax)
	}
}

func TestComputeNarrowedDropsUnreachable(t *testing.T) {
	products := []*types.Product{
		product("a", 100, func(p *types.Product) { p.Brand = "Scott"; p.Gender = types.GenderMen }),
		product("b", 200, func(p *types.Product) { p.Brand = "KTM"; p.Gender = types.GenderWomen }),
	}
	state := types.NewFilterState("", types.PriceRange{Low: 100, High: 200})
	state.SelectedGenders = types.NewValueSet("Women")
	f := ComputeNarrowed(products, state)
	if !slices.Equal(f.Brands, []string{"KTM"}) {
		t.Errorf("Expected only KTM, got %v", f.Brands)
	}
}

func TestSearchValues(t *testing.T) {
	values := []string{"KTM", "Kellys", "Scott", "Shimano"}
	if got := SearchValues(values, "k"); !slices.Equal(got, []string{"KTM", "Kellys"}) {
		t.Errorf("Unexpected result %v", got)
	}
	if got := SearchValues(values, "  "); !slices.Equal(got, values) {
		t.Errorf("Expected all values for empty term, got %v", got)
	}
	if got := SearchValues(values, "xyz"); len(got) != 0 {
		t.Errorf("Expected no values, got %v", got)
	}
}
