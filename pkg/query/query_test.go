package query

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/kubbkoz/MTSTORE-Next/pkg/types"
)

type mapSource map[string][]*types.Product

func (m mapSource) CategoryProducts(name string) []*types.Product {
	return m[name]
}

func ids(products []*types.Product) []string {
	ret := make([]string, 0, len(products))
	for _, p := range products {
		ret = append(ret, p.Id)
	}
	return ret
}

func bikes() mapSource {
	return mapSource{
		"Bicykle": {
			{Id: "kellys", Name: "Kellys Swag", Brand: "Kellys", Subcategory: "MTB", Price: 2899, Color: "Oranžová",
				Variants: []types.Variant{{Size: "M", StockStatus: types.InStock}}},
			{Id: "ctm", Name: "CTM Mons", Brand: "CTM", Subcategory: "MTB", Price: 4599, Badge: types.BadgeNew,
				Variants: []types.Variant{{Size: "L", StockStatus: types.OnOrder}}},
			{Id: "scott", Name: "Scott Addict", Brand: "Scott", Subcategory: "Road", Price: 7699, Color: "Čierna",
				Variants: []types.Variant{{Size: "M", StockStatus: types.InStock}, {Size: "L", StockStatus: types.InStock}}},
		},
		"Doplnky": {
			{Id: "light", Name: "Svetlo", Brand: "Lezyne", Price: 49},
		},
	}
}

func many(n int) mapSource {
	products := make([]*types.Product, 0, n)
	for i := range n {
		products = append(products, &types.Product{Id: fmt.Sprintf("p%02d", i), Brand: "Scott", Price: float64(100 + i)})
	}
	return mapSource{"Bicykle": products}
}

func reduceAll(src Source, opts Options, actions ...Action) State {
	s := NewState()
	for _, a := range actions {
		s = Reduce(src, s, a, opts)
	}
	return s
}

func TestNewStateIsIdle(t *testing.T) {
	s := NewState()
	if s.Phase != Idle {
		t.Errorf("Expected idle, got %v", s.Phase)
	}
	v := Derive(s, Options{})
	if len(v.Items) != 0 || v.HasMore || v.TotalCount != 0 {
		t.Errorf("Idle view should be empty, got %+v", v)
	}
}

func TestIdleIgnoresFilterActions(t *testing.T) {
	s := reduceAll(bikes(), Options{}, ToggleBrand("Scott"), SetInStockOnly{Enabled: true}, LoadMore{})
	if s.Phase != Idle || s.Filter.InStockOnly || len(s.Filter.SelectedBrands) != 0 || s.Filter.VisibleCount != types.DefaultVisibleCount {
		t.Errorf("Idle state changed: %+v", s.Filter)
	}
}

func TestSelectCategory(t *testing.T) {
	s := reduceAll(bikes(), Options{}, SelectCategory{Category: "Bicykle"})
	if s.Phase != CategorySelected || s.Category != "Bicykle" {
		t.Fatalf("Unexpected state %v %s", s.Phase, s.Category)
	}
	if s.Filter.PriceRange.Low != 2899 || s.Filter.PriceRange.High != 7699 {
		t.Errorf("Expected price range from bounds, got %+v", s.Filter.PriceRange)
	}
	if !slices.Equal(s.Facets.Brands, []string{"CTM", "Kellys", "Scott"}) {
		t.Errorf("Unexpected brands %v", s.Facets.Brands)
	}
	v := Derive(s, Options{})
	if !slices.Equal(ids(v.Items), []string{"kellys", "ctm", "scott"}) {
		t.Errorf("Expected catalog order, got %v", ids(v.Items))
	}
}

func TestSelectCategoryResetsFilters(t *testing.T) {
	s := reduceAll(bikes(), Options{},
		SelectCategory{Category: "Bicykle"},
		ToggleBrand("Scott"),
		SetSort{Key: "price_desc"},
		SetInStockOnly{Enabled: true},
		LoadMore{},
		SelectCategory{Category: "Doplnky", Subcategory: "Svetlá"},
	)
	f := s.Filter
	if len(f.SelectedBrands) != 0 || f.InStockOnly || f.SortKey != types.SortRecommended || f.VisibleCount != types.DefaultVisibleCount {
		t.Errorf("Expected defaults after category change, got %+v", f)
	}
	if f.Subcategory() != "Svetlá" {
		t.Errorf("Expected subcategory from selection, got %q", f.Subcategory())
	}
	if f.PriceRange.Low != 49 || f.PriceRange.High != 49 {
		t.Errorf("Expected new category bounds, got %+v", f.PriceRange)
	}
}

func TestUnknownCategory(t *testing.T) {
	s := reduceAll(bikes(), Options{}, SelectCategory{Category: "Nope"})
	if s.Facets.PriceMin != types.DefaultPriceMin || s.Facets.PriceMax != types.DefaultPriceMax {
		t.Errorf("Expected default bounds, got %v-%v", s.Facets.PriceMin, s.Facets.PriceMax)
	}
	v := Derive(s, Options{})
	if len(v.Items) != 0 || v.HasMore {
		t.Errorf("Expected empty view, got %v", ids(v.Items))
	}
}

func TestToggleBrandTwiceRestores(t *testing.T) {
	src := bikes()
	base := reduceAll(src, Options{}, SelectCategory{Category: "Bicykle"})
	once := Reduce(src, base, ToggleBrand("Scott"), Options{})
	if !slices.Equal([]string(once.Filter.SelectedBrands), []string{"Scott"}) {
		t.Errorf("Expected Scott selected, got %v", once.Filter.SelectedBrands)
	}
	if len(base.Filter.SelectedBrands) != 0 {
		t.Errorf("Reduce modified its input state")
	}
	twice := Reduce(src, once, ToggleBrand("Scott"), Options{})
	if len(twice.Filter.SelectedBrands) != 0 {
		t.Errorf("Expected empty selection, got %v", twice.Filter.SelectedBrands)
	}
	if got := ids(Derive(twice, Options{}).Items); !slices.Equal(got, []string{"kellys", "ctm", "scott"}) {
		t.Errorf("Expected unfiltered view, got %v", got)
	}
}

func TestToggleUnknownValueIsNoop(t *testing.T) {
	src := bikes()
	base := reduceAll(src, Options{}, SelectCategory{Category: "Bicykle"})
	for _, a := range []Action{ToggleBrand("Trek"), ToggleSize("XXL"), Toggle{Facet: "material", Value: "Carbon"}} {
		next := Reduce(src, base, a, Options{})
		if next.Filter.HasSelections() {
			t.Errorf("Action %+v changed the selection", a)
		}
	}
}

func TestToggleOtherBrand(t *testing.T) {
	src := bikes()
	src["Bicykle"] = append(src["Bicykle"], &types.Product{Id: "generic", Price: 3000})
	s := reduceAll(src, Options{}, SelectCategory{Category: "Bicykle"}, ToggleBrand(types.OtherBrand))
	if got := ids(Derive(s, Options{}).Items); !slices.Equal(got, []string{"generic"}) {
		t.Errorf("Expected only the unbranded product, got %v", got)
	}
}

func TestSubcategoryAndStock(t *testing.T) {
	s := reduceAll(bikes(), Options{}, SelectCategory{Category: "Bicykle"}, SetSubcategory{Subcategory: "MTB"})
	if got := ids(Derive(s, Options{}).Items); !slices.Equal(got, []string{"kellys", "ctm"}) {
		t.Errorf("Unexpected subcategory result %v", got)
	}
	s = Reduce(bikes(), s, SetInStockOnly{Enabled: true}, Options{})
	if got := ids(Derive(s, Options{}).Items); !slices.Equal(got, []string{"kellys"}) {
		t.Errorf("Unexpected stock result %v", got)
	}
	s = Reduce(bikes(), s, SetSubcategory{}, Options{})
	if got := ids(Derive(s, Options{}).Items); !slices.Equal(got, []string{"kellys", "scott"}) {
		t.Errorf("Unexpected result after clearing subcategory %v", got)
	}
}

func TestSetPriceRangeSanitizes(t *testing.T) {
	src := bikes()
	base := reduceAll(src, Options{}, SelectCategory{Category: "Bicykle"})
	cases := []struct {
		low, high string
		want      types.PriceRange
	}{
		{"3000", "5000", types.PriceRange{Low: 3000, High: 5000}},
		{"abc", "5000", types.PriceRange{Low: 2899, High: 5000}},
		{"3000", "", types.PriceRange{Low: 3000, High: 7699}},
		{"10", "99999", types.PriceRange{Low: 2899, High: 7699}},
		{"6000", "3000", types.PriceRange{Low: 3000, High: 6000}},
		{"3500,5", "NaN", types.PriceRange{Low: 3500.5, High: 7699}},
	}
	for _, c := range cases {
		s := Reduce(src, base, SetPriceRange{Low: c.low, High: c.high}, Options{})
		if s.Filter.PriceRange != c.want {
			t.Errorf("SetPriceRange(%q, %q) = %+v, expected %+v", c.low, c.high, s.Filter.PriceRange, c.want)
		}
	}
	s := Reduce(src, base, SetPriceRange{Low: "2899", High: "2899"}, Options{})
	if got := ids(Derive(s, Options{}).Items); !slices.Equal(got, []string{"kellys"}) {
		t.Errorf("Expected inclusive bounds, got %v", got)
	}
}

func TestSetSort(t *testing.T) {
	src := bikes()
	s := reduceAll(src, Options{}, SelectCategory{Category: "Bicykle"}, SetSort{Key: "price_desc"})
	if got := ids(Derive(s, Options{}).Items); !slices.Equal(got, []string{"scott", "ctm", "kellys"}) {
		t.Errorf("Unexpected price_desc order %v", got)
	}
	s = Reduce(src, s, SetSort{Key: "newest"}, Options{})
	if got := ids(Derive(s, Options{}).Items); !slices.Equal(got, []string{"ctm", "kellys", "scott"}) {
		t.Errorf("Unexpected newest order %v", got)
	}
	s = Reduce(src, s, SetSort{Key: "bogus"}, Options{})
	if s.Filter.SortKey != types.SortRecommended {
		t.Errorf("Unknown sort should fall back to recommended, got %s", s.Filter.SortKey)
	}
}

func TestLoadMore(t *testing.T) {
	src := many(20)
	s := reduceAll(src, Options{}, SelectCategory{Category: "Bicykle"})
	v := Derive(s, Options{})
	if len(v.Items) != 12 || !v.HasMore || v.TotalCount != 20 {
		t.Fatalf("Expected 12 of 20 with more, got %d of %d %v", len(v.Items), v.TotalCount, v.HasMore)
	}
	s = Reduce(src, s, LoadMore{}, Options{})
	v = Derive(s, Options{})
	if len(v.Items) != 20 || v.HasMore || v.VisibleCount != 24 {
		t.Errorf("Expected all 20 without more, got %d %v %d", len(v.Items), v.HasMore, v.VisibleCount)
	}

	small := many(8)
	v = Derive(reduceAll(small, Options{}, SelectCategory{Category: "Bicykle"}), Options{})
	if len(v.Items) != 8 || v.HasMore {
		t.Errorf("Expected 8 without more, got %d %v", len(v.Items), v.HasMore)
	}
}

func TestWindowKeptOnFilterChangeByDefault(t *testing.T) {
	src := many(30)
	s := reduceAll(src, Options{}, SelectCategory{Category: "Bicykle"}, LoadMore{}, SetSort{Key: "price_desc"}, SetInStockOnly{Enabled: false})
	if s.Filter.VisibleCount != 24 {
		t.Errorf("Expected window to survive filter changes, got %d", s.Filter.VisibleCount)
	}
}

func TestWindowResetOnFilterChangeWhenEnabled(t *testing.T) {
	src := many(30)
	opts := Options{ResetWindowOnFilter: true}
	s := reduceAll(src, opts, SelectCategory{Category: "Bicykle"}, LoadMore{})
	if s.Filter.VisibleCount != 24 {
		t.Fatalf("Expected 24 after load more, got %d", s.Filter.VisibleCount)
	}
	s = Reduce(src, s, SetSort{Key: "price_desc"}, opts)
	if s.Filter.VisibleCount != types.DefaultVisibleCount {
		t.Errorf("Expected window reset, got %d", s.Filter.VisibleCount)
	}
	s = Reduce(src, s, LoadMore{}, opts)
	s = Reduce(src, s, ToggleBrand("Trek"), opts)
	if s.Filter.VisibleCount != 24 {
		t.Errorf("A no-op toggle should not reset the window, got %d", s.Filter.VisibleCount)
	}
}

func TestClearFilters(t *testing.T) {
	src := bikes()
	s := reduceAll(src, Options{},
		SelectCategory{Category: "Bicykle", Subcategory: "MTB"},
		ToggleBrand("Kellys"),
		SetInStockOnly{Enabled: true},
		SetPriceRange{Low: "3000", High: "4000"},
		SetSort{Key: "name_desc"},
		ClearFilters{},
	)
	if s.Filter.HasSelections() {
		t.Errorf("Expected no selections, got %+v", s.Filter)
	}
	if s.Filter.PriceRange != (types.PriceRange{Low: 2899, High: 7699}) {
		t.Errorf("Expected category bounds, got %+v", s.Filter.PriceRange)
	}
	if s.Filter.SortKey != types.SortNameDesc || s.Category != "Bicykle" {
		t.Errorf("Expected sort and category kept, got %s %s", s.Filter.SortKey, s.Category)
	}
}

func TestNarrowFacetsOption(t *testing.T) {
	src := bikes()
	s := reduceAll(src, Options{}, SelectCategory{Category: "Bicykle"}, SetSubcategory{Subcategory: "Road"})
	if v := Derive(s, Options{}); !slices.Equal(v.Facets.Brands, []string{"CTM", "Kellys", "Scott"}) {
		t.Errorf("Expected category wide brands, got %v", v.Facets.Brands)
	}
	if v := Derive(s, Options{NarrowFacets: true}); !slices.Equal(v.Facets.Brands, []string{"Scott"}) {
		t.Errorf("Expected narrowed brands, got %v", v.Facets.Brands)
	}
}

func TestDecodeAction(t *testing.T) {
	cases := []struct {
		in   string
		want Action
	}{
		{`{"type":"select_category","category":"Bicykle","subcategory":"Cestné"}`, SelectCategory{Category: "Bicykle", Subcategory: "Cestné"}},
		{`{"type":"toggle","facet":"color","value":"Biela"}`, ToggleColor("Biela")},
		{`{"type":"toggle_brand","value":"Scott"}`, ToggleBrand("Scott")},
		{`{"type":"toggle_wheel_size","value":"29\""}`, ToggleWheelSize(`29"`)},
		{`{"type":"set_in_stock_only","enabled":true}`, SetInStockOnly{Enabled: true}},
		{`{"type":"set_price_range","low":100,"high":"2 000"}`, SetPriceRange{Low: "100", High: "2 000"}},
		{`{"type":"set_price_range","low":null}`, SetPriceRange{}},
		{`{"type":"set_sort","sort":"price_asc"}`, SetSort{Key: "price_asc"}},
		{`{"type":"load_more"}`, LoadMore{}},
		{`{"type":"clear_filters"}`, ClearFilters{}},
	}
	for _, c := range cases {
		got, err := DecodeAction([]byte(c.in))
		if err != nil {
			t.Errorf("DecodeAction(%s) failed: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("DecodeAction(%s) = %#v, expected %#v", c.in, got, c.want)
		}
	}
	if _, err := DecodeAction([]byte(`{"type":"explode"}`)); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("Expected ErrUnknownAction, got %v", err)
	}
	if _, err := DecodeAction([]byte(`{`)); err == nil {
		t.Errorf("Expected error for invalid json")
	}
}

func TestPhaseText(t *testing.T) {
	var p Phase
	if err := p.UnmarshalText([]byte("category_selected")); err != nil || p != CategorySelected {
		t.Errorf("Unexpected phase %v %v", p, err)
	}
	b, _ := Idle.MarshalText()
	if string(b) != "idle" {
		t.Errorf("Unexpected text %s", b)
	}
}

func request(category string) *types.QueryRequest {
	return &types.QueryRequest{Category: category, QueryFilters: &types.QueryFilters{}}
}

func TestRunDefaults(t *testing.T) {
	res := Run(many(20), request("Bicykle"), Options{})
	if len(res.Items) != 12 || !res.HasMore || res.TotalCount != 20 || res.Limit != 12 || res.Sort != types.SortRecommended {
		t.Errorf("Unexpected response %d %v %d %d %s", len(res.Items), res.HasMore, res.TotalCount, res.Limit, res.Sort)
	}
	if res.PriceRange != (types.PriceRange{Low: 100, High: 119}) {
		t.Errorf("Expected category bounds, got %+v", res.PriceRange)
	}
}

func TestRunOffset(t *testing.T) {
	req := request("Bicykle")
	req.Offset = 15
	req.Limit = 10
	req.Sort = types.SortPriceDesc
	res := Run(many(20), req, Options{})
	if !slices.Equal(ids(res.Items), []string{"p04", "p03", "p02", "p01", "p00"}) || res.HasMore {
		t.Errorf("Unexpected page %v %v", ids(res.Items), res.HasMore)
	}
}

func TestRunFilters(t *testing.T) {
	req := request("Bicykle")
	req.Brands = []string{"Kellys", "Scott"}
	req.Sizes = []string{"M"}
	res := Run(bikes(), req, Options{})
	if !slices.Equal(ids(res.Items), []string{"kellys", "scott"}) {
		t.Errorf("Unexpected result %v", ids(res.Items))
	}

	lo, hi := 3000.0, 99999.0
	req = request("Bicykle")
	req.PriceMin = &lo
	req.PriceMax = &hi
	res = Run(bikes(), req, Options{})
	if !slices.Equal(ids(res.Items), []string{"ctm", "scott"}) || res.PriceRange.High != 7699 {
		t.Errorf("Unexpected price result %v %+v", ids(res.Items), res.PriceRange)
	}
}

func TestRunDropsUnknownValues(t *testing.T) {
	req := request("Bicykle")
	req.Brands = []string{"Trek"}
	res := Run(bikes(), req, Options{})
	if res.TotalCount != 3 {
		t.Errorf("Unknown brand should not exclude products, got %v", ids(res.Items))
	}
}

func TestRunEmptyCategory(t *testing.T) {
	res := Run(bikes(), request("Nope"), Options{})
	if res.Items == nil || len(res.Items) != 0 || res.HasMore {
		t.Errorf("Expected empty items, got %v", res.Items)
	}
	if res.Facets.PriceMin != types.DefaultPriceMin || res.Facets.PriceMax != types.DefaultPriceMax {
		t.Errorf("Expected default bounds, got %+v", res.Facets)
	}
	if res := Run(nil, request("Bicykle"), Options{}); res.TotalCount != 0 {
		t.Errorf("Expected nothing from a nil source")
	}
}

func TestInvertedPriceInputIsSwapped(t *testing.T) {
	src := bikes()
	s := reduceAll(src, Options{}, SelectCategory{Category: "Bicykle"}, SetPriceRange{Low: "5000", High: "3000"})
	if s.Filter.PriceRange != (types.PriceRange{Low: 3000, High: 5000}) {
		t.Errorf("Expected swapped range, got %+v", s.Filter.PriceRange)
	}
	if got := ids(Derive(s, Options{}).Items); !slices.Equal(got, []string{"ctm"}) {
		t.Errorf("Expected the product between the bounds, got %v", got)
	}
}
