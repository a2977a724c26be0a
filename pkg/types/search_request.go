package types

import (
	"math"
	"net/http"
	"net/url"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/gorilla/schema"
)

const (
	DefaultQueryLimit = DefaultVisibleCount
	maxQueryLimit     = 1000
	maxQueryOffset    = 100000
)

type QueryFilters struct {
	Brands      []string `json:"brands,omitempty" schema:"brand"`
	Sizes       []string `json:"sizes,omitempty" schema:"size"`
	Genders     []string `json:"genders,omitempty" schema:"gender"`
	Colors      []string `json:"colors,omitempty" schema:"color"`
	WheelSizes  []string `json:"wheelSizes,omitempty" schema:"wheel"`
	PriceMin    *float64 `json:"priceMin,omitempty" schema:"-"`
	PriceMax    *float64 `json:"priceMax,omitempty" schema:"-"`
	InStockOnly bool     `json:"inStockOnly,omitempty" schema:"stock"`
}

// QueryRequest is the stateless form of a category query.
type QueryRequest struct {
	*QueryFilters `json:"filters"`
	Category      string  `json:"category" schema:"category"`
	Subcategory   string  `json:"subcategory,omitempty" schema:"sub"`
	Sort          SortKey `json:"sort,omitempty" schema:"sort"`
	Offset        int     `json:"offset" schema:"offset"`
	Limit         int     `json:"limit" schema:"limit,default:12"`
	SkipTracking  bool    `json:"skipTracking,omitempty" schema:"nt"`
}

type QueryResponse struct {
	Items      []*Product `json:"items"`
	TotalCount int        `json:"totalCount"`
	HasMore    bool       `json:"hasMore"`
	Offset     int        `json:"offset"`
	Limit      int        `json:"limit"`
	Sort       SortKey    `json:"sort"`
	PriceRange PriceRange `json:"priceRange"`
	Facets     FacetSet   `json:"facets"`
}

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

func clamp[T int | float64](value, min, max T) T {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func (q *QueryRequest) Sanitize() {
	if q.QueryFilters == nil {
		q.QueryFilters = &QueryFilters{}
	}
	q.Category = strings.TrimSpace(q.Category)
	q.Subcategory = strings.TrimSpace(q.Subcategory)
	q.Sort = ParseSortKey(string(q.Sort))
	if q.Limit <= 0 {
		q.Limit = DefaultQueryLimit
	}
	q.Limit = clamp(q.Limit, 1, maxQueryLimit)
	q.Offset = clamp(q.Offset, 0, maxQueryOffset)
	q.Brands = NewValueSet(q.Brands...)
	q.Sizes = NewValueSet(q.Sizes...)
	q.Genders = NewValueSet(q.Genders...)
	q.Colors = NewValueSet(q.Colors...)
	q.WheelSizes = NewValueSet(q.WheelSizes...)
}

// FilterState converts the request into the state the filter engine works on,
// resolving missing or invalid price bounds against the category bounds.
func (q *QueryRequest) FilterState(bounds PriceRange) FilterState {
	state := NewFilterState(q.Subcategory, bounds)
	low, high := bounds.Low, bounds.High
	if q.PriceMin != nil {
		low = *q.PriceMin
	}
	if q.PriceMax != nil {
		high = *q.PriceMax
	}
	state.PriceRange = SanitizePriceRange(low, high, bounds)
	state.SelectedBrands = NewValueSet(q.Brands...)
	state.SelectedSizes = NewValueSet(q.Sizes...)
	state.SelectedGenders = NewValueSet(q.Genders...)
	state.SelectedColors = NewValueSet(q.Colors...)
	state.SelectedWheelSizes = NewValueSet(q.WheelSizes...)
	state.InStockOnly = q.InStockOnly
	state.SortKey = q.Sort
	state.VisibleCount = q.Offset + q.Limit
	return state
}

func GetQueryFromRequest(r *http.Request) (*QueryRequest, error) {
	qr := makeBaseQueryRequest()
	var err error
	if r.Method == http.MethodGet {
		err = queryFromRequestQuery(r.URL.Query(), qr)
	} else {
		err = sonic.ConfigStd.NewDecoder(r.Body).Decode(qr)
	}
	qr.Sanitize()
	return qr, err
}

func queryFromRequestQuery(query url.Values, result *QueryRequest) error {
	err := decoder.Decode(result, query)
	if err != nil {
		return err
	}
	result.PriceMin = optionalPrice(query.Get("min"))
	result.PriceMax = optionalPrice(query.Get("max"))
	return nil
}

// optionalPrice ignores unparsable input so the category bound is used.
func optionalPrice(s string) *float64 {
	if s == "" {
		return nil
	}
	v := ParsePriceBound(s, math.NaN())
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

func makeBaseQueryRequest() *QueryRequest {
	return &QueryRequest{
		QueryFilters: &QueryFilters{
			Brands:     []string{},
			Sizes:      []string{},
			Genders:    []string{},
			Colors:     []string{},
			WheelSizes: []string{},
		},
		Sort:  SortRecommended,
		Limit: DefaultQueryLimit,
	}
}
