package query

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/kubbkoz/MTSTORE-Next/pkg/types"
)

var ErrUnknownAction = errors.New("unknown action")

// Action is a state transition applied by Reduce.
type Action interface {
	Kind() string
}

type SelectCategory struct {
	Category    string
	Subcategory string
}

// SetSubcategory narrows to one subcategory, an empty value clears it.
type SetSubcategory struct {
	Subcategory string
}

type Toggle struct {
	Facet types.FacetName
	Value string
}

type SetInStockOnly struct {
	Enabled bool
}

// SetPriceRange carries raw user input, it is sanitized against the
// category bounds by the reducer.
type SetPriceRange struct {
	Low  string
	High string
}

type SetSort struct {
	Key string
}

type LoadMore struct{}

// ClearFilters drops every selection but keeps category and sort order.
type ClearFilters struct{}

func (SelectCategory) Kind() string { return "select_category" }
func (SetSubcategory) Kind() string { return "set_subcategory" }
func (Toggle) Kind() string         { return "toggle" }
func (SetInStockOnly) Kind() string { return "set_in_stock_only" }
func (SetPriceRange) Kind() string  { return "set_price_range" }
func (SetSort) Kind() string        { return "set_sort" }
func (LoadMore) Kind() string       { return "load_more" }
func (ClearFilters) Kind() string   { return "clear_filters" }

func ToggleBrand(v string) Toggle     { return Toggle{Facet: types.FacetBrand, Value: v} }
func ToggleSize(v string) Toggle      { return Toggle{Facet: types.FacetSize, Value: v} }
func ToggleGender(v string) Toggle    { return Toggle{Facet: types.FacetGender, Value: v} }
func ToggleColor(v string) Toggle     { return Toggle{Facet: types.FacetColor, Value: v} }
func ToggleWheelSize(v string) Toggle { return Toggle{Facet: types.FacetWheelSize, Value: v} }

// PriceInput accepts both JSON numbers and strings so typed input reaches
// the reducer unchanged.
type PriceInput string

func (p *PriceInput) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*p = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return err
		}
		*p = PriceInput(unquoted)
		return nil
	}
	*p = PriceInput(s)
	return nil
}

type actionMessage struct {
	Type        string     `json:"type"`
	Category    string     `json:"category"`
	Subcategory string     `json:"subcategory"`
	Facet       string     `json:"facet"`
	Value       string     `json:"value"`
	Enabled     bool       `json:"enabled"`
	Low         PriceInput `json:"low"`
	High        PriceInput `json:"high"`
	Sort        string     `json:"sort"`
}

// DecodeAction parses the JSON form used by the browse API, for example
// {"type":"toggle","facet":"brand","value":"Scott"}.
func DecodeAction(data []byte) (Action, error) {
	var msg actionMessage
	if err := sonic.ConfigStd.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("decode action: %w", err)
	}
	switch msg.Type {
	case "select_category":
		return SelectCategory{Category: msg.Category, Subcategory: msg.Subcategory}, nil
	case "set_subcategory":
		return SetSubcategory{Subcategory: msg.Subcategory}, nil
	case "toggle":
		return Toggle{Facet: types.FacetName(msg.Facet), Value: msg.Value}, nil
	case "toggle_brand":
		return ToggleBrand(msg.Value), nil
	case "toggle_size":
		return ToggleSize(msg.Value), nil
	case "toggle_gender":
		return ToggleGender(msg.Value), nil
	case "toggle_color":
		return ToggleColor(msg.Value), nil
	case "toggle_wheel_size":
		return ToggleWheelSize(msg.Value), nil
	case "set_in_stock_only":
		return SetInStockOnly{Enabled: msg.Enabled}, nil
	case "set_price_range":
		return SetPriceRange{Low: string(msg.Low), High: string(msg.High)}, nil
	case "set_sort":
		return SetSort{Key: msg.Sort}, nil
	case "load_more":
		return LoadMore{}, nil
	case "clear_filters":
		return ClearFilters{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAction, msg.Type)
}
