package types

const (
	DefaultPriceMin = 0
	DefaultPriceMax = 10000
)

// FacetSet lists the values a category offers for each filterable attribute.
type FacetSet struct {
	Brands     []string `json:"brands"`
	FrameSizes []string `json:"frameSizes"`
	Genders    []string `json:"genders"`
	Colors     []string `json:"colors"`
	WheelSizes []string `json:"wheelSizes"`
	PriceMin   float64  `json:"priceMin"`
	PriceMax   float64  `json:"priceMax"`
}

func (f *FacetSet) Bounds() PriceRange {
	return PriceRange{Low: f.PriceMin, High: f.PriceMax}
}
