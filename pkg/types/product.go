package types

// OtherBrand is the brand label used for products without a brand.
const OtherBrand = "Other"

type StockStatus string

const (
	InStock     StockStatus = "in_stock"
	OnOrder     StockStatus = "on_order"
	Unavailable StockStatus = "unavailable"
)

type Badge string

const (
	BadgeNew  Badge = "New"
	BadgeSale Badge = "Sale"
	BadgeTop  Badge = "Top"
)

type Gender string

const (
	GenderMen    Gender = "Men"
	GenderWomen  Gender = "Women"
	GenderUnisex Gender = "Unisex"
	GenderKids   Gender = "Kids"
)

// Variant is a purchasable size of a product.
type Variant struct {
	Size        string      `json:"size"`
	StockStatus StockStatus `json:"stockStatus"`
	StockCount  *int        `json:"stockCount,omitempty"`
}

type Product struct {
	Id           string            `json:"id"`
	Name         string            `json:"name"`
	Category     string            `json:"category"`
	Subcategory  string            `json:"subcategory,omitempty"`
	Brand        string            `json:"brand,omitempty"`
	Price        float64           `json:"price"`
	OldPrice     *float64          `json:"oldPrice,omitempty"`
	Image        string            `json:"image,omitempty"`
	Images       []string          `json:"images,omitempty"`
	Badge        Badge             `json:"badge,omitempty"`
	Description  string            `json:"description,omitempty"`
	Features     []string          `json:"features,omitempty"`
	Specs        map[string]string `json:"specs,omitempty"`
	Rating       float64           `json:"rating,omitempty"`
	ReviewsCount int               `json:"reviewsCount,omitempty"`
	Variants     []Variant         `json:"variants,omitempty"`
	Gender       Gender            `json:"gender,omitempty"`
	Color        string            `json:"color,omitempty"`
	WheelSize    string            `json:"wheelSize,omitempty"`
}

// BrandOrOther returns the brand used for facets and filtering.
func (p *Product) BrandOrOther() string {
	if p.Brand == "" {
		return OtherBrand
	}
	return p.Brand
}

func (p *Product) HasStock() bool {
	for _, v := range p.Variants {
		if v.StockStatus == InStock {
			return true
		}
	}
	return false
}

// DiscountFraction is (oldPrice-price)/oldPrice when the product is
// discounted and 0 otherwise.
func (p *Product) DiscountFraction() float64 {
	if p.OldPrice == nil {
		return 0
	}
	old := *p.OldPrice
	if old <= p.Price || old <= 0 {
		return 0
	}
	return (old - p.Price) / old
}

// DiscountPercent is the rounded discount shown on product cards.
func (p *Product) DiscountPercent() int {
	return int(p.DiscountFraction()*100 + 0.5)
}
