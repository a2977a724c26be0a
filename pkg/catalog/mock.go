package catalog

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/kubbkoz/MTSTORE-Next/pkg/types"
)

// DefaultCategories is the storefront navigation.
func DefaultCategories() []Category {
	return []Category{
		{Name: "Bicykle", Subcategories: []string{"Horskí Hardtail", "Horskí Celoodpružené", "Gravel & Cyklokros", "Cestné", "Detské", "Krosové"}},
		{Name: "E-Bicykle", Subcategories: []string{"E-Horskí Celoodpružené", "E-Horskí Hardtail", "E-Mestské & Tour", "E-Gravel", "Príslušenstvo e-bike"}},
		{Name: "Oblečenie", Subcategories: []string{"Dresy", "Nohavice", "Bundy & Vesty", "Tretry", "Rukavice", "Prilby", "Chrániče"}},
		{Name: "Komponenty", Subcategories: []string{"Pohony & Brzdy", "Kolesá & Plášte", "Kokpit & Sedlá", "Vidlice & Tlmiče", "Pedále"}},
		{Name: "Doplnky", Subcategories: []string{"Svetlá", "Zámky", "Tachometre & GPS", "Batohy & Tašky", "Fľaše & Košíky", "Trenažéry"}},
		{Name: "Výpredaj", Subcategories: []string{}},
	}
}

var (
	mockBrands     = []string{"Scott", "KTM", "Kellys", "CTM", "Shimano", "Fox", "Oakley", "Castelli", "POC", "Maxxis", "Garmin", "Lezyne"}
	mockColors     = []string{"Čierna", "Biela", "Červená", "Modrá", "Zelená", "Oranžová", "Sivá", "Žltá"}
	mockGenders    = []types.Gender{types.GenderMen, types.GenderWomen, types.GenderUnisex, types.GenderKids}
	mockCategories = []string{"Bicykle", "E-Bicykle", "Oblečenie", "Komponenty", "Doplnky"}
)

func ptr[T any](v T) *T {
	return &v
}

func baseProducts() []types.Product {
	return []types.Product{
		{
			Id: "p1", Name: "Scott Patron eRIDE 900", Category: "E-Bicykle", Subcategory: "E-Horskí Celoodpružené",
			Brand: "Scott", Price: 7699, Badge: types.BadgeNew, Rating: 5, ReviewsCount: 4,
			Features: []string{"Rám Carbon/Alloy", "Vidlica FOX 38 Perf. 160mm", "Bosch CX 85Nm, 750Wh", "Shimano XT 12speed"},
			Variants: []types.Variant{
				{Size: "S", StockStatus: types.InStock, StockCount: ptr(2)},
				{Size: "M", StockStatus: types.InStock, StockCount: ptr(5)},
				{Size: "L", StockStatus: types.OnOrder},
				{Size: "XL", StockStatus: types.Unavailable},
			},
			Gender: types.GenderUnisex, Color: "Čierna", WheelSize: `29"`,
		},
		{
			Id: "p2", Name: "Kellys Swag 50", Category: "Bicykle", Subcategory: "Horskí Celoodpružené",
			Brand: "Kellys", Price: 2899, OldPrice: ptr(3199.0), Badge: types.BadgeSale, Rating: 4.8, ReviewsCount: 23,
			Features: []string{"Rám KELLYS Enduro 29", "Rock Shox ZEB Select 170mm", "Shimano XT M8100", "Brzdy Shimano SLX M7120"},
			Variants: []types.Variant{
				{Size: "M", StockStatus: types.InStock, StockCount: ptr(3)},
				{Size: "L", StockStatus: types.InStock, StockCount: ptr(1)},
				{Size: "XL", StockStatus: types.OnOrder},
			},
			Gender: types.GenderMen, Color: "Oranžová", WheelSize: `29"`,
		},
		{
			Id: "p3", Name: "CTM Mons Pro 29", Category: "Bicykle", Subcategory: "Horskí Celoodpružené",
			Brand: "CTM", Price: 4599, Rating: 5, ReviewsCount: 8,
			Features: []string{"Rám Carbon, 210mm travel", "Rock Shox Boxxer Ultimate", "SRAM X01 DH 7sp", "Kolesá Novatec Demon"},
			Variants: []types.Variant{
				{Size: "L", StockStatus: types.InStock, StockCount: ptr(1)},
				{Size: "XL", StockStatus: types.OnOrder},
			},
			Gender: types.GenderUnisex, Color: "Červená", WheelSize: `29"`,
		},
		{
			Id: "p4", Name: "KTM Macina Kapoho 7973", Category: "E-Bicykle", Subcategory: "E-Horskí Celoodpružené",
			Brand: "KTM", Price: 5299, Badge: types.BadgeTop, Rating: 4.7, ReviewsCount: 15,
			Features: []string{"Motor Bosch Perf. CX Gen.4", "Batéria Powertube 750Wh", "Vidlica RockShox 35 Silver", "Prehadzovačka SRAM SX Eagle"},
			Variants: []types.Variant{
				{Size: "M", StockStatus: types.OnOrder},
				{Size: "L", StockStatus: types.InStock, StockCount: ptr(4)},
			},
			Gender: types.GenderMen, Color: "Sivá", WheelSize: `29"`,
		},
	}
}

// MockProducts generates a demo catalog of count products. The same seed
// always yields the same catalog.
func MockProducts(count int, seed uint64) []types.Product {
	rnd := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	categories := DefaultCategories()
	products := baseProducts()
	for i := len(products); i < count; i++ {
		mainCategory := mockCategories[rnd.IntN(len(mockCategories))]
		brand := mockBrands[rnd.IntN(len(mockBrands))]
		price := float64(rnd.IntN(5000) + 20)
		var oldPrice *float64
		if rnd.Float64() > 0.7 {
			oldPrice = ptr(float64(int(price * 1.2)))
		}
		subcategory := mainCategory
		for _, c := range categories {
			if c.Name == mainCategory && len(c.Subcategories) > 0 {
				subcategory = c.Subcategories[0]
			}
		}
		products = append(products, types.Product{
			Id:           fmt.Sprintf("gen-%d", i),
			Name:         fmt.Sprintf("%s %s Pro %d", brand, mainCategory, 2025+rnd.IntN(2)),
			Category:     mainCategory,
			Subcategory:  subcategory,
			Brand:        brand,
			Price:        price,
			OldPrice:     oldPrice,
			Description:  fmt.Sprintf("Profesionálny produkt %s z kategórie %s.", brand, mainCategory),
			Rating:       float64(35+rnd.IntN(16)) / 10,
			ReviewsCount: rnd.IntN(100),
			Variants: []types.Variant{
				{Size: "S", StockStatus: types.InStock, StockCount: ptr(rnd.IntN(5))},
				{Size: "M", StockStatus: types.InStock, StockCount: ptr(rnd.IntN(10))},
				{Size: "L", StockStatus: types.OnOrder},
			},
			Gender:    mockGenders[rnd.IntN(len(mockGenders))],
			Color:     mockColors[rnd.IntN(len(mockColors))],
			WheelSize: mockWheelSize(rnd, mainCategory, subcategory),
		})
	}
	return products
}

func mockWheelSize(rnd *rand.Rand, category, subcategory string) string {
	if category != "Bicykle" && category != "E-Bicykle" {
		return ""
	}
	switch {
	case strings.Contains(subcategory, "Cestné"), strings.Contains(subcategory, "Gravel"), strings.Contains(subcategory, "Krosové"):
		return `28"`
	case strings.Contains(subcategory, "Detské"):
		return []string{`24"`, `20"`}[rnd.IntN(2)]
	}
	return []string{`29"`, `27.5"`}[rnd.IntN(2)]
}

// NewMock builds a demo catalog snapshot.
func NewMock(count int, seed uint64) *Catalog {
	return New(MockProducts(count, seed), DefaultCategories())
}
