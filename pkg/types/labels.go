package types

import "strings"

// storefront data is authored in Slovak, the engine works on canonical values
var badgeAliases = map[string]Badge{
	"new":      BadgeNew,
	"novinka":  BadgeNew,
	"sale":     BadgeSale,
	"výpredaj": BadgeSale,
	"vypredaj": BadgeSale,
	"top":      BadgeTop,
}

var genderAliases = map[string]Gender{
	"men":    GenderMen,
	"pánske": GenderMen,
	"panske": GenderMen,
	"women":  GenderWomen,
	"dámske": GenderWomen,
	"damske": GenderWomen,
	"unisex": GenderUnisex,
	"kids":   GenderKids,
	"detské": GenderKids,
	"detske": GenderKids,
}

func NormalizeBadge(s string) Badge {
	if b, ok := badgeAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return b
	}
	return Badge(strings.TrimSpace(s))
}

func NormalizeGender(s string) Gender {
	if g, ok := genderAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return g
	}
	return Gender(strings.TrimSpace(s))
}

func NormalizeStockStatus(s StockStatus) StockStatus {
	switch StockStatus(strings.ToLower(strings.TrimSpace(string(s)))) {
	case InStock:
		return InStock
	case OnOrder:
		return OnOrder
	default:
		return Unavailable
	}
}

// Normalize maps storefront labels to canonical values in place.
func (p *Product) Normalize() {
	p.Brand = strings.TrimSpace(p.Brand)
	p.Color = strings.TrimSpace(p.Color)
	p.WheelSize = strings.TrimSpace(p.WheelSize)
	if p.Badge != "" {
		p.Badge = NormalizeBadge(string(p.Badge))
	}
	if p.Gender != "" {
		p.Gender = NormalizeGender(string(p.Gender))
	}
	if p.Price < 0 {
		p.Price = 0
	}
	// sizes are unique within a product, first occurrence wins
	seen := make(map[string]struct{}, len(p.Variants))
	variants := make([]Variant, 0, len(p.Variants))
	for _, v := range p.Variants {
		v.Size = strings.TrimSpace(v.Size)
		if _, ok := seen[v.Size]; ok {
			continue
		}
		seen[v.Size] = struct{}{}
		v.StockStatus = NormalizeStockStatus(v.StockStatus)
		variants = append(variants, v)
	}
	p.Variants = variants
}
