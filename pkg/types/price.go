package types

import (
	"math"
	"strconv"
	"strings"
)

// ParsePriceBound parses user typed price input, returning fallback for
// anything that is not a finite number. A single comma followed by at most
// two digits is a decimal separator, grouped input like 1,000 is rejected.
func ParsePriceBound(s string, fallback float64) float64 {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, ','); i >= 0 {
		if strings.Count(s, ",") > 1 || strings.Contains(s, ".") || len(s)-i-1 > 2 {
			return fallback
		}
		s = s[:i] + "." + s[i+1:]
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

// SanitizePriceRange clamps a requested range into bounds. Non finite values
// fall back to the nearest bound and an inverted range is swapped.
func SanitizePriceRange(low, high float64, bounds PriceRange) PriceRange {
	if math.IsNaN(low) || math.IsInf(low, 0) {
		low = bounds.Low
	}
	if math.IsNaN(high) || math.IsInf(high, 0) {
		high = bounds.High
	}
	low = clamp(low, bounds.Low, bounds.High)
	high = clamp(high, bounds.Low, bounds.High)
	if low > high {
		low, high = high, low
	}
	return PriceRange{Low: low, High: high}
}
