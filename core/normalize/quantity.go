package normalize

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// nullTokens are cell values treated the same as a blank cell.
var nullTokens = map[string]struct{}{
	"NULL": {},
	"NAN":  {},
}

// ParseQuantity converts a raw quantity string into an integer.
// Blank, NULL and NAN inputs yield 0, as does anything that cannot be parsed.
func ParseQuantity(raw string) int64 {
	v, _ := ParseQuantityChecked(raw)
	return v
}

// ParseQuantityChecked behaves like ParseQuantity and also reports whether the
// input was unparsable text that was silently mapped to zero.
func ParseQuantityChecked(raw string) (value int64, anomaly bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	if _, ok := nullTokens[strings.ToUpper(s)]; ok {
		return 0, false
	}

	negative := len(s) >= 2 && strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")
	if negative {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	s = strings.ReplaceAll(s, ",", "")

	magnitude, ok := parseDecimal(s)
	if !ok {
		magnitude, ok = parseFloat(s)
	}
	if !ok {
		return 0, true
	}
	if negative {
		magnitude = -magnitude
	}
	return magnitude, false
}

// parseDecimal parses s as an exact decimal and rounds half away from zero.
func parseDecimal(s string) (int64, bool) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	r := d.Round(0)
	if !r.BigInt().IsInt64() {
		return 0, false
	}
	return r.IntPart(), true
}

// parseFloat is the lenient fallback: float parsing followed by truncation.
func parseFloat(s string) (int64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f >= math.MaxInt64 || f <= math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}
