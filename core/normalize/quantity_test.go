package normalize

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int64
	}{
		{"Blank", "", 0},
		{"Whitespace", "   ", 0},
		{"NullToken", "NULL", 0},
		{"NullTokenLower", "null", 0},
		{"NanToken", "NaN", 0},
		{"Integer", "42", 42},
		{"Padded", "  17 ", 17},
		{"Thousands", "1,234", 1234},
		{"Parenthesized", "(123)", -123},
		{"ParenthesizedPadded", "( 1,000 )", -1000},
		{"HalfUp", "41820.5", 41821},
		{"BelowHalf", "41820.4", 41820},
		{"TrailingZero", "41820.0", 41820},
		{"NegativeHalf", "-0.5", -1},
		{"ParenthesizedHalf", "(0.5)", -1},
		{"Exponent", "1e3", 1000},
		{"LeadingPlus", "+8", 8},
		{"Text", "abc", 0},
		{"EmptyParens", "()", 0},
		{"Infinity", "inf", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseQuantity(tt.in))
		})
	}
}

func TestParseQuantityChecked(t *testing.T) {
	tests := []struct {
		in      string
		anomaly bool
	}{
		{"", false},
		{"NULL", false},
		{"12", false},
		{"(3)", false},
		{"abc", true},
		{"12 units", true},
		{"()", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, anomaly := ParseQuantityChecked(tt.in)
			assert.Equal(t, tt.anomaly, anomaly)
		})
	}
}

func TestParseQuantity_Idempotent(t *testing.T) {
	inputs := []string{"0", "7", "-7", "(12)", "1,000,000", "99.5", "-99.5", "junk", "9223372036854775807"}
	for _, in := range inputs {
		first := ParseQuantity(in)
		second := ParseQuantity(strconv.FormatInt(first, 10))
		assert.Equal(t, first, second, "input %q", in)
	}
}

func TestCleanKey(t *testing.T) {
	key, ok := CleanKey("  ab-12 ")
	assert.True(t, ok)
	assert.Equal(t, "AB-12", key)

	_, ok = CleanKey("   ")
	assert.False(t, ok)
}

func TestSnakeCase(t *testing.T) {
	assert.Equal(t, "free_stock_wh_1", SnakeCase("Free Stock [WH-1]"))
	assert.Equal(t, "item_number", SnakeCase("Item #"))
	assert.Equal(t, "sku_oms_details_sku", SnakeCase("SKU.OMS/Details SKU"))
}
