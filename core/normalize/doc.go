// Package normalize turns raw table cells into comparable values.
//
// Quantities are parsed into exact integers. Parsing is total: every input maps to
// an integer and failures collapse to zero. Callers that need to know about bad input
// use ParseQuantityChecked, which additionally reports whether the text was an anomaly
// (non-blank, not a NULL/NAN token, and not a number).
//
// Keys are canonicalized by trimming and upper-casing so that "a1 " and "A1" join.
//
// # Usage
//
//	qty := normalize.ParseQuantity("(1,234.5)") // -1235
//	key, ok := normalize.CleanKey(" sku-1 ")    // "SKU-1", true
package normalize
