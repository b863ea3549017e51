package mapping

import "strings"

var (
	primaryNeedles = []string{"sku", "supplier_sku", "part_number"}
	primaryHints   = []string{"sku", "supplier_sku", "part_number", "product", "item", "barcode", "code", "id"}

	accountNeedles = []string{"account", "supplier_id", "sap_supplier_id", "vendor_id"}
	accountHints   = []string{"account", "supplier", "vendor", "sap"}
)

// GuessPrimaryKey returns the column most likely to hold the item identifier.
// Exact names win over substring matches.
func GuessPrimaryKey(columns []string) (string, bool) {
	return guess(columns, primaryNeedles, primaryHints)
}

// GuessAccountKey returns the column most likely to hold a supplier or account id.
func GuessAccountKey(columns []string) (string, bool) {
	return guess(columns, accountNeedles, accountHints)
}

func guess(columns, needles, hints []string) (string, bool) {
	for _, needle := range needles {
		for _, c := range columns {
			if strings.ToLower(c) == needle {
				return c, true
			}
		}
	}
	for _, c := range columns {
		lower := strings.ToLower(c)
		for _, h := range hints {
			if strings.Contains(lower, h) {
				return c, true
			}
		}
	}
	return "", false
}

// Suggestion is a proposed mapping for two headers. It is advisory: callers show it
// for confirmation and never feed it to the engine unreviewed.
type Suggestion struct {
	// Mapping holds the proposed keys and first compare pair.
	Mapping Mapping `json:"mapping"`
	// SourceKeyGuessed is false when SrcKey1 fell back to the first column.
	SourceKeyGuessed bool `json:"source_key_guessed"`
	// TargetKeyGuessed is false when TgtKey1 fell back to the first column.
	TargetKeyGuessed bool `json:"target_key_guessed"`
}

// Suggest proposes a mapping for a source and target header.
func Suggest(sourceColumns, targetColumns []string) Suggestion {
	var s Suggestion

	s.Mapping.SrcKey1, s.SourceKeyGuessed = GuessPrimaryKey(sourceColumns)
	if !s.SourceKeyGuessed && len(sourceColumns) > 0 {
		s.Mapping.SrcKey1 = sourceColumns[0]
	}
	s.Mapping.TgtKey1, s.TargetKeyGuessed = GuessPrimaryKey(targetColumns)
	if !s.TargetKeyGuessed && len(targetColumns) > 0 {
		s.Mapping.TgtKey1 = targetColumns[0]
	}

	srcAcc, okSrc := GuessAccountKey(sourceColumns)
	tgtAcc, okTgt := GuessAccountKey(targetColumns)
	if okSrc && okTgt && srcAcc != s.Mapping.SrcKey1 && tgtAcc != s.Mapping.TgtKey1 {
		s.Mapping.SrcKey2, s.Mapping.TgtKey2 = srcAcc, tgtAcc
	}

	if pair, ok := firstSharedColumn(sourceColumns, targetColumns, s.Mapping); ok {
		s.Mapping.ComparePairs = []ComparePair{pair}
	} else if len(sourceColumns) > 0 && len(targetColumns) > 0 {
		s.Mapping.ComparePairs = []ComparePair{{Source: sourceColumns[0], Target: targetColumns[0]}}
	}

	return s
}

// firstSharedColumn returns the first non-key column present on both sides.
func firstSharedColumn(src, tgt []string, m Mapping) (ComparePair, bool) {
	isKey := func(c string, keys []string) bool {
		for _, k := range keys {
			if k == c {
				return true
			}
		}
		return false
	}
	for _, c := range src {
		if isKey(c, m.SourceKeys()) {
			continue
		}
		for _, t := range tgt {
			if t == c && !isKey(t, m.TargetKeys()) {
				return ComparePair{Source: c, Target: t}, true
			}
		}
	}
	return ComparePair{}, false
}
