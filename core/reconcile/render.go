package reconcile

import "strconv"

// Columns returns the header of the named result set as written by exporters.
func (r *Result) Columns(set SetName) []string {
	pairs := r.Mapping.ComparePairs
	primary := r.Mapping.Primary()
	s0, t0 := primary.Source+"_src", primary.Target+"_tgt"

	switch set {
	case SetMismatches:
		cols := []string{"key", "change"}
		for _, p := range pairs {
			cols = append(cols, p.Source+"_src", p.Target+"_tgt")
		}
		cols = append(cols, "qty_diff")
		return append(cols, r.passthroughColumns()...)
	case SetOnlyInSource:
		return append([]string{"key", s0}, suffixed(r.Mapping.SrcPassthrough, "_src")...)
	case SetOnlyInTarget:
		return append([]string{"key", t0}, suffixed(r.Mapping.TgtPassthrough, "_tgt")...)
	case SetSourceInTargetOut, SetTargetInSourceOut:
		return append([]string{"key", s0, t0}, r.passthroughColumns()...)
	default:
		return nil
	}
}

// Cells renders rec as a row aligned with Columns(set). Present quantities are
// int64, absent quantities are nil and everything else is a string.
func (r *Result) Cells(set SetName, rec JoinedRecord) []any {
	switch set {
	case SetMismatches:
		row := []any{rec.Key.String(), "modified"}
		for i := range r.Mapping.ComparePairs {
			row = append(row, cell(rec.SourceValues[i]), cell(rec.TargetValues[i]))
		}
		row = append(row, rec.PrimaryDiff())
		return append(row, r.passthroughValues(rec)...)
	case SetOnlyInSource:
		row := []any{rec.Key.String(), cell(rec.PrimarySource())}
		return append(row, attrValues(rec.SourceAttrs, r.Mapping.SrcPassthrough)...)
	case SetOnlyInTarget:
		row := []any{rec.Key.String(), cell(rec.PrimaryTarget())}
		return append(row, attrValues(rec.TargetAttrs, r.Mapping.TgtPassthrough)...)
	case SetSourceInTargetOut, SetTargetInSourceOut:
		row := []any{rec.Key.String(), cell(rec.PrimarySource()), cell(rec.PrimaryTarget())}
		return append(row, r.passthroughValues(rec)...)
	default:
		return nil
	}
}

// Values renders rec as text. Quantities are plain integers; absent values are
// empty strings.
func (r *Result) Values(set SetName, rec JoinedRecord) []string {
	cells := r.Cells(set, rec)
	if cells == nil {
		return nil
	}
	out := make([]string, len(cells))
	for i, c := range cells {
		switch v := c.(type) {
		case nil:
		case int64:
			out[i] = strconv.FormatInt(v, 10)
		case string:
			out[i] = v
		}
	}
	return out
}

// Rows renders every record of the named set.
func (r *Result) Rows(set SetName) [][]string {
	records, ok := r.Set(set)
	if !ok {
		return nil
	}
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, r.Values(set, rec))
	}
	return rows
}

func (r *Result) passthroughColumns() []string {
	return append(suffixed(r.Mapping.SrcPassthrough, "_src"), suffixed(r.Mapping.TgtPassthrough, "_tgt")...)
}

func (r *Result) passthroughValues(rec JoinedRecord) []any {
	return append(attrValues(rec.SourceAttrs, r.Mapping.SrcPassthrough), attrValues(rec.TargetAttrs, r.Mapping.TgtPassthrough)...)
}

func suffixed(cols []string, suffix string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c + suffix
	}
	return out
}

func attrValues(attrs map[string]string, cols []string) []any {
	out := make([]any, len(cols))
	for i, c := range cols {
		out[i] = attrs[c]
	}
	return out
}

func cell(q Quantity) any {
	if !q.Valid {
		return nil
	}
	return q.Value
}
