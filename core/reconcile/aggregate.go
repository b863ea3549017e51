package reconcile

import (
	"slices"
	"strings"

	"inventory-reconciler/core/normalize"
	"inventory-reconciler/core/table"
)

// AggregateSpec names the columns Aggregate reads from a table.
type AggregateSpec struct {
	KeyColumns         []string
	QuantityColumns    []string
	PassthroughColumns []string
}

// missing returns the wanted columns the spec does not aggregate. Key columns
// must match position by position.
func (s AggregateSpec) missing(keys, quantities, passthrough []string) []string {
	var out []string
	for i, k := range keys {
		if i >= len(s.KeyColumns) || s.KeyColumns[i] != k {
			out = append(out, k)
		}
	}
	for _, c := range quantities {
		if !slices.Contains(s.QuantityColumns, c) {
			out = append(out, c)
		}
	}
	for _, c := range passthrough {
		if !slices.Contains(s.PassthroughColumns, c) {
			out = append(out, c)
		}
	}
	return out
}

// aggregatedRow is one key's collapsed values.
type aggregatedRow struct {
	key        Key
	quantities map[string]Quantity
	attrs      map[string]string
}

// AggregatedTable holds one row per cleaned key.
type AggregatedTable struct {
	spec    AggregateSpec
	entries map[string]*aggregatedRow

	// Discarded counts rows dropped because the primary key was blank.
	Discarded int
	// Anomalies counts quantity cells that failed to parse and were taken as 0.
	Anomalies int
}

// Len returns the number of distinct keys.
func (a *AggregatedTable) Len() int {
	return len(a.entries)
}

// quantity returns the summed quantity of column for key.
func (a *AggregatedTable) quantity(key Key, column string) (Quantity, bool) {
	e, ok := a.entries[key.id()]
	if !ok {
		return Quantity{}, false
	}
	return e.quantities[column], true
}

// Aggregate groups the rows of t by cleaned key. Quantity columns are summed;
// a column that is blank on every row of a key stays absent. Passthrough columns
// keep the lexicographically smallest non-blank value. t is not modified.
func Aggregate(t *table.Table, spec AggregateSpec) *AggregatedTable {
	agg := &AggregatedTable{spec: spec, entries: make(map[string]*aggregatedRow)}

	for _, row := range t.Rows {
		key, ok := rowKey(row, spec.KeyColumns)
		if !ok {
			agg.Discarded++
			continue
		}

		id := key.id()
		entry, exists := agg.entries[id]
		if !exists {
			entry = &aggregatedRow{
				key:        key,
				quantities: make(map[string]Quantity, len(spec.QuantityColumns)),
			}
			agg.entries[id] = entry
		}

		for _, col := range spec.QuantityColumns {
			cell := row.Get(col)
			if !cell.Valid || strings.TrimSpace(cell.Value) == "" {
				continue
			}
			v, anomaly := normalize.ParseQuantityChecked(cell.Value)
			if anomaly {
				agg.Anomalies++
			}
			q := entry.quantities[col]
			entry.quantities[col] = Some(q.OrZero() + v)
		}

		for _, col := range spec.PassthroughColumns {
			cell := row.Get(col)
			v := strings.TrimSpace(cell.Value)
			if !cell.Valid || v == "" {
				continue
			}
			if entry.attrs == nil {
				entry.attrs = make(map[string]string, len(spec.PassthroughColumns))
			}
			if cur, ok := entry.attrs[col]; !ok || v < cur {
				entry.attrs[col] = v
			}
		}
	}

	return agg
}

// rowKey builds the cleaned key of a row. The row has no key when the first
// component is blank; a blank secondary component becomes "".
func rowKey(row table.Row, columns []string) (Key, bool) {
	key := make(Key, len(columns))
	for i, col := range columns {
		cell := row.Get(col)
		v, ok := normalize.CleanKey(cell.Value)
		if !ok && i == 0 {
			return nil, false
		}
		key[i] = v
	}
	return key, true
}
