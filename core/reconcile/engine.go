package reconcile

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"inventory-reconciler/core/mapping"
	"inventory-reconciler/core/table"

	"github.com/google/uuid"
)

// Reconcile validates the mapping against both tables, aggregates them and joins
// the result. A *ConfigurationError or *MissingColumnError is returned before any
// join work when validation fails.
func Reconcile(source, target *table.Table, m mapping.Mapping) (*Result, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	missing := &MissingColumnError{
		Source: source.MissingColumns(m.SourceColumns()),
		Target: target.MissingColumns(m.TargetColumns()),
	}
	if len(missing.Source) > 0 || len(missing.Target) > 0 {
		return nil, missing
	}

	src := Aggregate(source, AggregateSpec{
		KeyColumns:         m.SourceKeys(),
		QuantityColumns:    m.SourceCompareColumns(),
		PassthroughColumns: m.SrcPassthrough,
	})
	tgt := Aggregate(target, AggregateSpec{
		KeyColumns:         m.TargetKeys(),
		QuantityColumns:    m.TargetCompareColumns(),
		PassthroughColumns: m.TgtPassthrough,
	})

	result, err := Join(src, tgt, m)
	if err != nil {
		return nil, err
	}
	result.Statistics.SourceMalformedRows = source.Malformed
	result.Statistics.TargetMalformedRows = target.Malformed
	return result, nil
}

// Join performs the full outer join of two aggregated tables and derives the
// result sets and statistics. Both tables must have been aggregated on the
// mapping's key, compare and passthrough columns; otherwise a *ConfigurationError
// (key count) or *MissingColumnError (columns) is returned.
func Join(src, tgt *AggregatedTable, m mapping.Mapping) (*Result, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := checkAggregates(src, tgt, m); err != nil {
		return nil, err
	}

	// Union of keys
	union := make(map[string]Key, len(src.entries)+len(tgt.entries))
	for id, e := range src.entries {
		union[id] = e.key
	}
	for id, e := range tgt.entries {
		union[id] = e.key
	}

	ids := make([]string, 0, len(union))
	for id := range union {
		ids = append(ids, id)
	}
	// Sorting by components keeps key order identical to Key.Compare.
	slices.SortFunc(ids, func(a, b string) int {
		return union[a].Compare(union[b])
	})

	result := &Result{
		RunID:   uuid.NewString(),
		Mapping: m,
		Statistics: Statistics{
			SourceRows:           src.Len(),
			TargetRows:           tgt.Len(),
			SourceDiscardedRows:  src.Discarded,
			TargetDiscardedRows:  tgt.Discarded,
			SourceParseAnomalies: src.Anomalies,
			TargetParseAnomalies: tgt.Anomalies,
		},
		Mismatches:        []JoinedRecord{},
		OnlyInSource:      []JoinedRecord{},
		OnlyInTarget:      []JoinedRecord{},
		SourceInTargetOut: []JoinedRecord{},
		TargetInSourceOut: []JoinedRecord{},
	}
	stats := &result.Statistics
	both := make([]JoinedRecord, 0, len(ids))

	for _, id := range ids {
		rec := joinRecord(union[id], src.entries[id], tgt.entries[id], m.ComparePairs)

		stats.TotalSourceQuantity += rec.PrimarySource().OrZero()
		stats.TotalTargetQuantity += rec.PrimaryTarget().OrZero()

		switch rec.Classification {
		case OnlyInSource:
			stats.OnlyInSource++
			result.OnlyInSource = append(result.OnlyInSource, rec)
			continue
		case OnlyInTarget:
			stats.OnlyInTarget++
			result.OnlyInTarget = append(result.OnlyInTarget, rec)
			continue
		case Match:
			stats.Matches++
		case QtyMismatch:
			stats.Mismatches++
			stats.SumAbsMismatch += abs(rec.PrimaryDiff())
			result.Mismatches = append(result.Mismatches, rec)
		}

		both = append(both, rec)
		s, t := rec.PrimarySource().OrZero(), rec.PrimaryTarget().OrZero()
		if s > 0 && t <= 0 {
			result.SourceInTargetOut = append(result.SourceInTargetOut, rec)
		}
		if t > 0 && s <= 0 {
			result.TargetInSourceOut = append(result.TargetInSourceOut, rec)
		}
	}

	// Largest primary difference first, ties by key. The input is key ordered
	// and the sort is stable, but the explicit tie-break keeps it independent of that.
	slices.SortStableFunc(result.Mismatches, func(a, b JoinedRecord) int {
		if c := cmp.Compare(abs(b.PrimaryDiff()), abs(a.PrimaryDiff())); c != 0 {
			return c
		}
		return a.Key.Compare(b.Key)
	})

	stats.SourceInTargetOut = len(result.SourceInTargetOut)
	stats.TargetInSourceOut = len(result.TargetInSourceOut)
	if stats.Mismatches > 0 {
		mean := float64(stats.SumAbsMismatch) / float64(stats.Mismatches)
		stats.MeanAbsMismatch = &mean
	}

	result.Stock = StockStatus(both)
	result.CompletedAt = time.Now().UTC()
	return result, nil
}

// checkAggregates verifies that src and tgt carry every column m reads.
func checkAggregates(src, tgt *AggregatedTable, m mapping.Mapping) error {
	var problems []string
	if n, want := len(src.spec.KeyColumns), len(m.SourceKeys()); n != want {
		problems = append(problems, fmt.Sprintf("source table is keyed on %d columns, mapping uses %d", n, want))
	}
	if n, want := len(tgt.spec.KeyColumns), len(m.TargetKeys()); n != want {
		problems = append(problems, fmt.Sprintf("target table is keyed on %d columns, mapping uses %d", n, want))
	}
	if len(problems) > 0 {
		return &ConfigurationError{Problems: problems}
	}

	missing := &MissingColumnError{
		Source: src.spec.missing(m.SourceKeys(), m.SourceCompareColumns(), m.SrcPassthrough),
		Target: tgt.spec.missing(m.TargetKeys(), m.TargetCompareColumns(), m.TgtPassthrough),
	}
	if len(missing.Source) > 0 || len(missing.Target) > 0 {
		return missing
	}
	return nil
}

// joinRecord classifies a single key. s or t is nil when the key is missing on that side.
func joinRecord(key Key, s, t *aggregatedRow, pairs []mapping.ComparePair) JoinedRecord {
	rec := JoinedRecord{
		Key:          key,
		InSource:     s != nil,
		InTarget:     t != nil,
		SourceValues: make([]Quantity, len(pairs)),
		TargetValues: make([]Quantity, len(pairs)),
	}

	equal := true
	for i, p := range pairs {
		if s != nil {
			rec.SourceValues[i] = s.quantities[p.Source]
		}
		if t != nil {
			rec.TargetValues[i] = t.quantities[p.Target]
		}
		if !equalQuantities(rec.SourceValues[i], rec.TargetValues[i]) {
			equal = false
		}
	}
	if s != nil {
		rec.SourceAttrs = s.attrs
	}
	if t != nil {
		rec.TargetAttrs = t.attrs
	}

	switch {
	case s == nil:
		rec.Classification = OnlyInTarget
	case t == nil:
		rec.Classification = OnlyInSource
	case equal:
		rec.Classification = Match
	default:
		rec.Classification = QtyMismatch
	}
	return rec
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
