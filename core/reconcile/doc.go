// Package reconcile compares two inventory tables and classifies every item.
//
// The engine performs a full outer join of a source and a target table on keys
// described by a mapping.Mapping:
//
// 1. Aggregate: each table is collapsed to one row per key. Quantity columns are
//    summed, descriptive columns keep their smallest non-blank value.
//
// 2. Join: the union of keys is classified as MATCH, QTY_MISMATCH,
//    ONLY_IN_SOURCE or ONLY_IN_TARGET. Both-present keys match only if every
//    compare pair is equal.
//
// 3. Derive: mismatches are ordered by the absolute primary difference (largest
//    first, ties by key), only-in sets by key. Two availability sets flag keys that
//    are in stock on one side and out of stock on the other, using the primary pair.
//
// 4. Summarize: Statistics holds row counts, classification counts, quantity
//    totals and the mean absolute mismatch.
//
// The engine is synchronous and has no shared state. Runner enforces the
// one-reconciliation-at-a-time rule for interactive callers.
//
// # Usage
//
//	result, err := reconcile.Reconcile(sourceTable, targetTable, m)
//	var missing *reconcile.MissingColumnError
//	if errors.As(err, &missing) {
//	    // missing.Source and missing.Target list every absent column
//	}
package reconcile
