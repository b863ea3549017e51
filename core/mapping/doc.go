// Package mapping describes how two tables with different schemas are compared.
//
// A Mapping names the join key column(s) on each side (one or two, same count on
// both sides) and an ordered list of compare pairs. The first pair is the primary
// quantity used for stock availability sets.
//
// Mappings are plain values: they are validated once, passed by value into each
// reconciliation, and never mutated by the engine. They round-trip through JSON and
// YAML using the field names src_key1, src_key2, tgt_key1, tgt_key2 and
// compare_pairs.
//
// The package also offers heuristic suggestions (Suggest, GuessPrimaryKey,
// GuessAccountKey). Suggestions are convenience only and are never applied
// automatically.
package mapping
