// Package table holds the raw tabular input consumed by the reconciliation engine.
//
// A Table is a list of column names and rows of untyped string cells. Cells may be
// absent (a short CSV row, a NULL database value) which is distinct from a present
// but blank cell.
//
// Readers are provided for delimited text (with encoding fallback) and XLSX
// workbooks. They are thin collaborators: the engine only ever sees a *Table.
package table
