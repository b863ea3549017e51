// Package export writes reconciliation results for people and downstream tools.
//
// Each result set becomes a comma separated file named after the set and the
// run date, e.g. mismatches_19_10_2026.csv. Quantities are written as plain
// integers and absent values as empty cells.
//
// WriteWorkbook bundles every set into one XLSX file with an extra Summary sheet
// holding the run statistics and a StockStatus sheet with the availability report.
package export
