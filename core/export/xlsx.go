package export

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"inventory-reconciler/core/reconcile"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	stockSheet   = "StockStatus"
)

// WriteWorkbook writes all result sets, the statistics and the stock report
// into a single XLSX workbook.
func WriteWorkbook(w io.Writer, result *reconcile.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	alertStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#FF9999"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create alert style: %w", err)
	}

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}
	if err := writeSummary(f, result, headerStyle); err != nil {
		return err
	}

	for _, set := range reconcile.SetNames {
		records, _ := result.Set(set)
		rows := make([][]any, 0, len(records))
		for _, rec := range records {
			rows = append(rows, result.Cells(set, rec))
		}
		if err := writeSheet(f, string(set), result.Columns(set), rows, headerStyle); err != nil {
			return err
		}
	}

	if err := writeStock(f, result.Stock, headerStyle, alertStyle); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// WriteWorkbookFile writes the workbook to dir and returns its path.
func WriteWorkbookFile(dir string, result *reconcile.Result) (string, error) {
	path := filepath.Join(dir, WorkbookName(result.CompletedAt))
	return path, writeFile(path, func(w io.Writer) error {
		return WriteWorkbook(w, result)
	})
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]any, headerStyle int) error {
	if sheet != summarySheet {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}
	}

	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	if len(header) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(header), 1)
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return err
		}
	}

	for r, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", r+2, sheet, err)
		}
	}
	return nil
}

func writeSummary(f *excelize.File, result *reconcile.Result, headerStyle int) error {
	s := result.Statistics
	var mean any
	if s.MeanAbsMismatch != nil {
		mean = *s.MeanAbsMismatch
	}
	rows := [][]any{
		{"run_id", result.RunID},
		{"completed_at", result.CompletedAt.Format("2006-01-02 15:04:05")},
		{"source_rows", s.SourceRows},
		{"target_rows", s.TargetRows},
		{"matches", s.Matches},
		{"mismatches", s.Mismatches},
		{"only_in_source", s.OnlyInSource},
		{"only_in_target", s.OnlyInTarget},
		{"source_in_target_out", s.SourceInTargetOut},
		{"target_in_source_out", s.TargetInSourceOut},
		{"total_source_quantity", s.TotalSourceQuantity},
		{"total_target_quantity", s.TotalTargetQuantity},
		{"sum_abs_mismatch", s.SumAbsMismatch},
		{"mean_abs_mismatch", mean},
		{"source_discarded_rows", s.SourceDiscardedRows},
		{"target_discarded_rows", s.TargetDiscardedRows},
		{"source_parse_anomalies", s.SourceParseAnomalies},
		{"target_parse_anomalies", s.TargetParseAnomalies},
		{"source_malformed_rows", s.SourceMalformedRows},
		{"target_malformed_rows", s.TargetMalformedRows},
	}
	return writeSheet(f, summarySheet, []string{"metric", "value"}, rows, headerStyle)
}

func writeStock(f *excelize.File, report reconcile.StockReport, headerStyle, alertStyle int) error {
	rows := make([][]any, 0, len(report.Lines))
	for _, line := range report.Lines {
		rows = append(rows, []any{line.Key.String(), line.Source.String(), line.Target.String(), line.Status, line.Validation})
	}
	header := []string{"key", "source", "target", "status", "validation"}
	if err := writeSheet(f, stockSheet, header, rows, headerStyle); err != nil {
		return err
	}

	for i, line := range report.Lines {
		row := i + 2
		if line.Status == reconcile.StatusSourceOnly || line.Status == reconcile.StatusTargetOnly {
			cell, _ := excelize.CoordinatesToCellName(4, row)
			if err := f.SetCellStyle(stockSheet, cell, cell, alertStyle); err != nil {
				return err
			}
		}
		if line.Validation == reconcile.ValidationNegativeStock {
			cell, _ := excelize.CoordinatesToCellName(5, row)
			if err := f.SetCellStyle(stockSheet, cell, cell, alertStyle); err != nil {
				return err
			}
		}
	}

	// Pivot counts to the right of the lines.
	row := 1
	for _, counts := range []struct {
		title string
		m     map[string]int
	}{
		{"status", report.Status},
		{"validation", report.Validation},
	} {
		if err := f.SetSheetRow(stockSheet, fmt.Sprintf("G%d", row), &[]any{counts.title, "count"}); err != nil {
			return err
		}
		row++
		names := make([]string, 0, len(counts.m))
		for name := range counts.m {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if err := f.SetSheetRow(stockSheet, fmt.Sprintf("G%d", row), &[]any{name, counts.m[name]}); err != nil {
				return err
			}
			row++
		}
		row++
	}
	return nil
}
