package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"inventory-reconciler/core/reconcile"
)

// dateLayout is dd_mm_yyyy.
const dateLayout = "02_01_2006"

// FileName returns the CSV file name of a result set for the given date.
func FileName(set reconcile.SetName, at time.Time) string {
	return fmt.Sprintf("%s_%s.csv", set, at.Format(dateLayout))
}

// WorkbookName returns the XLSX file name for the given date.
func WorkbookName(at time.Time) string {
	return fmt.Sprintf("reconciliation_%s.xlsx", at.Format(dateLayout))
}

// WriteCSV writes one result set with its header.
func WriteCSV(w io.Writer, result *reconcile.Result, set reconcile.SetName) error {
	columns := result.Columns(set)
	if columns == nil {
		return fmt.Errorf("unknown result set %q", set)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := writer.WriteAll(result.Rows(set)); err != nil {
		return fmt.Errorf("failed to write %s: %w", set, err)
	}
	return nil
}

// WriteCSVFiles writes every result set to dir and returns the created paths.
func WriteCSVFiles(dir string, result *reconcile.Result) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	paths := make([]string, 0, len(reconcile.SetNames))
	for _, set := range reconcile.SetNames {
		path := filepath.Join(dir, FileName(set, result.CompletedAt))
		if err := writeFile(path, func(w io.Writer) error {
			return WriteCSV(w, result, set)
		}); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := write(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
