package database

import (
	"context"
	"fmt"
	"time"

	"inventory-reconciler/core/reconcile"

	"gorm.io/gorm"
)

// ResultRow is one record of a result set in the relational export.
type ResultRow struct {
	ID             uint   `gorm:"primaryKey"`
	RunID          string `gorm:"size:36;index"`
	ResultSet      string `gorm:"size:32;index"`
	Position       int
	ItemKey        string `gorm:"size:255;index"`
	Classification string `gorm:"size:16"`
	SourceQty      *int64
	TargetQty      *int64
	QtyDiff        int64
}

// SummaryRow holds the statistics of a run in the relational export.
type SummaryRow struct {
	RunID                string `gorm:"primaryKey;size:36"`
	CompletedAt          time.Time
	SourceRows           int
	TargetRows           int
	Matches              int
	Mismatches           int
	OnlyInSource         int
	OnlyInTarget         int
	SourceInTargetOut    int
	TargetInSourceOut    int
	TotalSourceQuantity  int64
	TotalTargetQuantity  int64
	SumAbsMismatch       int64
	MeanAbsMismatch      *float64
	SourceDiscardedRows  int
	TargetDiscardedRows  int
	SourceParseAnomalies int
	TargetParseAnomalies int
	SourceMalformedRows  int
	TargetMalformedRows  int
}

// ResultsTable and SummaryTable return the export table names for prefix.
func ResultsTable(prefix string) string { return prefix + "_results" }
func SummaryTable(prefix string) string { return prefix + "_summary" }

// ExportResult replaces <prefix>_results and <prefix>_summary with the content of result.
func ExportResult(ctx context.Context, db *gorm.DB, prefix string, result *reconcile.Result) error {
	if !ValidIdentifier(prefix) {
		return fmt.Errorf("invalid table prefix %q", prefix)
	}
	resultsTable, summaryTable := ResultsTable(prefix), SummaryTable(prefix)

	rows := resultRows(result)
	summary := summaryRow(result)

	db = db.WithContext(ctx)

	// DDL commits implicitly on MySQL, so only the inserts share a transaction.
	for _, name := range []string{resultsTable, summaryTable} {
		if err := db.Migrator().DropTable(name); err != nil {
			return fmt.Errorf("failed to drop %s: %w", name, err)
		}
	}
	if err := db.Table(resultsTable).AutoMigrate(&ResultRow{}); err != nil {
		return fmt.Errorf("failed to create %s: %w", resultsTable, err)
	}
	if err := db.Table(summaryTable).AutoMigrate(&SummaryRow{}); err != nil {
		return fmt.Errorf("failed to create %s: %w", summaryTable, err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if len(rows) > 0 {
			if err := tx.Table(resultsTable).CreateInBatches(rows, 500).Error; err != nil {
				return fmt.Errorf("failed to insert results: %w", err)
			}
		}
		if err := tx.Table(summaryTable).Create(&summary).Error; err != nil {
			return fmt.Errorf("failed to insert summary: %w", err)
		}
		return nil
	})
}

func resultRows(result *reconcile.Result) []ResultRow {
	var rows []ResultRow
	for _, set := range reconcile.SetNames {
		records, _ := result.Set(set)
		for i, rec := range records {
			rows = append(rows, ResultRow{
				RunID:          result.RunID,
				ResultSet:      string(set),
				Position:       i,
				ItemKey:        rec.Key.String(),
				Classification: string(rec.Classification),
				SourceQty:      optional(rec.PrimarySource()),
				TargetQty:      optional(rec.PrimaryTarget()),
				QtyDiff:        rec.PrimaryDiff(),
			})
		}
	}
	return rows
}

func summaryRow(result *reconcile.Result) SummaryRow {
	s := result.Statistics
	return SummaryRow{
		RunID:                result.RunID,
		CompletedAt:          result.CompletedAt,
		SourceRows:           s.SourceRows,
		TargetRows:           s.TargetRows,
		Matches:              s.Matches,
		Mismatches:           s.Mismatches,
		OnlyInSource:         s.OnlyInSource,
		OnlyInTarget:         s.OnlyInTarget,
		SourceInTargetOut:    s.SourceInTargetOut,
		TargetInSourceOut:    s.TargetInSourceOut,
		TotalSourceQuantity:  s.TotalSourceQuantity,
		TotalTargetQuantity:  s.TotalTargetQuantity,
		SumAbsMismatch:       s.SumAbsMismatch,
		MeanAbsMismatch:      s.MeanAbsMismatch,
		SourceDiscardedRows:  s.SourceDiscardedRows,
		TargetDiscardedRows:  s.TargetDiscardedRows,
		SourceParseAnomalies: s.SourceParseAnomalies,
		TargetParseAnomalies: s.TargetParseAnomalies,
		SourceMalformedRows:  s.SourceMalformedRows,
		TargetMalformedRows:  s.TargetMalformedRows,
	}
}

func optional(q reconcile.Quantity) *int64 {
	if !q.Valid {
		return nil
	}
	v := q.Value
	return &v
}
