package inventory

import (
	"bytes"
	"context"
	"fmt"

	"inventory-reconciler/core/database"
	"inventory-reconciler/core/export"
	"inventory-reconciler/core/mapping"
	"inventory-reconciler/core/reconcile"
	"inventory-reconciler/core/storage"
	"inventory-reconciler/core/table"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service runs reconciliations and exports their results.
type Service struct {
	client storage.Client
	bucket string
	db     *gorm.DB
	feeds  *Feeds
	runner *reconcile.Runner
	export export.Config
	logger *zap.Logger
}

// NewService creates a new inventory service. client and db are optional.
func NewService(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB, feeds table.Options, exp export.Config) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		db:     db,
		feeds:  NewFeeds(client, bucket, db, feeds),
		runner: reconcile.NewRunner(),
		export: exp,
		logger: logger,
	}
}

// Request describes one reconciliation.
type Request struct {
	Mapping mapping.Mapping `json:"mapping"`
	Source  FeedRef         `json:"source"`
	Target  FeedRef         `json:"target"`
	Export  ExportOptions   `json:"export"`
}

// ExportOptions selects where a result is written after a run.
type ExportOptions struct {
	// Files writes CSV files (and the workbook) to the export directory.
	Files bool `json:"files"`
	// Upload puts the files under <object_prefix>/<run id>/ in the bucket.
	Upload bool `json:"upload"`
	// Database replaces the export tables with this result.
	Database bool `json:"database"`
}

// Any reports whether any export is requested.
func (o ExportOptions) Any() bool {
	return o.Files || o.Upload || o.Database
}

// ExportReport lists what an export wrote.
type ExportReport struct {
	Files   []string `json:"files,omitempty"`
	Objects []string `json:"objects,omitempty"`
	Tables  []string `json:"tables,omitempty"`
}

// Reconcile loads both feeds and runs the engine. The mapping is validated before
// any feed is read. reconcile.ErrBusy is returned while another run is in flight.
func (s *Service) Reconcile(ctx context.Context, req Request) (*reconcile.Result, error) {
	if err := req.Mapping.Validate(); err != nil {
		return nil, err
	}

	return s.runner.Run(func() (*reconcile.Result, error) {
		src, tgt, err := s.feeds.LoadPair(ctx, req.Source, req.Target)
		if err != nil {
			return nil, err
		}
		return s.run(src, tgt, req.Mapping)
	})
}

// Start runs the reconciliation described by req on a background goroutine and
// returns once it is accepted. Requested exports run after the engine finishes.
// The outcome is reported to done (which may be nil) and is available from Latest.
func (s *Service) Start(ctx context.Context, req Request, done func(*reconcile.Result, *ExportReport, error)) error {
	if err := req.Mapping.Validate(); err != nil {
		return err
	}

	return s.runner.Start(func() (*reconcile.Result, error) {
		src, tgt, err := s.feeds.LoadPair(ctx, req.Source, req.Target)
		if err != nil {
			return nil, err
		}
		return s.run(src, tgt, req.Mapping)
	}, func(result *reconcile.Result, err error) {
		var report *ExportReport
		if err != nil {
			s.logger.Error("Background reconciliation failed", zap.Error(err))
		} else if req.Export.Any() {
			report, err = s.Export(ctx, result, req.Export)
			if err != nil {
				s.logger.Error("Export failed", zap.String("run_id", result.RunID), zap.Error(err))
			}
		}
		if done != nil {
			done(result, report, err)
		}
	})
}

// ReconcileTables runs the engine on tables the caller already loaded.
func (s *Service) ReconcileTables(src, tgt *table.Table, m mapping.Mapping) (*reconcile.Result, error) {
	return s.runner.Run(func() (*reconcile.Result, error) {
		return s.run(src, tgt, m)
	})
}

func (s *Service) run(src, tgt *table.Table, m mapping.Mapping) (*reconcile.Result, error) {
	s.logger.Info("Reconciliation started",
		zap.String("source", src.Name),
		zap.Int("source_rows", src.Len()),
		zap.String("target", tgt.Name),
		zap.Int("target_rows", tgt.Len()),
	)

	result, err := reconcile.Reconcile(src, tgt, m)
	if err != nil {
		s.logger.Warn("Reconciliation rejected", zap.Error(err))
		return nil, err
	}

	stats := result.Statistics
	l := s.logger.With(zap.String("run_id", result.RunID))
	if stats.SourceDiscardedRows > 0 || stats.TargetDiscardedRows > 0 {
		l.Info("Rows without key discarded",
			zap.Int("source", stats.SourceDiscardedRows),
			zap.Int("target", stats.TargetDiscardedRows),
		)
	}
	if stats.SourceMalformedRows > 0 || stats.TargetMalformedRows > 0 {
		l.Warn("Malformed lines skipped while reading feeds",
			zap.Int("source", stats.SourceMalformedRows),
			zap.Int("target", stats.TargetMalformedRows),
		)
	}
	if stats.SourceParseAnomalies > 0 || stats.TargetParseAnomalies > 0 {
		l.Warn("Unparsable quantities counted as zero",
			zap.Int("source", stats.SourceParseAnomalies),
			zap.Int("target", stats.TargetParseAnomalies),
		)
	}
	l.Info("Reconciliation finished",
		zap.Int("matches", stats.Matches),
		zap.Int("mismatches", stats.Mismatches),
		zap.Int("only_in_source", stats.OnlyInSource),
		zap.Int("only_in_target", stats.OnlyInTarget),
	)
	return result, nil
}

// Latest returns the last completed result, or nil.
func (s *Service) Latest() *reconcile.Result {
	return s.runner.Last()
}

// Busy reports whether a reconciliation is in flight.
func (s *Service) Busy() bool {
	return s.runner.Running()
}

// Export writes result to the selected destinations.
func (s *Service) Export(ctx context.Context, result *reconcile.Result, opts ExportOptions) (*ExportReport, error) {
	report := &ExportReport{}
	l := s.logger.With(zap.String("run_id", result.RunID))

	if opts.Files {
		files, err := export.WriteCSVFiles(s.export.Dir, result)
		if err != nil {
			return report, err
		}
		report.Files = append(report.Files, files...)
		if s.export.Workbook {
			path, err := export.WriteWorkbookFile(s.export.Dir, result)
			if err != nil {
				return report, err
			}
			report.Files = append(report.Files, path)
		}
		l.Info("Result written to files", zap.String("dir", s.export.Dir), zap.Int("files", len(report.Files)))
	}

	if opts.Upload {
		objects, err := s.upload(ctx, result)
		report.Objects = objects
		if err != nil {
			return report, err
		}
		l.Info("Result uploaded", zap.String("bucket", s.bucket), zap.Int("objects", len(objects)))
	}

	if opts.Database {
		if s.db == nil {
			return report, ErrNoDatabase
		}
		if err := database.ExportResult(ctx, s.db, s.export.TablePrefix, result); err != nil {
			return report, err
		}
		report.Tables = []string{database.ResultsTable(s.export.TablePrefix), database.SummaryTable(s.export.TablePrefix)}
		l.Info("Result written to database", zap.Strings("tables", report.Tables))
	}

	return report, nil
}

func (s *Service) upload(ctx context.Context, result *reconcile.Result) ([]string, error) {
	if s.client == nil {
		return nil, ErrNoStorage
	}
	if err := storage.EnsureBucket(ctx, s.client, s.bucket, ""); err != nil {
		return nil, err
	}

	var objects []string
	for _, set := range reconcile.SetNames {
		var buf bytes.Buffer
		if err := export.WriteCSV(&buf, result, set); err != nil {
			return objects, err
		}
		key := storage.ObjectKey(s.export.ObjectPrefix, result.RunID, export.FileName(set, result.CompletedAt))
		if err := storage.Upload(ctx, s.client, s.bucket, key, buf.Bytes(), "text/csv"); err != nil {
			return objects, err
		}
		objects = append(objects, key)
	}

	if s.export.Workbook {
		var buf bytes.Buffer
		if err := export.WriteWorkbook(&buf, result); err != nil {
			return objects, err
		}
		key := storage.ObjectKey(s.export.ObjectPrefix, result.RunID, export.WorkbookName(result.CompletedAt))
		if err := storage.Upload(ctx, s.client, s.bucket, key, buf.Bytes(), "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"); err != nil {
			return objects, err
		}
		objects = append(objects, key)
	}
	return objects, nil
}

// LoadFeeds reads both feeds without running a reconciliation.
func (s *Service) LoadFeeds(ctx context.Context, source, target FeedRef) (*table.Table, *table.Table, error) {
	return s.feeds.LoadPair(ctx, source, target)
}

// Suggest proposes a mapping from the headers of two feeds.
func (s *Service) Suggest(ctx context.Context, source, target FeedRef) (mapping.Suggestion, error) {
	src, tgt, err := s.LoadFeeds(ctx, source, target)
	if err != nil {
		return mapping.Suggestion{}, err
	}
	return mapping.Suggest(src.Columns, tgt.Columns), nil
}

// ListFeeds returns the object keys available under prefix.
func (s *Service) ListFeeds(ctx context.Context, prefix string) ([]string, error) {
	if s.client == nil {
		return nil, ErrNoStorage
	}
	keys, err := storage.ListKeys(ctx, s.client, s.bucket, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list feeds: %w", err)
	}
	return keys, nil
}
