package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"inventory-reconciler/core/config"
	"inventory-reconciler/core/database"
	"inventory-reconciler/core/logger"
	"inventory-reconciler/core/mapping"
	"inventory-reconciler/core/reconcile"
	"inventory-reconciler/core/storage"
	"inventory-reconciler/feature/inventory"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// Feed flags, one of path/object/table per side
	sourcePath   string
	targetPath   string
	sourceObject string
	targetObject string
	sourceTable  string
	targetTable  string

	mappingPath     string
	saveMappingPath string
	exportDir       string
	noFiles         bool
	uploadResult    bool
	dbExport        bool
	yesConfirm      bool
)

// compareCmd reconciles two feeds and exports the result sets.
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Reconcile a source feed against a target feed",
	Long: `Compare joins a source and a target feed on the mapping keys and reports
quantity mismatches, items present on one side only, and items in stock on one
side but out of stock on the other.

Feeds are local files (CSV, TSV, XLSX), objects in the storage bucket, or database tables.

Examples:
  # Local files, CSV and workbook written to the export directory
  compare --source erp.csv --target warehouse.xlsx --mapping mapping.yaml

  # Bucket objects, results uploaded under export.object_prefix/<run id>/
  compare --source-object inbound/erp.csv --target-object inbound/wms.csv --mapping mapping.json --upload

  # Database tables, result tables replaced without prompting
  compare --source-table erp_stock --target-table wms_stock --mapping mapping.yaml --db-export --yes`,
	RunE: runCompare,
}

func init() {
	f := compareCmd.Flags()
	f.StringVar(&sourcePath, "source", "", "Source feed file")
	f.StringVar(&targetPath, "target", "", "Target feed file")
	f.StringVar(&sourceObject, "source-object", "", "Source feed object in the storage bucket")
	f.StringVar(&targetObject, "target-object", "", "Target feed object in the storage bucket")
	f.StringVar(&sourceTable, "source-table", "", "Source feed database table")
	f.StringVar(&targetTable, "target-table", "", "Target feed database table")
	f.StringVar(&mappingPath, "mapping", "", "Mapping file (.json, .yaml); its saved paths are used for sides without a feed flag")
	f.StringVar(&saveMappingPath, "save-mapping", "", "Write the mapping and feed paths to this file after a successful run")
	f.StringVar(&exportDir, "export-dir", "", "Override export.dir")
	f.BoolVar(&noFiles, "no-files", false, "Do not write result files")
	f.BoolVar(&uploadResult, "upload", false, "Upload result files to the storage bucket")
	f.BoolVar(&dbExport, "db-export", false, "Replace the result tables in the database")
	f.BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")
	_ = compareCmd.MarkFlagRequired("mapping")

	RootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	file, err := mapping.Load(mappingPath)
	if err != nil {
		return err
	}
	m := file.Mapping

	source := withSavedPath(inventory.FeedRef{Path: sourcePath, Object: sourceObject, Table: sourceTable}, file.Paths.SrcPath)
	target := withSavedPath(inventory.FeedRef{Path: targetPath, Object: targetObject, Table: targetTable}, file.Paths.TgtPath)
	switch {
	case exportDir != "":
		cfg.Export.Dir = exportDir
	case file.Paths.ExportDir != "":
		cfg.Export.Dir = file.Paths.ExportDir
	}

	// Connections are only opened when a feed or export needs them
	var db *gorm.DB
	if source.Table != "" || target.Table != "" || dbExport {
		if db, err = database.Connect(cfg.Database); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
	}
	var client storage.Client
	if source.Object != "" || target.Object != "" || uploadResult {
		if client, err = storage.NewClient(cfg.Storage); err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
	}

	svc := inventory.NewService(client, cfg.Storage.Bucket, l, db, cfg.Feeds.Options(), cfg.Export)

	result, err := svc.Reconcile(ctx, inventory.Request{Mapping: m, Source: source, Target: target})
	if err != nil {
		var cfgErr *mapping.ConfigurationError
		if errors.As(err, &cfgErr) {
			for _, p := range cfgErr.Problems {
				l.Error("Mapping problem", zap.String("problem", p))
			}
		}
		return err
	}

	printCompareReport(l, result)

	opts := inventory.ExportOptions{Files: !noFiles, Upload: uploadResult, Database: dbExport}
	if opts.Database && !confirmDestructiveAction(fmt.Sprintf("replace tables %s and %s",
		database.ResultsTable(cfg.Export.TablePrefix), database.SummaryTable(cfg.Export.TablePrefix))) {
		l.Warn("Database export cancelled by user")
		opts.Database = false
	}

	if opts.Any() {
		report, err := svc.Export(ctx, result, opts)
		if err != nil {
			return fmt.Errorf("failed to export result: %w", err)
		}
		for _, f := range report.Files {
			l.Info("Wrote file", zap.String("path", f))
		}
		for _, o := range report.Objects {
			l.Info("Uploaded object", zap.String("key", o))
		}
	}

	if saveMappingPath != "" {
		file.Paths = savedPaths(source, target, cfg.Export.Dir)
		if err := file.Save(saveMappingPath); err != nil {
			return err
		}
		l.Info("Mapping saved", zap.String("path", saveMappingPath))
	}

	return nil
}

// withSavedPath falls back to the file path stored in a mapping file when no feed
// flag was given for that side.
func withSavedPath(ref inventory.FeedRef, saved string) inventory.FeedRef {
	if ref.Path == "" && ref.Object == "" && ref.Table == "" {
		ref.Path = saved
	}
	return ref
}

// savedPaths records the local feed files of a run. Object and table feeds are
// not files and are left out.
func savedPaths(source, target inventory.FeedRef, exportDir string) mapping.Paths {
	return mapping.Paths{SrcPath: source.Path, TgtPath: target.Path, ExportDir: exportDir}
}

// printCompareReport logs the statistics and the largest mismatches.
func printCompareReport(l *zap.Logger, result *reconcile.Result) {
	s := result.Statistics

	fields := []zap.Field{
		zap.String("run_id", result.RunID),
		zap.Int("source_rows", s.SourceRows),
		zap.Int("target_rows", s.TargetRows),
		zap.Int("matches", s.Matches),
		zap.Int("mismatches", s.Mismatches),
		zap.Int("only_in_source", s.OnlyInSource),
		zap.Int("only_in_target", s.OnlyInTarget),
		zap.Int("source_in_target_out", s.SourceInTargetOut),
		zap.Int("target_in_source_out", s.TargetInSourceOut),
		zap.Int64("total_source_quantity", s.TotalSourceQuantity),
		zap.Int64("total_target_quantity", s.TotalTargetQuantity),
		zap.Int64("sum_abs_mismatch", s.SumAbsMismatch),
	}
	if s.MeanAbsMismatch != nil {
		fields = append(fields, zap.Float64("mean_abs_mismatch", *s.MeanAbsMismatch))
	}
	l.Info("Reconciliation report", fields...)

	maxShow := min(5, len(result.Mismatches))
	for _, rec := range result.Mismatches[:maxShow] {
		l.Info("Mismatch",
			zap.String("key", rec.Key.String()),
			zap.String("source", rec.PrimarySource().String()),
			zap.String("target", rec.PrimaryTarget().String()),
			zap.Int64("qty_diff", rec.PrimaryDiff()),
		)
	}
	if len(result.Mismatches) > maxShow {
		l.Info("Additional mismatches not shown", zap.Int("count", len(result.Mismatches)-maxShow))
	}
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction(action string) bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Printf("\n⚠️  Type 'yes' to %s: ", action)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
