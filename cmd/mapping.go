package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

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

var suggestOut string

// mappingCmd is the parent command for mapping files.
var mappingCmd = &cobra.Command{
	Use:   "mapping",
	Short: "Create and check mapping files",
}

// mappingSuggestCmd guesses a mapping from the feed headers.
var mappingSuggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest key columns and a compare pair from two feeds",
	Long: `Reads the headers of the source and target feeds and proposes a mapping.
The suggestion is a starting point: review it before using it with compare.`,
	RunE: runMappingSuggest,
}

// mappingValidateCmd checks a mapping file and, when feeds are given, their columns.
var mappingValidateCmd = &cobra.Command{
	Use:   "validate <mapping file>",
	Short: "Validate a mapping file",
	Args:  cobra.ExactArgs(1),
	RunE:  runMappingValidate,
}

func init() {
	for _, c := range []*cobra.Command{mappingSuggestCmd, mappingValidateCmd} {
		f := c.Flags()
		f.StringVar(&sourcePath, "source", "", "Source feed file")
		f.StringVar(&targetPath, "target", "", "Target feed file")
		f.StringVar(&sourceObject, "source-object", "", "Source feed object in the storage bucket")
		f.StringVar(&targetObject, "target-object", "", "Target feed object in the storage bucket")
		f.StringVar(&sourceTable, "source-table", "", "Source feed database table")
		f.StringVar(&targetTable, "target-table", "", "Target feed database table")
	}
	mappingSuggestCmd.Flags().StringVar(&suggestOut, "out", "", "Write the suggestion to a mapping file instead of printing it")

	mappingCmd.AddCommand(mappingSuggestCmd)
	mappingCmd.AddCommand(mappingValidateCmd)
	RootCmd.AddCommand(mappingCmd)
}

// feedService builds a service able to read the feeds named by the command flags.
func feedService(cfg *config.Config, l *zap.Logger) (*inventory.Service, inventory.FeedRef, inventory.FeedRef, error) {
	source := inventory.FeedRef{Path: sourcePath, Object: sourceObject, Table: sourceTable}
	target := inventory.FeedRef{Path: targetPath, Object: targetObject, Table: targetTable}

	var db *gorm.DB
	if source.Table != "" || target.Table != "" {
		conn, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, source, target, fmt.Errorf("failed to connect to database: %w", err)
		}
		db = conn
	}
	var client storage.Client
	if source.Object != "" || target.Object != "" {
		c, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, source, target, fmt.Errorf("failed to connect to storage: %w", err)
		}
		client = c
	}

	return inventory.NewService(client, cfg.Storage.Bucket, l, db, cfg.Feeds.Options(), cfg.Export), source, target, nil
}

func runMappingSuggest(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	svc, source, target, err := feedService(cfg, l)
	if err != nil {
		return err
	}

	s, err := svc.Suggest(cmd.Context(), source, target)
	if err != nil {
		return err
	}
	if !s.SourceKeyGuessed {
		l.Warn("No source key column recognised, using the first column", zap.String("column", s.Mapping.SrcKey1))
	}
	if !s.TargetKeyGuessed {
		l.Warn("No target key column recognised, using the first column", zap.String("column", s.Mapping.TgtKey1))
	}

	if suggestOut != "" {
		f := &mapping.File{
			Mapping: s.Mapping,
			Paths:   savedPaths(source, target, cfg.Export.Dir),
		}
		if err := f.Save(suggestOut); err != nil {
			return err
		}
		l.Info("Suggestion saved, review it before running compare", zap.String("path", suggestOut))
		return nil
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func runMappingValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	file, err := mapping.Load(args[0])
	if err != nil {
		return err
	}

	if err := file.Mapping.Validate(); err != nil {
		var cfgErr *mapping.ConfigurationError
		if errors.As(err, &cfgErr) {
			for _, p := range cfgErr.Problems {
				l.Error("Mapping problem", zap.String("problem", p))
			}
		}
		return err
	}

	hasSource := sourcePath != "" || sourceObject != "" || sourceTable != ""
	hasTarget := targetPath != "" || targetObject != "" || targetTable != ""
	if !hasSource && !hasTarget {
		l.Info("Mapping is valid", zap.String("path", args[0]), zap.Bool("composite_key", file.Mapping.IsComposite()))
		return nil
	}
	if !hasSource || !hasTarget {
		return errors.New("columns can only be checked when both a source and a target feed are given")
	}

	svc, source, target, err := feedService(cfg, l)
	if err != nil {
		return err
	}
	src, tgt, err := svc.LoadFeeds(cmd.Context(), source, target)
	if err != nil {
		return err
	}

	missing := &reconcile.MissingColumnError{
		Source: src.MissingColumns(file.Mapping.SourceColumns()),
		Target: tgt.MissingColumns(file.Mapping.TargetColumns()),
	}
	if len(missing.Source) > 0 || len(missing.Target) > 0 {
		l.Error("Mapping references missing columns",
			zap.Strings("source_missing", missing.Source),
			zap.Strings("target_missing", missing.Target),
		)
		return missing
	}

	l.Info("Mapping is valid for both feeds",
		zap.String("path", args[0]),
		zap.String("source", source.String()),
		zap.String("target", target.String()),
	)
	return nil
}
