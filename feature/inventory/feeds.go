package inventory

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"inventory-reconciler/core/database"
	"inventory-reconciler/core/storage"
	"inventory-reconciler/core/table"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var (
	// ErrInvalidFeed is returned when a feed reference names zero or several sources.
	ErrInvalidFeed = errors.New("a feed must name exactly one of object, table or path")
	// ErrNoDatabase is returned for table feeds when no database is connected.
	ErrNoDatabase = errors.New("database feeds are not available: no database connection")
	// ErrNoStorage is returned for object feeds when no storage client is configured.
	ErrNoStorage = errors.New("object feeds are not available: no storage client")
)

// FeedRef points at one input table.
type FeedRef struct {
	// Object is a key in the storage bucket (.csv, .tsv, .xlsx).
	Object string `json:"object,omitempty" example:"inbound/erp_stock.csv"`
	// Table is a database table name.
	Table string `json:"table,omitempty" example:"warehouse_stock"`
	// Path is a local file. It is only set by the command line.
	Path string `json:"-"`
}

// String describes the feed for logs.
func (r FeedRef) String() string {
	switch {
	case r.Object != "":
		return "object:" + r.Object
	case r.Table != "":
		return "table:" + r.Table
	case r.Path != "":
		return "path:" + r.Path
	default:
		return "<empty>"
	}
}

func (r FeedRef) validate() error {
	n := 0
	for _, v := range []string{r.Object, r.Table, r.Path} {
		if v != "" {
			n++
		}
	}
	if n != 1 {
		return ErrInvalidFeed
	}
	return nil
}

// Feeds loads tables from object storage, the database or local files.
type Feeds struct {
	client storage.Client
	bucket string
	db     *gorm.DB
	opts   table.Options
}

// NewFeeds creates a feed loader. client and db may be nil when the
// corresponding feed kind is not used.
func NewFeeds(client storage.Client, bucket string, db *gorm.DB, opts table.Options) *Feeds {
	return &Feeds{client: client, bucket: bucket, db: db, opts: opts}
}

// Load reads the referenced table.
func (f *Feeds) Load(ctx context.Context, ref FeedRef) (*table.Table, error) {
	if err := ref.validate(); err != nil {
		return nil, err
	}

	switch {
	case ref.Object != "":
		if f.client == nil {
			return nil, ErrNoStorage
		}
		data, err := storage.ReadObject(ctx, f.client, f.bucket, ref.Object)
		if err != nil {
			return nil, err
		}
		return table.Read(bytes.NewReader(data), ref.Object, f.opts)
	case ref.Table != "":
		if f.db == nil {
			return nil, ErrNoDatabase
		}
		return database.LoadTable(ctx, f.db, ref.Table)
	default:
		return table.Open(ref.Path, f.opts)
	}
}

// LoadPair reads the source and target tables concurrently.
func (f *Feeds) LoadPair(ctx context.Context, source, target FeedRef) (*table.Table, *table.Table, error) {
	var src, tgt *table.Table

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := f.Load(gctx, source)
		if err != nil {
			return fmt.Errorf("source feed %s: %w", source, err)
		}
		src = t
		return nil
	})
	g.Go(func() error {
		t, err := f.Load(gctx, target)
		if err != nil {
			return fmt.Errorf("target feed %s: %w", target, err)
		}
		tgt = t
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return src, tgt, nil
}
