package table

import (
	"strings"

	"inventory-reconciler/core/normalize"
)

// Config holds feed reading settings.
type Config struct {
	// Encodings is a comma separated list of encodings tried in order.
	Encodings string `mapstructure:"encodings" default:"utf-8,utf-8-sig,latin-1"`
	// Delimiter is the field separator for delimited files.
	Delimiter string `mapstructure:"delimiter" default:","`
	// NormalizeHeaders converts headers to snake_case when true.
	NormalizeHeaders bool `mapstructure:"normalize_headers" default:"false"`
	// Sheet is the XLSX sheet to read; empty selects the first sheet.
	Sheet string `mapstructure:"sheet" default:""`
}

// Options returns reader options for the configuration.
func (c Config) Options() Options {
	var encs []string
	for _, e := range strings.Split(c.Encodings, ",") {
		if e = strings.TrimSpace(e); e != "" {
			encs = append(encs, e)
		}
	}
	opts := Options{
		Encodings:        encs,
		NormalizeHeaders: c.NormalizeHeaders,
		Sheet:            c.Sheet,
	}
	if c.Delimiter != "" {
		opts.Delimiter = []rune(c.Delimiter)[0]
	}
	return opts
}

// Options controls how readers build a Table.
type Options struct {
	Encodings        []string
	Delimiter        rune
	NormalizeHeaders bool
	Sheet            string
}

// DefaultOptions mirrors the Config defaults.
func DefaultOptions() Options {
	return Options{
		Encodings: []string{"utf-8", "utf-8-sig", "latin-1"},
		Delimiter: ',',
	}
}

func (o Options) header(raw []string) []string {
	cols := make([]string, len(raw))
	for i, h := range raw {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if o.NormalizeHeaders {
			h = normalize.SnakeCase(h)
		}
		cols[i] = h
	}
	return cols
}
