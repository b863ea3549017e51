package table

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Read parses r using the reader that matches the extension of name.
func Read(r io.Reader, name string, opts Options) (*Table, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(r, name, opts)
	case ".tsv":
		opts.Delimiter = '\t'
		return ReadCSV(r, name, opts)
	default:
		return ReadCSV(r, name, opts)
	}
}

// Open reads the file at path into a Table.
func Open(path string, opts Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return Read(f, filepath.Base(path), opts)
}
