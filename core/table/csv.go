package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadCSV parses delimited text into a Table. The bytes are decoded with the first
// encoding in opts.Encodings that accepts them. Lines the CSV parser rejects and lines
// with more fields than the header are skipped and counted in Table.Malformed.
func ReadCSV(r io.Reader, name string, opts Options) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	text, err := decode(data, opts.Encodings)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = opts.Delimiter
	if reader.Comma == 0 {
		reader.Comma = ','
	}
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var (
		header    []string
		records   [][]string
		malformed int
	)
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			malformed++
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		if header == nil {
			header = rec
			continue
		}
		// Lines wider than the header cannot be aligned with its columns.
		if len(rec) > len(header) {
			malformed++
			continue
		}
		records = append(records, rec)
	}

	if header == nil {
		return nil, fmt.Errorf("%s is empty", name)
	}

	t := New(name, opts.header(header), records)
	t.Malformed = malformed
	return t, nil
}

// decode converts data to UTF-8 using the first encoding that fits.
func decode(data []byte, encodings []string) (string, error) {
	if len(encodings) == 0 {
		encodings = DefaultOptions().Encodings
	}

	var lastErr error
	for _, name := range encodings {
		switch strings.ToLower(name) {
		case "utf-8", "utf8":
			if utf8.Valid(data) {
				return string(data), nil
			}
			lastErr = fmt.Errorf("input is not valid utf-8")
		case "utf-8-sig", "utf8-sig":
			trimmed := bytes.TrimPrefix(data, utf8BOM)
			if utf8.Valid(trimmed) {
				return string(trimmed), nil
			}
			lastErr = fmt.Errorf("input is not valid utf-8")
		default:
			enc, err := lookupEncoding(name)
			if err != nil {
				lastErr = err
				continue
			}
			out, _, err := transform.Bytes(enc.NewDecoder(), data)
			if err != nil {
				lastErr = fmt.Errorf("%s: %w", name, err)
				continue
			}
			return string(out), nil
		}
	}
	return "", lastErr
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(name) {
	case "latin-1", "latin1", "iso-8859-1":
		return charmap.ISO8859_1, nil
	case "cp1252", "windows-1252":
		return charmap.Windows1252, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q", name)
	}
	return enc, nil
}
