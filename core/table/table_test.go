package table

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestNew_ShortRowsAreAbsent(t *testing.T) {
	tbl := New("feed", []string{"sku", "qty"}, [][]string{{"A1", "3"}, {"A2"}})

	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, NewCell("3"), tbl.Rows[0].Get("qty"))
	assert.Equal(t, Null, tbl.Rows[1].Get("qty"))
	assert.Equal(t, Null, tbl.Rows[1].Get("unknown"))
}

func TestMissingColumns(t *testing.T) {
	tbl := New("feed", []string{"sku", "qty"}, nil)

	assert.Empty(t, tbl.MissingColumns([]string{"sku", "qty"}))
	assert.Equal(t, []string{"account", "stock"}, tbl.MissingColumns([]string{"sku", "account", "stock", "account"}))
}

func TestReadCSV(t *testing.T) {
	t.Run("Basic", func(t *testing.T) {
		in := "sku,qty\nA1,10\nA2,\n"
		tbl, err := ReadCSV(strings.NewReader(in), "basic.csv", DefaultOptions())
		require.NoError(t, err)

		assert.Equal(t, []string{"sku", "qty"}, tbl.Columns)
		require.Equal(t, 2, tbl.Len())
		assert.Equal(t, NewCell(""), tbl.Rows[1].Get("qty"))
	})

	t.Run("BOMStripped", func(t *testing.T) {
		in := "\xEF\xBB\xBFsku,qty\nA1,1\n"
		tbl, err := ReadCSV(strings.NewReader(in), "bom.csv", DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, "sku", tbl.Columns[0])
	})

	t.Run("Latin1Fallback", func(t *testing.T) {
		in := []byte("sku,name\nA1,Caf\xe9\n")
		tbl, err := ReadCSV(bytes.NewReader(in), "latin.csv", DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, "Café", tbl.Rows[0].Get("name").Value)
	})

	t.Run("UTF8Only", func(t *testing.T) {
		in := []byte("sku,name\nA1,Caf\xe9\n")
		opts := DefaultOptions()
		opts.Encodings = []string{"utf-8"}
		_, err := ReadCSV(bytes.NewReader(in), "latin.csv", opts)
		assert.Error(t, err)
	})

	t.Run("Semicolon", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Delimiter = ';'
		tbl, err := ReadCSV(strings.NewReader("sku;qty\nA1;4\n"), "semi.csv", opts)
		require.NoError(t, err)
		assert.Equal(t, "4", tbl.Rows[0].Get("qty").Value)
	})

	t.Run("NormalizedHeaders", func(t *testing.T) {
		opts := DefaultOptions()
		opts.NormalizeHeaders = true
		tbl, err := ReadCSV(strings.NewReader("Supplier SKU,Free Stock\nA1,4\n"), "h.csv", opts)
		require.NoError(t, err)
		assert.Equal(t, []string{"supplier_sku", "free_stock"}, tbl.Columns)
	})

	t.Run("WideLinesSkipped", func(t *testing.T) {
		in := "sku,qty\nA1,1,extra\nA2,2\nA3\n"
		tbl, err := ReadCSV(strings.NewReader(in), "wide.csv", DefaultOptions())
		require.NoError(t, err)

		assert.Equal(t, 1, tbl.Malformed)
		require.Equal(t, 2, tbl.Len())
		assert.Equal(t, "A2", tbl.Rows[0].Get("sku").Value)
		assert.Equal(t, Null, tbl.Rows[1].Get("qty"))
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := ReadCSV(strings.NewReader(""), "empty.csv", DefaultOptions())
		assert.Error(t, err)
	})
}

func TestConfigOptions(t *testing.T) {
	cfg := Config{Encodings: "utf-8, windows-1252", Delimiter: "|", NormalizeHeaders: true}
	opts := cfg.Options()

	assert.Equal(t, []string{"utf-8", "windows-1252"}, opts.Encodings)
	assert.Equal(t, '|', opts.Delimiter)
	assert.True(t, opts.NormalizeHeaders)
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"sku", "qty"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"A1", "12"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"A2", "(3)"}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	data := buf.Bytes()
	tbl, err := Read(bytes.NewReader(data), "feed.xlsx", DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"sku", "qty"}, tbl.Columns)
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, "(3)", tbl.Rows[1].Get("qty").Value)

	opts := DefaultOptions()
	opts.Sheet = "Missing"
	_, err = ReadXLSX(bytes.NewReader(data), "feed.xlsx", opts)
	assert.Error(t, err)
}
