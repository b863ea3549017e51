package mapping

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func validMapping() Mapping {
	return Mapping{
		SrcKey1:      "sku_oms_details_sku",
		TgtKey1:      "supplier_sku",
		ComparePairs: []ComparePair{{Source: "online_salable_qty_quantity", Target: "free_stock"}},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(m *Mapping)
		wantErr bool
	}{
		{"Valid", func(m *Mapping) {}, false},
		{"CompositeKeys", func(m *Mapping) { m.SrcKey2, m.TgtKey2 = "sap_supplier_id", "account" }, false},
		{"KeyCountMismatch", func(m *Mapping) { m.TgtKey2 = "account" }, true},
		{"MissingSourceKey", func(m *Mapping) { m.SrcKey1 = "" }, true},
		{"NoPairs", func(m *Mapping) { m.ComparePairs = nil }, true},
		{"BlankPair", func(m *Mapping) { m.ComparePairs = append(m.ComparePairs, ComparePair{Source: "a"}) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validMapping()
			tt.mutate(&m)
			err := m.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.NotEmpty(t, cfgErr.Problems)
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	m := Mapping{SrcKey1: "sku", TgtKey1: "sku", TgtKey2: "account"}
	err := m.Validate()

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Len(t, cfgErr.Problems, 2)
}

func TestColumns(t *testing.T) {
	m := Mapping{
		SrcKey1: "sku", SrcKey2: "supplier",
		TgtKey1: "SKU", TgtKey2: "account",
		ComparePairs: []ComparePair{
			{Source: "qty", Target: "free"},
			{Source: "reserved", Target: "free"},
		},
		SrcPassthrough: []string{"supplier"},
	}

	assert.True(t, m.IsComposite())
	assert.Equal(t, []string{"sku", "supplier", "qty", "reserved"}, m.SourceColumns())
	assert.Equal(t, []string{"SKU", "account", "free"}, m.TargetColumns())
	assert.Equal(t, ComparePair{Source: "qty", Target: "free"}, m.Primary())
}

func TestMapping_JSON(t *testing.T) {
	in := `{"src_key1":"sku","src_key2":null,"tgt_key1":"supplier_sku","tgt_key2":null,"compare_pairs":[["FreeStock2","FreeStock"]]}`

	var m Mapping
	require.NoError(t, json.Unmarshal([]byte(in), &m))
	assert.Equal(t, []string{"sku"}, m.SourceKeys())
	assert.Equal(t, []ComparePair{{Source: "FreeStock2", Target: "FreeStock"}}, m.ComparePairs)

	out, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"compare_pairs":[["FreeStock2","FreeStock"]]`)

	var bad Mapping
	assert.Error(t, json.Unmarshal([]byte(`{"compare_pairs":[["only-one"]]}`), &bad))
}

func TestMapping_YAML(t *testing.T) {
	m := validMapping()
	data, err := yaml.Marshal(m)
	require.NoError(t, err)

	var back Mapping
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, m, back)
}

func TestFile_SaveLoad(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"mapping.json", "mapping.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			f := &File{Mapping: validMapping(), Paths: Paths{SrcPath: "a.csv", TgtPath: "b.csv"}}
			require.NoError(t, f.Save(path))

			loaded, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, f.Mapping, loaded.Mapping)
			assert.Equal(t, "a.csv", loaded.Paths.SrcPath)
			assert.False(t, loaded.SavedAt.IsZero())
		})
	}
}

func TestLoad_BareMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bare.json")
	data, err := json.Marshal(validMapping())
	require.NoError(t, err)
	require.NoError(t, writeFile(path, data))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, validMapping(), loaded.Mapping)
}
