package reconcile

import (
	"testing"

	"inventory-reconciler/core/mapping"
	"inventory-reconciler/core/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_ColumnsAndRows(t *testing.T) {
	src := table.New("src", []string{"sku", "on_hand", "reserved", "title"}, [][]string{
		{"A", "5", "", "Anvil"},
		{"B", "2", "1", "Bolt"},
	})
	tgt := table.New("tgt", []string{"code", "stock", "held"}, [][]string{
		{"A", "7", "0"},
		{"C", "1", "0"},
	})
	m := mapping.Mapping{
		SrcKey1: "sku", TgtKey1: "code",
		ComparePairs: []mapping.ComparePair{
			{Source: "on_hand", Target: "stock"},
			{Source: "reserved", Target: "held"},
		},
		SrcPassthrough: []string{"title"},
	}

	result, err := Reconcile(src, tgt, m)
	require.NoError(t, err)

	tests := []struct {
		set     SetName
		columns []string
		rows    [][]string
	}{
		{
			set:     SetMismatches,
			columns: []string{"key", "change", "on_hand_src", "stock_tgt", "reserved_src", "held_tgt", "qty_diff", "title_src"},
			rows:    [][]string{{"A", "modified", "5", "7", "", "0", "2", "Anvil"}},
		},
		{
			set:     SetOnlyInSource,
			columns: []string{"key", "on_hand_src", "title_src"},
			rows:    [][]string{{"B", "2", "Bolt"}},
		},
		{
			set:     SetOnlyInTarget,
			columns: []string{"key", "stock_tgt"},
			rows:    [][]string{{"C", "1"}},
		},
		{
			set:     SetSourceInTargetOut,
			columns: []string{"key", "on_hand_src", "stock_tgt", "title_src"},
			rows:    [][]string{},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.set), func(t *testing.T) {
			assert.Equal(t, tt.columns, result.Columns(tt.set))
			assert.Equal(t, tt.rows, result.Rows(tt.set))
		})
	}

	assert.Nil(t, result.Columns("bogus"))
	assert.Nil(t, result.Rows("bogus"))
}
