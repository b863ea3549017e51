package database

import (
	"context"
	"testing"

	"inventory-reconciler/core/mapping"
	"inventory-reconciler/core/reconcile"
	"inventory-reconciler/core/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult(t *testing.T) *reconcile.Result {
	t.Helper()
	src := table.New("src", []string{"sku", "qty"}, [][]string{{"A1", "10"}, {"A2", "5"}, {"B1", "3"}})
	tgt := table.New("tgt", []string{"sku", "qty"}, [][]string{{"A1", "10"}, {"A3", ""}, {"B1", "0"}})
	result, err := reconcile.Reconcile(src, tgt, mapping.Mapping{
		SrcKey1: "sku", TgtKey1: "sku",
		ComparePairs: []mapping.ComparePair{{Source: "qty", Target: "qty"}},
	})
	require.NoError(t, err)
	return result
}

func TestExportResult(t *testing.T) {
	db, err := Connect(Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	ctx := context.Background()

	first := sampleResult(t)
	require.NoError(t, ExportResult(ctx, db, "recon", first))

	// A second export replaces the first.
	second := sampleResult(t)
	require.NoError(t, ExportResult(ctx, db, "recon", second))

	var rows []ResultRow
	require.NoError(t, db.Table("recon_results").Order("result_set, position").Find(&rows).Error)

	// mismatches: B1; only_in_source: A2; only_in_target: A3; source_in_target_out: B1
	require.Len(t, rows, 4)
	for _, r := range rows {
		assert.Equal(t, second.RunID, r.RunID)
	}

	bySet := map[string]ResultRow{}
	for _, r := range rows {
		bySet[r.ResultSet] = r
	}
	assert.Equal(t, "B1", bySet["mismatches"].ItemKey)
	assert.Equal(t, int64(-3), bySet["mismatches"].QtyDiff)
	assert.Equal(t, "A3", bySet["only_in_target"].ItemKey)
	assert.Nil(t, bySet["only_in_target"].SourceQty)
	assert.Nil(t, bySet["only_in_target"].TargetQty)
	require.NotNil(t, bySet["only_in_source"].SourceQty)
	assert.Equal(t, int64(5), *bySet["only_in_source"].SourceQty)

	var summaries []SummaryRow
	require.NoError(t, db.Table("recon_summary").Find(&summaries).Error)
	require.Len(t, summaries, 1)
	assert.Equal(t, second.RunID, summaries[0].RunID)
	assert.Equal(t, 1, summaries[0].Matches)
	assert.Equal(t, 1, summaries[0].Mismatches)
	require.NotNil(t, summaries[0].MeanAbsMismatch)
	assert.Equal(t, 3.0, *summaries[0].MeanAbsMismatch)
}

func TestExportResult_InvalidPrefix(t *testing.T) {
	db, err := Connect(Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	err = ExportResult(context.Background(), db, "bad prefix", sampleResult(t))
	assert.ErrorContains(t, err, "invalid table prefix")
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "reconcile_results", ResultsTable("reconcile"))
	assert.Equal(t, "reconcile_summary", SummaryTable("reconcile"))
}
