package cmd

import (
	"testing"

	"inventory-reconciler/core/mapping"
	"inventory-reconciler/feature/inventory"

	"github.com/stretchr/testify/assert"
)

func TestWithSavedPath(t *testing.T) {
	tests := []struct {
		name  string
		ref   inventory.FeedRef
		saved string
		want  inventory.FeedRef
	}{
		{"No flag uses saved path", inventory.FeedRef{}, "data/erp.csv", inventory.FeedRef{Path: "data/erp.csv"}},
		{"Path flag wins", inventory.FeedRef{Path: "new.csv"}, "data/erp.csv", inventory.FeedRef{Path: "new.csv"}},
		{"Object flag wins", inventory.FeedRef{Object: "inbound/erp.csv"}, "data/erp.csv", inventory.FeedRef{Object: "inbound/erp.csv"}},
		{"Table flag wins", inventory.FeedRef{Table: "stock"}, "data/erp.csv", inventory.FeedRef{Table: "stock"}},
		{"Nothing saved", inventory.FeedRef{}, "", inventory.FeedRef{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, withSavedPath(tt.ref, tt.saved))
		})
	}
}

func TestSavedPaths(t *testing.T) {
	got := savedPaths(inventory.FeedRef{Path: "erp.csv"}, inventory.FeedRef{Object: "inbound/wms.csv"}, "exports")

	assert.Equal(t, mapping.Paths{SrcPath: "erp.csv", TgtPath: "", ExportDir: "exports"}, got)
}
