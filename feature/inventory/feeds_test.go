package inventory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"inventory-reconciler/core/storage/mocks"
	"inventory-reconciler/core/table"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFeedRef_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ref     FeedRef
		wantErr bool
	}{
		{"Object", FeedRef{Object: "a.csv"}, false},
		{"Table", FeedRef{Table: "stock"}, false},
		{"Path", FeedRef{Path: "/tmp/a.csv"}, false},
		{"Empty", FeedRef{}, true},
		{"Two sources", FeedRef{Object: "a.csv", Table: "stock"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ref.validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFeed)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFeeds_LoadObject(t *testing.T) {
	client := new(mocks.Client)
	expectObject(client, "inbound/erp.csv", sourceCSV)

	feeds := NewFeeds(client, testBucket, nil, table.DefaultOptions())
	tbl, err := feeds.Load(context.Background(), FeedRef{Object: "inbound/erp.csv"})
	require.NoError(t, err)

	assert.Equal(t, "inbound/erp.csv", tbl.Name)
	assert.Equal(t, []string{"SKU", "qty"}, tbl.Columns)
	assert.Equal(t, 3, tbl.Len())
}

func TestFeeds_LoadTable(t *testing.T) {
	db, sqlMock := setupMockDB(t)
	sqlMock.ExpectQuery("SHOW COLUMNS FROM `shop_stock`").
		WillReturnRows(sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
			AddRow("SKU", "varchar(64)", "NO", "PRI", nil, "").
			AddRow("qty", "int", "YES", "", nil, ""))
	sqlMock.ExpectQuery("SELECT \\* FROM `shop_stock`").
		WillReturnRows(sqlmock.NewRows([]string{"SKU", "qty"}).AddRow("A1", "7"))

	feeds := NewFeeds(nil, testBucket, db, table.DefaultOptions())
	tbl, err := feeds.Load(context.Background(), FeedRef{Table: "shop_stock"})
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.Len())
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestFeeds_LoadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.csv")
	require.NoError(t, os.WriteFile(path, []byte(sourceCSV), 0o644))

	feeds := NewFeeds(nil, "", nil, table.DefaultOptions())
	tbl, err := feeds.Load(context.Background(), FeedRef{Path: path})
	require.NoError(t, err)
	assert.Equal(t, "local.csv", tbl.Name)
}

func TestFeeds_Unavailable(t *testing.T) {
	feeds := NewFeeds(nil, testBucket, nil, table.DefaultOptions())

	_, err := feeds.Load(context.Background(), FeedRef{Table: "stock"})
	assert.ErrorIs(t, err, ErrNoDatabase)

	_, err = feeds.Load(context.Background(), FeedRef{Object: "a.csv"})
	assert.ErrorIs(t, err, ErrNoStorage)
}

func TestFeeds_LoadPair(t *testing.T) {
	t.Run("Both loaded", func(t *testing.T) {
		client := new(mocks.Client)
		expectObject(client, "src.csv", sourceCSV)
		expectObject(client, "tgt.csv", targetCSV)

		feeds := NewFeeds(client, testBucket, nil, table.DefaultOptions())
		src, tgt, err := feeds.LoadPair(context.Background(), FeedRef{Object: "src.csv"}, FeedRef{Object: "tgt.csv"})
		require.NoError(t, err)
		assert.Equal(t, "src.csv", src.Name)
		assert.Equal(t, "tgt.csv", tgt.Name)
	})

	t.Run("Target fails", func(t *testing.T) {
		client := new(mocks.Client)
		expectObject(client, "src.csv", sourceCSV)
		client.On("GetObject", mock.Anything, testBucket, "tgt.csv", mock.Anything).
			Return(nil, errors.New("no such key"))

		feeds := NewFeeds(client, testBucket, nil, table.DefaultOptions())
		_, _, err := feeds.LoadPair(context.Background(), FeedRef{Object: "src.csv"}, FeedRef{Object: "tgt.csv"})
		assert.ErrorContains(t, err, "target feed object:tgt.csv")
		assert.ErrorContains(t, err, "no such key")
	})
}
