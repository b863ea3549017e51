package storage_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"inventory-reconciler/core/storage"
	"inventory-reconciler/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEnsureBucket(t *testing.T) {
	t.Run("Exists", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "feeds").Return(true, nil)

		assert.NoError(t, storage.EnsureBucket(context.Background(), client, "feeds", ""))
		client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Created", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "feeds").Return(false, nil)
		client.On("MakeBucket", mock.Anything, "feeds", minio.MakeBucketOptions{Region: "eu-west-1"}).Return(nil)

		assert.NoError(t, storage.EnsureBucket(context.Background(), client, "feeds", "eu-west-1"))
		client.AssertExpectations(t)
	})

	t.Run("Check fails", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "feeds").Return(false, errors.New("denied"))

		err := storage.EnsureBucket(context.Background(), client, "feeds", "")
		assert.ErrorContains(t, err, "denied")
	})
}

func TestReadObject(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "feeds", "in/source.csv", mock.Anything).
		Return(io.NopCloser(strings.NewReader("sku,qty\n")), nil)
	client.On("GetObject", mock.Anything, "feeds", "missing.csv", mock.Anything).
		Return(nil, errors.New("no such key"))

	data, err := storage.ReadObject(context.Background(), client, "feeds", "in/source.csv")
	require.NoError(t, err)
	assert.Equal(t, "sku,qty\n", string(data))

	_, err = storage.ReadObject(context.Background(), client, "feeds", "missing.csv")
	assert.ErrorContains(t, err, "missing.csv")
}

func TestUpload(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "feeds", "exports/run/a.csv", mock.Anything, int64(3),
		minio.PutObjectOptions{ContentType: "text/csv"}).Return(minio.UploadInfo{}, nil)

	err := storage.Upload(context.Background(), client, "feeds", "exports/run/a.csv", []byte("a,b"), "text/csv")
	assert.NoError(t, err)
	client.AssertExpectations(t)
}

func TestListKeys(t *testing.T) {
	ch := make(chan minio.ObjectInfo, 3)
	ch <- minio.ObjectInfo{Key: "inbound/"}
	ch <- minio.ObjectInfo{Key: "inbound/erp.csv"}
	ch <- minio.ObjectInfo{Key: "inbound/shop.xlsx"}
	close(ch)

	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "feeds", mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
		return opts.Prefix == "inbound/" && opts.Recursive
	})).Return((<-chan minio.ObjectInfo)(ch))

	keys, err := storage.ListKeys(context.Background(), client, "feeds", "inbound/")
	require.NoError(t, err)
	assert.Equal(t, []string{"inbound/erp.csv", "inbound/shop.xlsx"}, keys)
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "exports/run-1/mismatches.csv", storage.ObjectKey("/exports/", "run-1", "mismatches.csv"))
	assert.Equal(t, "run-1/a.csv", storage.ObjectKey("", "run-1", "a.csv"))
}
