package inventory

import (
	"io"
	"strings"
	"testing"

	"inventory-reconciler/core/export"
	"inventory-reconciler/core/mapping"
	"inventory-reconciler/core/storage/mocks"
	"inventory-reconciler/core/table"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

const testBucket = "test-bucket"

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func newTestService(t *testing.T, client *mocks.Client, db *gorm.DB) *Service {
	exp := export.Config{
		Dir:          t.TempDir(),
		ObjectPrefix: "exports",
		TablePrefix:  "recon",
	}
	return NewService(client, testBucket, zap.NewNop(), db, table.DefaultOptions(), exp)
}

func setupTestApp(t *testing.T) (*fiber.App, *Service, *mocks.Client) {
	client := new(mocks.Client)
	svc := newTestService(t, client, nil)
	app := fiber.New()
	NewHandler(svc, table.DefaultOptions()).RegisterRoutes(app)
	return app, svc, client
}

// expectObject serves content for one GetObject call.
func expectObject(client *mocks.Client, key, content string) {
	client.On("GetObject", mock.Anything, testBucket, key, mock.Anything).
		Return(io.NopCloser(strings.NewReader(content)), nil).Once()
}

func skuMapping() mapping.Mapping {
	return mapping.Mapping{
		SrcKey1:      "SKU",
		TgtKey1:      "SKU",
		ComparePairs: []mapping.ComparePair{{Source: "qty", Target: "qty"}},
	}
}

const (
	sourceCSV = "SKU,qty\nA1,10\nA2,5\nB1,4\n"
	targetCSV = "SKU,qty\nA1,10\nA3,3\nB1,0\n"
)

func mustTable(t *testing.T, name, content string) *table.Table {
	t.Helper()
	tbl, err := table.Read(strings.NewReader(content), name, table.DefaultOptions())
	require.NoError(t, err)
	return tbl
}
