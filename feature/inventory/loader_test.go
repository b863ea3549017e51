package inventory

import (
	"testing"

	"inventory-reconciler/core/export"
	"inventory-reconciler/core/storage/mocks"
	"inventory-reconciler/core/table"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLoader(t *testing.T) {
	mockClient := new(mocks.Client)
	// Pass nil db for this test as table feeds are not exercised
	feature := NewFeature(mockClient, "test-bucket", zap.NewNop(), nil, table.Config{Encodings: "utf-8"}, export.Config{})

	assert.Equal(t, "inventory", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	err := feature.Load(app)
	assert.NoError(t, err)
}
