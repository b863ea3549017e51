package inventory

import (
	"inventory-reconciler/core/export"
	"inventory-reconciler/core/storage"
	"inventory-reconciler/core/table"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new Inventory feature.
func NewFeature(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB, feeds table.Config, exp export.Config) *Feature {
	opts := feeds.Options()
	svc := NewService(client, bucket, logger, db, opts, exp)
	h := NewHandler(svc, opts)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "inventory"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
