package comparison

import (
	"model-diff/core/compare"
	"model-diff/core/storage"
	"model-diff/feature/model"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the comparison feature on top of the model service.
func NewFeature(modelSvc *model.Service, client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB, cfg compare.Config) *Feature {
	svc := NewService(modelSvc, client, bucket, logger, db, cfg)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "comparison"
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

// Service exposes the comparison service for the CLI commands.
func (f *Feature) Service() *Service {
	return f.service
}
