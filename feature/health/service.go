package health

import (
	"context"

	"model-diff/core/storage"
	"model-diff/feature/health/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service runs the operational health checks.
type Service struct {
	client storage.Client
	bucket string
	logger *zap.Logger
	db     *gorm.DB
}

// NewService creates a new health service.
func NewService(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		logger: logger,
		db:     db,
	}
}

// CheckStorage returns the object prefixes that failed their probe.
func (s *Service) CheckStorage(ctx context.Context) ([]string, error) {
	return checks.CheckStorage(ctx, s.client, s.bucket)
}

// CheckDatabase reports whether the application tables exist with the
// expected columns.
func (s *Service) CheckDatabase() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db)
}
