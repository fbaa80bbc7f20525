package model

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"model-diff/core/storage"
	"model-diff/feature/model/models"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ObjectPrefix is where model documents live inside the bucket.
const ObjectPrefix = "models/"

// DefaultSnapshotTTL is the server-side snapshot cache lifetime. Stored
// documents are immutable, the TTL only bounds memory held for models
// nobody compares anymore.
const DefaultSnapshotTTL = 5 * time.Minute

// ErrInvalidDocument marks upload payloads that could not be accepted.
// Handlers map it to a client error instead of a server error.
var ErrInvalidDocument = errors.New("invalid model document")

// Service manages stored model documents: the JSON bodies in object storage
// and their metadata rows in the database.
type Service struct {
	client storage.Client
	bucket string
	logger *zap.Logger
	db     *gorm.DB
	cache  *snapshotCache
}

// NewService creates a new model service. cacheTTL bounds how long parsed
// snapshots are reused; zero disables snapshot caching.
func NewService(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB, cacheTTL time.Duration) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		logger: logger,
		db:     db,
		cache:  newSnapshotCache(cacheTTL),
	}
}

// ObjectKey returns the storage key for a model id.
func ObjectKey(id string) string {
	return ObjectPrefix + id + ".json"
}

// Upload stores a new model document and its metadata row. displayName may
// be empty, in which case the document's own name is used.
func (s *Service) Upload(ctx context.Context, displayName string, payload []byte) (*models.ModelEntry, error) {
	var doc models.Document
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if reason := doc.Validate(); reason != "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDocument, reason)
	}

	snap := BuildSnapshot(&doc, s.logger)

	if displayName == "" {
		displayName = doc.Name
	}
	if displayName == "" {
		displayName = "untitled"
	}

	// Object key derives from the entry id so the two are discoverable from
	// each other.
	id := uuid.NewString()
	entry := &models.ModelEntry{
		ID:           id,
		DisplayName:  displayName,
		ObjectKey:    ObjectKey(id),
		NodeCount:    snap.NodeCount,
		ElementCount: snap.ElementCount,
		UploadedAt:   time.Now().UTC(),
	}

	_, err := s.client.PutObject(ctx, s.bucket, entry.ObjectKey,
		bytes.NewReader(payload), int64(len(payload)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return nil, fmt.Errorf("failed to store model document: %w", err)
	}

	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		// Best effort: do not leave an orphaned document behind.
		if rmErr := s.client.RemoveObject(ctx, s.bucket, entry.ObjectKey, minio.RemoveObjectOptions{}); rmErr != nil {
			s.logger.Warn("failed to remove orphaned model document",
				zap.String("object", entry.ObjectKey), zap.Error(rmErr))
		}
		return nil, fmt.Errorf("failed to persist model entry: %w", err)
	}

	s.cache.invalidate(entry.ObjectKey)
	s.logger.Info("model uploaded",
		zap.String("model", entry.ID),
		zap.String("name", entry.DisplayName),
		zap.Int("nodes", entry.NodeCount),
		zap.Int("elements", entry.ElementCount))
	return entry, nil
}

// List returns all stored model entries, newest first.
func (s *Service) List(ctx context.Context) ([]models.ModelEntry, error) {
	var entries []models.ModelEntry
	if err := s.db.WithContext(ctx).Order("uploaded_at DESC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list model entries: %w", err)
	}
	return entries, nil
}

// Get returns one model entry by id. Not-found surfaces as
// gorm.ErrRecordNotFound for callers that map it to a 404.
func (s *Service) Get(ctx context.Context, id string) (*models.ModelEntry, error) {
	var entry models.ModelEntry
	if err := s.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to load model %s: %w", id, err)
	}
	return &entry, nil
}

// Delete removes the document and its metadata row.
func (s *Service) Delete(ctx context.Context, id string) error {
	entry, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.client.RemoveObject(ctx, s.bucket, entry.ObjectKey, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove model document: %w", err)
	}
	if err := s.db.WithContext(ctx).Delete(&models.ModelEntry{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete model entry: %w", err)
	}
	s.cache.invalidate(entry.ObjectKey)
	s.logger.Info("model deleted", zap.String("model", id))
	return nil
}

// Snapshot returns the parsed snapshot for a model id, served from the cache
// when fresh.
func (s *Service) Snapshot(ctx context.Context, id string) (*Snapshot, error) {
	entry, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.cache.getOrBuild(entry.ObjectKey, func() (*Snapshot, error) {
		doc, err := s.loadDocument(ctx, entry.ObjectKey)
		if err != nil {
			return nil, err
		}
		return BuildSnapshot(doc, s.logger), nil
	})
}

func (s *Service) loadDocument(ctx context.Context, objectKey string) (*models.Document, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch model document %s: %w", objectKey, err)
	}
	defer obj.Close()

	payload, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read model document %s: %w", objectKey, err)
	}

	var doc models.Document
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode model document %s: %w", objectKey, err)
	}
	return &doc, nil
}
