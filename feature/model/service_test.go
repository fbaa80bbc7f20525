package model_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"model-diff/core/database"
	"model-diff/core/storage/mocks"
	"model-diff/feature/model"
	"model-diff/feature/model/models"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const towerDoc = `{
  "version": "1",
  "name": "Tower A",
  "units": "mm",
  "nodes": [
    {"id": "n1", "x": 0, "y": 0, "z": 0},
    {"id": "n2", "x": 1000, "y": 0, "z": 0},
    {"id": "n3", "x": 1000, "y": 1000, "z": 0}
  ],
  "elements": {
    "column": [{"id": "c1", "id_node_bottom": "n1", "id_node_top": "n2"}],
    "footing": [{"id": "f1", "id_node": "n1"}, {"id": "f2", "id_node": "n3"}]
  }
}`

func newModelTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.ModelEntry{}))
	return db
}

func TestServiceUpload(t *testing.T) {
	db := newModelTestDB(t)
	mockClient := new(mocks.Client)
	mockClient.On("PutObject", mock.Anything, "models", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	svc := model.NewService(mockClient, "models", zap.NewNop(), db, time.Minute)

	entry, err := svc.Upload(context.Background(), "", []byte(towerDoc))
	assert.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "Tower A", entry.DisplayName, "document name used when no display name given")
	assert.Equal(t, model.ObjectKey(entry.ID), entry.ObjectKey)
	assert.Equal(t, 3, entry.NodeCount)
	assert.Equal(t, 3, entry.ElementCount)

	var stored models.ModelEntry
	assert.NoError(t, db.First(&stored, "id = ?", entry.ID).Error)
	assert.Equal(t, entry.ObjectKey, stored.ObjectKey)

	mockClient.AssertExpectations(t)
}

func TestServiceUploadRejectsBadPayloads(t *testing.T) {
	db := newModelTestDB(t)
	svc := model.NewService(new(mocks.Client), "models", zap.NewNop(), db, time.Minute)

	for name, payload := range map[string]string{
		"Not JSON":       "{nope",
		"Empty Document": `{"name": "x"}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Upload(context.Background(), "", []byte(payload))
			assert.ErrorIs(t, err, model.ErrInvalidDocument)
		})
	}
}

func TestServiceListNewestFirst(t *testing.T) {
	db := newModelTestDB(t)
	older := models.ModelEntry{
		ID: "m-old", DisplayName: "old", ObjectKey: model.ObjectKey("m-old"),
		UploadedAt: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
	}
	newer := models.ModelEntry{
		ID: "m-new", DisplayName: "new", ObjectKey: model.ObjectKey("m-new"),
		UploadedAt: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	assert.NoError(t, db.Create(&older).Error)
	assert.NoError(t, db.Create(&newer).Error)

	svc := model.NewService(new(mocks.Client), "models", zap.NewNop(), db, time.Minute)
	entries, err := svc.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, "m-new", entries[0].ID)
	assert.Equal(t, "m-old", entries[1].ID)
}

func TestServiceGetNotFound(t *testing.T) {
	db := newModelTestDB(t)
	svc := model.NewService(new(mocks.Client), "models", zap.NewNop(), db, time.Minute)

	_, err := svc.Get(context.Background(), "missing")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestServiceDelete(t *testing.T) {
	db := newModelTestDB(t)
	entry := models.ModelEntry{ID: "m-1", DisplayName: "doomed", ObjectKey: model.ObjectKey("m-1")}
	assert.NoError(t, db.Create(&entry).Error)

	mockClient := new(mocks.Client)
	mockClient.On("RemoveObject", mock.Anything, "models", entry.ObjectKey, mock.Anything).Return(nil)

	svc := model.NewService(mockClient, "models", zap.NewNop(), db, time.Minute)
	assert.NoError(t, svc.Delete(context.Background(), "m-1"))

	var count int64
	db.Model(&models.ModelEntry{}).Count(&count)
	assert.Equal(t, int64(0), count)
	mockClient.AssertExpectations(t)
}

func TestServiceSnapshotUsesCache(t *testing.T) {
	db := newModelTestDB(t)
	entry := models.ModelEntry{ID: "m-1", DisplayName: "Tower A", ObjectKey: model.ObjectKey("m-1")}
	assert.NoError(t, db.Create(&entry).Error)

	mockClient := new(mocks.Client)
	// Once: the second Snapshot call must come from the cache.
	mockClient.On("GetObject", mock.Anything, "models", entry.ObjectKey, mock.Anything).
		Return(io.NopCloser(bytes.NewReader([]byte(towerDoc))), nil).Once()

	svc := model.NewService(mockClient, "models", zap.NewNop(), db, time.Minute)

	snap, err := svc.Snapshot(context.Background(), "m-1")
	assert.NoError(t, err)
	assert.Equal(t, 3, snap.NodeCount)
	assert.Len(t, snap.TypeRecords("footing"), 2)

	again, err := svc.Snapshot(context.Background(), "m-1")
	assert.NoError(t, err)
	assert.Same(t, snap, again)
	mockClient.AssertExpectations(t)
}
