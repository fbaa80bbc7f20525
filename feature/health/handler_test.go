package health

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"model-diff/core/database"
	"model-diff/core/storage/mocks"
	comparisonmodels "model-diff/feature/comparison/models"
	"model-diff/feature/health/checks"
	modelmodels "model-diff/feature/model/models"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T, migrate bool) (*fiber.App, *mocks.Client) {
	t.Helper()
	app := fiber.New()
	mockClient := new(mocks.Client)

	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	if migrate {
		require.NoError(t, db.AutoMigrate(&modelmodels.ModelEntry{}, &comparisonmodels.ComparisonRun{}))
	}

	feature := NewFeature(mockClient, "diffs", zap.NewNop(), db)
	require.NoError(t, feature.Load(app))
	return app, mockClient
}

func emptyListing() <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo)
	close(ch)
	return ch
}

func TestHandleHealthCheck(t *testing.T) {
	t.Run("All Healthy", func(t *testing.T) {
		app, mockClient := setupTestApp(t, true)
		mockClient.On("BucketExists", mock.Anything, "diffs").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "diffs", mock.Anything).Return(emptyListing())

		req := httptest.NewRequest("GET", "/health", nil)
		resp, err := app.Test(req, 2000)

		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "ok", body["status"])
		assert.Equal(t, "ok", body["storage"].(map[string]any)["status"])
		assert.Equal(t, true, body["database"].(map[string]any)["matched"])
	})

	t.Run("Degraded", func(t *testing.T) {
		app, mockClient := setupTestApp(t, false)
		mockClient.On("BucketExists", mock.Anything, "diffs").Return(false, nil)

		req := httptest.NewRequest("GET", "/health", nil)
		resp, err := app.Test(req, 2000)

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "degraded", body["status"])
		assert.Equal(t, "error", body["storage"].(map[string]any)["status"])
		assert.Equal(t, false, body["database"].(map[string]any)["matched"])
	})
}

func TestHandleStorageCheck(t *testing.T) {
	t.Run("Healthy", func(t *testing.T) {
		app, mockClient := setupTestApp(t, true)
		mockClient.On("BucketExists", mock.Anything, "diffs").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "diffs", mock.Anything).Return(emptyListing())

		req := httptest.NewRequest("GET", "/health/storage", nil)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "ok", body["status"])
	})

	t.Run("Bucket Missing", func(t *testing.T) {
		app, mockClient := setupTestApp(t, true)
		mockClient.On("BucketExists", mock.Anything, "diffs").Return(false, nil)

		req := httptest.NewRequest("GET", "/health/storage", nil)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	})

	t.Run("Prefix Failing", func(t *testing.T) {
		app, mockClient := setupTestApp(t, true)
		mockClient.On("BucketExists", mock.Anything, "diffs").Return(true, nil)

		ch := make(chan minio.ObjectInfo, 1)
		ch <- minio.ObjectInfo{Err: errors.New("access denied")}
		close(ch)
		mockClient.On("ListObjects", mock.Anything, "diffs", mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
			return opts.Prefix == checks.RequiredPrefixes[0]
		})).Return((<-chan minio.ObjectInfo)(ch))
		mockClient.On("ListObjects", mock.Anything, "diffs", mock.Anything).Return(emptyListing())

		req := httptest.NewRequest("GET", "/health/storage", nil)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "error", body["status"])
		assert.Len(t, body["failed"], 1)
	})
}

func TestHandleDatabaseCheck(t *testing.T) {
	t.Run("Schema Complete", func(t *testing.T) {
		app, _ := setupTestApp(t, true)

		req := httptest.NewRequest("GET", "/health/database", nil)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, true, body["matched"])
	})

	t.Run("Schema Missing", func(t *testing.T) {
		app, _ := setupTestApp(t, false)

		req := httptest.NewRequest("GET", "/health/database", nil)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, false, body["matched"])

		tables := body["tables"].(map[string]any)
		runs := tables["comparison_runs"].(map[string]any)
		assert.Equal(t, "error", runs["status"])
		assert.NotEmpty(t, runs["missing_columns"])
	})
}
