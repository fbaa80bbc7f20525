package checks

import (
	"testing"

	"model-diff/core/database"
	comparisonmodels "model-diff/feature/comparison/models"
	modelmodels "model-diff/feature/model/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSchemaTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	return db
}

func TestCheckSchema_NilDB(t *testing.T) {
	report, err := CheckSchema(nil)
	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestCheckSchema_FullSchema(t *testing.T) {
	db := newSchemaTestDB(t)
	require.NoError(t, db.AutoMigrate(&modelmodels.ModelEntry{}, &comparisonmodels.ComparisonRun{}))

	report, err := CheckSchema(db)
	require.NoError(t, err)
	assert.True(t, report.Matched)
	assert.Equal(t, "ok", report.Tables["model_entries"].Status)
	assert.Equal(t, "ok", report.Tables["comparison_runs"].Status)
	assert.Empty(t, report.Tables["comparison_runs"].MissingColumns)
}

func TestCheckSchema_MissingTable(t *testing.T) {
	db := newSchemaTestDB(t)
	require.NoError(t, db.AutoMigrate(&modelmodels.ModelEntry{}))

	report, err := CheckSchema(db)
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Equal(t, "ok", report.Tables["model_entries"].Status)

	runs := report.Tables["comparison_runs"]
	assert.Equal(t, "error", runs.Status)
	assert.Contains(t, runs.MissingColumns, "model_a")
	assert.Contains(t, runs.MissingColumns, "differences")
}

func TestCheckSchema_MissingColumns(t *testing.T) {
	db := newSchemaTestDB(t)
	require.NoError(t, db.AutoMigrate(&comparisonmodels.ComparisonRun{}))
	// A legacy table that predates the snapshot count columns.
	require.NoError(t, db.Exec("CREATE TABLE model_entries (id text, display_name text, object_key text)").Error)

	report, err := CheckSchema(db)
	require.NoError(t, err)
	assert.False(t, report.Matched)

	entries := report.Tables["model_entries"]
	assert.Equal(t, "error", entries.Status)
	assert.Equal(t, []string{"node_count", "element_count", "uploaded_at"}, entries.MissingColumns)
}

func TestParseGormColumn(t *testing.T) {
	assert.Equal(t, "id", parseGormColumn("column:id;primaryKey"))
	assert.Equal(t, "display_name", parseGormColumn("primaryKey;column:display_name"))
	assert.Equal(t, "", parseGormColumn("primaryKey"))
}
