package database

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestGetTableColumns(t *testing.T) {
	cfg := Config{
		Driver: "sqlite",
		Name:   ":memory:",
	}
	db, err := Connect(cfg)
	assert.NoError(t, err)
	assert.NotNil(t, db)

	err = db.Exec("CREATE TABLE model_entries (id TEXT PRIMARY KEY, display_name TEXT, node_count INTEGER)").Error
	assert.NoError(t, err)

	columns, err := GetTableColumns(db, "model_entries")
	assert.NoError(t, err)
	assert.Len(t, columns, 3)

	colMap := make(map[string]string)
	for _, col := range columns {
		colMap[col.Field] = col.Type
	}

	assert.Equal(t, "text", colMap["id"])
	assert.Equal(t, "text", colMap["display_name"])
	assert.Equal(t, "integer", colMap["node_count"])

	// PRAGMA table_info returns an empty result for a missing table,
	// so no error but no columns either.
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestGetTableColumns_MySQL(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"})
	rows.AddRow("ID", "VARCHAR(36)", "NO", "PRI", nil, "")
	rows.AddRow("display_name", "varchar(255)", "YES", "", nil, "")
	rows.AddRow("node_count", "INT(11)", "YES", "", "0", "")

	mock.ExpectQuery("SHOW COLUMNS FROM `model_entries`").WillReturnRows(rows)

	columns, err := GetTableColumns(db, "model_entries")
	assert.NoError(t, err)
	assert.Len(t, columns, 3)

	// Field and type strings come back lowercased regardless of how the
	// server reports them.
	assert.Equal(t, "id", columns[0].Field)
	assert.Equal(t, "varchar(36)", columns[0].Type)
	assert.Equal(t, "int(11)", columns[2].Type)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTableColumns_MySQLQueryError(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery("SHOW COLUMNS FROM `model_entries`").
		WillReturnError(errors.New("connection refused"))

	columns, err := GetTableColumns(db, "model_entries")
	assert.Error(t, err)
	assert.Nil(t, columns)
	assert.Contains(t, err.Error(), "model_entries")
}
