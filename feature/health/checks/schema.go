package checks

import (
	"fmt"
	"reflect"
	"strings"

	"model-diff/core/database"
	comparisonmodels "model-diff/feature/comparison/models"
	modelmodels "model-diff/feature/model/models"

	"gorm.io/gorm"
)

// SchemaReport strictly types the result of a database schema check.
type SchemaReport struct {
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors,omitempty"`
}

type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"` // "ok", "error"
}

// trackedModels are the GORM models whose tables the application depends on.
var trackedModels = []interface{}{
	modelmodels.ModelEntry{},
	comparisonmodels.ComparisonRun{},
}

// CheckSchema verifies the application tables using the GORM models as the
// source of truth. A table that does not exist reports every column missing;
// the column inspector returns an empty set for unknown tables rather than
// an error on every driver.
func CheckSchema(db *gorm.DB) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Tables:  make(map[string]TableReport),
		Matched: true,
	}

	for _, model := range trackedModels {
		val := reflect.TypeOf(model)
		tabler, ok := reflect.New(val).Interface().(interface{ TableName() string })
		if !ok {
			return nil, fmt.Errorf("model %s does not implement TableName", val.Name())
		}
		tableName := tabler.TableName()

		actualCols, err := database.GetTableColumns(db, tableName)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("failed to inspect table %s: %v", tableName, err))
			report.Matched = false
			continue
		}

		actual := make(map[string]struct{}, len(actualCols))
		for _, col := range actualCols {
			actual[col.Field] = struct{}{}
		}

		tbl := TableReport{
			MissingColumns: []string{},
			Status:         "ok",
		}
		for i := 0; i < val.NumField(); i++ {
			colName := parseGormColumn(val.Field(i).Tag.Get("gorm"))
			if colName == "" {
				continue
			}
			if _, exists := actual[colName]; !exists {
				tbl.MissingColumns = append(tbl.MissingColumns, colName)
				tbl.Status = "error"
				report.Matched = false
			}
		}
		report.Tables[tableName] = tbl
	}

	return report, nil
}

// parseGormColumn extracts the column name from a gorm struct tag.
func parseGormColumn(tag string) string {
	for _, p := range strings.Split(tag, ";") {
		if strings.HasPrefix(p, "column:") {
			return strings.TrimPrefix(p, "column:")
		}
	}
	return ""
}
