package models

import (
	"time"
)

// ComparisonRun is the persisted record of one comparison. The headline
// counts are stored as flat columns so run history is queryable without
// fetching the full report; the complete report body lives in object storage
// under ReportKey.
type ComparisonRun struct {
	ID        string `gorm:"column:id;primaryKey" json:"id"`
	ModelA    string `gorm:"column:model_a" json:"model_a"`
	ModelB    string `gorm:"column:model_b" json:"model_b"`
	KeyMode   string `gorm:"column:key_mode" json:"key_mode"`
	Precision int    `gorm:"column:precision" json:"precision"`
	Tolerance bool   `gorm:"column:tolerance" json:"tolerance"`

	Exact           int `gorm:"column:exact" json:"exact"`
	WithinTolerance int `gorm:"column:within_tolerance" json:"within_tolerance"`
	Mismatch        int `gorm:"column:mismatch" json:"mismatch"`
	OnlyA           int `gorm:"column:only_a" json:"only_a"`
	OnlyB           int `gorm:"column:only_b" json:"only_b"`
	Dropped         int `gorm:"column:dropped" json:"dropped"`
	Differences     int `gorm:"column:differences" json:"differences"`

	ReportKey string    `gorm:"column:report_key" json:"report_key"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides the table name used by gorm.
func (ComparisonRun) TableName() string {
	return "comparison_runs"
}
