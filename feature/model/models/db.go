package models

import (
	"time"
)

// ModelEntry is the persisted metadata row for one stored model document.
// The document body itself lives in object storage under ObjectKey.
type ModelEntry struct {
	ID           string    `gorm:"column:id;primaryKey" json:"id"`
	DisplayName  string    `gorm:"column:display_name" json:"display_name"`
	ObjectKey    string    `gorm:"column:object_key" json:"object_key"`
	NodeCount    int       `gorm:"column:node_count" json:"node_count"`
	ElementCount int       `gorm:"column:element_count" json:"element_count"`
	UploadedAt   time.Time `gorm:"column:uploaded_at" json:"uploaded_at"`
}

// TableName overrides the table name used by gorm.
func (ModelEntry) TableName() string {
	return "model_entries"
}
