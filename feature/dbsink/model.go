package dbsink

import "time"

// ExportRecord is one converted record persisted for server-side lookup.
// The export name plus record key identifies a row; re-running an export
// updates payloads in place.
type ExportRecord struct {
	ID        uint   `gorm:"primarykey"`
	Export    string `gorm:"size:128;not null;uniqueIndex:idx_export_record,priority:1"`
	RecordKey string `gorm:"size:128;not null;uniqueIndex:idx_export_record,priority:2"`
	Payload   string `gorm:"type:json;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
