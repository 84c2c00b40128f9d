package dbsink

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sheetgen/core/dataset"
)

// Service loads converted datasets into the database.
type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewService returns a sink writing through db.
func NewService(db *gorm.DB, log *zap.Logger) *Service {
	return &Service{db: db, log: log}
}

// Migrate creates or updates the sink table.
func (s *Service) Migrate() error {
	if err := s.db.AutoMigrate(&ExportRecord{}); err != nil {
		return fmt.Errorf("failed to migrate export records: %w", err)
	}
	return nil
}

// Sync upserts every record of ds under the given export name and returns
// the number of records written.
func (s *Service) Sync(ctx context.Context, name string, ds *dataset.Dataset) (int, error) {
	records := ds.Records()
	if len(records) == 0 {
		return 0, nil
	}

	rows := make([]ExportRecord, 0, len(records))
	for _, rec := range records {
		payload, err := json.Marshal(rec.Fields)
		if err != nil {
			return 0, fmt.Errorf("failed to encode record %s of %s: %w", rec.Key, name, err)
		}
		rows = append(rows, ExportRecord{
			Export:    name,
			RecordKey: rec.Key,
			Payload:   string(payload),
		})
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "export"}, {Name: "record_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&rows).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sync export %s: %w", name, err)
	}

	s.log.Info("export synced to database",
		zap.String("export", name),
		zap.Int("records", len(rows)))
	return len(rows), nil
}
