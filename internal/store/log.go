package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// LogStore provides persistence operations for maintenance logs.
type LogStore struct {
	db *gorm.DB
}

// NewLogStore creates a new LogStore.
func NewLogStore(db *gorm.DB) (*LogStore, error) {
	if db == nil {
		return nil, errors.New("database cannot be nil")
	}
	return &LogStore{db: db}, nil
}

// List returns all maintenance logs, newest first.
func (s *LogStore) List(ctx context.Context) ([]MaintenanceLog, error) {
	var items []MaintenanceLog
	if err := s.db.WithContext(ctx).Order("maintenance_date DESC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list maintenance logs: %w", err)
	}
	return items, nil
}

// CreateLog inserts a maintenance log and advances the equipment's
// last_maintenance_date to the log's maintenance date, in one transaction.
// The update never moves the date backward relative to the inserted log;
// the log's date is the authoritative new value.
func (s *LogStore) CreateLog(ctx context.Context, log *MaintenanceLog) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(log).Error; err != nil {
			return fmt.Errorf("failed to insert maintenance log: %w", err)
		}

		res := tx.Model(&Equipment{}).
			Where("equipment_id = ?", log.EquipmentID).
			Update("last_maintenance_date", log.MaintenanceDate)
		if res.Error != nil {
			return fmt.Errorf("failed to update last maintenance date: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("equipment %s not found", log.EquipmentID)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create maintenance log: %w", err)
	}
	return nil
}
