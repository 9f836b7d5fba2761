package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ScheduleStore provides persistence operations for maintenance schedules.
type ScheduleStore struct {
	db *gorm.DB
}

// NewScheduleStore creates a new ScheduleStore.
func NewScheduleStore(db *gorm.DB) (*ScheduleStore, error) {
	if db == nil {
		return nil, errors.New("database cannot be nil")
	}
	return &ScheduleStore{db: db}, nil
}

// List returns all maintenance schedules.
func (s *ScheduleStore) List(ctx context.Context) ([]MaintenanceSchedule, error) {
	var items []MaintenanceSchedule
	if err := s.db.WithContext(ctx).Order("scheduled_date").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return items, nil
}

// InsertSchedule appends a new maintenance schedule row.
func (s *ScheduleStore) InsertSchedule(ctx context.Context, schedule *MaintenanceSchedule) error {
	if err := s.db.WithContext(ctx).Create(schedule).Error; err != nil {
		return fmt.Errorf("failed to insert schedule: %w", err)
	}
	return nil
}

// FindPendingSchedule returns a Pending schedule for the given equipment, or
// (nil, nil) when none exists. The sweep uses this as its duplicate-suppression
// check before creating new work.
func (s *ScheduleStore) FindPendingSchedule(ctx context.Context, equipmentID string) (*MaintenanceSchedule, error) {
	var schedule MaintenanceSchedule
	err := s.db.WithContext(ctx).
		Where("equipment_id = ? AND status = ?", equipmentID, StatusPending).
		First(&schedule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query pending schedule for %s: %w", equipmentID, err)
	}
	return &schedule, nil
}
