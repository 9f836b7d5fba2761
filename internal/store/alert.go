package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// AlertStore provides persistence operations for the alert audit trail.
type AlertStore struct {
	db *gorm.DB
}

// NewAlertStore creates a new AlertStore.
func NewAlertStore(db *gorm.DB) (*AlertStore, error) {
	if db == nil {
		return nil, errors.New("database cannot be nil")
	}
	return &AlertStore{db: db}, nil
}

// List returns all alert history rows, newest first.
func (s *AlertStore) List(ctx context.Context) ([]AlertHistory, error) {
	var items []AlertHistory
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	return items, nil
}

// InsertAlert appends a new alert history row. Alerts are never updated or
// deleted afterward.
func (s *AlertStore) InsertAlert(ctx context.Context, alert *AlertHistory) error {
	if err := s.db.WithContext(ctx).Create(alert).Error; err != nil {
		return fmt.Errorf("failed to insert alert: %w", err)
	}
	return nil
}
