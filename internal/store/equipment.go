package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// EquipmentStore provides persistence operations for equipment records.
type EquipmentStore struct {
	db *gorm.DB
}

// NewEquipmentStore creates a new EquipmentStore.
func NewEquipmentStore(db *gorm.DB) (*EquipmentStore, error) {
	if db == nil {
		return nil, errors.New("database cannot be nil")
	}
	return &EquipmentStore{db: db}, nil
}

// List returns all equipment records.
func (s *EquipmentStore) List(ctx context.Context) ([]Equipment, error) {
	var items []Equipment
	if err := s.db.WithContext(ctx).Order("equipment_id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}
	return items, nil
}

// Get returns the equipment record with the given equipment ID, or
// (nil, nil) when no such record exists.
func (s *EquipmentStore) Get(ctx context.Context, equipmentID string) (*Equipment, error) {
	var item Equipment
	err := s.db.WithContext(ctx).Where("equipment_id = ?", equipmentID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get equipment %s: %w", equipmentID, err)
	}
	return &item, nil
}

// Create inserts a new equipment record. LastMaintenanceDate starts out nil
// regardless of the caller's input; only log creation advances it.
func (s *EquipmentStore) Create(ctx context.Context, item *Equipment) error {
	item.LastMaintenanceDate = nil
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("failed to create equipment: %w", err)
	}
	return nil
}

// FindDueEquipment returns all equipment currently due for maintenance:
// never maintained, or last maintenance plus the interval has reached today.
// The comparison happens at the database's wall-clock date; this is a
// snapshot read with no locking. Results are ordered by equipment_id so a
// sweep processes items deterministically.
func (s *EquipmentStore) FindDueEquipment(ctx context.Context) ([]Equipment, error) {
	var items []Equipment
	err := s.db.WithContext(ctx).
		Where("last_maintenance_date IS NULL OR last_maintenance_date + (maintenance_interval * INTERVAL '1 day') <= CURRENT_DATE").
		Order("equipment_id").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query due equipment: %w", err)
	}
	return items, nil
}
