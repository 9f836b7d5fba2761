// Package seed generates fixture equipment records for development and demos.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"procodus.dev/maintenance-tracker/internal/store"
)

// equipmentFixture is the gofakeit template for a generated equipment record.
type equipmentFixture struct {
	EquipmentID         string `fake:"{uuid}"`
	Name                string `fake:"{productname}"`
	Type                string `fake:"{randomstring:[Pump,Compressor,Generator,Chiller,Conveyor,Boiler]}"`
	Location            string `fake:"{city}"`
	Manufacturer        string `fake:"{company}"`
	Model               string `fake:"{appversion}"`
	MaintenanceInterval int    `fake:"{number:30,365}"`
}

// NewEquipment generates one fake equipment record. LastMaintenanceDate is
// left nil, matching freshly-registered equipment.
func NewEquipment() (*store.Equipment, error) {
	var fixture equipmentFixture
	if err := gofakeit.Struct(&fixture); err != nil {
		return nil, fmt.Errorf("failed to generate equipment fixture: %w", err)
	}

	now := time.Now()
	return &store.Equipment{
		EquipmentID:         fixture.EquipmentID,
		Name:                fixture.Name,
		Type:                fixture.Type,
		Location:            fixture.Location,
		InstallationDate:    gofakeit.DateRange(now.AddDate(-5, 0, 0), now.AddDate(0, -1, 0)),
		Manufacturer:        fixture.Manufacturer,
		Model:               fixture.Model,
		MaintenanceInterval: fixture.MaintenanceInterval,
	}, nil
}

// EquipmentCreator is the store surface the seeder writes through.
type EquipmentCreator interface {
	Create(ctx context.Context, item *store.Equipment) error
}

// Run generates count equipment records and inserts them through the store.
func Run(ctx context.Context, logger *slog.Logger, creator EquipmentCreator, count int) error {
	if logger == nil {
		return errors.New("logger cannot be nil")
	}

	if creator == nil {
		return errors.New("equipment creator cannot be nil")
	}

	if count <= 0 {
		return errors.New("count must be positive")
	}

	for i := 0; i < count; i++ {
		item, err := NewEquipment()
		if err != nil {
			return err
		}
		if err := creator.Create(ctx, item); err != nil {
			return fmt.Errorf("failed to insert seed equipment: %w", err)
		}
		logger.Info("seeded equipment",
			"equipment_id", item.EquipmentID,
			"name", item.Name,
			"interval_days", item.MaintenanceInterval,
		)
	}

	return nil
}
