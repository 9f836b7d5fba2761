// Package store provides the PostgreSQL persistence layer for equipment,
// maintenance schedules, maintenance logs and alert history.
package store

import (
	"time"
)

// Schedule status values. Only Pending is consulted by the due-detection sweep.
const (
	StatusPending   = "Pending"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

// Schedule priority values. Free text in practice; these are the conventional ones.
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// AlertTypeMaintenanceDue is the alert type raised by the due-detection sweep.
const AlertTypeMaintenanceDue = "Maintenance Due"

// Equipment represents a physical asset under maintenance tracking.
// LastMaintenanceDate is nil until the first maintenance log is recorded and
// is only ever advanced by log creation.
type Equipment struct {
	EquipmentID         string     `gorm:"uniqueIndex;not null" json:"equipment_id"`
	Name                string     `gorm:"not null" json:"name"`
	Type                string     `json:"type"`
	Location            string     `json:"location"`
	InstallationDate    time.Time  `json:"installation_date"`
	Manufacturer        string     `json:"manufacturer"`
	Model               string     `json:"model"`
	MaintenanceInterval int        `gorm:"not null" json:"maintenance_interval"`
	LastMaintenanceDate *time.Time `json:"last_maintenance_date"`
	CreatedAt           time.Time  `gorm:"autoCreateTime" json:"-"`
	UpdatedAt           time.Time  `gorm:"autoUpdateTime" json:"-"`
	ID                  uint       `gorm:"primaryKey" json:"-"`
}

// TableName specifies the table name for the Equipment model.
func (Equipment) TableName() string {
	return "equipment"
}

// MaintenanceSchedule represents a planned maintenance work item.
// At most one Pending schedule may exist per equipment item at any time; the
// sweep preserves this by checking before inserting (no storage constraint).
type MaintenanceSchedule struct {
	ScheduleID         string    `gorm:"uniqueIndex;not null" json:"schedule_id"`
	EquipmentID        string    `gorm:"index:idx_schedule_equipment;not null" json:"equipment_id"`
	ScheduledDate      time.Time `gorm:"not null" json:"scheduled_date"`
	AssignedTechnician *string   `json:"assigned_technician"`
	Priority           string    `json:"priority"`
	Status             string    `gorm:"index:idx_schedule_status;not null" json:"status"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"-"`
	ID                 uint      `gorm:"primaryKey" json:"-"`
}

// TableName specifies the table name for the MaintenanceSchedule model.
func (MaintenanceSchedule) TableName() string {
	return "maintenance_schedules"
}

// AlertHistory is the append-only audit trail of raised alerts. Rows are never
// mutated after creation.
type AlertHistory struct {
	AlertID     string    `gorm:"uniqueIndex;not null" json:"alert_id"`
	EquipmentID string    `gorm:"index:idx_alert_equipment;not null" json:"equipment_id"`
	AlertType   string    `gorm:"not null" json:"alert_type"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	Message     string    `json:"message"`
	Status      string    `json:"status"`
	Recipient   string    `json:"recipient"`
	ID          uint      `gorm:"primaryKey" json:"-"`
}

// TableName specifies the table name for the AlertHistory model.
func (AlertHistory) TableName() string {
	return "alert_history"
}

// MaintenanceLog records completed maintenance work. Creating a log is the
// action that advances the equipment's LastMaintenanceDate.
type MaintenanceLog struct {
	LogID           string    `gorm:"uniqueIndex;not null" json:"log_id"`
	EquipmentID     string    `gorm:"index:idx_log_equipment;not null" json:"equipment_id"`
	MaintenanceDate time.Time `gorm:"not null" json:"maintenance_date"`
	Technician      string    `json:"technician"`
	Description     string    `json:"description"`
	PartsReplaced   string    `json:"parts_replaced"`
	Status          string    `json:"status"`
	ScheduleID      *string   `json:"schedule_id"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"-"`
	ID              uint      `gorm:"primaryKey" json:"-"`
}

// TableName specifies the table name for the MaintenanceLog model.
func (MaintenanceLog) TableName() string {
	return "maintenance_logs"
}
