// Package sweep implements the maintenance due-detection and alert dispatch
// engine: a serialized recurring sweep that finds equipment due for
// maintenance, suppresses duplicates against existing pending schedules, and
// materializes a schedule, an alert and a best-effort notification per item.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"procodus.dev/maintenance-tracker/internal/store"
	"procodus.dev/maintenance-tracker/pkg/metrics"
)

// scheduleLead is how far in the future sweep-created schedules are dated.
const scheduleLead = 7 * 24 * time.Hour

// EquipmentSource is the read side of the equipment store consumed by the sweep.
type EquipmentSource interface {
	FindDueEquipment(ctx context.Context) ([]store.Equipment, error)
}

// ScheduleStore is the schedule persistence consumed by the sweep.
type ScheduleStore interface {
	FindPendingSchedule(ctx context.Context, equipmentID string) (*store.MaintenanceSchedule, error)
	InsertSchedule(ctx context.Context, schedule *store.MaintenanceSchedule) error
}

// AlertStore is the alert persistence consumed by the sweep.
type AlertStore interface {
	InsertAlert(ctx context.Context, alert *store.AlertHistory) error
}

// Notifier delivers a human-readable message to a recipient. Best-effort:
// a send failure never affects persisted state.
type Notifier interface {
	Notify(ctx context.Context, recipient, subject, body string) error
}

// Sweeper runs the due-detection sweep. At most one sweep execution is in
// flight at a time; concurrent Run calls are skipped, not queued.
type Sweeper struct {
	logger    *slog.Logger
	equipment EquipmentSource
	schedules ScheduleStore
	alerts    AlertStore
	notifier  Notifier
	recipient string
	metrics   *metrics.SweepMetrics // Optional metrics
	now       func() time.Time
	running   sync.Mutex
}

// Config holds the configuration for the Sweeper.
type Config struct {
	Logger    *slog.Logger
	Equipment EquipmentSource
	Schedules ScheduleStore
	Alerts    AlertStore
	Notifier  Notifier

	// Recipient is the fixed maintenance-team address used for alerts and
	// notifications.
	Recipient string

	// Metrics is optional sweep instrumentation.
	Metrics *metrics.SweepMetrics

	// Now overrides the clock, for tests. Defaults to time.Now.
	Now func() time.Time
}

// NewSweeper creates a new Sweeper instance.
func NewSweeper(cfg *Config) (*Sweeper, error) {
	if cfg == nil {
		return nil, errors.New("sweeper config cannot be nil")
	}

	if cfg.Logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.Equipment == nil {
		return nil, errors.New("equipment source cannot be nil")
	}

	if cfg.Schedules == nil {
		return nil, errors.New("schedule store cannot be nil")
	}

	if cfg.Alerts == nil {
		return nil, errors.New("alert store cannot be nil")
	}

	if cfg.Notifier == nil {
		return nil, errors.New("notifier cannot be nil")
	}

	if cfg.Recipient == "" {
		return nil, errors.New("recipient cannot be empty")
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Sweeper{
		logger:    cfg.Logger,
		equipment: cfg.Equipment,
		schedules: cfg.Schedules,
		alerts:    cfg.Alerts,
		notifier:  cfg.Notifier,
		recipient: cfg.Recipient,
		metrics:   cfg.Metrics,
		now:       now,
	}, nil
}

// Run executes one sweep. A detection-read failure aborts the whole sweep and
// is returned as a SweepAbortedError; failures while processing one item are
// logged and do not prevent processing of the remaining items. If another
// sweep is already in flight the call returns immediately without doing work.
func (s *Sweeper) Run(ctx context.Context) error {
	if !s.running.TryLock() {
		s.logger.Warn("sweep already in progress, skipping this run")
		if s.metrics != nil {
			s.metrics.SweepsTotal.WithLabelValues("skipped").Inc()
		}
		return nil
	}
	defer s.running.Unlock()

	var timer *prometheus.Timer
	if s.metrics != nil {
		timer = prometheus.NewTimer(s.metrics.SweepDuration)
		defer timer.ObserveDuration()
		defer s.metrics.LastSweepTimestamp.SetToCurrentTime()
	}

	s.logger.Info("starting maintenance due sweep")

	due, err := s.equipment.FindDueEquipment(ctx)
	if err != nil {
		aborted := &SweepAbortedError{Err: err}
		s.logger.Error("due-detection query failed, aborting sweep", "error", aborted)
		if s.metrics != nil {
			s.metrics.SweepsTotal.WithLabelValues("aborted").Inc()
		}
		return aborted
	}

	s.logger.Info("due-detection query completed", "due_count", len(due))

	var scheduled, suppressed, failed int
	for _, item := range due {
		switch err := s.processItem(ctx, item); {
		case err == nil:
			scheduled++
		case errors.Is(err, errSuppressed):
			suppressed++
		default:
			// Per-item failure isolation: report and keep going.
			s.logger.Error("failed to process due equipment",
				"equipment_id", item.EquipmentID,
				"error", err,
			)
			failed++
			if s.metrics != nil {
				s.metrics.ItemsTotal.WithLabelValues("failed").Inc()
			}
		}
	}

	s.logger.Info("maintenance due sweep completed",
		"due", len(due),
		"scheduled", scheduled,
		"suppressed", suppressed,
		"failed", failed,
	)

	if s.metrics != nil {
		s.metrics.SweepsTotal.WithLabelValues("completed").Inc()
	}

	return nil
}

// errSuppressed marks an item skipped because it already has a pending
// schedule. Internal to the sweep loop's accounting.
var errSuppressed = errors.New("item suppressed")

// processItem handles one due equipment item: duplicate suppression, schedule
// insert, alert insert, notification. A nil return means new work was
// materialized for the item.
func (s *Sweeper) processItem(ctx context.Context, item store.Equipment) error {
	existing, err := s.schedules.FindPendingSchedule(ctx, item.EquipmentID)
	if err != nil {
		return &ItemProcessingError{EquipmentID: item.EquipmentID, Err: err}
	}
	if existing != nil {
		// Already being handled; no schedule, no alert, no notification.
		s.logger.Debug("pending schedule exists, suppressing",
			"equipment_id", item.EquipmentID,
			"schedule_id", existing.ScheduleID,
		)
		if s.metrics != nil {
			s.metrics.ItemsTotal.WithLabelValues("suppressed").Inc()
		}
		return errSuppressed
	}

	now := s.now()
	scheduledDate := now.Add(scheduleLead)

	schedule := &store.MaintenanceSchedule{
		ScheduleID:         uuid.NewString(),
		EquipmentID:        item.EquipmentID,
		ScheduledDate:      scheduledDate,
		AssignedTechnician: nil,
		Priority:           store.PriorityMedium,
		Status:             store.StatusPending,
	}
	if err := s.schedules.InsertSchedule(ctx, schedule); err != nil {
		return &ItemProcessingError{EquipmentID: item.EquipmentID, Err: err}
	}

	alert := &store.AlertHistory{
		AlertID:     uuid.NewString(),
		EquipmentID: item.EquipmentID,
		AlertType:   store.AlertTypeMaintenanceDue,
		CreatedAt:   now,
		Message:     fmt.Sprintf("Maintenance due for %s (%s)", item.Name, item.EquipmentID),
		Status:      store.StatusPending,
		Recipient:   s.recipient,
	}
	if err := s.alerts.InsertAlert(ctx, alert); err != nil {
		// The schedule stays committed; a retry within this sweep would
		// double-schedule the item. No notification without an audit record.
		return &ItemProcessingError{EquipmentID: item.EquipmentID, Err: err}
	}

	s.logger.Info("scheduled maintenance for due equipment",
		"equipment_id", item.EquipmentID,
		"schedule_id", schedule.ScheduleID,
		"scheduled_date", scheduledDate,
	)
	if s.metrics != nil {
		s.metrics.ItemsTotal.WithLabelValues("scheduled").Inc()
	}

	subject := fmt.Sprintf("Maintenance Due: %s", item.Name)
	body := fmt.Sprintf(
		"Maintenance is due for equipment %s (ID: %s). It has been scheduled for %s.",
		item.Name, item.EquipmentID, scheduledDate.Format("Mon Jan 2 2006"),
	)
	if err := s.notifier.Notify(ctx, s.recipient, subject, body); err != nil {
		// Best-effort: persisted schedule/alert stay committed.
		notifyErr := &NotificationError{EquipmentID: item.EquipmentID, Err: err}
		s.logger.Error("notification dispatch failed",
			"equipment_id", item.EquipmentID,
			"recipient", s.recipient,
			"error", notifyErr,
		)
		if s.metrics != nil {
			s.metrics.NotificationsTotal.WithLabelValues("error").Inc()
		}
		return nil
	}

	if s.metrics != nil {
		s.metrics.NotificationsTotal.WithLabelValues("success").Inc()
	}

	return nil
}
