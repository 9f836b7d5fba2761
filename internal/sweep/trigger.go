package sweep

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Trigger invokes the sweep once at startup and thereafter once per calendar
// day at a fixed wall-clock time. Missed fires are not backfilled.
type Trigger struct {
	logger    *slog.Logger
	sweeper   *Sweeper
	scheduler gocron.Scheduler
	hour      uint
	minute    uint
}

// TriggerConfig holds the configuration for the Trigger.
type TriggerConfig struct {
	Logger  *slog.Logger
	Sweeper *Sweeper

	// Hour and Minute are the daily fire time (default 09:00).
	Hour   uint
	Minute uint

	// Location is the timezone for the daily fire time. Defaults to the
	// process-local timezone.
	Location *time.Location
}

// NewTrigger creates a new Trigger instance.
func NewTrigger(cfg *TriggerConfig) (*Trigger, error) {
	if cfg == nil {
		return nil, errors.New("trigger config cannot be nil")
	}

	if cfg.Logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.Sweeper == nil {
		return nil, errors.New("sweeper cannot be nil")
	}

	if cfg.Hour > 23 || cfg.Minute > 59 {
		return nil, fmt.Errorf("invalid fire time %02d:%02d", cfg.Hour, cfg.Minute)
	}

	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}

	scheduler, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	return &Trigger{
		logger:    cfg.Logger,
		sweeper:   cfg.Sweeper,
		scheduler: scheduler,
		hour:      cfg.Hour,
		minute:    cfg.Minute,
	}, nil
}

// Start runs one immediate sweep and registers the daily job. The immediate
// run's error is logged only; the trigger keeps the process running so the
// next fire can retry from scratch.
func (t *Trigger) Start(ctx context.Context) error {
	t.logger.Info("running startup sweep")
	if err := t.sweeper.Run(ctx); err != nil {
		t.logger.Error("startup sweep failed", "error", err)
	}

	job, err := t.scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(t.hour, t.minute, 0))),
		gocron.NewTask(func() {
			if err := t.sweeper.Run(ctx); err != nil {
				t.logger.Error("scheduled sweep failed", "error", err)
			}
		}),
		gocron.WithName("maintenance-due-sweep"),
	)
	if err != nil {
		return fmt.Errorf("failed to create daily sweep job: %w", err)
	}

	t.scheduler.Start()
	t.logger.Info("daily sweep scheduled",
		"job_id", job.ID().String(),
		"fire_time", fmt.Sprintf("%02d:%02d", t.hour, t.minute),
	)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (t *Trigger) Stop() error {
	t.logger.Info("stopping sweep trigger")
	return t.scheduler.Shutdown()
}
