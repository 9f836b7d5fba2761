// Package server wires the maintenance tracker together: database, stores,
// notifier fan-out, due-detection sweep, daily trigger and the HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/gorm"

	"procodus.dev/maintenance-tracker/internal/api"
	"procodus.dev/maintenance-tracker/internal/notify"
	"procodus.dev/maintenance-tracker/internal/store"
	"procodus.dev/maintenance-tracker/internal/sweep"
	"procodus.dev/maintenance-tracker/pkg/metrics"
	"procodus.dev/maintenance-tracker/pkg/mq"
)

// metricsNamespace prefixes all Prometheus metric names.
const metricsNamespace = "maintenance_tracker"

// Server represents the maintenance tracker service.
type Server struct {
	logger     *slog.Logger
	config     *Config
	db         *gorm.DB
	httpServer *http.Server
	trigger    *sweep.Trigger
	publisher  *notify.AlertPublisher
}

// Config holds the configuration for the Server.
type Config struct {
	Logger *slog.Logger

	// Database configuration
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPort     int

	// HTTP API configuration
	HTTPPort int

	// SMTP configuration; mail delivery is disabled when SMTPHost is empty.
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	// RabbitMQ configuration; alert-event publishing is disabled when
	// AMQPURL is empty.
	AMQPURL    string
	AlertQueue string

	// TeamEmail is the fixed maintenance-team address alerts are raised for.
	TeamEmail string

	// SweepHour/SweepMinute is the daily wall-clock fire time.
	SweepHour   uint
	SweepMinute uint
}

// NewServer creates a new Server instance.
func NewServer(cfg *Config) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("server config cannot be nil")
	}

	if cfg.Logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.DBHost == "" {
		return nil, errors.New("database host cannot be empty")
	}

	if cfg.DBPort <= 0 {
		return nil, errors.New("database port must be positive")
	}

	if cfg.DBUser == "" {
		return nil, errors.New("database user cannot be empty")
	}

	if cfg.DBName == "" {
		return nil, errors.New("database name cannot be empty")
	}

	if cfg.HTTPPort <= 0 {
		return nil, errors.New("HTTP port must be positive")
	}

	if cfg.TeamEmail == "" {
		return nil, errors.New("team email cannot be empty")
	}

	return &Server{
		logger: cfg.Logger,
		config: cfg,
	}, nil
}

// Run starts the service and blocks until shutdown.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("starting maintenance tracker")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	db, err := store.NewDB(&store.DBConfig{
		Logger:   s.logger,
		Host:     s.config.DBHost,
		Port:     s.config.DBPort,
		User:     s.config.DBUser,
		Password: s.config.DBPassword,
		DBName:   s.config.DBName,
		SSLMode:  s.config.DBSSLMode,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	s.db = db

	equipmentStore, err := store.NewEquipmentStore(db)
	if err != nil {
		return fmt.Errorf("failed to create equipment store: %w", err)
	}
	scheduleStore, err := store.NewScheduleStore(db)
	if err != nil {
		return fmt.Errorf("failed to create schedule store: %w", err)
	}
	alertStore, err := store.NewAlertStore(db)
	if err != nil {
		return fmt.Errorf("failed to create alert store: %w", err)
	}
	logStore, err := store.NewLogStore(db)
	if err != nil {
		return fmt.Errorf("failed to create log store: %w", err)
	}

	notifier, err := s.buildNotifier()
	if err != nil {
		return fmt.Errorf("failed to build notifier: %w", err)
	}

	sweeper, err := sweep.NewSweeper(&sweep.Config{
		Logger:    s.logger,
		Equipment: equipmentStore,
		Schedules: scheduleStore,
		Alerts:    alertStore,
		Notifier:  notifier,
		Recipient: s.config.TeamEmail,
		Metrics:   metrics.NewSweepMetrics(metricsNamespace),
	})
	if err != nil {
		return fmt.Errorf("failed to create sweeper: %w", err)
	}

	trigger, err := sweep.NewTrigger(&sweep.TriggerConfig{
		Logger:  s.logger,
		Sweeper: sweeper,
		Hour:    s.config.SweepHour,
		Minute:  s.config.SweepMinute,
	})
	if err != nil {
		return fmt.Errorf("failed to create sweep trigger: %w", err)
	}
	s.trigger = trigger

	if err := trigger.Start(ctx); err != nil {
		return fmt.Errorf("failed to start sweep trigger: %w", err)
	}

	handler, err := api.NewHandler(&api.HandlerConfig{
		Logger:    s.logger,
		Equipment: equipmentStore,
		Schedules: scheduleStore,
		Alerts:    alertStore,
		Logs:      logStore,
	})
	if err != nil {
		return fmt.Errorf("failed to create API handler: %w", err)
	}

	router := api.NewRouter(handler, s.logger, metrics.NewAPIMetrics(metricsNamespace))

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.logger.Info("starting HTTP server", "address", s.httpServer.Addr)

	httpErr := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			httpErr <- fmt.Errorf("HTTP server error: %w", err)
		}
		close(httpErr)
	}()

	s.logger.Info("maintenance tracker started successfully")

	select {
	case sig := <-sigChan:
		s.logger.Info("received shutdown signal", "signal", sig.String())
		cancel()
	case <-ctx.Done():
		s.logger.Info("context canceled")
	case err := <-httpErr:
		if err != nil {
			s.logger.Error("HTTP server error", "error", err)
			cancel()
			return err
		}
	}

	return s.Shutdown()
}

// buildNotifier assembles the notification fan-out from the configured
// transports. With neither SMTP nor a broker configured, notifications go to
// the process log only.
func (s *Server) buildNotifier() (notify.Notifier, error) {
	var fanout notify.Fanout

	if s.config.SMTPHost != "" {
		mailer, err := notify.NewMailer(&notify.MailerConfig{
			Logger:   s.logger,
			Host:     s.config.SMTPHost,
			Port:     s.config.SMTPPort,
			Username: s.config.SMTPUsername,
			Password: s.config.SMTPPassword,
			From:     s.config.SMTPFrom,
		})
		if err != nil {
			return nil, err
		}
		fanout = append(fanout, mailer)
	}

	if s.config.AMQPURL != "" {
		queue := s.config.AlertQueue
		if queue == "" {
			queue = "maintenance-alerts"
		}
		client := mq.New(queue, s.config.AMQPURL, s.logger)
		client.SetMetrics(metrics.NewMQMetrics(metricsNamespace))

		publisher, err := notify.NewAlertPublisher(s.logger, client)
		if err != nil {
			return nil, err
		}
		s.publisher = publisher
		fanout = append(fanout, publisher)
	}

	if len(fanout) == 0 {
		s.logger.Warn("no notification transport configured, notifications will only be logged")
		return notify.LogNotifier{Logger: s.logger}, nil
	}

	return fanout, nil
}

// Shutdown gracefully shuts down the service.
func (s *Server) Shutdown() error {
	s.logger.Info("shutting down maintenance tracker")

	var shutdownErr error

	if s.httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.logger.Info("stopping HTTP server")
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("failed to stop HTTP server", "error", err)
			shutdownErr = fmt.Errorf("HTTP server shutdown error: %w", err)
		}
	}

	if s.trigger != nil {
		s.logger.Info("stopping sweep trigger")
		if err := s.trigger.Stop(); err != nil {
			s.logger.Error("failed to stop sweep trigger", "error", err)
			if shutdownErr != nil {
				shutdownErr = fmt.Errorf("%w; trigger stop error: %w", shutdownErr, err)
			} else {
				shutdownErr = fmt.Errorf("trigger stop error: %w", err)
			}
		}
	}

	if s.publisher != nil {
		s.logger.Info("closing alert publisher")
		if err := s.publisher.Close(); err != nil {
			s.logger.Error("failed to close alert publisher", "error", err)
		}
	}

	if s.db != nil {
		if err := store.CloseDB(s.db, s.logger); err != nil {
			s.logger.Error("failed to close database", "error", err)
			if shutdownErr != nil {
				shutdownErr = fmt.Errorf("%w; database close error: %w", shutdownErr, err)
			} else {
				shutdownErr = fmt.Errorf("database close error: %w", err)
			}
		}
	}

	if shutdownErr != nil {
		s.logger.Error("maintenance tracker shutdown completed with errors", "error", shutdownErr)
		return shutdownErr
	}

	s.logger.Info("maintenance tracker shutdown completed successfully")
	return nil
}
