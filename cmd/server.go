package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"procodus.dev/maintenance-tracker/internal/server"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the maintenance tracker service",
	Long: `Run the maintenance tracker service that:
- Serves the equipment/schedule/log/alert HTTP API
- Runs the due-detection sweep at startup and daily at the configured time
- Sends maintenance-due notifications over SMTP and/or RabbitMQ
- Persists all records to PostgreSQL`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serverCmd)

	// Server-specific flags
	serverCmd.Flags().String("db-host", "localhost", "PostgreSQL host")
	serverCmd.Flags().Int("db-port", 5432, "PostgreSQL port")
	serverCmd.Flags().String("db-user", "postgres", "PostgreSQL user")
	serverCmd.Flags().String("db-password", "", "PostgreSQL password")
	serverCmd.Flags().String("db-name", "maintenance", "PostgreSQL database name")
	serverCmd.Flags().String("db-sslmode", "disable", "PostgreSQL SSL mode")
	serverCmd.Flags().Int("http-port", 8080, "HTTP API port")
	serverCmd.Flags().String("smtp-host", "", "SMTP host (mail disabled when empty)")
	serverCmd.Flags().Int("smtp-port", 587, "SMTP port")
	serverCmd.Flags().String("smtp-username", "", "SMTP username")
	serverCmd.Flags().String("smtp-password", "", "SMTP password")
	serverCmd.Flags().String("smtp-from", "", "From address for notification mail")
	serverCmd.Flags().String("amqp-url", "", "RabbitMQ URL (alert events disabled when empty)")
	serverCmd.Flags().String("alert-queue", "maintenance-alerts", "RabbitMQ queue name for alert events")
	serverCmd.Flags().String("team-email", "maintenance-team@example.com", "Maintenance-team address for alerts and notifications")
	serverCmd.Flags().Uint("sweep-hour", 9, "Hour of the daily sweep (0-23)")
	serverCmd.Flags().Uint("sweep-minute", 0, "Minute of the daily sweep (0-59)")

	// Bind flags to viper
	_ = viper.BindPFlag("server.db.host", serverCmd.Flags().Lookup("db-host"))
	_ = viper.BindPFlag("server.db.port", serverCmd.Flags().Lookup("db-port"))
	_ = viper.BindPFlag("server.db.user", serverCmd.Flags().Lookup("db-user"))
	_ = viper.BindPFlag("server.db.password", serverCmd.Flags().Lookup("db-password"))
	_ = viper.BindPFlag("server.db.name", serverCmd.Flags().Lookup("db-name"))
	_ = viper.BindPFlag("server.db.sslmode", serverCmd.Flags().Lookup("db-sslmode"))
	_ = viper.BindPFlag("server.http.port", serverCmd.Flags().Lookup("http-port"))
	_ = viper.BindPFlag("server.smtp.host", serverCmd.Flags().Lookup("smtp-host"))
	_ = viper.BindPFlag("server.smtp.port", serverCmd.Flags().Lookup("smtp-port"))
	_ = viper.BindPFlag("server.smtp.username", serverCmd.Flags().Lookup("smtp-username"))
	_ = viper.BindPFlag("server.smtp.password", serverCmd.Flags().Lookup("smtp-password"))
	_ = viper.BindPFlag("server.smtp.from", serverCmd.Flags().Lookup("smtp-from"))
	_ = viper.BindPFlag("server.amqp.url", serverCmd.Flags().Lookup("amqp-url"))
	_ = viper.BindPFlag("server.amqp.alert_queue", serverCmd.Flags().Lookup("alert-queue"))
	_ = viper.BindPFlag("server.sweep.team_email", serverCmd.Flags().Lookup("team-email"))
	_ = viper.BindPFlag("server.sweep.hour", serverCmd.Flags().Lookup("sweep-hour"))
	_ = viper.BindPFlag("server.sweep.minute", serverCmd.Flags().Lookup("sweep-minute"))
}

func runServer(_ *cobra.Command, _ []string) error {
	logger := GetLogger()
	logger.Info("starting maintenance tracker service")

	config := &server.Config{
		Logger:       logger,
		DBHost:       viper.GetString("server.db.host"),
		DBPort:       viper.GetInt("server.db.port"),
		DBUser:       viper.GetString("server.db.user"),
		DBPassword:   viper.GetString("server.db.password"),
		DBName:       viper.GetString("server.db.name"),
		DBSSLMode:    viper.GetString("server.db.sslmode"),
		HTTPPort:     viper.GetInt("server.http.port"),
		SMTPHost:     viper.GetString("server.smtp.host"),
		SMTPPort:     viper.GetInt("server.smtp.port"),
		SMTPUsername: viper.GetString("server.smtp.username"),
		SMTPPassword: viper.GetString("server.smtp.password"),
		SMTPFrom:     viper.GetString("server.smtp.from"),
		AMQPURL:      viper.GetString("server.amqp.url"),
		AlertQueue:   viper.GetString("server.amqp.alert_queue"),
		TeamEmail:    viper.GetString("server.sweep.team_email"),
		SweepHour:    viper.GetUint("server.sweep.hour"),
		SweepMinute:  viper.GetUint("server.sweep.minute"),
	}

	srv, err := server.NewServer(config)
	if err != nil {
		logger.Error("failed to create server", "error", err)
		return err
	}

	logger.Info("maintenance tracker configuration",
		"db_host", config.DBHost,
		"db_port", config.DBPort,
		"db_name", config.DBName,
		"http_port", config.HTTPPort,
		"team_email", config.TeamEmail,
		"sweep_at", config.SweepHour*100+config.SweepMinute,
	)

	if err := srv.Run(context.Background()); err != nil {
		logger.Error("server error", "error", err)
		return err
	}

	logger.Info("maintenance tracker stopped")
	return nil
}
