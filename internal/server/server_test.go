package server_test

import (
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"procodus.dev/maintenance-tracker/internal/server"
)

var _ = Describe("NewServer", func() {
	var logger *slog.Logger

	validConfig := func() *server.Config {
		return &server.Config{
			Logger:      logger,
			DBHost:      "localhost",
			DBPort:      5432,
			DBUser:      "tracker",
			DBPassword:  "secret",
			DBName:      "tracker",
			DBSSLMode:   "disable",
			HTTPPort:    8080,
			TeamEmail:   "maintenance-team@example.com",
			SweepHour:   9,
			SweepMinute: 0,
		}
	}

	BeforeEach(func() {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelError,
		}))
	})

	It("should create a server from a valid config", func() {
		cfg := validConfig()
		srv, err := server.NewServer(cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(srv).NotTo(BeNil())
	})

	It("should return error when config is nil", func() {
		srv, err := server.NewServer(nil)
		Expect(err).To(HaveOccurred())
		Expect(srv).To(BeNil())
	})

	It("should return error when logger is nil", func() {
		cfg := validConfig()
		cfg.Logger = nil
		_, err := server.NewServer(cfg)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("logger"))
	})

	It("should return error when database host is empty", func() {
		cfg := validConfig()
		cfg.DBHost = ""
		_, err := server.NewServer(cfg)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("database host"))
	})

	It("should return error when database port is not positive", func() {
		cfg := validConfig()
		cfg.DBPort = 0
		_, err := server.NewServer(cfg)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("database port"))
	})

	It("should return error when database user is empty", func() {
		cfg := validConfig()
		cfg.DBUser = ""
		_, err := server.NewServer(cfg)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("database user"))
	})

	It("should return error when database name is empty", func() {
		cfg := validConfig()
		cfg.DBName = ""
		_, err := server.NewServer(cfg)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("database name"))
	})

	It("should return error when HTTP port is not positive", func() {
		cfg := validConfig()
		cfg.HTTPPort = -1
		_, err := server.NewServer(cfg)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("HTTP port"))
	})

	It("should return error when team email is empty", func() {
		cfg := validConfig()
		cfg.TeamEmail = ""
		_, err := server.NewServer(cfg)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("team email"))
	})
})
