// Package api provides the HTTP JSON CRUD surface for equipment, schedules,
// maintenance logs and the alert audit trail. The due-detection sweep does
// not pass through this surface; the API only mutates the stores the sweep
// reads.
package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"procodus.dev/maintenance-tracker/pkg/metrics"
)

// NewRouter builds the HTTP router with middleware and all routes.
func NewRouter(h *Handler, logger *slog.Logger, m *metrics.APIMetrics) *mux.Router {
	r := mux.NewRouter()

	r.Use(RecoveryMiddleware(logger))
	r.Use(LoggingMiddleware(logger))
	if m != nil {
		r.Use(MetricsMiddleware(m))
	}

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	r.HandleFunc("/equipment", h.ListEquipment).Methods(http.MethodGet)
	r.HandleFunc("/equipment", h.CreateEquipment).Methods(http.MethodPost)
	r.HandleFunc("/equipment/{id}", h.GetEquipment).Methods(http.MethodGet)

	r.HandleFunc("/schedules", h.ListSchedules).Methods(http.MethodGet)
	r.HandleFunc("/schedules", h.CreateSchedule).Methods(http.MethodPost)

	r.HandleFunc("/logs", h.ListLogs).Methods(http.MethodGet)
	r.HandleFunc("/logs", h.CreateLog).Methods(http.MethodPost)

	r.HandleFunc("/alerts", h.ListAlerts).Methods(http.MethodGet)

	return r
}
