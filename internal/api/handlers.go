package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"procodus.dev/maintenance-tracker/internal/store"
)

// EquipmentStore is the equipment persistence consumed by the API.
type EquipmentStore interface {
	List(ctx context.Context) ([]store.Equipment, error)
	Get(ctx context.Context, equipmentID string) (*store.Equipment, error)
	Create(ctx context.Context, item *store.Equipment) error
}

// ScheduleStore is the schedule persistence consumed by the API.
type ScheduleStore interface {
	List(ctx context.Context) ([]store.MaintenanceSchedule, error)
	InsertSchedule(ctx context.Context, schedule *store.MaintenanceSchedule) error
}

// AlertStore is the alert persistence consumed by the API.
type AlertStore interface {
	List(ctx context.Context) ([]store.AlertHistory, error)
}

// LogStore is the maintenance-log persistence consumed by the API.
type LogStore interface {
	List(ctx context.Context) ([]store.MaintenanceLog, error)
	CreateLog(ctx context.Context, log *store.MaintenanceLog) error
}

// Handler serves the CRUD endpoints against the injected stores.
type Handler struct {
	logger    *slog.Logger
	equipment EquipmentStore
	schedules ScheduleStore
	alerts    AlertStore
	logs      LogStore
	now       func() time.Time
}

// HandlerConfig holds the configuration for the Handler.
type HandlerConfig struct {
	Logger    *slog.Logger
	Equipment EquipmentStore
	Schedules ScheduleStore
	Alerts    AlertStore
	Logs      LogStore

	// Now overrides the clock, for tests. Defaults to time.Now.
	Now func() time.Time
}

// NewHandler creates a new Handler instance.
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.New("handler config cannot be nil")
	}

	if cfg.Logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.Equipment == nil || cfg.Schedules == nil || cfg.Alerts == nil || cfg.Logs == nil {
		return nil, errors.New("all stores must be provided")
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Handler{
		logger:    cfg.Logger,
		equipment: cfg.Equipment,
		schedules: cfg.Schedules,
		alerts:    cfg.Alerts,
		logs:      cfg.Logs,
		now:       now,
	}, nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error, status int) {
	writeJSON(w, errorResponse{Error: err.Error()}, status)
}

// Health reports process liveness.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// ListEquipment returns all equipment rows.
func (h *Handler) ListEquipment(w http.ResponseWriter, r *http.Request) {
	items, err := h.equipment.List(r.Context())
	if err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, items, http.StatusOK)
}

// GetEquipment returns one equipment row by equipment ID.
func (h *Handler) GetEquipment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	item, err := h.equipment.Get(r.Context(), id)
	if err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	if item == nil {
		writeError(w, errors.New("equipment not found"), http.StatusNotFound)
		return
	}
	writeJSON(w, item, http.StatusOK)
}

// CreateEquipment inserts a new equipment row. LastMaintenanceDate always
// starts null; only log creation advances it.
func (h *Handler) CreateEquipment(w http.ResponseWriter, r *http.Request) {
	var item store.Equipment
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, errors.New("invalid request body"), http.StatusBadRequest)
		return
	}

	if item.EquipmentID == "" || item.Name == "" {
		writeError(w, errors.New("equipment_id and name are required"), http.StatusBadRequest)
		return
	}
	if item.MaintenanceInterval <= 0 {
		writeError(w, errors.New("maintenance_interval must be positive"), http.StatusBadRequest)
		return
	}

	if err := h.equipment.Create(r.Context(), &item); err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, item, http.StatusCreated)
}

// ListSchedules returns all maintenance schedules.
func (h *Handler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	items, err := h.schedules.List(r.Context())
	if err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, items, http.StatusOK)
}

type createScheduleRequest struct {
	EquipmentID        string    `json:"equipment_id"`
	ScheduledDate      time.Time `json:"scheduled_date"`
	AssignedTechnician *string   `json:"assigned_technician"`
	Priority           string    `json:"priority"`
}

// CreateSchedule inserts a new schedule row with a server-generated ID and
// Pending status.
func (h *Handler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req createScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.New("invalid request body"), http.StatusBadRequest)
		return
	}

	if req.EquipmentID == "" {
		writeError(w, errors.New("equipment_id is required"), http.StatusBadRequest)
		return
	}
	if req.ScheduledDate.IsZero() {
		writeError(w, errors.New("scheduled_date is required"), http.StatusBadRequest)
		return
	}

	schedule := &store.MaintenanceSchedule{
		ScheduleID:         uuid.NewString(),
		EquipmentID:        req.EquipmentID,
		ScheduledDate:      req.ScheduledDate,
		AssignedTechnician: req.AssignedTechnician,
		Priority:           req.Priority,
		Status:             store.StatusPending,
	}
	if err := h.schedules.InsertSchedule(r.Context(), schedule); err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, schedule, http.StatusCreated)
}

// ListLogs returns all maintenance logs.
func (h *Handler) ListLogs(w http.ResponseWriter, r *http.Request) {
	items, err := h.logs.List(r.Context())
	if err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, items, http.StatusOK)
}

type createLogRequest struct {
	EquipmentID   string  `json:"equipment_id"`
	Technician    string  `json:"technician"`
	Description   string  `json:"description"`
	PartsReplaced string  `json:"parts_replaced"`
	Status        string  `json:"status"`
	ScheduleID    *string `json:"schedule_id"`
}

// CreateLog records completed maintenance work. The maintenance date is the
// server's current time and the equipment's last_maintenance_date advances
// with it in the same transaction.
func (h *Handler) CreateLog(w http.ResponseWriter, r *http.Request) {
	var req createLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.New("invalid request body"), http.StatusBadRequest)
		return
	}

	if req.EquipmentID == "" {
		writeError(w, errors.New("equipment_id is required"), http.StatusBadRequest)
		return
	}

	log := &store.MaintenanceLog{
		LogID:           uuid.NewString(),
		EquipmentID:     req.EquipmentID,
		MaintenanceDate: h.now(),
		Technician:      req.Technician,
		Description:     req.Description,
		PartsReplaced:   req.PartsReplaced,
		Status:          req.Status,
		ScheduleID:      req.ScheduleID,
	}
	if err := h.logs.CreateLog(r.Context(), log); err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, log, http.StatusCreated)
}

// ListAlerts returns the alert audit trail.
func (h *Handler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	items, err := h.alerts.List(r.Context())
	if err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, items, http.StatusOK)
}
