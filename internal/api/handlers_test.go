package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"procodus.dev/maintenance-tracker/internal/api"
	"procodus.dev/maintenance-tracker/internal/store"
)

type fakeEquipmentStore struct {
	items     []store.Equipment
	listErr   error
	createErr error
	created   []*store.Equipment
}

func (f *fakeEquipmentStore) List(_ context.Context) ([]store.Equipment, error) {
	return f.items, f.listErr
}

func (f *fakeEquipmentStore) Get(_ context.Context, equipmentID string) (*store.Equipment, error) {
	for i := range f.items {
		if f.items[i].EquipmentID == equipmentID {
			return &f.items[i], nil
		}
	}
	return nil, nil
}

func (f *fakeEquipmentStore) Create(_ context.Context, item *store.Equipment) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, item)
	return nil
}

type fakeScheduleStore struct {
	items    []store.MaintenanceSchedule
	inserted []*store.MaintenanceSchedule
}

func (f *fakeScheduleStore) List(_ context.Context) ([]store.MaintenanceSchedule, error) {
	return f.items, nil
}

func (f *fakeScheduleStore) InsertSchedule(_ context.Context, schedule *store.MaintenanceSchedule) error {
	f.inserted = append(f.inserted, schedule)
	return nil
}

type fakeAlertStore struct {
	items []store.AlertHistory
}

func (f *fakeAlertStore) List(_ context.Context) ([]store.AlertHistory, error) {
	return f.items, nil
}

type fakeLogStore struct {
	items     []store.MaintenanceLog
	created   []*store.MaintenanceLog
	createErr error
}

func (f *fakeLogStore) List(_ context.Context) ([]store.MaintenanceLog, error) {
	return f.items, nil
}

func (f *fakeLogStore) CreateLog(_ context.Context, log *store.MaintenanceLog) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, log)
	return nil
}

var _ = Describe("Handlers", func() {
	var (
		logger    *slog.Logger
		equipment *fakeEquipmentStore
		schedules *fakeScheduleStore
		alerts    *fakeAlertStore
		logs      *fakeLogStore
		router    http.Handler
		now       time.Time
	)

	BeforeEach(func() {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelError,
		}))
		equipment = &fakeEquipmentStore{}
		schedules = &fakeScheduleStore{}
		alerts = &fakeAlertStore{}
		logs = &fakeLogStore{}
		now = time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC)

		handler, err := api.NewHandler(&api.HandlerConfig{
			Logger:    logger,
			Equipment: equipment,
			Schedules: schedules,
			Alerts:    alerts,
			Logs:      logs,
			Now:       func() time.Time { return now },
		})
		Expect(err).NotTo(HaveOccurred())

		router = api.NewRouter(handler, logger, nil)
	})

	doRequest := func(method, path string, body any) *httptest.ResponseRecorder {
		var reader *bytes.Reader
		if body != nil {
			data, err := json.Marshal(body)
			Expect(err).NotTo(HaveOccurred())
			reader = bytes.NewReader(data)
		} else {
			reader = bytes.NewReader(nil)
		}
		req := httptest.NewRequest(method, path, reader)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	Describe("NewHandler", func() {
		It("should return error when config is nil", func() {
			h, err := api.NewHandler(nil)
			Expect(err).To(HaveOccurred())
			Expect(h).To(BeNil())
		})

		It("should return error when a store is missing", func() {
			h, err := api.NewHandler(&api.HandlerConfig{
				Logger:    logger,
				Equipment: equipment,
			})
			Expect(err).To(HaveOccurred())
			Expect(h).To(BeNil())
		})
	})

	Describe("GET /health", func() {
		It("should report ok", func() {
			rec := doRequest(http.MethodGet, "/health", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring("ok"))
		})
	})

	Describe("GET /equipment", func() {
		It("should return all equipment rows", func() {
			equipment.items = []store.Equipment{
				{EquipmentID: "E1", Name: "Hydraulic Press", MaintenanceInterval: 90},
				{EquipmentID: "E2", Name: "Cooling Tower", MaintenanceInterval: 30},
			}

			rec := doRequest(http.MethodGet, "/equipment", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))

			var got []store.Equipment
			Expect(json.Unmarshal(rec.Body.Bytes(), &got)).To(Succeed())
			Expect(got).To(HaveLen(2))
			Expect(got[0].EquipmentID).To(Equal("E1"))
		})

		It("should return 500 with an error payload on store failure", func() {
			equipment.listErr = errors.New("connection refused")

			rec := doRequest(http.MethodGet, "/equipment", nil)
			Expect(rec.Code).To(Equal(http.StatusInternalServerError))
			Expect(rec.Body.String()).To(ContainSubstring("connection refused"))
		})
	})

	Describe("GET /equipment/{id}", func() {
		It("should return the matching row", func() {
			equipment.items = []store.Equipment{{EquipmentID: "E1", Name: "Hydraulic Press"}}

			rec := doRequest(http.MethodGet, "/equipment/E1", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring("Hydraulic Press"))
		})

		It("should return 404 for an unknown id", func() {
			rec := doRequest(http.MethodGet, "/equipment/nope", nil)
			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("POST /equipment", func() {
		It("should create equipment and return the row", func() {
			rec := doRequest(http.MethodPost, "/equipment", map[string]any{
				"equipment_id":         "E1",
				"name":                 "Hydraulic Press",
				"type":                 "Press",
				"maintenance_interval": 90,
			})

			Expect(rec.Code).To(Equal(http.StatusCreated))
			Expect(equipment.created).To(HaveLen(1))
			Expect(equipment.created[0].EquipmentID).To(Equal("E1"))
		})

		It("should reject a missing equipment_id", func() {
			rec := doRequest(http.MethodPost, "/equipment", map[string]any{
				"name":                 "Hydraulic Press",
				"maintenance_interval": 90,
			})
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(equipment.created).To(BeEmpty())
		})

		It("should reject a non-positive maintenance interval", func() {
			rec := doRequest(http.MethodPost, "/equipment", map[string]any{
				"equipment_id":         "E1",
				"name":                 "Hydraulic Press",
				"maintenance_interval": 0,
			})
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("should reject a malformed body", func() {
			req := httptest.NewRequest(http.MethodPost, "/equipment", strings.NewReader("{not json"))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("POST /schedules", func() {
		It("should generate an id and default to pending status", func() {
			rec := doRequest(http.MethodPost, "/schedules", map[string]any{
				"equipment_id":   "E1",
				"scheduled_date": now.Add(48 * time.Hour),
				"priority":       store.PriorityHigh,
			})

			Expect(rec.Code).To(Equal(http.StatusCreated))
			Expect(schedules.inserted).To(HaveLen(1))
			Expect(schedules.inserted[0].ScheduleID).NotTo(BeEmpty())
			Expect(schedules.inserted[0].Status).To(Equal(store.StatusPending))
			Expect(schedules.inserted[0].Priority).To(Equal(store.PriorityHigh))
		})

		It("should reject a missing scheduled_date", func() {
			rec := doRequest(http.MethodPost, "/schedules", map[string]any{
				"equipment_id": "E1",
			})
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(schedules.inserted).To(BeEmpty())
		})
	})

	Describe("POST /logs", func() {
		It("should create a log dated at the server clock", func() {
			rec := doRequest(http.MethodPost, "/logs", map[string]any{
				"equipment_id":   "E1",
				"technician":     "J. Rivera",
				"description":    "Replaced filter",
				"parts_replaced": "filter",
				"status":         "Completed",
			})

			Expect(rec.Code).To(Equal(http.StatusCreated))
			Expect(logs.created).To(HaveLen(1))
			Expect(logs.created[0].LogID).NotTo(BeEmpty())
			Expect(logs.created[0].MaintenanceDate).To(Equal(now))
		})

		It("should surface persistence failures as 500", func() {
			logs.createErr = errors.New("equipment E9 not found")

			rec := doRequest(http.MethodPost, "/logs", map[string]any{
				"equipment_id": "E9",
			})
			Expect(rec.Code).To(Equal(http.StatusInternalServerError))
			Expect(rec.Body.String()).To(ContainSubstring("E9"))
		})
	})

	Describe("GET /alerts", func() {
		It("should return the alert audit trail", func() {
			alerts.items = []store.AlertHistory{{
				AlertID:     "a-1",
				EquipmentID: "E1",
				AlertType:   store.AlertTypeMaintenanceDue,
			}}

			rec := doRequest(http.MethodGet, "/alerts", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring(store.AlertTypeMaintenanceDue))
		})
	})
})
