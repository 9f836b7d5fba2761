package store_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"procodus.dev/maintenance-tracker/internal/store"
)

var _ = Describe("Models", func() {
	Describe("Equipment", func() {
		Context("table name", func() {
			It("should return equipment", func() {
				item := store.Equipment{}
				Expect(item.TableName()).To(Equal("equipment"))
			})
		})

		Context("struct initialization", func() {
			It("should start with a nil last maintenance date", func() {
				item := store.Equipment{}
				Expect(item.LastMaintenanceDate).To(BeNil())
				Expect(item.EquipmentID).To(BeEmpty())
				Expect(item.MaintenanceInterval).To(BeZero())
			})

			It("should allow setting values", func() {
				last := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
				item := store.Equipment{
					EquipmentID:         "E1",
					Name:                "Hydraulic Press",
					Type:                "Press",
					Location:            "Plant 2",
					Manufacturer:        "Acme",
					Model:               "HP-2000",
					MaintenanceInterval: 90,
					LastMaintenanceDate: &last,
				}

				Expect(item.EquipmentID).To(Equal("E1"))
				Expect(item.Name).To(Equal("Hydraulic Press"))
				Expect(item.MaintenanceInterval).To(Equal(90))
				Expect(*item.LastMaintenanceDate).To(Equal(last))
			})
		})
	})

	Describe("MaintenanceSchedule", func() {
		Context("table name", func() {
			It("should return maintenance_schedules", func() {
				schedule := store.MaintenanceSchedule{}
				Expect(schedule.TableName()).To(Equal("maintenance_schedules"))
			})
		})

		Context("status and priority constants", func() {
			It("should match the stored string values", func() {
				Expect(store.StatusPending).To(Equal("Pending"))
				Expect(store.StatusCompleted).To(Equal("Completed"))
				Expect(store.StatusCancelled).To(Equal("Cancelled"))
				Expect(store.PriorityMedium).To(Equal("Medium"))
			})
		})

		Context("struct initialization", func() {
			It("should start with a nil assigned technician", func() {
				schedule := store.MaintenanceSchedule{}
				Expect(schedule.AssignedTechnician).To(BeNil())
			})
		})
	})

	Describe("AlertHistory", func() {
		Context("table name", func() {
			It("should return alert_history", func() {
				alert := store.AlertHistory{}
				Expect(alert.TableName()).To(Equal("alert_history"))
			})
		})

		It("should carry the maintenance-due alert type", func() {
			Expect(store.AlertTypeMaintenanceDue).To(Equal("Maintenance Due"))
		})
	})

	Describe("MaintenanceLog", func() {
		Context("table name", func() {
			It("should return maintenance_logs", func() {
				log := store.MaintenanceLog{}
				Expect(log.TableName()).To(Equal("maintenance_logs"))
			})
		})

		Context("struct initialization", func() {
			It("should start with a nil schedule reference", func() {
				log := store.MaintenanceLog{}
				Expect(log.ScheduleID).To(BeNil())
			})
		})
	})
})
