package tracker

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/google/uuid"

	"procodus.dev/maintenance-tracker/internal/store"
)

// insertEquipment writes an equipment row directly so specs can control
// last_maintenance_date, which the store API deliberately does not allow on
// creation.
func insertEquipment(equipmentID, name string, interval int, lastMaintenance *time.Time) {
	item := &store.Equipment{
		EquipmentID:         equipmentID,
		Name:                name,
		Type:                "Pump",
		Location:            "Plant 1",
		InstallationDate:    time.Now().UTC().AddDate(-2, 0, 0),
		Manufacturer:        "Acme",
		Model:               "X-100",
		MaintenanceInterval: interval,
		LastMaintenanceDate: lastMaintenance,
	}
	Expect(db.Create(item).Error).NotTo(HaveOccurred())
}

// utcMidnight returns today's date at 00:00 UTC, matching CURRENT_DATE in the
// test database.
func utcMidnight() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

var _ = Describe("Store E2E", func() {
	ctx := context.Background()

	AfterEach(func() {
		truncateAll()
	})

	Describe("FindDueEquipment", func() {
		It("should report equipment that has never been maintained", func() {
			insertEquipment("eq-never-001", "Hydraulic Press", 30, nil)

			due, err := equipmentStore.FindDueEquipment(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(due).To(HaveLen(1))
			Expect(due[0].EquipmentID).To(Equal("eq-never-001"))
		})

		It("should report equipment whose interval elapses exactly today", func() {
			last := utcMidnight().AddDate(0, 0, -30)
			insertEquipment("eq-boundary-001", "Conveyor", 30, &last)

			due, err := equipmentStore.FindDueEquipment(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(due).To(HaveLen(1))
			Expect(due[0].EquipmentID).To(Equal("eq-boundary-001"))
		})

		It("should report equipment that is overdue", func() {
			last := utcMidnight().AddDate(0, 0, -45)
			insertEquipment("eq-overdue-001", "Compressor", 30, &last)

			due, err := equipmentStore.FindDueEquipment(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(due).To(HaveLen(1))
		})

		It("should not report equipment whose interval has not elapsed", func() {
			last := utcMidnight().AddDate(0, 0, -29)
			insertEquipment("eq-fresh-001", "Generator", 30, &last)

			due, err := equipmentStore.FindDueEquipment(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(due).To(BeEmpty())
		})

		It("should return due equipment ordered by equipment id", func() {
			insertEquipment("eq-order-b", "Second", 30, nil)
			insertEquipment("eq-order-a", "First", 30, nil)

			due, err := equipmentStore.FindDueEquipment(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(due).To(HaveLen(2))
			Expect(due[0].EquipmentID).To(Equal("eq-order-a"))
			Expect(due[1].EquipmentID).To(Equal("eq-order-b"))
		})
	})

	Describe("FindPendingSchedule", func() {
		It("should return nil when no pending schedule exists", func() {
			schedule, err := scheduleStore.FindPendingSchedule(ctx, "eq-none-001")
			Expect(err).NotTo(HaveOccurred())
			Expect(schedule).To(BeNil())
		})

		It("should ignore completed and cancelled schedules", func() {
			for _, status := range []string{store.StatusCompleted, store.StatusCancelled} {
				Expect(scheduleStore.InsertSchedule(ctx, &store.MaintenanceSchedule{
					ScheduleID:    uuid.NewString(),
					EquipmentID:   "eq-closed-001",
					ScheduledDate: time.Now().UTC(),
					Priority:      store.PriorityMedium,
					Status:        status,
				})).To(Succeed())
			}

			schedule, err := scheduleStore.FindPendingSchedule(ctx, "eq-closed-001")
			Expect(err).NotTo(HaveOccurred())
			Expect(schedule).To(BeNil())
		})

		It("should find a pending schedule for the right equipment only", func() {
			Expect(scheduleStore.InsertSchedule(ctx, &store.MaintenanceSchedule{
				ScheduleID:    uuid.NewString(),
				EquipmentID:   "eq-pending-001",
				ScheduledDate: time.Now().UTC().AddDate(0, 0, 7),
				Priority:      store.PriorityMedium,
				Status:        store.StatusPending,
			})).To(Succeed())

			schedule, err := scheduleStore.FindPendingSchedule(ctx, "eq-pending-001")
			Expect(err).NotTo(HaveOccurred())
			Expect(schedule).NotTo(BeNil())
			Expect(schedule.EquipmentID).To(Equal("eq-pending-001"))

			other, err := scheduleStore.FindPendingSchedule(ctx, "eq-pending-002")
			Expect(err).NotTo(HaveOccurred())
			Expect(other).To(BeNil())
		})
	})

	Describe("CreateLog", func() {
		It("should advance the equipment's last maintenance date", func() {
			insertEquipment("eq-log-001", "Boiler", 30, nil)

			maintenanceDate := utcMidnight()
			Expect(logStore.CreateLog(ctx, &store.MaintenanceLog{
				LogID:           uuid.NewString(),
				EquipmentID:     "eq-log-001",
				MaintenanceDate: maintenanceDate,
				Technician:      "J. Rivera",
				Description:     "Replaced seals",
				Status:          store.StatusCompleted,
			})).To(Succeed())

			item, err := equipmentStore.Get(ctx, "eq-log-001")
			Expect(err).NotTo(HaveOccurred())
			Expect(item).NotTo(BeNil())
			Expect(item.LastMaintenanceDate).NotTo(BeNil())
			Expect(*item.LastMaintenanceDate).To(BeTemporally("~", maintenanceDate, time.Second))
		})

		It("should reject a log for unknown equipment and persist nothing", func() {
			err := logStore.CreateLog(ctx, &store.MaintenanceLog{
				LogID:           uuid.NewString(),
				EquipmentID:     "eq-missing-001",
				MaintenanceDate: time.Now().UTC(),
				Technician:      "J. Rivera",
			})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("not found"))

			logs, err := logStore.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(logs).To(BeEmpty())
		})

		It("should take freshly maintained equipment out of the due set", func() {
			insertEquipment("eq-cycle-001", "Lathe", 30, nil)

			due, err := equipmentStore.FindDueEquipment(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(due).To(HaveLen(1))

			Expect(logStore.CreateLog(ctx, &store.MaintenanceLog{
				LogID:           uuid.NewString(),
				EquipmentID:     "eq-cycle-001",
				MaintenanceDate: utcMidnight(),
				Technician:      "J. Rivera",
				Status:          store.StatusCompleted,
			})).To(Succeed())

			due, err = equipmentStore.FindDueEquipment(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(due).To(BeEmpty())
		})
	})
})
