package sweep_test

import (
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"procodus.dev/maintenance-tracker/internal/sweep"
)

var _ = Describe("Errors", func() {
	Describe("SweepAbortedError", func() {
		It("should unwrap to its cause", func() {
			cause := errors.New("query failed")
			err := &sweep.SweepAbortedError{Err: cause}

			Expect(err.Error()).To(ContainSubstring("sweep aborted"))
			Expect(err.Error()).To(ContainSubstring("query failed"))
			Expect(errors.Is(err, cause)).To(BeTrue())
		})
	})

	Describe("ItemProcessingError", func() {
		It("should name the equipment and unwrap to its cause", func() {
			cause := errors.New("insert failed")
			err := &sweep.ItemProcessingError{EquipmentID: "E1", Err: cause}

			Expect(err.Error()).To(ContainSubstring("E1"))
			Expect(errors.Is(err, cause)).To(BeTrue())

			var item *sweep.ItemProcessingError
			Expect(errors.As(fmt.Errorf("wrapped: %w", err), &item)).To(BeTrue())
			Expect(item.EquipmentID).To(Equal("E1"))
		})
	})

	Describe("NotificationError", func() {
		It("should name the equipment and unwrap to its cause", func() {
			cause := errors.New("send failed")
			err := &sweep.NotificationError{EquipmentID: "E2", Err: cause}

			Expect(err.Error()).To(ContainSubstring("E2"))
			Expect(errors.Is(err, cause)).To(BeTrue())
		})
	})
})
