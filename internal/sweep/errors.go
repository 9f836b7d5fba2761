package sweep

import "fmt"

// SweepAbortedError indicates the due-detection read failed before any item
// was processed. The whole sweep stops; the next scheduled trigger retries
// from scratch.
type SweepAbortedError struct {
	Err error
}

func (e *SweepAbortedError) Error() string {
	return fmt.Sprintf("sweep aborted: %v", e.Err)
}

func (e *SweepAbortedError) Unwrap() error { return e.Err }

// ItemProcessingError indicates a persistence failure while creating the
// schedule or alert for one equipment item. It never propagates past the
// item; the sweep continues with the remaining due items.
type ItemProcessingError struct {
	EquipmentID string
	Err         error
}

func (e *ItemProcessingError) Error() string {
	return fmt.Sprintf("failed to process equipment %s: %v", e.EquipmentID, e.Err)
}

func (e *ItemProcessingError) Unwrap() error { return e.Err }

// NotificationError indicates the outbound notification for one item failed.
// Notification is best-effort: the already-committed schedule and alert are
// not rolled back.
type NotificationError struct {
	EquipmentID string
	Err         error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("failed to notify for equipment %s: %v", e.EquipmentID, e.Err)
}

func (e *NotificationError) Unwrap() error { return e.Err }
