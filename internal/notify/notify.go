// Package notify provides best-effort outbound notification of maintenance
// alerts: SMTP mail to the maintenance team and alert events published to
// RabbitMQ for downstream consumers.
package notify

import (
	"context"
	"errors"
	"log/slog"
)

// Notifier delivers a human-readable message to a recipient. Implementations
// are best-effort; callers treat failures as non-fatal.
type Notifier interface {
	Notify(ctx context.Context, recipient, subject, body string) error
}

// Fanout dispatches a notification to every member notifier. All members are
// attempted regardless of individual failures; the joined error is returned.
type Fanout []Notifier

// Notify implements Notifier.
func (f Fanout) Notify(ctx context.Context, recipient, subject, body string) error {
	var errs []error
	for _, n := range f {
		if err := n.Notify(ctx, recipient, subject, body); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogNotifier writes notifications to the process log. Used when no mail or
// broker transport is configured, so alert content still lands somewhere
// observable.
type LogNotifier struct {
	Logger *slog.Logger
}

// Notify implements Notifier.
func (l LogNotifier) Notify(_ context.Context, recipient, subject, body string) error {
	l.Logger.Info("notification (log only)",
		"recipient", recipient,
		"subject", subject,
		"body", body,
	)
	return nil
}
