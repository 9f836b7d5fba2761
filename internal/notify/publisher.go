package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"procodus.dev/maintenance-tracker/pkg/mq"
)

// AlertEvent is the JSON payload published to the alert queue for each
// notification. Downstream consumers (dashboards, paging bridges) subscribe
// to the queue instead of polling the alert_history table.
type AlertEvent struct {
	Recipient string    `json:"recipient"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	RaisedAt  time.Time `json:"raised_at"`
}

// AlertPublisher publishes alert events to RabbitMQ. Best-effort like the
// mailer: a broker outage never blocks or rolls back the sweep.
type AlertPublisher struct {
	logger *slog.Logger
	client mq.ClientInterface
	now    func() time.Time
}

// NewAlertPublisher creates a new AlertPublisher instance.
func NewAlertPublisher(logger *slog.Logger, client mq.ClientInterface) (*AlertPublisher, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if client == nil {
		return nil, errors.New("mq client cannot be nil")
	}

	return &AlertPublisher{
		logger: logger,
		client: client,
		now:    time.Now,
	}, nil
}

// Notify implements Notifier by publishing an AlertEvent to the queue.
func (p *AlertPublisher) Notify(ctx context.Context, recipient, subject, body string) error {
	event := AlertEvent{
		Recipient: recipient,
		Subject:   subject,
		Body:      body,
		RaisedAt:  p.now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal alert event: %w", err)
	}

	if err := p.client.Push(ctx, data); err != nil {
		return fmt.Errorf("failed to publish alert event: %w", err)
	}

	p.logger.Debug("alert event published", "recipient", recipient, "subject", subject)
	return nil
}

// Close shuts down the underlying MQ client.
func (p *AlertPublisher) Close() error {
	return p.client.Close()
}
