package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/wneessen/go-mail"
)

// sendTimeout bounds a single SMTP delivery attempt.
const sendTimeout = 30 * time.Second

// Mailer sends notifications as plain-text email over SMTP.
type Mailer struct {
	logger *slog.Logger
	client *mail.Client
	from   string
}

// MailerConfig holds the configuration for the Mailer.
type MailerConfig struct {
	Logger   *slog.Logger
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// NewMailer creates a new Mailer instance.
func NewMailer(cfg *MailerConfig) (*Mailer, error) {
	if cfg == nil {
		return nil, errors.New("mailer config cannot be nil")
	}

	if cfg.Logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.Host == "" {
		return nil, errors.New("SMTP host cannot be empty")
	}

	if cfg.From == "" {
		return nil, errors.New("from address cannot be empty")
	}

	opts := []mail.Option{
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Port > 0 {
		opts = append(opts, mail.WithPort(cfg.Port))
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	return &Mailer{
		logger: cfg.Logger,
		client: client,
		from:   cfg.From,
	}, nil
}

// Notify implements Notifier by sending a plain-text email.
func (m *Mailer) Notify(ctx context.Context, recipient, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("invalid from address %q: %w", m.from, err)
	}
	if err := msg.To(recipient); err != nil {
		return fmt.Errorf("invalid recipient address %q: %w", recipient, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if err := m.client.DialAndSendWithContext(sendCtx, msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", recipient, err)
	}

	m.logger.Info("notification mail sent", "recipient", recipient, "subject", subject)
	return nil
}
