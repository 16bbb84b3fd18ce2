package notifier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/restockd/stockwatch/internal/config"
	"github.com/restockd/stockwatch/internal/models"
	"github.com/wneessen/go-mail"
)

// Email sends alerts via authenticated SMTP submission. The session is
// plaintext upgraded to TLS (STARTTLS), matching the usual 587 submission
// flow.
type Email struct {
	log *slog.Logger
	cfg config.SMTP
}

// NewEmail creates the email channel from SMTP settings.
func NewEmail(log *slog.Logger, cfg config.SMTP) *Email {
	return &Email{log: log, cfg: cfg}
}

// Notify composes and sends one plain-text alert to the configured recipient.
func (e *Email) Notify(ctx context.Context, product models.Product) error {
	const opn = "notifier.Email.Notify"

	msg := mail.NewMsg()
	if err := msg.From(e.cfg.Sender); err != nil {
		return fmt.Errorf("%s: invalid sender address: %w", opn, err)
	}
	if err := msg.To(e.cfg.Recipient); err != nil {
		return fmt.Errorf("%s: invalid recipient address: %w", opn, err)
	}
	msg.Subject(subjectLine(product.Name))
	msg.SetBodyString(mail.TypeTextPlain, bodyText(product))

	client, err := mail.NewClient(e.cfg.Host,
		mail.WithPort(e.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(e.cfg.Sender),
		mail.WithPassword(e.cfg.Password),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("%s: failed to create smtp client: %w", opn, err)
	}

	if err = client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("%s: failed to send email: %w", opn, err)
	}

	e.log.InfoContext(ctx, "Email notification sent", "recipient", e.cfg.Recipient)

	return nil
}
