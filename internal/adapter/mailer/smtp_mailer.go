package mailer

import (
	"context"
	"fmt"

	"lingo-quiz/internal/config"
	"lingo-quiz/internal/domain"

	"github.com/wneessen/go-mail"
)

// SMTPMailer sends HTML email through an authenticated SMTP relay.
type SMTPMailer struct {
	client *mail.Client
	from   string
}

// NewSMTPMailer returns nil and no error when mail is not configured, so callers can fall back.
func NewSMTPMailer(cfg config.MailConfig) (domain.Mailer, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	port := cfg.Port
	if port == 0 {
		port = 587
	}

	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &SMTPMailer{client: client, from: from}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	msg, err := buildMessage(m.from, to, subject, htmlBody)
	if err != nil {
		return err
	}
	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

func buildMessage(from, to, subject, htmlBody string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender address %q: %w", from, err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient address %q: %w", to, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)
	return msg, nil
}
