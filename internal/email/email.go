// Package email delivers inquiry messages through Mailgun.
package email

import (
	"context"
	"fmt"
	"time"

	"github.com/mailgun/mailgun-go/v5"
)

// sendTimeout bounds a single Mailgun API call.
const sendTimeout = 10 * time.Second

// Message is a plain-text email.
type Message struct {
	To      string
	ReplyTo string
	Subject string
	Body    string
}

// Config holds the Mailgun account settings. Delivery is enabled only when
// both Domain and APIKey are set.
type Config struct {
	Domain      string `env:"DOMAIN"`
	APIKey      string `env:"API_KEY"`
	SenderEmail string `env:"SENDER_EMAIL"`
	SenderName  string `env:"SENDER_NAME" envDefault:"Outback Hunting New Zealand"`
}

// MailgunMailer sends Messages through the Mailgun API.
type MailgunMailer struct {
	client      mailgun.Mailgun
	domain      string
	senderEmail string
	senderName  string
	enabled     bool
}

// NewMailgunMailer returns a mailer for cfg. An incomplete cfg yields a
// disabled mailer whose Send always fails. The sender address defaults to
// noreply@<domain>.
func NewMailgunMailer(cfg Config) *MailgunMailer {
	enabled := cfg.Domain != "" && cfg.APIKey != ""
	if cfg.SenderEmail == "" && cfg.Domain != "" {
		cfg.SenderEmail = "noreply@" + cfg.Domain
	}

	var client mailgun.Mailgun
	if enabled {
		client = mailgun.NewMailgun(cfg.APIKey)
	}

	return &MailgunMailer{
		client:      client,
		domain:      cfg.Domain,
		senderEmail: cfg.SenderEmail,
		senderName:  cfg.SenderName,
		enabled:     enabled,
	}
}

// Enabled reports whether Mailgun is configured.
func (m *MailgunMailer) Enabled() bool {
	return m.enabled
}

// Send delivers msg.
func (m *MailgunMailer) Send(ctx context.Context, msg Message) error {
	if !m.enabled {
		return fmt.Errorf("email.MailgunMailer.Send: mail delivery is not configured")
	}

	message := mailgun.NewMessage(m.domain, m.sender(), msg.Subject, msg.Body, msg.To)
	if msg.ReplyTo != "" {
		message.AddHeader("Reply-To", msg.ReplyTo)
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if _, err := m.client.Send(ctx, message); err != nil {
		return fmt.Errorf("email.MailgunMailer.Send: to %s: %w", msg.To, err)
	}
	return nil
}

func (m *MailgunMailer) sender() string {
	if m.senderName == "" {
		return m.senderEmail
	}
	return fmt.Sprintf("%s <%s>", m.senderName, m.senderEmail)
}
