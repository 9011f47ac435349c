package mailer

import (
	"context"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Mailgun sends mail synchronously through the Mailgun API.
type Mailgun struct {
	templateRenderer
	Domain string
	APIKey string
	Sender string
}

func NewMailgun(domain, apiKey, sender string) *Mailgun {
	return &Mailgun{Domain: domain, APIKey: apiKey, Sender: sender}
}

// Send sends an HTML email. An empty from falls back to the configured sender.
func (m *Mailgun) Send(ctx context.Context, from, to, subject, content string) error {
	return m.SendMessage(ctx, from, to, subject, "", content)
}

// SendMessage sends an email with optional plain text and HTML bodies.
func (m *Mailgun) SendMessage(ctx context.Context, from, to, subject, text, html string) error {
	if from == "" {
		from = m.Sender
	}
	client := mg.NewMailgun(m.Domain, m.APIKey)
	msg := client.NewMessage(from, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	c, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, _, err := client.Send(c, msg)
	return err
}

var _ Notifier = (*Mailgun)(nil)
