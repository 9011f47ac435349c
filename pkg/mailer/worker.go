package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/oksasatya/go-account-service/pkg/mailer/templates"
)

// Outcome tells the consumer what to do with a delivery
type Outcome int

const (
	Ack Outcome = iota
	Drop
	Requeue
)

func (o Outcome) String() string {
	switch o {
	case Ack:
		return "ack"
	case Drop:
		return "drop"
	case Requeue:
		return "requeue"
	}
	return "unknown"
}

// Sender is the transport used by the worker
type Sender interface {
	SendMessage(ctx context.Context, from, to, subject, text, html string) error
}

// ProcessJob decodes and sends one queued job. Malformed or unrenderable jobs
// are dropped; send failures are requeued.
func ProcessJob(ctx context.Context, body []byte, sender Sender, timeout time.Duration) (Outcome, error) {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return Drop, fmt.Errorf("bad message: %w", err)
	}
	if job.To == "" {
		return Drop, errors.New("bad message: missing recipient")
	}

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" && html == "" {
		sub, t, h, err := templates.Render(job.Template, job.Data)
		if err != nil {
			return Drop, fmt.Errorf("render %s: %w", job.Template, err)
		}
		if subject == "" {
			subject = sub
		}
		text, html = t, h
	}

	c, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := sender.SendMessage(c, job.From, job.To, subject, text, html); err != nil {
		return Requeue, fmt.Errorf("send failed: %w", err)
	}
	return Ack, nil
}
