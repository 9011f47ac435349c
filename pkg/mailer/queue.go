package mailer

import (
	"context"
)

// Publisher puts a JSON-encodable message on a queue
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// QueueNotifier hands rendered messages to the email worker through a queue.
type QueueNotifier struct {
	templateRenderer
	pub Publisher
}

func NewQueueNotifier(pub Publisher) *QueueNotifier {
	return &QueueNotifier{pub: pub}
}

func (q *QueueNotifier) Send(ctx context.Context, from, to, subject, content string) error {
	return q.pub.PublishJSON(ctx, EmailJob{From: from, To: to, Subject: subject, HTML: content})
}

var _ Notifier = (*QueueNotifier)(nil)
