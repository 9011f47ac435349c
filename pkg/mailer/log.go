package mailer

import (
	"context"

	"github.com/sirupsen/logrus"
)

// LogNotifier only logs outgoing mail. Used when sending is disabled.
type LogNotifier struct {
	templateRenderer
	Logger *logrus.Logger
}

func NewLogNotifier(logger *logrus.Logger) *LogNotifier {
	return &LogNotifier{Logger: logger}
}

func (n *LogNotifier) Send(_ context.Context, from, to, subject, content string) error {
	if n.Logger != nil {
		n.Logger.WithFields(logrus.Fields{
			"from":    from,
			"to":      to,
			"subject": subject,
			"bytes":   len(content),
		}).Info("mail sending disabled; email not sent")
	}
	return nil
}

var _ Notifier = (*LogNotifier)(nil)
