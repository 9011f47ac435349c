package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// HTML is normally rendered by the producer; Template and Data let the
// worker render it instead.
type EmailJob struct {
	From     string         `json:"from,omitempty"`
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}
