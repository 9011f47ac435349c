package mailer

import (
	"context"
	"net/url"
	"strings"

	"github.com/oksasatya/go-account-service/pkg/mailer/templates"
)

// Notifier renders a templated message and dispatches it to an address.
type Notifier interface {
	Render(template string, data map[string]any) (string, error)
	Send(ctx context.Context, from, to, subject, content string) error
}

// templateRenderer renders HTML templates from the embedded template set.
// Embedded by every Notifier implementation.
type templateRenderer struct{}

func (templateRenderer) Render(name string, data map[string]any) (string, error) {
	return templates.RenderHTML(name, data)
}

// LinkBuilder builds client-facing links from the configured client host
type LinkBuilder struct {
	ClientHost string
}

func NewLinkBuilder(clientHost string) LinkBuilder {
	return LinkBuilder{ClientHost: strings.TrimRight(clientHost, "/")}
}

// Activation returns <host>/auth/activation?code=<code>
func (b LinkBuilder) Activation(code string) string {
	return b.ClientHost + "/auth/activation?code=" + url.QueryEscape(code)
}
