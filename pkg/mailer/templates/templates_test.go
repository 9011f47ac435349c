package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activationData() ActivationEmailData {
	return ActivationEmailData{
		Username:       "janed",
		Fullname:       "Jane Doe",
		Email:          "jane@x.com",
		CreatedAt:      time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
		ActivationLink: "http://localhost:3001/auth/activation?code=abc123",
	}
}

func TestRenderRegistrationSuccess(t *testing.T) {
	subject, text, html, err := Render(RegistrationSuccess, activationData().ToMap())
	require.NoError(t, err)

	assert.Equal(t, "Aktivasi akun anda", subject)
	assert.Contains(t, text, "http://localhost:3001/auth/activation?code=abc123")
	assert.Contains(t, text, "01 March 2024, 09:30")
	assert.Contains(t, html, "Jane Doe")
	assert.Contains(t, html, `href="http://localhost:3001/auth/activation?code=abc123"`)
}

func TestRenderHTMLEscapesInput(t *testing.T) {
	d := activationData()
	d.Fullname = "<script>x</script>"

	html, err := RenderHTML(RegistrationSuccess, d.ToMap())
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>x</script>")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, err := RenderHTML("missing", nil)
	assert.Error(t, err)
}

func TestFormatTimeAcceptsJSONStrings(t *testing.T) {
	assert.Equal(t, "01 March 2024", formatTime("2024-03-01T09:30:00Z", "02 January 2006"))
	assert.Equal(t, "", formatTime(42, "02 January 2006"))
}

func TestDefaultFn(t *testing.T) {
	assert.Equal(t, "fallback", defaultFn("fallback", " "))
	assert.Equal(t, "fallback", defaultFn("fallback", nil))
	assert.Equal(t, "value", defaultFn("fallback", "value"))
	assert.Equal(t, "fallback", defaultFn("fallback", 0))
}
