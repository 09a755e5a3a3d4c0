package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_ResetPassword(t *testing.T) {
	exp := time.Date(2024, 3, 1, 10, 5, 0, 0, time.UTC)
	data := NewResetPasswordData("PrepPal", "Alice", "a@x.com",
		WithResetURL("https://preppal.test/reset-password/u1/tok"),
		WithExpiresAt(exp),
	)

	subject, text, html, err := Render(ResetPassword, data)
	require.NoError(t, err)

	assert.Equal(t, "PrepPal: reset your password", subject)
	assert.Contains(t, text, "https://preppal.test/reset-password/u1/tok")
	assert.Contains(t, text, "01 March 2024, 10:05 UTC")
	assert.Contains(t, html, `href="https://preppal.test/reset-password/u1/tok"`)
	assert.Contains(t, html, "Hi Alice,")
}

func TestRender_DefaultsAndEscaping(t *testing.T) {
	data := NewResetPasswordData("", "<b>Eve</b>", "e@x.com")

	subject, _, html, err := Render(ResetPassword, data)
	require.NoError(t, err)

	assert.Equal(t, "PrepPal: reset your password", subject)
	assert.Contains(t, html, "&lt;b&gt;Eve&lt;/b&gt;")
}

func TestRender_UnknownTemplate(t *testing.T) {
	assert.True(t, Has(ResetPassword))
	assert.False(t, Has("nope"))

	_, _, _, err := Render("nope", EmailData{})
	assert.ErrorContains(t, err, `unknown email template "nope"`)
}

func TestToMap(t *testing.T) {
	m := ToMap(EmailData{Name: "Alice", ResetURL: "u"})
	assert.Equal(t, "Alice", m["Name"])
	assert.Equal(t, "u", m["ResetURL"])
	assert.NotContains(t, m, "ExpiresAt")

	m = ToMap(EmailData{ExpiresAt: time.Date(2024, 3, 1, 10, 5, 0, 0, time.UTC)})
	assert.Equal(t, "2024-03-01T10:05:00Z", m["ExpiresAt"])
}
