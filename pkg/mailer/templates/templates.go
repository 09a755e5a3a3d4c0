package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmpl "html/template"
	"reflect"
	"strings"
	texttpl "text/template"
	"time"
)

//go:embed *.tmpl
var FS embed.FS

// EmailData defines standard fields for email templates.
type EmailData struct {
	Name    string `json:"Name"`
	Email   string `json:"Email"`
	AppName string `json:"AppName"`

	// Action URLs
	ResetURL string `json:"ResetURL"`

	ExpiresAt     time.Time `json:"ExpiresAt"`
	ExpiresAtText string    `json:"ExpiresAtText"`
}

// ToMap converts EmailData to the map form carried in EmailJob.Data.
func ToMap(d EmailData) map[string]any {
	m := map[string]any{
		"Name":          d.Name,
		"Email":         d.Email,
		"AppName":       d.AppName,
		"ResetURL":      d.ResetURL,
		"ExpiresAtText": d.ExpiresAtText,
	}
	if !d.ExpiresAt.IsZero() {
		m["ExpiresAt"] = d.ExpiresAt.UTC().Format(time.RFC3339)
	}
	return m
}

// defaultFn supports pipe usage: {{ .Value | default "Fallback" }}
func defaultFn(fallback any, value any) any {
	switch x := value.(type) {
	case string:
		if strings.TrimSpace(x) == "" {
			return fallback
		}
		return x
	case nil:
		return fallback
	default:
		rv := reflect.ValueOf(value)
		if !rv.IsValid() {
			return fallback
		}
		zero := reflect.Zero(rv.Type()).Interface()
		if reflect.DeepEqual(value, zero) {
			return fallback
		}
		return value
	}
}

func baseFuncs() map[string]any {
	return map[string]any{
		"now":        func() time.Time { return time.Now().UTC() },
		"formatTime": func(t time.Time, layout string) string { return t.Format(layout) },
		"upper":      strings.ToUpper,
		"default":    defaultFn,
	}
}

// ResetPassword is the template set sent by the forgot-password flow.
const ResetPassword = "reset_password"

// The template sets are parsed once; every *.tmpl file is one named template.
var (
	textSet = texttpl.Must(texttpl.New("mail").Funcs(texttpl.FuncMap(baseFuncs())).ParseFS(FS, "*.subject.tmpl", "*.text.tmpl"))
	htmlSet = htmpl.Must(htmpl.New("mail").Funcs(htmpl.FuncMap(baseFuncs())).ParseFS(FS, "*.html.tmpl"))
)

// Has reports whether a complete template set exists for name.
func Has(name string) bool {
	return textSet.Lookup(name+".subject.tmpl") != nil &&
		textSet.Lookup(name+".text.tmpl") != nil &&
		htmlSet.Lookup(name+".html.tmpl") != nil
}

func execText(filename string, data any) (string, error) {
	var buf bytes.Buffer
	if err := textSet.ExecuteTemplate(&buf, filename, data); err != nil {
		return "", fmt.Errorf("exec %q: %w", filename, err)
	}
	return buf.String(), nil
}

// Render produces the subject, text and html bodies of the named template set
// (<name>.subject.tmpl, <name>.text.tmpl, <name>.html.tmpl).
func Render(name string, data any) (subject string, text string, html string, err error) {
	if !Has(name) {
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
	if subject, err = execText(name+".subject.tmpl", data); err != nil {
		return "", "", "", err
	}
	if text, err = execText(name+".text.tmpl", data); err != nil {
		return "", "", "", err
	}
	var buf bytes.Buffer
	if err = htmlSet.ExecuteTemplate(&buf, name+".html.tmpl", data); err != nil {
		return "", "", "", fmt.Errorf("exec %q: %w", name+".html.tmpl", err)
	}
	return strings.TrimSpace(subject), text, buf.String(), nil
}
