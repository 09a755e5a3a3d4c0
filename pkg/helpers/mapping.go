package helpers

import (
	"errors"
	"strings"

	"github.com/oksasatya/preppal/pkg/mailer"
	mailtpl "github.com/oksasatya/preppal/pkg/mailer/templates"
)

// MessageFromJob turns a queued job into a deliverable message. Jobs that
// carry only a template name are rendered here; defaultFrom fills an empty
// sender.
func MessageFromJob(job mailer.EmailJob, defaultFrom string) (mailer.Message, error) {
	if strings.TrimSpace(job.To) == "" {
		return mailer.Message{}, errors.New("email job without recipient")
	}
	msg := mailer.Message{From: job.From, To: job.To, Subject: job.Subject, Text: job.Text, HTML: job.HTML}
	if msg.From == "" {
		msg.From = defaultFrom
	}
	if msg.HTML == "" && msg.Text == "" && job.Template != "" {
		data := job.Data
		if data == nil {
			data = map[string]any{}
		}
		if _, ok := data["Email"]; !ok {
			data["Email"] = job.To
		}
		subject, text, html, err := mailtpl.Render(strings.ToLower(job.Template), data)
		if err != nil {
			return mailer.Message{}, err
		}
		if msg.Subject == "" {
			msg.Subject = subject
		}
		msg.Text, msg.HTML = text, html
	}
	return msg, nil
}
