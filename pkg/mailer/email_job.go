package mailer

// EmailJob is the JSON payload queued for cmd/email_worker. Either a body
// (Text and/or HTML) is set, or Template names a set that the worker renders
// with Data.
type EmailJob struct {
	From     string         `json:"from,omitempty"`
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "reset_password"
	Data     map[string]any `json:"data,omitempty"`
}

func jobFromMessage(msg Message) EmailJob {
	return EmailJob{From: msg.From, To: msg.To, Subject: msg.Subject, Text: msg.Text, HTML: msg.HTML}
}
