package mailer

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
)

// Message is a rendered outbound email.
type Message struct {
	From    string
	To      string
	Subject string
	Text    string
	HTML    string
}

func (m Message) validate() error {
	if strings.TrimSpace(m.To) == "" {
		return errors.New("mailer: empty recipient")
	}
	if m.HTML == "" && m.Text == "" {
		return errors.New("mailer: empty body")
	}
	return nil
}

// Sender hands a message to an outbound mail transport.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Publisher is the queue side used by QueueSender.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// QueueSender enqueues messages for cmd/email_worker.
type QueueSender struct {
	Pub Publisher
}

func NewQueueSender(pub Publisher) *QueueSender {
	return &QueueSender{Pub: pub}
}

func (q *QueueSender) Send(ctx context.Context, msg Message) error {
	if err := msg.validate(); err != nil {
		return err
	}
	return q.Pub.PublishJSON(ctx, jobFromMessage(msg))
}

// LogSender only logs; used when MAIL_SEND_ENABLED=false.
type LogSender struct {
	Logger *logrus.Logger
}

func (l LogSender) Send(_ context.Context, msg Message) error {
	if err := msg.validate(); err != nil {
		return err
	}
	if l.Logger != nil {
		l.Logger.WithFields(logrus.Fields{"to": msg.To, "subject": msg.Subject}).Info("mail sending disabled; message dropped")
	}
	return nil
}
