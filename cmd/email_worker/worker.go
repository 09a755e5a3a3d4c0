package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/preppal/pkg/helpers"
	"github.com/oksasatya/preppal/pkg/mailer"
)

type outcome int

const (
	ack outcome = iota
	requeue
	drop
)

type worker struct {
	Sender  mailer.Sender
	From    string
	Logger  *logrus.Logger
	Timeout time.Duration
}

// handle decodes and sends one queued job. Malformed jobs are dropped;
// delivery failures go back on the queue.
func (w *worker) handle(ctx context.Context, body []byte) outcome {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		w.Logger.WithError(err).Warn("bad message")
		return drop
	}
	msg, err := helpers.MessageFromJob(job, w.From)
	if err != nil {
		w.Logger.WithError(err).WithField("template", job.Template).Warn("cannot build message")
		return drop
	}

	c, cancel := context.WithTimeout(ctx, w.Timeout)
	defer cancel()
	if err := w.Sender.Send(c, msg); err != nil {
		w.Logger.WithError(err).WithField("to", msg.To).Error("send failed")
		return requeue
	}
	w.Logger.WithFields(logrus.Fields{"to": msg.To, "subject": msg.Subject}).Info("email sent")
	return ack
}
