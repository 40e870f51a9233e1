package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-user-approval/pkg/mailer"
	"github.com/oksasatya/go-ddd-user-approval/pkg/mailer/templates"
)

const sendTimeout = 15 * time.Second

// EmailConsumer renders EmailJob messages and hands them to a Sender.
type EmailConsumer struct {
	sender mailer.Sender
	logger *logrus.Logger
}

func NewEmailConsumer(sender mailer.Sender, logger *logrus.Logger) *EmailConsumer {
	return &EmailConsumer{sender: sender, logger: logger}
}

func (c *EmailConsumer) Run(ctx context.Context, msgs <-chan amqp.Delivery) error {
	return consume(ctx, msgs, c.Handle)
}

// Handle dead-letters jobs that cannot be decoded or rendered. A failed send is retried once.
func (c *EmailConsumer) Handle(ctx context.Context, msg amqp.Delivery) {
	var job mailer.EmailJob
	if err := json.Unmarshal(msg.Body, &job); err != nil || job.To == "" {
		c.logger.WithError(err).Warn("bad email message")
		_ = msg.Nack(false, false)
		return
	}
	entry := c.logger.WithFields(logrus.Fields{"to": job.To, "template": job.Template})

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		s, t, h, err := templates.Render(job.Template, job.Data)
		if err != nil {
			entry.WithError(err).Error("render email failed")
			_ = msg.Nack(false, false)
			return
		}
		subject, text, html = s, t, h
	}

	sctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	if err := c.sender.Send(sctx, job.To, subject, text, html); err != nil {
		entry.WithError(err).Error("send email failed")
		_ = msg.Nack(false, !msg.Redelivered)
		return
	}
	entry.Info("email sent")
	_ = msg.Ack(false)
}
