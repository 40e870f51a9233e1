package queue

import (
	"context"
	"encoding/json"
	"errors"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-user-approval/internal/application/approval"
	"github.com/oksasatya/go-ddd-user-approval/internal/application/user"
)

// ErrDeliveriesClosed is returned by Run when the broker closes the delivery channel.
var ErrDeliveriesClosed = errors.New("queue: delivery channel closed")

// RunStarter starts one approval run per call.
type RunStarter interface {
	Start(ctx context.Context, requestID string, data user.CreateUserInput) (*approval.Run, error)
}

// ApprovalConsumer turns each approval message into exactly one workflow run.
type ApprovalConsumer struct {
	runs   RunStarter
	logger *logrus.Logger
}

func NewApprovalConsumer(runs RunStarter, logger *logrus.Logger) *ApprovalConsumer {
	return &ApprovalConsumer{runs: runs, logger: logger}
}

// Run handles deliveries until ctx is done or the channel closes. A message already being
// handled when ctx is cancelled runs to completion.
func (c *ApprovalConsumer) Run(ctx context.Context, msgs <-chan amqp.Delivery) error {
	return consume(ctx, msgs, c.Handle)
}

// Handle acks once a run reached a terminal state. A body that is not user data is
// dead-lettered; a run that could not be recorded is requeued once, then dead-lettered.
func (c *ApprovalConsumer) Handle(ctx context.Context, msg amqp.Delivery) {
	entry := c.logger.WithFields(logrus.Fields{"message_id": msg.MessageId, "redelivered": msg.Redelivered})

	var data user.CreateUserInput
	if err := json.Unmarshal(msg.Body, &data); err != nil {
		entry.WithError(err).Warn("bad approval message")
		_ = msg.Nack(false, false)
		return
	}

	run, err := c.runs.Start(ctx, msg.MessageId, data)
	if run == nil {
		entry.WithError(err).Error("approval run not started")
		_ = msg.Nack(false, !msg.Redelivered)
		return
	}
	if err != nil {
		// the run already acted; redelivery would register twice
		entry.WithError(err).WithField("run_id", run.ID).Error("approval run not recorded")
	}
	_ = msg.Ack(false)
}

func consume(ctx context.Context, msgs <-chan amqp.Delivery, handle func(context.Context, amqp.Delivery)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return ErrDeliveriesClosed
			}
			// cancellation stops receiving only; the run and its ack must not see it
			handle(context.WithoutCancel(ctx), msg)
		}
	}
}
