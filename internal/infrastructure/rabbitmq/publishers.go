package rabbitmq

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-ddd-user-approval/config"
	"github.com/oksasatya/go-ddd-user-approval/internal/application/user"
	"github.com/oksasatya/go-ddd-user-approval/pkg/mailer"
	"github.com/oksasatya/go-ddd-user-approval/pkg/mailer/templates"
)

// JSONPublisher is satisfied by helpers.RabbitPublisher.
type JSONPublisher interface {
	PublishJSON(ctx context.Context, messageID string, body any) error
}

// ApprovalPublisher puts approval requests on the approval queue. The body is the raw
// user data; the request id travels as the AMQP message id.
type ApprovalPublisher struct {
	pub JSONPublisher
}

func NewApprovalPublisher(pub JSONPublisher) *ApprovalPublisher {
	return &ApprovalPublisher{pub: pub}
}

func (p *ApprovalPublisher) Enqueue(ctx context.Context, data user.CreateUserInput) (string, error) {
	requestID := uuid.NewString()
	if err := p.pub.PublishJSON(ctx, requestID, data); err != nil {
		return "", fmt.Errorf("publish approval request: %w", err)
	}
	return requestID, nil
}

// WelcomeNotifier queues a welcome email for every user a run registers.
type WelcomeNotifier struct {
	pub JSONPublisher
	cfg *config.Config
	now func() time.Time
}

func NewWelcomeNotifier(pub JSONPublisher, cfg *config.Config) *WelcomeNotifier {
	return &WelcomeNotifier{pub: pub, cfg: cfg, now: time.Now}
}

func (n *WelcomeNotifier) UserRegistered(ctx context.Context, u user.UserResponse) error {
	job := mailer.EmailJob{
		To:       u.Email,
		Template: templates.Welcome,
		Data:     templates.NewWelcomeData(n.cfg, u.Name, u.Email, n.now()),
	}
	return n.pub.PublishJSON(ctx, "", job)
}
