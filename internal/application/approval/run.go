package approval

import (
	"context"
	"errors"
	"time"

	"github.com/oksasatya/go-ddd-user-approval/internal/application/user"
)

type Status string

const (
	StatusRunning   Status = "RUNNING"
	StatusSucceeded Status = "SUCCEEDED"
	StatusFailed    Status = "FAILED"
)

// ErrRunNotFound is returned by RunStore.Get for an unknown or expired run.
var ErrRunNotFound = errors.New("approval run not found")

// Applicant is the recorded part of the input. The password never leaves the run in memory.
type Applicant struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Validation is the recorded outcome of the validate step.
type Validation struct {
	IsValid bool   `json:"isValid"`
	Reason  string `json:"reason,omitempty"`
}

// Step is one applied transition.
type Step struct {
	From  State     `json:"from"`
	Event Event     `json:"event"`
	To    State     `json:"to"`
	At    time.Time `json:"at"`
}

// Run is the execution record of one approval request.
type Run struct {
	ID         string             `json:"id"`
	RequestID  string             `json:"request_id"`
	State      State              `json:"state"`
	Status     Status             `json:"status"`
	Input      Applicant          `json:"input"`
	Validation *Validation        `json:"validation,omitempty"`
	User       *user.UserResponse `json:"user,omitempty"`
	Error      string             `json:"error,omitempty"`
	Cause      string             `json:"cause,omitempty"`
	Detail     string             `json:"detail,omitempty"`
	History    []Step             `json:"history"`
	StartedAt  time.Time          `json:"started_at"`
	StoppedAt  *time.Time         `json:"stopped_at,omitempty"`
}

// RunStore persists run records. Save is an upsert keyed by Run.ID.
type RunStore interface {
	Save(ctx context.Context, run *Run) error
	Get(ctx context.Context, id string) (*Run, error)
	ListByRequest(ctx context.Context, requestID string) ([]*Run, error)
}

func (r *Run) apply(ev Event, at time.Time) error {
	to, err := Next(r.State, ev)
	if err != nil {
		return err
	}
	r.History = append(r.History, Step{From: r.State, Event: ev, To: to, At: at})
	r.State = to
	if !to.IsTerminal() {
		return nil
	}
	r.StoppedAt = &at
	if f, failed := to.Failure(); failed {
		r.Status = StatusFailed
		r.Error, r.Cause = f.Error, f.Cause
	} else {
		r.Status = StatusSucceeded
	}
	return nil
}
