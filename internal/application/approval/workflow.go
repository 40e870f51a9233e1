package approval

import (
	"context"
	"expvar"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-user-approval/internal/application/user"
)

var (
	runsStarted            = expvar.NewInt("approval_runs_started")
	runsSucceeded          = expvar.NewInt("approval_runs_succeeded")
	runsValidationFailed   = expvar.NewInt("approval_runs_validation_failed")
	runsRegistrationFailed = expvar.NewInt("approval_runs_registration_failed")
)

// Notifier is told about every user registered by a successful run.
type Notifier interface {
	UserRegistered(ctx context.Context, u user.UserResponse) error
}

// Workflow interprets the approval state machine. Each Start is one run; there are no
// retries inside a run and no deduplication across runs.
type Workflow struct {
	validator Validator
	registrar Registrar
	runs      RunStore
	notifier  Notifier
	log       *logrus.Logger
	now       func() time.Time
}

// NewWorkflow wires the tasks to a run store. notifier may be nil.
func NewWorkflow(v Validator, r Registrar, runs RunStore, notifier Notifier, log *logrus.Logger) *Workflow {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Workflow{
		validator: v,
		registrar: r,
		runs:      runs,
		notifier:  notifier,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

type execution struct {
	run       *Run
	data      user.CreateUserInput
	validated user.ValidationResult
}

// Start executes one run to a terminal state. The returned error is only about
// recording the run; task outcomes are reported through the run itself.
func (w *Workflow) Start(ctx context.Context, requestID string, data user.CreateUserInput) (*Run, error) {
	run := &Run{
		ID:        uuid.NewString(),
		RequestID: requestID,
		State:     StartState,
		Status:    StatusRunning,
		Input:     Applicant{Name: data.Name, Email: data.Email},
		History:   []Step{},
		StartedAt: w.now(),
	}
	if run.RequestID == "" {
		run.RequestID = run.ID
	}
	entry := w.log.WithFields(logrus.Fields{"run_id": run.ID, "request_id": run.RequestID})

	if err := w.runs.Save(ctx, run); err != nil {
		return nil, fmt.Errorf("save run: %w", err)
	}
	runsStarted.Add(1)
	entry.Info("approval run started")

	ex := &execution{run: run, data: data}
	for !run.State.IsTerminal() {
		ev := w.step(ctx, ex)
		from := run.State
		if err := run.apply(ev, w.now()); err != nil {
			return run, err
		}
		entry.WithFields(logrus.Fields{"from": from, "event": ev, "to": run.State}).Debug("approval transition")
	}

	w.finish(ctx, run, entry)
	if err := w.runs.Save(ctx, run); err != nil {
		return run, fmt.Errorf("save run: %w", err)
	}
	return run, nil
}

func (w *Workflow) step(ctx context.Context, ex *execution) Event {
	switch ex.run.State {
	case StateValidateUser:
		res, err := w.validator.Validate(ctx, ValidateInput{UserData: ex.data})
		if err != nil {
			ex.run.Detail = err.Error()
			return EventFault
		}
		ex.validated = res
		ex.run.Validation = &Validation{IsValid: res.IsValid, Reason: res.Reason}
		return EventCompleted

	case StateCheckValidation:
		if ex.validated.IsValid {
			return EventValid
		}
		return EventInvalid

	case StateRegisterUser:
		data := ex.data
		if ex.validated.UserData != nil {
			data = *ex.validated.UserData
		}
		out, err := w.registrar.Register(ctx, RegisterInput{UserData: data})
		if err != nil {
			ex.run.Detail = err.Error()
			return EventFault
		}
		if !out.Success {
			ex.run.Detail = out.Error
			return EventFault
		}
		ex.run.User = out.User
		return EventCompleted
	}
	// unreachable for non-terminal states; apply rejects the event
	return EventFault
}

func (w *Workflow) finish(ctx context.Context, run *Run, entry *logrus.Entry) {
	entry = entry.WithField("state", run.State)
	switch run.State {
	case StateSucceeded:
		runsSucceeded.Add(1)
		entry.Info("approval run succeeded")
		if w.notifier != nil && run.User != nil {
			if err := w.notifier.UserRegistered(ctx, *run.User); err != nil {
				entry.WithError(err).Warn("notify registered user")
			}
		}
	case StateValidationFailed:
		runsValidationFailed.Add(1)
		entry.WithFields(logrus.Fields{"cause": run.Cause, "detail": run.Detail}).Warn("approval run failed")
	case StateRegistrationFailed:
		runsRegistrationFailed.Add(1)
		entry.WithFields(logrus.Fields{"cause": run.Cause, "detail": run.Detail}).Warn("approval run failed")
	}
}
