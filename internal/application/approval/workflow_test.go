package approval_test

import (
	"context"
	"errors"
	"expvar"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-user-approval/internal/application/approval"
	"github.com/oksasatya/go-ddd-user-approval/internal/application/user"
	"github.com/oksasatya/go-ddd-user-approval/internal/infrastructure/memory"
)

type spyRegistrar struct {
	next  approval.Registrar
	calls int
	out   *approval.RegisterOutput
	err   error
}

func (s *spyRegistrar) Register(ctx context.Context, in approval.RegisterInput) (approval.RegisterOutput, error) {
	s.calls++
	if s.err != nil {
		return approval.RegisterOutput{}, s.err
	}
	if s.out != nil {
		return *s.out, nil
	}
	return s.next.Register(ctx, in)
}

type faultyValidator struct{}

func (faultyValidator) Validate(context.Context, approval.ValidateInput) (user.ValidationResult, error) {
	return user.ValidationResult{}, errors.New("connection refused")
}

type recordingNotifier struct {
	users []user.UserResponse
}

func (n *recordingNotifier) UserRegistered(_ context.Context, u user.UserResponse) error {
	n.users = append(n.users, u)
	return nil
}

type failingRunStore struct{ *memory.RunStore }

func (failingRunStore) Save(context.Context, *approval.Run) error { return errors.New("redis down") }

type fixture struct {
	users    *memory.UserRepository
	runs     *memory.RunStore
	register *spyRegistrar
	notifier *recordingNotifier
	wf       *approval.Workflow
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger, _ := test.NewNullLogger()
	f := &fixture{
		users:    memory.NewUserRepository(),
		runs:     memory.NewRunStore(),
		notifier: &recordingNotifier{},
	}
	f.register = &spyRegistrar{next: approval.NewRegisterTask(user.NewCreateUser(f.users, nil))}
	f.wf = approval.NewWorkflow(
		approval.NewValidateTask(user.NewValidateUser(f.users)),
		f.register, f.runs, f.notifier, logger,
	)
	return f
}

func ana() user.CreateUserInput {
	return user.CreateUserInput{Name: "Ana", Email: "ana@x.com", Password: "secret1"}
}

func counter(name string) int64 {
	return expvar.Get(name).(*expvar.Int).Value()
}

func states(run *approval.Run) []approval.State {
	out := []approval.State{run.History[0].From}
	for _, s := range run.History {
		out = append(out, s.To)
	}
	return out
}

func TestWorkflow_RegistersValidUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	before := counter("approval_runs_succeeded")

	run, err := f.wf.Start(ctx, "req-1", ana())
	require.NoError(t, err)

	assert.Equal(t, approval.StateSucceeded, run.State)
	assert.Equal(t, approval.StatusSucceeded, run.Status)
	assert.Empty(t, run.Error)
	assert.Equal(t, []approval.State{
		approval.StateValidateUser, approval.StateCheckValidation,
		approval.StateRegisterUser, approval.StateSucceeded,
	}, states(run))
	require.NotNil(t, run.StoppedAt)
	require.NotNil(t, run.User)
	assert.Equal(t, "ana@x.com", run.User.Email)
	assert.Equal(t, approval.Applicant{Name: "Ana", Email: "ana@x.com"}, run.Input)
	assert.Equal(t, int64(1), counter("approval_runs_succeeded")-before)

	all, _ := f.users.FindAll(ctx)
	assert.Len(t, all, 1)
	require.Len(t, f.notifier.users, 1)
	assert.Equal(t, run.User.ID, f.notifier.users[0].ID)

	stored, err := f.runs.Get(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, approval.StateSucceeded, stored.State)
	assert.Equal(t, "req-1", stored.RequestID)
}

func TestWorkflow_AlreadyRegisteredNeverReachesRegister(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := user.NewCreateUser(f.users, nil).Execute(ctx, ana())
	require.NoError(t, err)
	before := counter("approval_runs_validation_failed")

	run, err := f.wf.Start(ctx, "req-2", ana())
	require.NoError(t, err)

	assert.Equal(t, approval.StateValidationFailed, run.State)
	assert.Equal(t, approval.StatusFailed, run.Status)
	assert.Equal(t, "ValidationError", run.Error)
	assert.Equal(t, "User validation failed", run.Cause)
	require.NotNil(t, run.Validation)
	assert.Equal(t, user.ReasonEmailRegistered, run.Validation.Reason)
	assert.Zero(t, f.register.calls)
	assert.Empty(t, f.notifier.users)
	assert.Equal(t, int64(1), counter("approval_runs_validation_failed")-before)

	all, _ := f.users.FindAll(ctx)
	assert.Len(t, all, 1)
}

func TestWorkflow_InvalidInputFailsValidation(t *testing.T) {
	f := newFixture(t)
	in := ana()
	in.Email = "ana-at-x"

	run, err := f.wf.Start(context.Background(), "req-3", in)
	require.NoError(t, err)
	assert.Equal(t, approval.StateValidationFailed, run.State)
	assert.Equal(t, user.ReasonInvalidEmail, run.Validation.Reason)
	assert.Equal(t, []approval.State{
		approval.StateValidateUser, approval.StateCheckValidation, approval.StateValidationFailed,
	}, states(run))
	assert.Zero(t, f.register.calls)
}

func TestWorkflow_ValidatorFault(t *testing.T) {
	logger, _ := test.NewNullLogger()
	runs := memory.NewRunStore()
	reg := &spyRegistrar{}
	wf := approval.NewWorkflow(faultyValidator{}, reg, runs, nil, logger)

	run, err := wf.Start(context.Background(), "", ana())
	require.NoError(t, err)
	assert.Equal(t, approval.StateValidationFailed, run.State)
	assert.Equal(t, "connection refused", run.Detail)
	assert.Nil(t, run.Validation)
	assert.Equal(t, run.ID, run.RequestID)
	assert.Equal(t, []approval.State{approval.StateValidateUser, approval.StateValidationFailed}, states(run))
	assert.Zero(t, reg.calls)
}

func TestWorkflow_UnsuccessfulRegistrationIsAFault(t *testing.T) {
	f := newFixture(t)
	f.register.out = &approval.RegisterOutput{Success: false, Error: "user with email ana@x.com already exists"}
	before := counter("approval_runs_registration_failed")

	run, err := f.wf.Start(context.Background(), "req-4", ana())
	require.NoError(t, err)
	assert.Equal(t, approval.StateRegistrationFailed, run.State)
	assert.Equal(t, "RegistrationError", run.Error)
	assert.Equal(t, "User registration failed", run.Cause)
	assert.Equal(t, "user with email ana@x.com already exists", run.Detail)
	assert.Equal(t, 1, f.register.calls)
	assert.Empty(t, f.notifier.users)
	assert.Equal(t, int64(1), counter("approval_runs_registration_failed")-before)
}

func TestWorkflow_RegistrarError(t *testing.T) {
	f := newFixture(t)
	f.register.err = errors.New("timeout")

	run, err := f.wf.Start(context.Background(), "req-5", ana())
	require.NoError(t, err)
	assert.Equal(t, approval.StateRegistrationFailed, run.State)
	assert.Equal(t, "timeout", run.Detail)
}

func TestWorkflow_EachStartIsANewRun(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.wf.Start(ctx, "req-dup", ana())
	require.NoError(t, err)
	second, err := f.wf.Start(ctx, "req-dup", ana())
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, approval.StateSucceeded, first.State)
	assert.Equal(t, approval.StateValidationFailed, second.State)

	runs, err := f.runs.ListByRequest(ctx, "req-dup")
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, first.ID, runs[0].ID)
	assert.Equal(t, second.ID, runs[1].ID)
}

func TestWorkflow_RunStoreFailure(t *testing.T) {
	logger, _ := test.NewNullLogger()
	users := memory.NewUserRepository()
	wf := approval.NewWorkflow(
		approval.NewValidateTask(user.NewValidateUser(users)),
		approval.NewRegisterTask(user.NewCreateUser(users, nil)),
		failingRunStore{memory.NewRunStore()}, nil, logger,
	)

	run, err := wf.Start(context.Background(), "req-6", ana())
	require.Error(t, err)
	assert.Nil(t, run)

	all, _ := users.FindAll(context.Background())
	assert.Empty(t, all)
}

func TestRegisterTask_FoldsErrors(t *testing.T) {
	users := memory.NewUserRepository()
	task := approval.NewRegisterTask(user.NewCreateUser(users, nil))
	ctx := context.Background()

	out, err := task.Register(ctx, approval.RegisterInput{UserData: ana()})
	require.NoError(t, err)
	assert.True(t, out.Success)

	out, err = task.Register(ctx, approval.RegisterInput{UserData: ana()})
	require.NoError(t, err)
	assert.False(t, out.Success)
	assert.Nil(t, out.User)
	assert.Contains(t, out.Error, "already exists")
}
