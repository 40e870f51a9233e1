package approval

import (
	"context"

	"github.com/oksasatya/go-ddd-user-approval/internal/application/user"
)

// ValidateInput and RegisterInput are the task payloads, shaped {userData}.
type ValidateInput struct {
	UserData user.CreateUserInput `json:"userData"`
}

type RegisterInput struct {
	UserData user.CreateUserInput `json:"userData"`
}

// RegisterOutput reports registration as data. Success=false is treated as a fault.
type RegisterOutput struct {
	Success bool               `json:"success"`
	User    *user.UserResponse `json:"user,omitempty"`
	Error   string             `json:"error,omitempty"`
}

type Validator interface {
	Validate(ctx context.Context, in ValidateInput) (user.ValidationResult, error)
}

type Registrar interface {
	Register(ctx context.Context, in RegisterInput) (RegisterOutput, error)
}

// ValidateTask runs the Validate use case.
type ValidateTask struct {
	uc *user.ValidateUser
}

func NewValidateTask(uc *user.ValidateUser) *ValidateTask {
	return &ValidateTask{uc: uc}
}

func (t *ValidateTask) Validate(ctx context.Context, in ValidateInput) (user.ValidationResult, error) {
	return t.uc.Execute(ctx, in.UserData)
}

// RegisterTask runs the Create use case and folds every error into the output.
type RegisterTask struct {
	uc *user.CreateUser
}

func NewRegisterTask(uc *user.CreateUser) *RegisterTask {
	return &RegisterTask{uc: uc}
}

func (t *RegisterTask) Register(ctx context.Context, in RegisterInput) (RegisterOutput, error) {
	out, err := t.uc.Execute(ctx, in.UserData)
	if err != nil {
		return RegisterOutput{Success: false, Error: err.Error()}, nil
	}
	return RegisterOutput{Success: true, User: out}, nil
}
