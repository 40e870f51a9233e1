package user

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/oksasatya/go-ddd-user-approval/internal/domain/entity"
	"github.com/oksasatya/go-ddd-user-approval/internal/domain/repository"
)

const (
	ReasonInvalidEmail     = "Invalid email format"
	ReasonNameTooShort     = "Name must have at least 2 characters"
	ReasonPasswordTooShort = "Password must have at least 6 characters"
	ReasonEmailRegistered  = "Email already registered"
	minValidatedNameLength = 2
)

// ValidateUser is the pre-registration check used by the approval workflow.
// A failed check is a result, not an error; only storage faults are returned as errors.
type ValidateUser struct {
	users repository.UserRepository
}

func NewValidateUser(users repository.UserRepository) *ValidateUser {
	return &ValidateUser{users: users}
}

func (uc *ValidateUser) Execute(ctx context.Context, in CreateUserInput) (ValidationResult, error) {
	email, err := entity.ParseEmail(in.Email)
	if err != nil {
		return ValidationResult{Reason: ReasonInvalidEmail}, nil
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.Name)) < minValidatedNameLength {
		return ValidationResult{Reason: ReasonNameTooShort}, nil
	}
	if utf8.RuneCountInString(in.Password) < entity.MinPasswordLength {
		return ValidationResult{Reason: ReasonPasswordTooShort}, nil
	}

	existing, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		return ValidationResult{}, fmt.Errorf("find user by email: %w", err)
	}
	if existing != nil {
		return ValidationResult{Reason: ReasonEmailRegistered}, nil
	}

	data := in
	return ValidationResult{IsValid: true, UserData: &data}, nil
}
