package user

import (
	"context"
	"fmt"

	"github.com/oksasatya/go-ddd-user-approval/internal/domain/entity"
	"github.com/oksasatya/go-ddd-user-approval/internal/domain/repository"
)

type Login struct {
	users  repository.UserRepository
	issuer TokenIssuer
}

func NewLogin(users repository.UserRepository, issuer TokenIssuer) *Login {
	return &Login{users: users, issuer: issuer}
}

// Execute returns entity.ErrInvalidCredentials both for an unknown email and a wrong password.
func (uc *Login) Execute(ctx context.Context, in LoginInput) (*LoginResponse, error) {
	email, err := entity.ParseEmail(in.Email)
	if err != nil {
		return nil, entity.ErrInvalidCredentials
	}
	u, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if u == nil || !u.VerifyPassword(in.Password) {
		return nil, entity.ErrInvalidCredentials
	}

	token, exp, err := uc.issuer.Issue(u.ID(), u.Email().String(), u.Name())
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &LoginResponse{Token: token, ExpiresAt: exp, User: toResponse(u)}, nil
}
