package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/oksasatya/go-ddd-user-approval/internal/domain/entity"
	"github.com/oksasatya/go-ddd-user-approval/internal/domain/repository"
)

type CreateUser struct {
	users repository.UserRepository
	clock Clock
}

func NewCreateUser(users repository.UserRepository, clock Clock) *CreateUser {
	return &CreateUser{users: users, clock: clock}
}

// Execute registers a new user. The email lookup runs before hashing so a duplicate costs no
// bcrypt work. The lookup and the insert are not atomic; storage uniqueness covers the race.
func (uc *CreateUser) Execute(ctx context.Context, in CreateUserInput) (*UserResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, &entity.InvalidInputError{Reason: "name is required"}
	}
	email, err := entity.ParseEmail(in.Email)
	if err != nil {
		return nil, err
	}

	existing, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if existing != nil {
		return nil, &entity.AlreadyExistsError{Email: email.String()}
	}

	pwd, err := entity.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u, err := entity.NewUser(in.Name, email, pwd, uc.clock.now())
	if err != nil {
		return nil, err
	}
	if err := uc.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	resp := toResponse(u)
	return &resp, nil
}
