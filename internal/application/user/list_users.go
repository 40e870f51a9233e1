package user

import (
	"context"
	"fmt"

	"github.com/oksasatya/go-ddd-user-approval/internal/domain/repository"
)

type ListUsers struct {
	users repository.UserRepository
}

func NewListUsers(users repository.UserRepository) *ListUsers {
	return &ListUsers{users: users}
}

// Execute returns every user in storage order.
func (uc *ListUsers) Execute(ctx context.Context) ([]UserResponse, error) {
	users, err := uc.users.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return toResponses(users), nil
}
