package user

import (
	"context"
	"fmt"

	"github.com/oksasatya/go-ddd-user-approval/internal/domain/entity"
	"github.com/oksasatya/go-ddd-user-approval/internal/domain/repository"
)

type GetUser struct {
	users repository.UserRepository
}

func NewGetUser(users repository.UserRepository) *GetUser {
	return &GetUser{users: users}
}

func (uc *GetUser) Execute(ctx context.Context, id string) (*UserResponse, error) {
	u, err := uc.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	if u == nil {
		return nil, &entity.NotFoundError{ID: id}
	}
	resp := toResponse(u)
	return &resp, nil
}
