package user

import (
	"context"
	"fmt"

	"github.com/oksasatya/go-ddd-user-approval/internal/domain/entity"
	"github.com/oksasatya/go-ddd-user-approval/internal/domain/repository"
)

type DeleteUser struct {
	users repository.UserRepository
}

func NewDeleteUser(users repository.UserRepository) *DeleteUser {
	return &DeleteUser{users: users}
}

func (uc *DeleteUser) Execute(ctx context.Context, id string) error {
	u, err := uc.users.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find user by id: %w", err)
	}
	if u == nil {
		return &entity.NotFoundError{ID: id}
	}
	if err := uc.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
