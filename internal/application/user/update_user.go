package user

import (
	"context"
	"fmt"

	"github.com/oksasatya/go-ddd-user-approval/internal/domain/entity"
	"github.com/oksasatya/go-ddd-user-approval/internal/domain/repository"
)

type UpdateUser struct {
	users repository.UserRepository
	clock Clock
}

func NewUpdateUser(users repository.UserRepository, clock Clock) *UpdateUser {
	return &UpdateUser{users: users, clock: clock}
}

// Execute applies the present fields of in. updatedAt moves once per call, not per field.
func (uc *UpdateUser) Execute(ctx context.Context, id string, in UpdateUserInput) (*UserResponse, error) {
	u, err := uc.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	if u == nil {
		return nil, &entity.NotFoundError{ID: id}
	}

	var changes entity.Changes
	if in.Name != nil {
		changes.Name = in.Name
	}
	if in.Email != nil {
		email, err := entity.ParseEmail(*in.Email)
		if err != nil {
			return nil, err
		}
		owner, err := uc.users.FindByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("find user by email: %w", err)
		}
		if owner != nil && owner.ID() != u.ID() {
			return nil, &entity.AlreadyExistsError{Email: email.String()}
		}
		changes.Email = &email
	}
	if in.Password != nil {
		pwd, err := entity.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		changes.Password = &pwd
	}

	applied, err := u.Apply(changes, uc.clock.now())
	if err != nil {
		return nil, err
	}
	if applied {
		if err := uc.users.Update(ctx, u); err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
	}

	resp := toResponse(u)
	return &resp, nil
}
