package repository

import (
	"context"

	"github.com/oksasatya/go-ddd-user-approval/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
// Finders return (nil, nil) when nothing matches; errors are storage faults only.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email entity.Email) (*entity.User, error)
	FindAll(ctx context.Context) ([]*entity.User, error)
	// Create persists u and assigns its id.
	Create(ctx context.Context, u *entity.User) error
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id string) error
}
