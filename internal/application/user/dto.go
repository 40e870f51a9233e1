package user

import (
	"time"

	"github.com/oksasatya/go-ddd-user-approval/internal/domain/entity"
)

// CreateUserInput is also the userData payload carried by the approval workflow.
type CreateUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserInput holds optional edits; nil fields are left untouched.
type UpdateUserInput struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the public projection of a user. It never carries the password hash.
type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// ValidationResult reports a pre-registration check as data rather than as an error.
// Reason is set iff IsValid is false; UserData is echoed iff IsValid is true.
type ValidationResult struct {
	IsValid  bool             `json:"isValid"`
	Reason   string           `json:"reason,omitempty"`
	UserData *CreateUserInput `json:"userData,omitempty"`
}

func toResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID(),
		Name:      u.Name(),
		Email:     u.Email().String(),
		CreatedAt: u.CreatedAt().Format(time.RFC3339Nano),
		UpdatedAt: u.UpdatedAt().Format(time.RFC3339Nano),
	}
}

func toResponses(users []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toResponse(u))
	}
	return out
}
