package entity

import (
	"errors"
	"strings"
	"time"
)

// User is the aggregate root for user domain.
// The id is assigned by storage and cannot change afterwards.
type User struct {
	id        string
	name      string
	email     Email
	password  Password
	createdAt time.Time
	updatedAt time.Time
}

// NewUser builds a not yet persisted user.
func NewUser(name string, email Email, password Password, now time.Time) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name is required")
	}
	if email.IsZero() {
		return nil, invalid("email is required")
	}
	now = now.UTC()
	return &User{
		name:      name,
		email:     email,
		password:  password,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// RehydrateUser rebuilds a stored user as-is.
func RehydrateUser(id, name string, email Email, password Password, createdAt, updatedAt time.Time) *User {
	return &User{
		id:        id,
		name:      name,
		email:     email,
		password:  password,
		createdAt: createdAt.UTC(),
		updatedAt: updatedAt.UTC(),
	}
}

var errIDAssigned = errors.New("user id already assigned")

// AssignID sets the storage identity once.
func (u *User) AssignID(id string) error {
	if u.id != "" && u.id != id {
		return errIDAssigned
	}
	u.id = id
	return nil
}

func (u *User) ID() string           { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) Email() Email         { return u.email }
func (u *User) Password() Password   { return u.password }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// Changes lists optional profile edits; nil fields are left untouched.
type Changes struct {
	Name     *string
	Email    *Email
	Password *Password
}

// Apply applies every present change and refreshes updatedAt once if anything was applied.
func (u *User) Apply(c Changes, now time.Time) (bool, error) {
	name := u.name
	if c.Name != nil {
		name = strings.TrimSpace(*c.Name)
		if name == "" {
			return false, invalid("name must not be empty")
		}
	}
	if c.Email != nil && c.Email.IsZero() {
		return false, invalid("email is required")
	}

	applied := false
	if c.Name != nil {
		u.name = name
		applied = true
	}
	if c.Email != nil {
		u.email = *c.Email
		applied = true
	}
	if c.Password != nil {
		u.password = *c.Password
		applied = true
	}
	if applied {
		u.updatedAt = now.UTC()
	}
	return applied, nil
}

// VerifyPassword reports whether candidate matches the stored credential.
func (u *User) VerifyPassword(candidate string) bool {
	return u.password.Verify(candidate)
}
