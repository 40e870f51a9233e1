package entity

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-ddd-user-approval/pkg/helpers"
)

// MinPasswordLength is the shortest plaintext accepted by HashPassword.
const MinPasswordLength = 6

// Password holds a one-way bcrypt hash; the plaintext is never retained.
type Password struct {
	hash string
}

// HashPassword derives a salted hash from plain.
func HashPassword(plain string) (Password, error) {
	if utf8.RuneCountInString(plain) < MinPasswordLength {
		return Password{}, invalid(fmt.Sprintf("password must have at least %d characters", MinPasswordLength))
	}
	h, err := helpers.HashPassword(plain)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return Password{}, invalid("password must have at most 72 bytes")
	}
	if err != nil {
		return Password{}, fmt.Errorf("hash password: %w", err)
	}
	return Password{hash: h}, nil
}

// WrapPasswordHash rehydrates a credential from storage without validation.
func WrapPasswordHash(hash string) Password {
	return Password{hash: hash}
}

// Verify compares candidate against the stored hash in constant time.
func (p Password) Verify(candidate string) bool {
	if p.hash == "" {
		return false
	}
	return helpers.CompareHashAndPassword(p.hash, candidate)
}

func (p Password) Hash() string { return p.hash }
