package entity

import (
	"regexp"
	"strings"
)

// local@label(.label)+ with non-empty labels; whitespace anywhere is rejected
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@.]+(\.[^\s@.]+)+$`)

// Email is a normalized (lowercase) address. The zero value is not a valid Email.
type Email struct {
	value string
}

// ParseEmail validates raw against the local@domain.tld shape and lowercases it. Surrounding
// whitespace is not trimmed; it makes the address invalid.
func ParseEmail(raw string) (Email, error) {
	normalized := strings.ToLower(raw)
	if !emailPattern.MatchString(normalized) {
		return Email{}, invalid("invalid email format")
	}
	return Email{value: normalized}, nil
}

// IsValidEmail reports whether raw would be accepted by ParseEmail.
func IsValidEmail(raw string) bool {
	_, err := ParseEmail(raw)
	return err == nil
}

func (e Email) String() string { return e.value }

func (e Email) Equal(other Email) bool { return e.value == other.value }

func (e Email) IsZero() bool { return e.value == "" }
