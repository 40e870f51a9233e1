package user

import (
	"context"
	"time"
)

// TokenIssuer signs a time-limited token whose subject is the user id.
type TokenIssuer interface {
	Issue(subject, email, name string) (token string, expiresAt time.Time, err error)
}

// UserSearcher runs full text queries against a search projection of users.
type UserSearcher interface {
	Search(ctx context.Context, query string, size int) ([]UserResponse, error)
}

// Clock returns the current time; use cases default to time.Now.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}
