package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustEmail(t *testing.T, raw string) Email {
	t.Helper()
	e, err := ParseEmail(raw)
	require.NoError(t, err)
	return e
}

func TestNewUser(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	u, err := NewUser("  Ana ", mustEmail(t, "ana@x.com"), WrapPasswordHash("h"), now)
	require.NoError(t, err)

	assert.Empty(t, u.ID())
	assert.Equal(t, "Ana", u.Name())
	assert.Equal(t, now, u.CreatedAt())
	assert.Equal(t, now, u.UpdatedAt())

	_, err = NewUser(" ", mustEmail(t, "ana@x.com"), WrapPasswordHash("h"), now)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = NewUser("Ana", Email{}, WrapPasswordHash("h"), now)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestUser_AssignIDIsImmutable(t *testing.T) {
	u, err := NewUser("Ana", mustEmail(t, "ana@x.com"), WrapPasswordHash("h"), time.Now())
	require.NoError(t, err)

	require.NoError(t, u.AssignID("abc"))
	require.NoError(t, u.AssignID("abc"))
	assert.Error(t, u.AssignID("def"))
	assert.Equal(t, "abc", u.ID())
}

func TestUser_ApplyBumpsUpdatedAtOnce(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	u := RehydrateUser("1", "Ana", mustEmail(t, "ana@x.com"), WrapPasswordHash("old"), created, created)

	name := "Ana Maria"
	email := mustEmail(t, "maria@x.com")
	pwd := WrapPasswordHash("new")
	later := created.Add(time.Hour)

	applied, err := u.Apply(Changes{Name: &name, Email: &email, Password: &pwd}, later)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, "Ana Maria", u.Name())
	assert.Equal(t, "maria@x.com", u.Email().String())
	assert.Equal(t, "new", u.Password().Hash())
	assert.Equal(t, later, u.UpdatedAt())
	assert.Equal(t, created, u.CreatedAt())
}

func TestUser_ApplyNothingKeepsTimestamp(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	u := RehydrateUser("1", "Ana", mustEmail(t, "ana@x.com"), WrapPasswordHash("old"), created, created)

	applied, err := u.Apply(Changes{}, created.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, created, u.UpdatedAt())
}

func TestUser_ApplyRejectsWithoutPartialMutation(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	u := RehydrateUser("1", "Ana", mustEmail(t, "ana@x.com"), WrapPasswordHash("old"), created, created)

	name := "Bea"
	empty := Email{}
	_, err := u.Apply(Changes{Name: &name, Email: &empty}, created.Add(time.Hour))
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Equal(t, "Ana", u.Name())
	assert.Equal(t, created, u.UpdatedAt())

	blank := "  "
	_, err = u.Apply(Changes{Name: &blank}, created.Add(time.Hour))
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestErrorsMatchSentinels(t *testing.T) {
	assert.True(t, errors.Is(&NotFoundError{ID: "1"}, ErrNotFound))
	assert.True(t, errors.Is(&AlreadyExistsError{Email: "a@b.co"}, ErrAlreadyExists))
	assert.True(t, errors.Is(&InvalidInputError{Reason: "bad"}, ErrInvalidInput))
	assert.False(t, errors.Is(&NotFoundError{ID: "1"}, ErrAlreadyExists))
	assert.Equal(t, "user with id 1 not found", (&NotFoundError{ID: "1"}).Error())
}
