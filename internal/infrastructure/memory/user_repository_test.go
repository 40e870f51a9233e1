package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-user-approval/internal/domain/entity"
)

func newUser(t *testing.T, name, email string) *entity.User {
	t.Helper()
	e, err := entity.ParseEmail(email)
	require.NoError(t, err)
	u, err := entity.NewUser(name, e, entity.WrapPasswordHash("hash"), time.Now())
	require.NoError(t, err)
	return u
}

func TestUserRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	ana := newUser(t, "Ana", "ana@x.com")
	require.NoError(t, repo.Create(ctx, ana))
	require.NotEmpty(t, ana.ID())

	bob := newUser(t, "Bob", "bob@x.com")
	require.NoError(t, repo.Create(ctx, bob))

	got, err := repo.FindByID(ctx, ana.ID())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ana", got.Name())

	byEmail, err := repo.FindByEmail(ctx, bob.Email())
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, bob.ID(), byEmail.ID())

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, ana.ID(), all[0].ID())
	assert.Equal(t, bob.ID(), all[1].ID())

	require.NoError(t, repo.Delete(ctx, ana.ID()))
	got, err = repo.FindByID(ctx, ana.ID())
	require.NoError(t, err)
	assert.Nil(t, got)

	all, _ = repo.FindAll(ctx)
	assert.Len(t, all, 1)
}

func TestUserRepository_AbsenceIsNotAnError(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	u, err := repo.FindByID(ctx, "missing")
	assert.NoError(t, err)
	assert.Nil(t, u)

	e, _ := entity.ParseEmail("nobody@x.com")
	u, err = repo.FindByEmail(ctx, e)
	assert.NoError(t, err)
	assert.Nil(t, u)

	assert.NoError(t, repo.Delete(ctx, "missing"))
}

func TestUserRepository_UniqueEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	require.NoError(t, repo.Create(ctx, newUser(t, "Ana", "ana@x.com")))
	err := repo.Create(ctx, newUser(t, "Other", "ANA@x.com"))
	assert.True(t, errors.Is(err, entity.ErrAlreadyExists))
}

func TestUserRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	ana := newUser(t, "Ana", "ana@x.com")
	require.NoError(t, repo.Create(ctx, ana))

	got, _ := repo.FindByID(ctx, ana.ID())
	name := "Changed"
	_, err := got.Apply(entity.Changes{Name: &name}, time.Now())
	require.NoError(t, err)

	again, _ := repo.FindByID(ctx, ana.ID())
	assert.Equal(t, "Ana", again.Name())

	require.NoError(t, repo.Update(ctx, got))
	again, _ = repo.FindByID(ctx, ana.ID())
	assert.Equal(t, "Changed", again.Name())
}
