package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/oksasatya/go-ddd-user-approval/internal/domain/entity"
	"github.com/oksasatya/go-ddd-user-approval/internal/domain/repository"
)

// UserRepository keeps users in process memory, in insertion order.
// It enforces email uniqueness on write like the unique index of the Mongo collection.
type UserRepository struct {
	mu    sync.RWMutex
	order []string
	users map[string]*entity.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*entity.User)}
}

func clone(u *entity.User) *entity.User {
	return entity.RehydrateUser(u.ID(), u.Name(), u.Email(), u.Password(), u.CreatedAt(), u.UpdatedAt())
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return clone(u), nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email entity.Email) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.order {
		if u := r.users[id]; u.Email().Equal(email) {
			return clone(u), nil
		}
	}
	return nil, nil
}

func (r *UserRepository) FindAll(_ context.Context) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.User, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, clone(r.users[id]))
	}
	return out, nil
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.emailTakenLocked(u.Email(), "") {
		return &entity.AlreadyExistsError{Email: u.Email().String()}
	}
	id := uuid.NewString()
	if err := u.AssignID(id); err != nil {
		return err
	}
	r.users[id] = clone(u)
	r.order = append(r.order, id)
	return nil
}

func (r *UserRepository) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID()]; !ok {
		return nil
	}
	if r.emailTakenLocked(u.Email(), u.ID()) {
		return &entity.AlreadyExistsError{Email: u.Email().String()}
	}
	r.users[u.ID()] = clone(u)
	return nil
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return nil
	}
	delete(r.users, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *UserRepository) emailTakenLocked(email entity.Email, exceptID string) bool {
	for id, u := range r.users {
		if id != exceptID && u.Email().Equal(email) {
			return true
		}
	}
	return false
}

var _ repository.UserRepository = (*UserRepository)(nil)
