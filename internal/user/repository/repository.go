package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/AlibekovAA/postboard/internal/observability/metrics"
	"github.com/AlibekovAA/postboard/internal/user/domain"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
)

type Repository interface {
	Create(ctx context.Context, user domain.User) error
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByID(ctx context.Context, id domain.ID) (domain.User, error)
}

// MemoryRepository holds the process-wide user state: the primary map and
// an email index for O(1) uniqueness checks. Every operation runs under the
// repository lock in full, so check-then-insert cannot interleave.
type MemoryRepository struct {
	mu         sync.RWMutex
	users      map[domain.ID]domain.User
	emailIndex map[string]domain.ID
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:      make(map[domain.ID]domain.User),
		emailIndex: make(map[string]domain.ID),
	}
}

func (r *MemoryRepository) Create(_ context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.emailIndex[user.Email]; exists {
		return ErrEmailAlreadyExists
	}

	r.users[user.ID] = user
	r.emailIndex[user.Email] = user.ID

	metrics.StoredUsers.Set(float64(len(r.users)))

	return nil
}

func (r *MemoryRepository) FindByEmail(_ context.Context, email string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.emailIndex[email]
	if !ok {
		return domain.User{}, ErrUserNotFound
	}

	return r.users[id], nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id domain.ID) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return domain.User{}, ErrUserNotFound
	}

	return user, nil
}

// Len reports the number of stored users.
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}
