package mocks

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mstiles/blog-api/internal/domain"
	"github.com/mstiles/blog-api/internal/store"
)

// UserStore is an in-memory store.UserStore for tests.
type UserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User

	// CreateErr, when set, is returned by Create to simulate storage
	// failures. The other *Err fields work the same way.
	CreateErr     error
	GetErr        error
	SoftDeleteErr error
}

// NewUserStore creates an empty in-memory user store.
func NewUserStore() *UserStore {
	return &UserStore{users: make(map[uuid.UUID]*domain.User)}
}

var _ store.UserStore = (*UserStore)(nil)

// Create implements store.UserStore.Create.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	if s.CreateErr != nil {
		return s.CreateErr
	}
	if err := user.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return fmt.Errorf("%w: %s", store.ErrEmailExists, user.Email)
		}
	}

	copied := *user
	s.users[user.ID] = &copied
	return nil
}

// GetByID implements store.UserStore.GetByID.
func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if s.GetErr != nil {
		return nil, s.GetErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

// GetByEmail implements store.UserStore.GetByEmail.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if s.GetErr != nil {
		return nil, s.GetErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// SoftDelete implements store.UserStore.SoftDelete.
func (s *UserStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	if s.SoftDeleteErr != nil {
		return s.SoftDeleteErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok || user.DeletedAt != nil {
		return store.ErrUserNotFound
	}
	user.SoftDelete(time.Now().UTC())
	return nil
}

// WithTx implements store.UserStore.WithTx. The in-memory store has no
// transactions; it returns itself.
func (s *UserStore) WithTx(tx *sql.Tx) store.UserStore {
	return s
}
