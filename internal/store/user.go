package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/mstiles/blog-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store. The user's password must
	// already be hashed; the store never sees plaintext credentials.
	// Returns ErrEmailExists if the email is already taken.
	// Returns validation errors from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID, including soft-deleted
	// users. Callers that care about liveness must check DeletedAt.
	// Returns ErrUserNotFound if no such row exists.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address, including
	// soft-deleted users. The credential verifier relies on this so that
	// a deleted account is indistinguishable from a wrong password at the
	// API boundary while still being observable internally.
	// Returns ErrUserNotFound if no such row exists.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// SoftDelete marks the user as deleted by setting deleted_at.
	// The row is never removed. Returns ErrUserNotFound if the user does
	// not exist or is already soft-deleted.
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a UserStore bound to the provided transaction so
	// multiple operations can share one transaction. The transaction is
	// created and managed by the caller.
	WithTx(tx *sql.Tx) UserStore
}
