package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for User
var (
	ErrEmptyUserID         = fmt.Errorf("%w: user ID cannot be empty", ErrValidation)
	ErrEmptyUserName       = fmt.Errorf("%w: user name cannot be empty", ErrValidation)
	ErrEmptyEmail          = fmt.Errorf("%w: email cannot be empty", ErrValidation)
	ErrEmptyHashedPassword = fmt.Errorf("%w: hashed password cannot be empty", ErrValidation)
)

// User represents a registered author on the blog platform.
// There is no session or token state: every mutating request re-proves
// identity with the user's email and password.
type User struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	HashedPassword string     `json:"-"` // Never expose password hash in JSON
	CreatedAt      time.Time  `json:"created_at"`
	DeletedAt      *time.Time `json:"-"` // Soft-delete marker; nil means active
}

// NewUser creates a new User with the given name, email and already-hashed
// password. It generates a new UUID for the user ID and sets the creation
// timestamp. Returns an error if validation fails.
func NewUser(name, email, hashedPassword string) (*User, error) {
	user := &User{
		ID:             uuid.New(),
		Name:           name,
		Email:          email,
		HashedPassword: hashedPassword,
		CreatedAt:      time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Name == "" {
		return ErrEmptyUserName
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}

	return nil
}

// Active reports whether the user has not been soft-deleted.
func (u *User) Active() bool {
	return u.DeletedAt == nil
}

// SoftDelete marks the user as deleted at the given time.
// The record is never removed from storage.
func (u *User) SoftDelete(at time.Time) {
	t := at.UTC()
	u.DeletedAt = &t
}
