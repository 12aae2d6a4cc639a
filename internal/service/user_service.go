package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mstiles/blog-api/internal/domain"
	"github.com/mstiles/blog-api/internal/rules"
	"github.com/mstiles/blog-api/internal/service/auth"
	"github.com/mstiles/blog-api/internal/store"
)

// Credentials is the email/password pair every mutating request carries.
type Credentials struct {
	Email    string
	Password string
}

// RegisterInput is the payload for user registration.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// UserService provides the user use-cases: register and delete.
type UserService interface {
	// Register validates the input, hashes the password and persists a new
	// user. Returns *rules.ValidationError on bad input and
	// store.ErrEmailExists on a duplicate email.
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)

	// Delete authenticates the credentials and soft-deletes the matching
	// user. Returns auth.ErrNotAuthorized if the credentials do not
	// resolve to an active user.
	Delete(ctx context.Context, creds Credentials) error
}

// UserServiceImpl implements the UserService interface.
type UserServiceImpl struct {
	users    store.UserStore
	verifier auth.CredentialVerifier
	hasher   auth.PasswordHasher
	db       *sql.DB
	logger   *slog.Logger
}

// NewUserService creates a new UserService. db may be nil, in which case
// writes run without an explicit transaction (unit tests, stores that
// manage their own atomicity).
func NewUserService(
	users store.UserStore,
	verifier auth.CredentialVerifier,
	hasher auth.PasswordHasher,
	db *sql.DB,
	logger *slog.Logger,
) *UserServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		users:    users,
		verifier: verifier,
		hasher:   hasher,
		db:       db,
		logger:   logger.With(slog.String("component", "user_service")),
	}
}

var _ UserService = (*UserServiceImpl)(nil)

// Register implements UserService.Register.
func (s *UserServiceImpl) Register(
	ctx context.Context,
	in RegisterInput,
) (*domain.User, error) {
	if err := validateRegisterInput(in); err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := domain.NewUser(in.Name, in.Email, hashed)
	if err != nil {
		return nil, err
	}

	err = s.runWrite(ctx, func(ctx context.Context, users store.UserStore) error {
		return users.Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("attempted to register existing email")
		} else {
			s.logger.Error("failed to save user", "error", err)
		}
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Delete implements UserService.Delete.
func (s *UserServiceImpl) Delete(ctx context.Context, creds Credentials) error {
	user, err := s.verifier.Verify(ctx, creds.Email, creds.Password)
	if err != nil {
		return err
	}

	err = s.runWrite(ctx, func(ctx context.Context, users store.UserStore) error {
		return users.SoftDelete(ctx, user.ID)
	})
	if err != nil {
		// Deleted between the credential check and the write: already
		// indistinguishable from bad credentials at the boundary.
		if errors.Is(err, store.ErrUserNotFound) {
			return auth.ErrNotAuthorized
		}
		s.logger.Error("failed to soft-delete user", "error", err, "user_id", user.ID)
		return err
	}

	s.logger.Info("user deleted", "user_id", user.ID)
	return nil
}

// runWrite executes a single write, inside an explicit transaction when a
// database handle is present.
func (s *UserServiceImpl) runWrite(
	ctx context.Context,
	fn func(ctx context.Context, users store.UserStore) error,
) error {
	if s.db == nil {
		return fn(ctx, s.users)
	}
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, s.users.WithTx(tx))
	})
}

// validateRegisterInput runs the field rules for registration.
// Name, email and password are each required and limited to the varchar
// column length.
func validateRegisterInput(in RegisterInput) error {
	if err := rules.Validate("name", in.Name, rules.Varchar, rules.Required); err != nil {
		return err
	}
	if err := rules.Validate("email", in.Email, rules.Varchar, rules.Required); err != nil {
		return err
	}
	return rules.Validate("password", in.Password, rules.Varchar, rules.Required)
}
