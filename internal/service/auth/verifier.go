package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mstiles/blog-api/internal/domain"
	"github.com/mstiles/blog-api/internal/platform/logger"
	"github.com/mstiles/blog-api/internal/store"
)

// CredentialVerifier checks a claimed email/password pair against stored
// user records. Every mutating request runs through it: there is no session
// or token state anywhere in the system.
type CredentialVerifier interface {
	// Verify returns the matching active user, or ErrNotAuthorized.
	// Storage failures other than "not found" are returned as-is so the
	// caller can distinguish an outage from a bad credential.
	Verify(ctx context.Context, email, password string) (*domain.User, error)
}

// Verifier is the production CredentialVerifier backed by a UserStore and
// a PasswordVerifier.
type Verifier struct {
	users    store.UserStore
	compare  PasswordVerifier
	baseLog  *slog.Logger
}

// NewVerifier creates a Verifier. If log is nil, the default logger is used.
func NewVerifier(users store.UserStore, compare PasswordVerifier, log *slog.Logger) *Verifier {
	if log == nil {
		log = slog.Default()
	}
	return &Verifier{
		users:   users,
		compare: compare,
		baseLog: log.With(slog.String("component", "credential_verifier")),
	}
}

var _ CredentialVerifier = (*Verifier)(nil)

// Verify implements CredentialVerifier.
// Unknown email, wrong password and soft-deleted user all resolve to
// ErrNotAuthorized; the log records the real reason, the caller never
// learns it.
func (v *Verifier) Verify(ctx context.Context, email, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, v.baseLog)

	user, err := v.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("credential check failed: unknown email")
			return nil, ErrNotAuthorized
		}
		log.Error("credential check failed: user lookup error",
			slog.String("error", err.Error()))
		return nil, err
	}

	if err := v.compare.Compare(user.HashedPassword, password); err != nil {
		log.Debug("credential check failed: password mismatch",
			slog.String("user_id", user.ID.String()))
		return nil, ErrNotAuthorized
	}

	if !user.Active() {
		log.Debug("credential check failed: user soft-deleted",
			slog.String("user_id", user.ID.String()))
		return nil, ErrNotAuthorized
	}

	return user, nil
}
