package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mstiles/blog-api/internal/domain"
	"github.com/mstiles/blog-api/internal/mocks"
	"github.com/mstiles/blog-api/internal/service/auth"
)

func registerUser(t *testing.T, users *mocks.UserStore, name, email, password string) *domain.User {
	t.Helper()

	hashed, err := auth.NewBcryptHasher(bcrypt.MinCost).Hash(password)
	require.NoError(t, err)

	user, err := domain.NewUser(name, email, hashed)
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func TestVerify(t *testing.T) {
	users := mocks.NewUserStore()
	active := registerUser(t, users, "Ann", "a@x.com", "secret")

	deleted := registerUser(t, users, "Bob", "b@x.com", "secret")
	require.NoError(t, users.SoftDelete(context.Background(), deleted.ID))

	verifier := auth.NewVerifier(users, auth.NewBcryptVerifier(), nil)

	t.Run("valid_credentials", func(t *testing.T) {
		user, err := verifier.Verify(context.Background(), "a@x.com", "secret")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, active.ID, user.ID)
	})

	// Unknown email, wrong password and soft-deleted user must be
	// indistinguishable from the caller's perspective.
	failures := []struct {
		name     string
		email    string
		password string
	}{
		{name: "unknown_email", email: "nobody@x.com", password: "secret"},
		{name: "wrong_password", email: "a@x.com", password: "wrong"},
		{name: "soft_deleted_user", email: "b@x.com", password: "secret"},
	}

	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			user, err := verifier.Verify(context.Background(), tt.email, tt.password)
			assert.Nil(t, user)
			assert.ErrorIs(t, err, auth.ErrNotAuthorized)
			assert.EqualError(t, err, auth.ErrNotAuthorized.Error(),
				"failure modes must not be distinguishable by message")
		})
	}
}

func TestVerifyStorageFailureIsNotNotAuthorized(t *testing.T) {
	users := mocks.NewUserStore()
	users.GetErr = errors.New("connection refused")

	verifier := auth.NewVerifier(users, auth.NewBcryptVerifier(), nil)

	user, err := verifier.Verify(context.Background(), "a@x.com", "secret")
	assert.Nil(t, user)
	require.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrNotAuthorized,
		"an outage must surface as an internal failure, not a credential failure")
}

func TestVerifyUserDeletedAfterCheckWindow(t *testing.T) {
	// A user deleted mid-flight still fails closed: DeletedAt wins over a
	// correct password.
	users := mocks.NewUserStore()
	user := registerUser(t, users, "Ann", "a@x.com", "secret")

	verifier := auth.NewVerifier(users, auth.NewBcryptVerifier(), nil)

	got, err := verifier.Verify(context.Background(), "a@x.com", "secret")
	require.NoError(t, err)
	require.NotNil(t, got)

	require.NoError(t, users.SoftDelete(context.Background(), user.ID))

	got, err = verifier.Verify(context.Background(), "a@x.com", "secret")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, auth.ErrNotAuthorized)
}
