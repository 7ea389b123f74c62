package app

import (
	"context"
	"testing"

	"bidboard/internal/domain/shared"
	"bidboard/internal/ports/inbound"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrationService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("register and authenticate", func(t *testing.T) {
		env := newTestEnv()

		user, err := env.registration.Register(ctx, inbound.RegisterRequest{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "correct horse",
		})
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.NotEmpty(t, user.PasswordHash)
		assert.NotEqual(t, "correct horse", user.PasswordHash)

		authed, err := env.registration.Authenticate(ctx, "alice", "correct horse")
		require.NoError(t, err)
		assert.Equal(t, user.ID, authed.ID)
	})

	t.Run("duplicate username", func(t *testing.T) {
		env := newTestEnv()

		_, err := env.registration.Register(ctx, inbound.RegisterRequest{
			Username: "alice",
			Password: "password-one",
		})
		require.NoError(t, err)

		_, err = env.registration.Register(ctx, inbound.RegisterRequest{
			Username: "alice",
			Password: "password-two",
		})
		require.ErrorIs(t, err, shared.ErrDuplicateUsername)
	})

	t.Run("validation", func(t *testing.T) {
		env := newTestEnv()

		_, err := env.registration.Register(ctx, inbound.RegisterRequest{
			Username: "",
			Password: "long enough",
		})
		require.ErrorIs(t, err, shared.ErrUsernameRequired)

		_, err = env.registration.Register(ctx, inbound.RegisterRequest{
			Username: "bob",
			Password: "short",
		})
		require.ErrorIs(t, err, shared.ErrWeakPassword)
	})
}

func TestRegistrationService_Authenticate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	_, err := env.registration.Register(ctx, inbound.RegisterRequest{
		Username: "alice",
		Password: "correct horse",
	})
	require.NoError(t, err)

	// Wrong password and unknown username look the same to the caller
	_, err = env.registration.Authenticate(ctx, "alice", "wrong")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)

	_, err = env.registration.Authenticate(ctx, "nobody", "correct horse")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}
