package app

import (
	"context"
	"strings"
	"testing"
	"time"

	"bidboard/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("append and list most recent first", func(t *testing.T) {
		env := newTestEnv()
		seller := env.seedUser("seller")
		alice := env.seedUser("alice")
		l := env.seedListing(seller, "10.00")

		first, err := env.comments.Add(ctx, alice.ID, l.ID, "nice lamp")
		require.NoError(t, err)

		// Make the second comment strictly newer
		first.CreatedAt = first.CreatedAt.Add(-time.Second)

		second, err := env.comments.Add(ctx, alice.ID, l.ID, "still nice")
		require.NoError(t, err)

		comments, err := env.comments.ListForListing(ctx, l.ID)
		require.NoError(t, err)
		require.Len(t, comments, 2)
		assert.Equal(t, second.ID, comments[0].ID)
		assert.Equal(t, first.ID, comments[1].ID)
	})

	t.Run("validation", func(t *testing.T) {
		env := newTestEnv()
		seller := env.seedUser("seller")
		alice := env.seedUser("alice")
		l := env.seedListing(seller, "10.00")

		_, err := env.comments.Add(ctx, alice.ID, l.ID, "")
		require.ErrorIs(t, err, shared.ErrCommentEmpty)

		_, err = env.comments.Add(ctx, alice.ID, l.ID, strings.Repeat("x", shared.MaxCommentLength+1))
		require.ErrorIs(t, err, shared.ErrCommentTooLong)
	})

	t.Run("unknown listing and user", func(t *testing.T) {
		env := newTestEnv()
		seller := env.seedUser("seller")
		l := env.seedListing(seller, "10.00")

		_, err := env.comments.Add(ctx, seller.ID, uuid.New(), "hello")
		require.ErrorIs(t, err, shared.ErrListingNotFound)

		_, err = env.comments.Add(ctx, uuid.New(), l.ID, "hello")
		require.ErrorIs(t, err, shared.ErrUserNotFound)
	})
}
