package locker

import (
	"context"
	"testing"
	"time"

	"bidboard/internal/domain/shared"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocker(t *testing.T) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisLocker(RedisLockerParams{
		RedisClient: client,
		Logger:      zerolog.Nop(),
	}), mr
}

func TestRedisLocker_LockAndUnlock(t *testing.T) {
	l, mr := newTestLocker(t)
	listingID := uuid.New()
	ctx := context.Background()

	token, err := l.Lock(ctx, listingID)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.True(t, mr.Exists(lockKey(listingID)))

	require.NoError(t, l.Unlock(ctx, listingID, token))
	assert.False(t, mr.Exists(lockKey(listingID)))
}

func TestRedisLocker_ContendedLockWaitsForRelease(t *testing.T) {
	l, _ := newTestLocker(t)
	listingID := uuid.New()
	ctx := context.Background()

	tokenA, err := l.Lock(ctx, listingID)
	require.NoError(t, err)

	type acquisition struct {
		token string
		err   error
	}
	acquired := make(chan acquisition, 1)
	go func() {
		token, err := l.Lock(ctx, listingID)
		acquired <- acquisition{token: token, err: err}
	}()

	select {
	case <-acquired:
		t.Fatal("second holder acquired the lock while it was held")
	case <-time.After(100 * time.Millisecond):
	}

	require.NoError(t, l.Unlock(ctx, listingID, tokenA))

	select {
	case got := <-acquired:
		require.NoError(t, got.err)
		require.NoError(t, l.Unlock(ctx, listingID, got.token))
	case <-time.After(2 * time.Second):
		t.Fatal("waiter never acquired the lock after release")
	}
}

func TestRedisLocker_CancelledWaiter(t *testing.T) {
	l, _ := newTestLocker(t)
	listingID := uuid.New()

	tokenA, err := l.Lock(context.Background(), listingID)
	require.NoError(t, err)
	defer l.Unlock(context.Background(), listingID, tokenA)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err = l.Lock(ctx, listingID)
	require.ErrorIs(t, err, shared.ErrListingLocked)
}

func TestRedisLocker_StaleTokenDoesNotReleaseCurrentLock(t *testing.T) {
	l, mr := newTestLocker(t)
	listingID := uuid.New()
	ctx := context.Background()

	staleToken, err := l.Lock(ctx, listingID)
	require.NoError(t, err)

	// TTL passes and the lock expires out from under the first holder
	mr.FastForward(lockTTL + time.Second)
	require.False(t, mr.Exists(lockKey(listingID)))

	currentToken, err := l.Lock(ctx, listingID)
	require.NoError(t, err)

	// The expired holder's release must leave the current acquisition
	// in place
	require.NoError(t, l.Unlock(ctx, listingID, staleToken))
	require.True(t, mr.Exists(lockKey(listingID)))

	stored, err := mr.Get(lockKey(listingID))
	require.NoError(t, err)
	assert.Equal(t, currentToken, stored)

	require.NoError(t, l.Unlock(ctx, listingID, currentToken))
	assert.False(t, mr.Exists(lockKey(listingID)))
}
