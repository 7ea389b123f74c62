package locker

import (
	"context"
	"fmt"
	"time"

	"bidboard/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	// lockTTL caps how long a crashed holder can keep a listing locked
	lockTTL = 5 * time.Second

	// retryInterval is the poll interval while waiting for a held lock
	retryInterval = 25 * time.Millisecond
)

// RedisLocker serializes bid submission per listing across service
// instances using a SETNX lock with a TTL. Lock hands the caller a
// random per-acquisition token; Unlock releases only the acquisition
// that token belongs to, so a holder that outlived the TTL cannot
// delete a lock someone else has since taken.
type RedisLocker struct {
	client *redis.Client
	logger zerolog.Logger
}

type RedisLockerParams struct {
	RedisClient *redis.Client
	Logger      zerolog.Logger
}

// NewRedisLocker creates a new Redis-backed listing locker
func NewRedisLocker(params RedisLockerParams) *RedisLocker {
	return &RedisLocker{
		client: params.RedisClient,
		logger: params.Logger.With().Str("component", "redis_locker").Logger(),
	}
}

// Lock acquires the per-listing lock, polling until it is held or ctx
// is done, and returns the token that releases this acquisition
func (l *RedisLocker) Lock(ctx context.Context, listingID uuid.UUID) (string, error) {
	key := lockKey(listingID)
	token := uuid.New().String()

	for {
		ok, err := l.client.SetNX(ctx, key, token, lockTTL).Result()
		if err != nil {
			l.logger.Error().Err(err).Str("listing_id", listingID.String()).Msg("Failed to acquire listing lock")
			return "", fmt.Errorf("failed to acquire listing lock: %w", err)
		}

		if ok {
			l.logger.Debug().Str("listing_id", listingID.String()).Msg("Listing lock acquired")
			return token, nil
		}

		select {
		case <-time.After(retryInterval):
		case <-ctx.Done():
			return "", shared.ErrListingLocked
		}
	}
}

// Unlock releases the acquisition identified by token
func (l *RedisLocker) Unlock(ctx context.Context, listingID uuid.UUID, token string) error {
	// Release only if the stored token is still ours; a lock that
	// expired and was re-acquired elsewhere must not be deleted.
	const script = `
		if redis.call("GET", KEYS[1]) == ARGV[1] then
			return redis.call("DEL", KEYS[1])
		end
		return 0
	`

	if err := l.client.Eval(ctx, script, []string{lockKey(listingID)}, token).Err(); err != nil {
		l.logger.Error().Err(err).Str("listing_id", listingID.String()).Msg("Failed to release listing lock")
		return fmt.Errorf("failed to release listing lock: %w", err)
	}

	l.logger.Debug().Str("listing_id", listingID.String()).Msg("Listing lock released")
	return nil
}

func lockKey(listingID uuid.UUID) string {
	return fmt.Sprintf("listing-lock:%s", listingID.String())
}
