package outbound

import (
	"context"

	"github.com/google/uuid"
)

// ListingLocker serializes bid submission per listing across service
// instances. Lock blocks until the lock is held or ctx is done.
type ListingLocker interface {
	// Lock acquires the per-listing lock and returns the release token
	// for this acquisition
	Lock(ctx context.Context, listingID uuid.UUID) (string, error)

	// Unlock releases the acquisition identified by token
	Unlock(ctx context.Context, listingID uuid.UUID, token string) error
}
