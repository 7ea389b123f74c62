package outbound

import (
	"context"

	"bidboard/internal/domain/bid"
	"bidboard/internal/domain/listing"
	"bidboard/internal/domain/shared"

	"github.com/google/uuid"
)

// ListingRepository defines the interface for listing data operations
type ListingRepository interface {
	// Create creates a new listing
	Create(ctx context.Context, listing *listing.Listing) error

	// GetByID retrieves a listing by ID
	GetByID(ctx context.Context, id uuid.UUID) (*listing.Listing, error)

	// ListActive retrieves active listings, most recent first
	ListActive(ctx context.Context) ([]*listing.Listing, error)

	// ListActiveByCategory retrieves active listings in a category, most recent first
	ListActiveByCategory(ctx context.Context, categoryID uuid.UUID) ([]*listing.Listing, error)

	// SetActive sets the listing's active flag
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

// BidRepository defines the interface for bid data operations
type BidRepository interface {
	// AppendGuarded appends a bid inside a transaction that locks the
	// listing row and re-validates the active flag and current price,
	// so two stale reads cannot both land
	AppendGuarded(ctx context.Context, bid *bid.Bid) error

	// GetByListingID retrieves all bids for a listing, highest first
	GetByListingID(ctx context.Context, listingID uuid.UUID) ([]*bid.Bid, error)

	// GetHighestBid retrieves the highest bid for a listing
	GetHighestBid(ctx context.Context, listingID uuid.UUID) (*bid.Bid, error)
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	// Append appends a comment to a listing
	Append(ctx context.Context, comment *shared.Comment) error

	// GetByListingID retrieves comments for a listing, most recent first
	GetByListingID(ctx context.Context, listingID uuid.UUID) ([]*shared.Comment, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *shared.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*shared.User, error)

	// GetByUsername retrieves a user by username
	GetByUsername(ctx context.Context, username string) (*shared.User, error)
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	// Create creates a new category
	Create(ctx context.Context, category *shared.Category) error

	// GetByID retrieves a category by ID
	GetByID(ctx context.Context, id uuid.UUID) (*shared.Category, error)

	// List retrieves all categories ordered by name
	List(ctx context.Context) ([]*shared.Category, error)
}

// WatchlistRepository defines the interface for the user/listing watch relation
type WatchlistRepository interface {
	// Add inserts the (user, listing) pair
	Add(ctx context.Context, userID, listingID uuid.UUID) error

	// Remove deletes the (user, listing) pair; removing an absent pair is a no-op
	Remove(ctx context.Context, userID, listingID uuid.UUID) error

	// Exists reports whether the (user, listing) pair is present
	Exists(ctx context.Context, userID, listingID uuid.UUID) (bool, error)

	// ListByUser retrieves the listings a user watches
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*listing.Listing, error)
}
