package inbound

import (
	"context"

	"bidboard/internal/domain/bid"
	"bidboard/internal/domain/listing"
	"bidboard/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WatchState is the resulting side of a watchlist toggle
type WatchState string

const (
	Watching    WatchState = "watching"
	NotWatching WatchState = "not_watching"
)

// ListingService defines the interface for listing lifecycle operations
type ListingService interface {
	// CreateListing creates a new active listing
	CreateListing(ctx context.Context, req CreateListingRequest) (*listing.Listing, error)

	// GetListing retrieves a listing with its derived price and winner
	GetListing(ctx context.Context, listingID uuid.UUID) (*ListingView, error)

	// ListActive retrieves active listings, most recent first
	ListActive(ctx context.Context) ([]*listing.Listing, error)

	// ListByCategory retrieves active listings in a category
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*listing.Listing, error)

	// ListCategories retrieves all categories ordered by name
	ListCategories(ctx context.Context) ([]*shared.Category, error)

	// CloseListing transitions a listing from active to closed.
	// Only the author may close; repeat closes are a no-op success.
	CloseListing(ctx context.Context, listingID, requesterID uuid.UUID) error
}

// BidService defines the interface for bid operations
type BidService interface {
	// PlaceBid validates and records a bid against a listing's current price
	PlaceBid(ctx context.Context, req PlaceBidRequest) (*bid.Bid, error)

	// ListBids retrieves bids for a listing, highest first
	ListBids(ctx context.Context, listingID uuid.UUID) ([]*bid.Bid, error)

	// HighestBid retrieves the current winning bid for a listing
	HighestBid(ctx context.Context, listingID uuid.UUID) (*bid.Bid, error)
}

// WatchlistService defines the interface for watchlist operations
type WatchlistService interface {
	// Toggle flips the (user, listing) watch pair and returns the resulting state
	Toggle(ctx context.Context, userID, listingID uuid.UUID) (WatchState, error)

	// Remove drops the pair regardless of prior state
	Remove(ctx context.Context, userID, listingID uuid.UUID) error

	// List retrieves the listings a user watches
	List(ctx context.Context, userID uuid.UUID) ([]*listing.Listing, error)
}

// CommentService defines the interface for comment operations
type CommentService interface {
	// Add appends a comment to a listing
	Add(ctx context.Context, userID, listingID uuid.UUID, body string) (*shared.Comment, error)

	// ListForListing retrieves comments for a listing, most recent first
	ListForListing(ctx context.Context, listingID uuid.UUID) ([]*shared.Comment, error)
}

// RegistrationService defines the interface for account operations
type RegistrationService interface {
	// Register creates a new account with a hashed password
	Register(ctx context.Context, req RegisterRequest) (*shared.User, error)

	// Authenticate verifies a username/password pair
	Authenticate(ctx context.Context, username, password string) (*shared.User, error)
}

// request to create a listing
type CreateListingRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	StartingBid decimal.Decimal `json:"starting_bid"`
	ImageURL    *string         `json:"image_url,omitempty"`
	CategoryID  *uuid.UUID      `json:"category_id,omitempty"`
	AuthorID    uuid.UUID       `json:"author_id"`
}

// request to place a bid
type PlaceBidRequest struct {
	ListingID uuid.UUID       `json:"listing_id"`
	BidderID  uuid.UUID       `json:"bidder_id"`
	Amount    decimal.Decimal `json:"amount"`
}

// request to register an account
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ListingView is a listing together with its derived price and winner
type ListingView struct {
	Listing      *listing.Listing `json:"listing"`
	CurrentPrice decimal.Decimal  `json:"current_price"`
	WinnerID     *uuid.UUID       `json:"winner_id,omitempty"`
	BidCount     int              `json:"bid_count"`
}
