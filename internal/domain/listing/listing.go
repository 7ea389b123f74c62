package listing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bidboard/internal/domain/bid"
	"bidboard/internal/domain/shared"
)

// Field length limits, mirrored by the schema
const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 1000
)

// Listing represents an auctionable item. The listing row itself is
// mutated only by the single active -> closed transition; price and
// winner are always derived from the bid set, never stored.
type Listing struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	StartingBid decimal.Decimal `json:"starting_bid"`
	ImageURL    *string         `json:"image_url,omitempty"`
	CategoryID  *uuid.UUID      `json:"category_id,omitempty"`
	Active      bool            `json:"active"`
	AuthorID    uuid.UUID       `json:"author_id"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CanBid returns true if bids may still be placed on this listing
func (l *Listing) CanBid() bool {
	return l.Active
}

// IsAuthor returns true if userID owns the listing
func (l *Listing) IsAuthor(userID uuid.UUID) bool {
	return l.AuthorID == userID
}

// Close marks the listing inactive. Closing an already-closed listing
// changes nothing.
func (l *Listing) Close() {
	l.Active = false
}

// CurrentPrice computes the listing's effective price: the highest bid
// amount if any bid exists, else the starting bid. highest may be nil.
func (l *Listing) CurrentPrice(highest *bid.Bid) decimal.Decimal {
	if highest == nil {
		return l.StartingBid
	}
	return highest.Amount
}

// CurrentWinner reports who is currently winning the listing, if anyone
func CurrentWinner(highest *bid.Bid) (uuid.UUID, bool) {
	if highest == nil {
		return uuid.Nil, false
	}
	return highest.UserID, true
}

// Validate checks a listing's fields before it reaches the store
func (l *Listing) Validate() error {
	if l.Title == "" {
		return shared.ErrTitleRequired
	}
	if len(l.Title) > MaxTitleLength {
		return shared.ErrTitleTooLong
	}
	if len(l.Description) > MaxDescriptionLength {
		return shared.ErrDescriptionLong
	}
	if !l.StartingBid.IsPositive() {
		return shared.ErrInvalidStartBid
	}
	return nil
}
