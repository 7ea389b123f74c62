package bid

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Bid represents a bid placed on a listing. Bids are immutable once
// stored; a stored amount was strictly greater than the listing's
// current price at the instant of insertion.
type Bid struct {
	ID        uuid.UUID       `json:"id"`
	ListingID uuid.UUID       `json:"listing_id"`
	UserID    uuid.UUID       `json:"user_id"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// Beats returns true if the bid amount strictly exceeds price.
// Ties lose.
func (b *Bid) Beats(price decimal.Decimal) bool {
	return b.Amount.GreaterThan(price)
}
