package listing

import (
	"testing"

	"bidboard/internal/domain/bid"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListing_CurrentPrice(t *testing.T) {
	l := &Listing{StartingBid: decimal.RequireFromString("10.00")}

	// No bids: price falls back to the starting bid
	assert.True(t, l.CurrentPrice(nil).Equal(decimal.RequireFromString("10.00")))

	highest := &bid.Bid{
		UserID: uuid.New(),
		Amount: decimal.RequireFromString("12.34"),
	}
	assert.True(t, l.CurrentPrice(highest).Equal(decimal.RequireFromString("12.34")))
}

func TestCurrentWinner(t *testing.T) {
	_, ok := CurrentWinner(nil)
	assert.False(t, ok)

	bidder := uuid.New()
	winner, ok := CurrentWinner(&bid.Bid{UserID: bidder, Amount: decimal.RequireFromString("5.00")})
	require.True(t, ok)
	assert.Equal(t, bidder, winner)
}

func TestListing_Close(t *testing.T) {
	l := &Listing{Active: true}
	assert.True(t, l.CanBid())

	l.Close()
	assert.False(t, l.Active)
	assert.False(t, l.CanBid())

	// Closing again changes nothing
	l.Close()
	assert.False(t, l.Active)
}
