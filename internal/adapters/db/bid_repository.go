package db

import (
	"context"
	"database/sql"
	"fmt"

	"bidboard/internal/domain/bid"
	"bidboard/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BidRepository implements the bid repository interface
type BidRepository struct {
	conn *Connection
}

// NewBidRepository creates a new bid repository
func NewBidRepository(conn *Connection) *BidRepository {
	return &BidRepository{conn: conn}
}

/*
AppendGuarded appends a bid inside a single transaction by
 1. Locking the listing row with SELECT ... FOR UPDATE
 2. Re-checking that the listing is still active
 3. Recomputing the current price from the bid set under the lock
 4. Inserting the bid only if it strictly exceeds the current price

Two concurrent submissions that each exceed a stale price cannot both
land: the second waits on the row lock and re-validates against the
first one's amount.
*/
func (r *BidRepository) AppendGuarded(ctx context.Context, newBid *bid.Bid) error {
	return r.conn.ExecuteTransaction(func(tx *sql.Tx) error {
		listingQuery := `
			SELECT starting_bid, active
			FROM listings
			WHERE id = $1
			FOR UPDATE
		`

		var startingBid decimal.Decimal
		var active bool
		err := tx.QueryRowContext(ctx, listingQuery, newBid.ListingID).Scan(&startingBid, &active)
		if err != nil {
			if err == sql.ErrNoRows {
				return shared.ErrListingNotFound
			}
			return fmt.Errorf("failed to lock listing for bid: %w", err)
		}

		if !active {
			return shared.ErrListingClosed
		}

		priceQuery := `
			SELECT COALESCE(MAX(amount), $2)
			FROM bids
			WHERE listing_id = $1
		`

		var currentPrice decimal.Decimal
		if err := tx.QueryRowContext(ctx, priceQuery, newBid.ListingID, startingBid).Scan(&currentPrice); err != nil {
			return fmt.Errorf("failed to compute current price: %w", err)
		}

		if !newBid.Beats(currentPrice) {
			return shared.ErrBidTooLow
		}

		insertQuery := `
			INSERT INTO bids (id, listing_id, user_id, amount, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`

		_, err = tx.ExecContext(ctx, insertQuery,
			newBid.ID,
			newBid.ListingID,
			newBid.UserID,
			newBid.Amount,
			newBid.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert bid: %w", err)
		}

		return nil
	})
}

// GetByListingID retrieves all bids for a listing, highest first
func (r *BidRepository) GetByListingID(ctx context.Context, listingID uuid.UUID) ([]*bid.Bid, error) {
	query := `
		SELECT id, listing_id, user_id, amount, created_at
		FROM bids
		WHERE listing_id = $1
		ORDER BY amount DESC, created_at ASC
	`

	rows, err := r.conn.GetDB().QueryContext(ctx, query, listingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bids: %w", err)
	}
	defer rows.Close()

	var bids []*bid.Bid
	for rows.Next() {
		var b bid.Bid
		err := rows.Scan(
			&b.ID,
			&b.ListingID,
			&b.UserID,
			&b.Amount,
			&b.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bid: %w", err)
		}
		bids = append(bids, &b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bids: %w", err)
	}

	return bids, nil
}

// GetHighestBid retrieves the highest bid for a listing
func (r *BidRepository) GetHighestBid(ctx context.Context, listingID uuid.UUID) (*bid.Bid, error) {
	query := `
		SELECT id, listing_id, user_id, amount, created_at
		FROM bids
		WHERE listing_id = $1
		ORDER BY amount DESC, created_at ASC
		LIMIT 1
	`

	var b bid.Bid
	err := r.conn.GetDB().QueryRowContext(ctx, query, listingID).Scan(
		&b.ID,
		&b.ListingID,
		&b.UserID,
		&b.Amount,
		&b.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, shared.ErrNoBidsFound
		}
		return nil, fmt.Errorf("failed to get highest bid: %w", err)
	}

	return &b, nil
}
