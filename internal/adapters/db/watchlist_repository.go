package db

import (
	"context"
	"fmt"

	"bidboard/internal/domain/listing"

	"github.com/google/uuid"
)

// WatchlistRepository implements the watchlist repository interface
type WatchlistRepository struct {
	conn *Connection
}

// NewWatchlistRepository creates a new watchlist repository
func NewWatchlistRepository(conn *Connection) *WatchlistRepository {
	return &WatchlistRepository{conn: conn}
}

// Add inserts the (user, listing) pair. Inserting an existing pair is a no-op.
func (r *WatchlistRepository) Add(ctx context.Context, userID, listingID uuid.UUID) error {
	query := `
		INSERT INTO watchlist (user_id, listing_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, listing_id) DO NOTHING
	`

	_, err := r.conn.GetDB().ExecContext(ctx, query, userID, listingID)
	if err != nil {
		return fmt.Errorf("failed to add watch: %w", err)
	}

	return nil
}

// Remove deletes the (user, listing) pair. Removing an absent pair is a no-op.
func (r *WatchlistRepository) Remove(ctx context.Context, userID, listingID uuid.UUID) error {
	query := `DELETE FROM watchlist WHERE user_id = $1 AND listing_id = $2`

	_, err := r.conn.GetDB().ExecContext(ctx, query, userID, listingID)
	if err != nil {
		return fmt.Errorf("failed to remove watch: %w", err)
	}

	return nil
}

// Exists reports whether the (user, listing) pair is present
func (r *WatchlistRepository) Exists(ctx context.Context, userID, listingID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM watchlist WHERE user_id = $1 AND listing_id = $2
		)
	`

	var exists bool
	if err := r.conn.GetDB().QueryRowContext(ctx, query, userID, listingID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check watch: %w", err)
	}

	return exists, nil
}

// ListByUser retrieves the listings a user watches, most recently created first
func (r *WatchlistRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*listing.Listing, error) {
	query := `
		SELECT l.id, l.title, l.description, l.starting_bid, l.image_url, l.category_id, l.active, l.author_id, l.created_at
		FROM listings l
		JOIN watchlist w ON w.listing_id = l.id
		WHERE w.user_id = $1
		ORDER BY l.created_at DESC
	`

	rows, err := r.conn.GetDB().QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list watchlist: %w", err)
	}
	defer rows.Close()

	var listings []*listing.Listing
	for rows.Next() {
		var l listing.Listing
		err := rows.Scan(
			&l.ID,
			&l.Title,
			&l.Description,
			&l.StartingBid,
			&l.ImageURL,
			&l.CategoryID,
			&l.Active,
			&l.AuthorID,
			&l.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		listings = append(listings, &l)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating watchlist: %w", err)
	}

	return listings, nil
}
