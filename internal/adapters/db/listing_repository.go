package db

import (
	"context"
	"database/sql"
	"fmt"

	"bidboard/internal/domain/listing"
	"bidboard/internal/domain/shared"

	"github.com/google/uuid"
)

// ListingRepository implements the listing repository interface
type ListingRepository struct {
	conn *Connection
}

// NewListingRepository creates a new listing repository
func NewListingRepository(conn *Connection) *ListingRepository {
	return &ListingRepository{conn: conn}
}

// Create creates a new listing
func (r *ListingRepository) Create(ctx context.Context, l *listing.Listing) error {
	query := `
		INSERT INTO listings (id, title, description, starting_bid, image_url, category_id, active, author_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.conn.GetDB().ExecContext(ctx, query,
		l.ID,
		l.Title,
		l.Description,
		l.StartingBid,
		l.ImageURL,
		l.CategoryID,
		l.Active,
		l.AuthorID,
		l.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}

	return nil
}

// GetByID retrieves a listing by ID
func (r *ListingRepository) GetByID(ctx context.Context, id uuid.UUID) (*listing.Listing, error) {
	query := `
		SELECT id, title, description, starting_bid, image_url, category_id, active, author_id, created_at
		FROM listings
		WHERE id = $1
	`

	var l listing.Listing
	err := r.conn.GetDB().QueryRowContext(ctx, query, id).Scan(
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
		if err == sql.ErrNoRows {
			return nil, shared.ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}

	return &l, nil
}

// ListActive retrieves active listings, most recent first
func (r *ListingRepository) ListActive(ctx context.Context) ([]*listing.Listing, error) {
	query := `
		SELECT id, title, description, starting_bid, image_url, category_id, active, author_id, created_at
		FROM listings
		WHERE active = TRUE
		ORDER BY created_at DESC
	`

	return r.queryListings(ctx, query)
}

// ListActiveByCategory retrieves active listings in a category, most recent first
func (r *ListingRepository) ListActiveByCategory(ctx context.Context, categoryID uuid.UUID) ([]*listing.Listing, error) {
	query := `
		SELECT id, title, description, starting_bid, image_url, category_id, active, author_id, created_at
		FROM listings
		WHERE active = TRUE AND category_id = $1
		ORDER BY created_at DESC
	`

	return r.queryListings(ctx, query, categoryID)
}

// SetActive sets the listing's active flag
func (r *ListingRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `
		UPDATE listings
		SET active = $2
		WHERE id = $1
	`

	result, err := r.conn.GetDB().ExecContext(ctx, query, id, active)
	if err != nil {
		return fmt.Errorf("failed to update listing: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return shared.ErrListingNotFound
	}

	return nil
}

func (r *ListingRepository) queryListings(ctx context.Context, query string, args ...interface{}) ([]*listing.Listing, error) {
	rows, err := r.conn.GetDB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
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
		return nil, fmt.Errorf("error iterating listings: %w", err)
	}

	return listings, nil
}
