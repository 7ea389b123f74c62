package db

import (
	"context"
	"fmt"

	"bidboard/internal/domain/shared"

	"github.com/google/uuid"
)

// CommentRepository implements the comment repository interface
type CommentRepository struct {
	conn *Connection
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(conn *Connection) *CommentRepository {
	return &CommentRepository{conn: conn}
}

// Append appends a comment to a listing
func (r *CommentRepository) Append(ctx context.Context, comment *shared.Comment) error {
	query := `
		INSERT INTO comments (id, listing_id, user_id, body, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.conn.GetDB().ExecContext(ctx, query,
		comment.ID,
		comment.ListingID,
		comment.UserID,
		comment.Body,
		comment.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to append comment: %w", err)
	}

	return nil
}

// GetByListingID retrieves comments for a listing, most recent first
func (r *CommentRepository) GetByListingID(ctx context.Context, listingID uuid.UUID) ([]*shared.Comment, error) {
	query := `
		SELECT id, listing_id, user_id, body, created_at
		FROM comments
		WHERE listing_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.conn.GetDB().QueryContext(ctx, query, listingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}
	defer rows.Close()

	var comments []*shared.Comment
	for rows.Next() {
		var comment shared.Comment
		err := rows.Scan(
			&comment.ID,
			&comment.ListingID,
			&comment.UserID,
			&comment.Body,
			&comment.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, &comment)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}

	return comments, nil
}
