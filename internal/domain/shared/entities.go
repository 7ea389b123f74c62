package shared

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account in the system
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Category is a grouping label that listings may reference
type Category struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Comment is an append-only remark left on a listing
type Comment struct {
	ID        uuid.UUID `json:"id"`
	ListingID uuid.UUID `json:"listing_id"`
	UserID    uuid.UUID `json:"user_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// MaxCommentLength bounds the comment body
const MaxCommentLength = 5000

// ValidateComment checks a comment body before it reaches the store
func ValidateComment(body string) error {
	if body == "" {
		return ErrCommentEmpty
	}
	if len(body) > MaxCommentLength {
		return ErrCommentTooLong
	}
	return nil
}
