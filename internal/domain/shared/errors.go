package shared

import "errors"

// Domain-specific errors
var (
	// Listing errors
	ErrListingNotFound = errors.New("listing not found")
	ErrListingClosed   = errors.New("listing is closed for bidding")
	ErrNotAuthorized   = errors.New("only the listing author may do this")
	ErrTitleRequired   = errors.New("title is required")
	ErrTitleTooLong    = errors.New("title must be at most 100 characters")
	ErrDescriptionLong = errors.New("description must be at most 1000 characters")
	ErrInvalidStartBid = errors.New("starting bid must be greater than 0")

	// Bid errors
	ErrBidTooLow     = errors.New("bid amount must be higher than the current price")
	ErrInvalidAmount = errors.New("amount must be positive with at most 2 decimal places")
	ErrNoBidsFound   = errors.New("no bids found")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrUsernameRequired   = errors.New("username is required")

	// Category errors
	ErrCategoryNotFound = errors.New("category not found")

	// Comment errors
	ErrCommentEmpty   = errors.New("comment body is required")
	ErrCommentTooLong = errors.New("comment must be at most 5000 characters")

	// Lock errors
	ErrListingLocked = errors.New("listing is locked by another bid in flight")

	// Database errors
	ErrDatabaseConnection  = errors.New("database connection failed")
	ErrDatabaseTransaction = errors.New("database transaction failed")
)
