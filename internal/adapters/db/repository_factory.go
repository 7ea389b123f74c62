package db

import (
	"bidboard/internal/ports/outbound"
)

// RepositoryFactory creates and manages all database repositories
type RepositoryFactory struct {
	conn *Connection
}

// NewRepositoryFactory creates a new repository factory
func NewRepositoryFactory(conn *Connection) *RepositoryFactory {
	return &RepositoryFactory{conn: conn}
}

// GetListingRepository returns the listing repository
func (f *RepositoryFactory) GetListingRepository() outbound.ListingRepository {
	return NewListingRepository(f.conn)
}

// GetBidRepository returns the bid repository
func (f *RepositoryFactory) GetBidRepository() outbound.BidRepository {
	return NewBidRepository(f.conn)
}

// GetCommentRepository returns the comment repository
func (f *RepositoryFactory) GetCommentRepository() outbound.CommentRepository {
	return NewCommentRepository(f.conn)
}

// GetUserRepository returns the user repository
func (f *RepositoryFactory) GetUserRepository() outbound.UserRepository {
	return NewUserRepository(f.conn)
}

// GetCategoryRepository returns the category repository
func (f *RepositoryFactory) GetCategoryRepository() outbound.CategoryRepository {
	return NewCategoryRepository(f.conn)
}

// GetWatchlistRepository returns the watchlist repository
func (f *RepositoryFactory) GetWatchlistRepository() outbound.WatchlistRepository {
	return NewWatchlistRepository(f.conn)
}
