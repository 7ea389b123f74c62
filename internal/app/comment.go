package app

import (
	"context"
	"time"

	"bidboard/internal/domain/shared"
	"bidboard/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CommentService implements the comment use cases
type CommentService struct {
	commentRepo outbound.CommentRepository
	listingRepo outbound.ListingRepository
	userRepo    outbound.UserRepository
	logger      zerolog.Logger
}

type CommentServiceParams struct {
	CommentRepo outbound.CommentRepository
	ListingRepo outbound.ListingRepository
	UserRepo    outbound.UserRepository
	Logger      zerolog.Logger
}

// NewCommentService creates a new comment service
func NewCommentService(params CommentServiceParams) *CommentService {
	return &CommentService{
		commentRepo: params.CommentRepo,
		listingRepo: params.ListingRepo,
		userRepo:    params.UserRepo,
		logger:      params.Logger.With().Str("component", "comment_service").Logger(),
	}
}

// Add appends a comment to a listing
func (service *CommentService) Add(ctx context.Context, userID, listingID uuid.UUID, body string) (*shared.Comment, error) {
	if err := shared.ValidateComment(body); err != nil {
		service.logger.Warn().Err(err).Str("listing_id", listingID.String()).Msg("Comment validation failed")
		return nil, err
	}

	if _, err := service.listingRepo.GetByID(ctx, listingID); err != nil {
		service.logger.Error().Err(err).Str("listing_id", listingID.String()).Msg("Listing not found")
		return nil, err
	}

	if _, err := service.userRepo.GetByID(ctx, userID); err != nil {
		service.logger.Error().Err(err).Str("user_id", userID.String()).Msg("User not found")
		return nil, err
	}

	comment := &shared.Comment{
		ID:        uuid.New(),
		ListingID: listingID,
		UserID:    userID,
		Body:      body,
		CreatedAt: time.Now(),
	}

	if err := service.commentRepo.Append(ctx, comment); err != nil {
		service.logger.Error().Err(err).Str("comment_id", comment.ID.String()).Msg("Failed to append comment")
		return nil, err
	}

	service.logger.Info().
		Str("comment_id", comment.ID.String()).
		Str("listing_id", listingID.String()).
		Msg("Comment added successfully")

	return comment, nil
}

// ListForListing retrieves comments for a listing, most recent first
func (service *CommentService) ListForListing(ctx context.Context, listingID uuid.UUID) ([]*shared.Comment, error) {
	if _, err := service.listingRepo.GetByID(ctx, listingID); err != nil {
		return nil, err
	}
	return service.commentRepo.GetByListingID(ctx, listingID)
}
