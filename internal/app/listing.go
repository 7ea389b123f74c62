package app

import (
	"context"
	"time"

	"bidboard/internal/domain/bid"
	"bidboard/internal/domain/listing"
	"bidboard/internal/domain/shared"
	"bidboard/internal/ports/inbound"
	"bidboard/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ListingService implements the listing lifecycle use cases
type ListingService struct {
	listingRepo  outbound.ListingRepository
	bidRepo      outbound.BidRepository
	userRepo     outbound.UserRepository
	categoryRepo outbound.CategoryRepository
	logger       zerolog.Logger
}

type ListingServiceParams struct {
	ListingRepo  outbound.ListingRepository
	BidRepo      outbound.BidRepository
	UserRepo     outbound.UserRepository
	CategoryRepo outbound.CategoryRepository
	Logger       zerolog.Logger
}

// NewListingService creates a new listing service
func NewListingService(params ListingServiceParams) *ListingService {
	return &ListingService{
		listingRepo:  params.ListingRepo,
		bidRepo:      params.BidRepo,
		userRepo:     params.UserRepo,
		categoryRepo: params.CategoryRepo,
		logger:       params.Logger.With().Str("component", "listing_service").Logger(),
	}
}

// CreateListing creates a new active listing
func (service *ListingService) CreateListing(ctx context.Context, req inbound.CreateListingRequest) (*listing.Listing, error) {
	service.logger.Info().
		Str("author_id", req.AuthorID.String()).
		Str("title", req.Title).
		Str("starting_bid", req.StartingBid.String()).
		Msg("Attempting to create listing")

	// Validate author exists
	author, err := service.userRepo.GetByID(ctx, req.AuthorID)
	if err != nil {
		service.logger.Error().Err(err).Str("author_id", req.AuthorID.String()).Msg("Author not found")
		return nil, err
	}

	// Validate category exists when one was given
	if req.CategoryID != nil {
		if _, err := service.categoryRepo.GetByID(ctx, *req.CategoryID); err != nil {
			service.logger.Error().Err(err).Str("category_id", req.CategoryID.String()).Msg("Category not found")
			return nil, err
		}
	}

	l := &listing.Listing{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		StartingBid: req.StartingBid,
		ImageURL:    req.ImageURL,
		CategoryID:  req.CategoryID,
		Active:      true,
		AuthorID:    author.ID,
		CreatedAt:   time.Now(),
	}

	if err := l.Validate(); err != nil {
		service.logger.Warn().Err(err).Str("title", req.Title).Msg("Listing validation failed")
		return nil, err
	}

	if err := service.listingRepo.Create(ctx, l); err != nil {
		service.logger.Error().Err(err).Str("listing_id", l.ID.String()).Msg("Failed to save listing")
		return nil, err
	}

	service.logger.Info().Str("listing_id", l.ID.String()).Msg("Listing created successfully")
	return l, nil
}

// GetListing retrieves a listing together with its derived current
// price, current winner and bid count
func (service *ListingService) GetListing(ctx context.Context, listingID uuid.UUID) (*inbound.ListingView, error) {
	l, err := service.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		service.logger.Error().Err(err).Str("listing_id", listingID.String()).Msg("Failed to retrieve listing")
		return nil, err
	}

	bids, err := service.bidRepo.GetByListingID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	// GetByListingID orders highest first
	var highest *bid.Bid
	if len(bids) > 0 {
		highest = bids[0]
	}

	view := &inbound.ListingView{
		Listing:      l,
		CurrentPrice: l.CurrentPrice(highest),
		BidCount:     len(bids),
	}

	if winnerID, ok := listing.CurrentWinner(highest); ok {
		view.WinnerID = &winnerID
	}

	return view, nil
}

// ListActive retrieves active listings, most recent first
func (service *ListingService) ListActive(ctx context.Context) ([]*listing.Listing, error) {
	return service.listingRepo.ListActive(ctx)
}

// ListByCategory retrieves active listings in a category
func (service *ListingService) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*listing.Listing, error) {
	if _, err := service.categoryRepo.GetByID(ctx, categoryID); err != nil {
		return nil, err
	}
	return service.listingRepo.ListActiveByCategory(ctx, categoryID)
}

// ListCategories retrieves all categories ordered by name
func (service *ListingService) ListCategories(ctx context.Context) ([]*shared.Category, error) {
	return service.categoryRepo.List(ctx)
}

// CloseListing transitions a listing from active to closed. Only the
// author may close it; a non-author request is refused with no state
// change. Closing an already-closed listing is a no-op success, since
// nothing actually changes.
func (service *ListingService) CloseListing(ctx context.Context, listingID, requesterID uuid.UUID) error {
	service.logger.Info().
		Str("listing_id", listingID.String()).
		Str("requester_id", requesterID.String()).
		Msg("Attempting to close listing")

	l, err := service.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		service.logger.Error().Err(err).Str("listing_id", listingID.String()).Msg("Listing not found")
		return err
	}

	if !l.IsAuthor(requesterID) {
		service.logger.Warn().
			Str("listing_id", listingID.String()).
			Str("requester_id", requesterID.String()).
			Msg("Close refused: requester is not the author")
		return shared.ErrNotAuthorized
	}

	if !l.Active {
		service.logger.Info().Str("listing_id", listingID.String()).Msg("Listing already closed")
		return nil
	}

	l.Close()
	if err := service.listingRepo.SetActive(ctx, listingID, l.Active); err != nil {
		service.logger.Error().Err(err).Str("listing_id", listingID.String()).Msg("Failed to close listing")
		return err
	}

	service.logger.Info().Str("listing_id", listingID.String()).Msg("Listing closed successfully")
	return nil
}
