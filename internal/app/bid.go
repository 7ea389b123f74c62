package app

import (
	"context"
	"time"

	"bidboard/internal/domain/bid"
	"bidboard/internal/domain/shared"
	"bidboard/internal/ports/inbound"
	"bidboard/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// BidService implements the bid use cases
type BidService struct {
	bidRepo     outbound.BidRepository
	listingRepo outbound.ListingRepository
	userRepo    outbound.UserRepository
	locker      outbound.ListingLocker
	logger      zerolog.Logger
}

type BidServiceParams struct {
	BidRepo     outbound.BidRepository
	ListingRepo outbound.ListingRepository
	UserRepo    outbound.UserRepository
	Locker      outbound.ListingLocker
	Logger      zerolog.Logger
}

// NewBidService creates a new bid service
func NewBidService(params BidServiceParams) *BidService {
	return &BidService{
		bidRepo:     params.BidRepo,
		listingRepo: params.ListingRepo,
		userRepo:    params.UserRepo,
		locker:      params.Locker,
		logger:      params.Logger.With().Str("component", "bid_service").Logger(),
	}
}

// PlaceBid validates and records a bid against a listing's current
// price. Accepted amounts form a strictly increasing sequence per
// listing; a tie with the current price is rejected. The listing
// author is not prevented from bidding on their own listing.
func (service *BidService) PlaceBid(ctx context.Context, req inbound.PlaceBidRequest) (*bid.Bid, error) {
	service.logger.Info().
		Str("listing_id", req.ListingID.String()).
		Str("bidder_id", req.BidderID.String()).
		Str("amount", req.Amount.String()).
		Msg("Attempting to place bid")

	// Validate bid amount shape before touching the store
	if err := shared.ValidateAmount(req.Amount); err != nil {
		service.logger.Warn().Str("amount", req.Amount.String()).Msg("Invalid bid amount")
		return nil, err
	}

	// Validate listing exists and is open
	l, err := service.listingRepo.GetByID(ctx, req.ListingID)
	if err != nil {
		service.logger.Error().Err(err).Str("listing_id", req.ListingID.String()).Msg("Listing not found")
		return nil, err
	}

	if !l.CanBid() {
		service.logger.Warn().Str("listing_id", req.ListingID.String()).Msg("Listing closed for bidding")
		return nil, shared.ErrListingClosed
	}

	// Validate bidder exists
	user, err := service.userRepo.GetByID(ctx, req.BidderID)
	if err != nil {
		service.logger.Error().Err(err).Str("bidder_id", req.BidderID.String()).Msg("Bidder not found")
		return nil, err
	}

	service.logger.Debug().Str("bidder_id", user.ID.String()).Str("username", user.Username).Msg("Bidder validated")

	newBid := &bid.Bid{
		ID:        uuid.New(),
		ListingID: req.ListingID,
		UserID:    user.ID,
		Amount:    req.Amount,
		CreatedAt: time.Now(),
	}

	// Early rejection against the snapshot price. The guarded append
	// re-checks under the row lock, so a stale snapshot cannot admit
	// a too-low bid.
	highest, err := service.bidRepo.GetHighestBid(ctx, req.ListingID)
	if err != nil && err != shared.ErrNoBidsFound {
		service.logger.Error().Err(err).Str("listing_id", req.ListingID.String()).Msg("Failed to get highest bid")
		return nil, err
	}

	currentPrice := l.CurrentPrice(highest)
	if !newBid.Beats(currentPrice) {
		service.logger.Warn().
			Str("listing_id", req.ListingID.String()).
			Str("current_price", currentPrice.String()).
			Str("amount", req.Amount.String()).
			Msg("Bid amount too low")
		return nil, shared.ErrBidTooLow
	}

	// Serialize per listing across instances, then append under the
	// store's own row lock
	token, err := service.locker.Lock(ctx, req.ListingID)
	if err != nil {
		service.logger.Error().Err(err).Str("listing_id", req.ListingID.String()).Msg("Failed to lock listing")
		return nil, err
	}
	defer func() {
		if err := service.locker.Unlock(ctx, req.ListingID, token); err != nil {
			service.logger.Error().Err(err).Str("listing_id", req.ListingID.String()).Msg("Failed to unlock listing")
		}
	}()

	if err := service.bidRepo.AppendGuarded(ctx, newBid); err != nil {
		service.logger.Warn().Err(err).Str("bid_id", newBid.ID.String()).Msg("Bid rejected by store")
		return nil, err
	}

	service.logger.Info().
		Str("bid_id", newBid.ID.String()).
		Str("listing_id", newBid.ListingID.String()).
		Str("bidder_id", newBid.UserID.String()).
		Str("amount", newBid.Amount.String()).
		Msg("Bid placed successfully")

	return newBid, nil
}

// ListBids retrieves bids for a listing, highest first
func (service *BidService) ListBids(ctx context.Context, listingID uuid.UUID) ([]*bid.Bid, error) {
	if _, err := service.listingRepo.GetByID(ctx, listingID); err != nil {
		return nil, err
	}
	return service.bidRepo.GetByListingID(ctx, listingID)
}

// HighestBid retrieves the current winning bid for a listing
func (service *BidService) HighestBid(ctx context.Context, listingID uuid.UUID) (*bid.Bid, error) {
	return service.bidRepo.GetHighestBid(ctx, listingID)
}
