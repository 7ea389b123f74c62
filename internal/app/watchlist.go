package app

import (
	"context"

	"bidboard/internal/domain/listing"
	"bidboard/internal/ports/inbound"
	"bidboard/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// WatchlistService implements the watchlist use cases
type WatchlistService struct {
	watchRepo   outbound.WatchlistRepository
	listingRepo outbound.ListingRepository
	logger      zerolog.Logger
}

type WatchlistServiceParams struct {
	WatchRepo   outbound.WatchlistRepository
	ListingRepo outbound.ListingRepository
	Logger      zerolog.Logger
}

// NewWatchlistService creates a new watchlist service
func NewWatchlistService(params WatchlistServiceParams) *WatchlistService {
	return &WatchlistService{
		watchRepo:   params.WatchRepo,
		listingRepo: params.ListingRepo,
		logger:      params.Logger.With().Str("component", "watchlist_service").Logger(),
	}
}

// Toggle flips the (user, listing) watch pair: present pairs are
// removed, absent pairs are added. Applying it twice with no
// intervening change returns the user to the original state.
func (service *WatchlistService) Toggle(ctx context.Context, userID, listingID uuid.UUID) (inbound.WatchState, error) {
	if _, err := service.listingRepo.GetByID(ctx, listingID); err != nil {
		service.logger.Error().Err(err).Str("listing_id", listingID.String()).Msg("Listing not found")
		return "", err
	}

	watching, err := service.watchRepo.Exists(ctx, userID, listingID)
	if err != nil {
		return "", err
	}

	if watching {
		if err := service.watchRepo.Remove(ctx, userID, listingID); err != nil {
			return "", err
		}
		service.logger.Info().
			Str("user_id", userID.String()).
			Str("listing_id", listingID.String()).
			Msg("Listing removed from watchlist")
		return inbound.NotWatching, nil
	}

	if err := service.watchRepo.Add(ctx, userID, listingID); err != nil {
		return "", err
	}
	service.logger.Info().
		Str("user_id", userID.String()).
		Str("listing_id", listingID.String()).
		Msg("Listing added to watchlist")
	return inbound.Watching, nil
}

// Remove drops the pair regardless of prior state; the user always
// ends up not watching
func (service *WatchlistService) Remove(ctx context.Context, userID, listingID uuid.UUID) error {
	if _, err := service.listingRepo.GetByID(ctx, listingID); err != nil {
		return err
	}
	return service.watchRepo.Remove(ctx, userID, listingID)
}

// List retrieves the listings a user watches
func (service *WatchlistService) List(ctx context.Context, userID uuid.UUID) ([]*listing.Listing, error) {
	return service.watchRepo.ListByUser(ctx, userID)
}
