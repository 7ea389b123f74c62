package httpapi

import (
	"errors"
	"net/http"

	"bidboard/internal/domain/shared"
	"bidboard/internal/ports/inbound"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// userIDHeader carries the authenticated identity. Authentication
// itself happens upstream; the API only trusts the opaque ID it is
// handed per request.
const userIDHeader = "X-User-ID"

// Handler holds the service interfaces the API dispatches to
type Handler struct {
	listings     inbound.ListingService
	bids         inbound.BidService
	watchlist    inbound.WatchlistService
	comments     inbound.CommentService
	registration inbound.RegistrationService
	logger       zerolog.Logger
}

type HandlerParams struct {
	ListingService      inbound.ListingService
	BidService          inbound.BidService
	WatchlistService    inbound.WatchlistService
	CommentService      inbound.CommentService
	RegistrationService inbound.RegistrationService
	Logger              zerolog.Logger
}

func NewHandler(params HandlerParams) *Handler {
	return &Handler{
		listings:     params.ListingService,
		bids:         params.BidService,
		watchlist:    params.WatchlistService,
		comments:     params.CommentService,
		registration: params.RegistrationService,
		logger:       params.Logger.With().Str("component", "http_handler").Logger(),
	}
}

type createListingBody struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	StartingBid string  `json:"starting_bid"`
	ImageURL    *string `json:"image_url,omitempty"`
	CategoryID  *string `json:"category_id,omitempty"`
}

type placeBidBody struct {
	Amount string `json:"amount"`
}

type addCommentBody struct {
	Body string `json:"body"`
}

type registerBody struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles POST /users
func (h *Handler) Register(c *gin.Context) {
	var body registerBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	user, err := h.registration.Register(c.Request.Context(), inbound.RegisterRequest{
		Username: body.Username,
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login handles POST /login
func (h *Handler) Login(c *gin.Context) {
	var body loginBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	user, err := h.registration.Authenticate(c.Request.Context(), body.Username, body.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// CreateListing handles POST /listings
func (h *Handler) CreateListing(c *gin.Context) {
	userID, ok := h.actingUser(c)
	if !ok {
		return
	}

	var body createListingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	startingBid, err := shared.ParseAmount(body.StartingBid)
	if err != nil {
		h.writeError(c, err)
		return
	}

	req := inbound.CreateListingRequest{
		Title:       body.Title,
		Description: body.Description,
		StartingBid: startingBid,
		ImageURL:    body.ImageURL,
		AuthorID:    userID,
	}

	if body.CategoryID != nil {
		categoryID, err := uuid.Parse(*body.CategoryID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category_id"})
			return
		}
		req.CategoryID = &categoryID
	}

	l, err := h.listings.CreateListing(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, l)
}

// GetListing handles GET /listings/:listing_id
func (h *Handler) GetListing(c *gin.Context) {
	listingID, ok := h.pathID(c, "listing_id")
	if !ok {
		return
	}

	view, err := h.listings.GetListing(c.Request.Context(), listingID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// ListActiveListings handles GET /listings
func (h *Handler) ListActiveListings(c *gin.Context) {
	listings, err := h.listings.ListActive(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, listings)
}

// CloseListing handles POST /listings/:listing_id/close
func (h *Handler) CloseListing(c *gin.Context) {
	userID, ok := h.actingUser(c)
	if !ok {
		return
	}

	listingID, ok := h.pathID(c, "listing_id")
	if !ok {
		return
	}

	if err := h.listings.CloseListing(c.Request.Context(), listingID, userID); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"closed": true})
}

// PlaceBid handles POST /listings/:listing_id/bids
func (h *Handler) PlaceBid(c *gin.Context) {
	userID, ok := h.actingUser(c)
	if !ok {
		return
	}

	listingID, ok := h.pathID(c, "listing_id")
	if !ok {
		return
	}

	var body placeBidBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	amount, err := shared.ParseAmount(body.Amount)
	if err != nil {
		h.writeError(c, err)
		return
	}

	placed, err := h.bids.PlaceBid(c.Request.Context(), inbound.PlaceBidRequest{
		ListingID: listingID,
		BidderID:  userID,
		Amount:    amount,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, placed)
}

// ListBids handles GET /listings/:listing_id/bids
func (h *Handler) ListBids(c *gin.Context) {
	listingID, ok := h.pathID(c, "listing_id")
	if !ok {
		return
	}

	bids, err := h.bids.ListBids(c.Request.Context(), listingID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, bids)
}

// AddComment handles POST /listings/:listing_id/comments
func (h *Handler) AddComment(c *gin.Context) {
	userID, ok := h.actingUser(c)
	if !ok {
		return
	}

	listingID, ok := h.pathID(c, "listing_id")
	if !ok {
		return
	}

	var body addCommentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	comment, err := h.comments.Add(c.Request.Context(), userID, listingID, body.Body)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// ListComments handles GET /listings/:listing_id/comments
func (h *Handler) ListComments(c *gin.Context) {
	listingID, ok := h.pathID(c, "listing_id")
	if !ok {
		return
	}

	comments, err := h.comments.ListForListing(c.Request.Context(), listingID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

// ToggleWatch handles POST /listings/:listing_id/watch
func (h *Handler) ToggleWatch(c *gin.Context) {
	userID, ok := h.actingUser(c)
	if !ok {
		return
	}

	listingID, ok := h.pathID(c, "listing_id")
	if !ok {
		return
	}

	state, err := h.watchlist.Toggle(c.Request.Context(), userID, listingID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"state": state})
}

// RemoveWatch handles DELETE /listings/:listing_id/watch
func (h *Handler) RemoveWatch(c *gin.Context) {
	userID, ok := h.actingUser(c)
	if !ok {
		return
	}

	listingID, ok := h.pathID(c, "listing_id")
	if !ok {
		return
	}

	if err := h.watchlist.Remove(c.Request.Context(), userID, listingID); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"state": inbound.NotWatching})
}

// Watchlist handles GET /watchlist
func (h *Handler) Watchlist(c *gin.Context) {
	userID, ok := h.actingUser(c)
	if !ok {
		return
	}

	listings, err := h.watchlist.List(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, listings)
}

// ListCategories handles GET /categories
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.listings.ListCategories(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// ListByCategory handles GET /categories/:category_id/listings
func (h *Handler) ListByCategory(c *gin.Context) {
	categoryID, ok := h.pathID(c, "category_id")
	if !ok {
		return
	}

	listings, err := h.listings.ListByCategory(c.Request.Context(), categoryID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, listings)
}

// actingUser extracts the authenticated user identity from the request
func (h *Handler) actingUser(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetHeader(userIDHeader)
	if raw == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing " + userIDHeader + " header"})
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid " + userIDHeader + " header"})
		return uuid.Nil, false
	}

	return userID, true
}

// pathID parses a UUID path parameter
func (h *Handler) pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// writeError maps domain errors to HTTP status codes
func (h *Handler) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, shared.ErrListingNotFound),
		errors.Is(err, shared.ErrUserNotFound),
		errors.Is(err, shared.ErrCategoryNotFound),
		errors.Is(err, shared.ErrNoBidsFound):
		status = http.StatusNotFound
	case errors.Is(err, shared.ErrNotAuthorized):
		status = http.StatusForbidden
	case errors.Is(err, shared.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, shared.ErrDuplicateUsername):
		status = http.StatusConflict
	case errors.Is(err, shared.ErrBidTooLow),
		errors.Is(err, shared.ErrListingClosed),
		errors.Is(err, shared.ErrListingLocked):
		status = http.StatusConflict
	case errors.Is(err, shared.ErrInvalidAmount),
		errors.Is(err, shared.ErrInvalidStartBid),
		errors.Is(err, shared.ErrTitleRequired),
		errors.Is(err, shared.ErrTitleTooLong),
		errors.Is(err, shared.ErrDescriptionLong),
		errors.Is(err, shared.ErrCommentEmpty),
		errors.Is(err, shared.ErrCommentTooLong),
		errors.Is(err, shared.ErrUsernameRequired),
		errors.Is(err, shared.ErrWeakPassword):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		h.logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
