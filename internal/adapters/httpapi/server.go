package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"bidboard/internal/config"
	"bidboard/internal/ports/inbound"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Server wraps the HTTP API in a gracefully stoppable http.Server
type Server struct {
	handler    *Handler
	httpServer *http.Server
	config     *config.Config
	logger     zerolog.Logger
}

type ServerParams struct {
	Config              *config.Config
	ListingService      inbound.ListingService
	BidService          inbound.BidService
	WatchlistService    inbound.WatchlistService
	CommentService      inbound.CommentService
	RegistrationService inbound.RegistrationService
	Logger              zerolog.Logger
}

func NewServer(params ServerParams) *Server {
	handler := NewHandler(HandlerParams{
		ListingService:      params.ListingService,
		BidService:          params.BidService,
		WatchlistService:    params.WatchlistService,
		CommentService:      params.CommentService,
		RegistrationService: params.RegistrationService,
		Logger:              params.Logger,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", params.Config.Server.Port),
		Handler:      newRouter(handler),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		handler:    handler,
		httpServer: httpServer,
		config:     params.Config,
		logger:     params.Logger,
	}
}

// newRouter configures all Gin routes for the application
func newRouter(handler *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", handleHealth)

	router.POST("/users", handler.Register)
	router.POST("/login", handler.Login)

	listings := router.Group("/listings")
	{
		listings.GET("", handler.ListActiveListings)
		listings.POST("", handler.CreateListing)
		listings.GET("/:listing_id", handler.GetListing)
		listings.POST("/:listing_id/close", handler.CloseListing)
		listings.GET("/:listing_id/bids", handler.ListBids)
		listings.POST("/:listing_id/bids", handler.PlaceBid)
		listings.GET("/:listing_id/comments", handler.ListComments)
		listings.POST("/:listing_id/comments", handler.AddComment)
		listings.POST("/:listing_id/watch", handler.ToggleWatch)
		listings.DELETE("/:listing_id/watch", handler.RemoveWatch)
	}

	categories := router.Group("/categories")
	{
		categories.GET("", handler.ListCategories)
		categories.GET("/:category_id/listings", handler.ListByCategory)
	}

	router.GET("/watchlist", handler.Watchlist)

	return router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info().Str("port", s.config.Server.Port).Msg("Starting HTTP server")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info().Msg("Stopping HTTP server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.logger.Info().Msg("HTTP server stopped")
	return nil
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "bidboard"})
}
