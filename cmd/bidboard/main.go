package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"bidboard/internal/adapters/db"
	"bidboard/internal/adapters/httpapi"
	"bidboard/internal/adapters/locker"
	"bidboard/internal/adapters/redis"
	"bidboard/internal/app"
	"bidboard/internal/config"
)

func main() {

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	initLogging(cfg)

	log.Info().Msg("Starting Bidboard listing service...")

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection and run migrations
	dbConn, err := db.NewConnection(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbConn.Close()

	log.Info().Msg("Database connection established")

	// Create repositories
	repoFactory := db.NewRepositoryFactory(dbConn)
	listingRepo := repoFactory.GetListingRepository()
	bidRepo := repoFactory.GetBidRepository()
	commentRepo := repoFactory.GetCommentRepository()
	userRepo := repoFactory.GetUserRepository()
	categoryRepo := repoFactory.GetCategoryRepository()
	watchRepo := repoFactory.GetWatchlistRepository()

	log.Info().Msg("Database repositories initialized")

	// Create Redis client for the per-listing bid lock
	redisClient := redis.NewClient(cfg)
	if err := redis.PingRedis(redisClient); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	log.Info().Msg("Redis connection established")

	listingLocker := locker.NewRedisLocker(locker.RedisLockerParams{
		RedisClient: redisClient,
		Logger:      log.Logger,
	})

	// Create business services
	listingService := app.NewListingService(app.ListingServiceParams{
		ListingRepo:  listingRepo,
		BidRepo:      bidRepo,
		UserRepo:     userRepo,
		CategoryRepo: categoryRepo,
		Logger:       log.Logger,
	})
	bidService := app.NewBidService(app.BidServiceParams{
		BidRepo:     bidRepo,
		ListingRepo: listingRepo,
		UserRepo:    userRepo,
		Locker:      listingLocker,
		Logger:      log.Logger,
	})
	watchlistService := app.NewWatchlistService(app.WatchlistServiceParams{
		WatchRepo:   watchRepo,
		ListingRepo: listingRepo,
		Logger:      log.Logger,
	})
	commentService := app.NewCommentService(app.CommentServiceParams{
		CommentRepo: commentRepo,
		ListingRepo: listingRepo,
		UserRepo:    userRepo,
		Logger:      log.Logger,
	})
	registrationService := app.NewRegistrationService(app.RegistrationServiceParams{
		UserRepo: userRepo,
		Logger:   log.Logger,
	})

	log.Info().Msg("Business services initialized")

	apiServer := httpapi.NewServer(httpapi.ServerParams{
		Config:              cfg,
		ListingService:      listingService,
		BidService:          bidService,
		WatchlistService:    watchlistService,
		CommentService:      commentService,
		RegistrationService: registrationService,
		Logger:              log.Logger,
	})

	log.Info().Msg("HTTP server initialized")

	// Start HTTP server
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := apiServer.Start(); err != nil {
			log.Error().Err(err).Msg("Failed to start HTTP server")
			cancel()
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case <-ctx.Done():
		log.Info().Msg("Context cancelled")
	}

	// Graceful shutdown
	log.Info().Msg("Starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := apiServer.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error stopping HTTP server")
	}

	log.Info().Msg("Graceful shutdown completed")
}

func initLogging(cfg *config.Config) {
	// Set log level
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Set log format
	if cfg.Logging.Format == "json" {
		// JSON format (default)
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		// Console format for development
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		log.Logger = zerolog.New(output).With().Timestamp().Logger()
	}

	// Set global logger
	zerolog.DefaultContextLogger = &log.Logger
}
