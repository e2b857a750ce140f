package container

import (
	"fmt"
	"log/slog"

	"github.com/emberlink/emberlink-backend/internal/cache"
	"github.com/emberlink/emberlink-backend/internal/config"
	"github.com/emberlink/emberlink-backend/internal/delivery/http"
	"github.com/emberlink/emberlink-backend/internal/delivery/http/handler"
	"github.com/emberlink/emberlink-backend/internal/delivery/http/middleware"
	"github.com/emberlink/emberlink-backend/internal/delivery/ws"
	"github.com/emberlink/emberlink-backend/internal/infrastructure/database"
	"github.com/emberlink/emberlink-backend/internal/infrastructure/gemini"
	"github.com/emberlink/emberlink-backend/internal/infrastructure/server"
	"github.com/emberlink/emberlink-backend/internal/repository/postgres"
	"github.com/emberlink/emberlink-backend/internal/usecase/auth"
	"github.com/emberlink/emberlink-backend/internal/usecase/billing"
	"github.com/emberlink/emberlink-backend/internal/usecase/chat"
	"github.com/emberlink/emberlink-backend/internal/usecase/checkin"
	"github.com/emberlink/emberlink-backend/internal/usecase/feed"
	"github.com/emberlink/emberlink-backend/internal/usecase/match"
	"github.com/emberlink/emberlink-backend/internal/usecase/profile"
	"github.com/emberlink/emberlink-backend/internal/usecase/swipe"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
	Hub    *ws.Hub
	Gemini *gemini.Client
	Log    *slog.Logger
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config, log *slog.Logger) (*Container, error) {
	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize Redis
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}
	redisCache := cache.NewRedisCache(redisClient)

	// Initialize Gemini client; AI features degrade to no-ops without it
	geminiClient, err := gemini.NewClient(cfg.GeminiAPIKey)
	if err != nil {
		log.Warn("gemini client unavailable, AI features disabled", "err", err)
		geminiClient = nil
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	swipeRepo := postgres.NewSwipeRepository(db)
	matchRepo := postgres.NewMatchRepository(db)
	messageRepo := postgres.NewMessageRepository(db)
	subscriptionRepo := postgres.NewSubscriptionRepository(db)
	checkInRepo := postgres.NewCheckInRepository(db)

	// Initialize websocket hub
	hub := ws.NewHub(log)

	// Initialize use cases
	authUseCase := auth.NewAuthUseCase(
		userRepo,
		cfg.JWT.AccessSecret,
		cfg.JWT.AccessExpiryMin,
	)

	profileUseCase := profile.NewProfileUseCase(
		profileRepo,
		userRepo,
	)

	feedUseCase := feed.NewFeedUseCase(
		userRepo,
		profileRepo,
		swipeRepo,
	)

	swipeUseCase := swipe.NewSwipeUseCase(
		swipeRepo,
		matchRepo,
		profileRepo,
		userRepo,
		redisCache,
		hub,
		geminiClient,
		cfg.Limits.DailyLikes,
		log,
	)

	matchUseCase := match.NewMatchUseCase(
		matchRepo,
		profileRepo,
		userRepo,
		messageRepo,
	)

	chatUseCase := chat.NewChatUseCase(
		messageRepo,
		matchRepo,
		hub,
		log,
	)

	checkInUseCase := checkin.NewCheckInUseCase(
		checkInRepo,
		profileRepo,
		userRepo,
	)

	billingUseCase := billing.NewBillingUseCase(
		subscriptionRepo,
		userRepo,
	)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUseCase)
	profileHandler := handler.NewProfileHandler(profileUseCase)
	feedHandler := handler.NewFeedHandler(feedUseCase)
	swipeHandler := handler.NewSwipeHandler(swipeUseCase)
	matchHandler := handler.NewMatchHandler(matchUseCase)
	chatHandler := handler.NewChatHandler(chatUseCase)
	checkInHandler := handler.NewCheckInHandler(checkInUseCase)
	billingHandler := handler.NewBillingHandler(billingUseCase)
	wsHandler := ws.NewHandler(hub, authUseCase, chatUseCase, matchRepo, redisCache, log)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authUseCase)

	// Initialize router
	router := http.NewRouter(
		authHandler,
		profileHandler,
		feedHandler,
		swipeHandler,
		matchHandler,
		chatHandler,
		checkInHandler,
		billingHandler,
		wsHandler,
		authMiddleware,
	)

	// Setup routes
	ginRouter := router.Setup()

	// Initialize server
	srv := server.NewServer(&cfg.Server, ginRouter, log)

	return &Container{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Server: srv,
		Hub:    hub,
		Gemini: geminiClient,
		Log:    log,
	}, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Gemini != nil {
		c.Gemini.Close()
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Log.Error("failed to close redis", "err", err)
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
