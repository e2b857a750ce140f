package http

import (
	"github.com/emberlink/emberlink-backend/internal/delivery/http/handler"
	"github.com/emberlink/emberlink-backend/internal/delivery/http/middleware"
	"github.com/emberlink/emberlink-backend/internal/delivery/ws"
	"github.com/emberlink/emberlink-backend/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type Router struct {
	authHandler    *handler.AuthHandler
	profileHandler *handler.ProfileHandler
	feedHandler    *handler.FeedHandler
	swipeHandler   *handler.SwipeHandler
	matchHandler   *handler.MatchHandler
	chatHandler    *handler.ChatHandler
	checkInHandler *handler.CheckInHandler
	billingHandler *handler.BillingHandler
	wsHandler      *ws.Handler
	authMiddleware *middleware.AuthMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	feedHandler *handler.FeedHandler,
	swipeHandler *handler.SwipeHandler,
	matchHandler *handler.MatchHandler,
	chatHandler *handler.ChatHandler,
	checkInHandler *handler.CheckInHandler,
	billingHandler *handler.BillingHandler,
	wsHandler *ws.Handler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		authHandler:    authHandler,
		profileHandler: profileHandler,
		feedHandler:    feedHandler,
		swipeHandler:   swipeHandler,
		matchHandler:   matchHandler,
		chatHandler:    chatHandler,
		checkInHandler: checkInHandler,
		billingHandler: billingHandler,
		wsHandler:      wsHandler,
		authMiddleware: authMiddleware,
	}
}

func (r *Router) Setup() *gin.Engine {
	registerValidators()

	router := gin.Default()

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// WebSocket endpoint; authenticates via ?token= inside the handler
	router.GET("/ws", r.wsHandler.Serve)

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
			auth.GET("/me", r.authMiddleware.RequireAuth(), r.authHandler.Me)
		}

		// Protected routes
		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			// Profile routes
			profile := protected.Group("/profile")
			{
				profile.GET("/me", r.profileHandler.GetMyProfile)
				profile.PUT("/me", r.profileHandler.UpdateMyProfile)
				profile.POST("/complete-onboarding", r.profileHandler.CompleteOnboarding)
				profile.GET("/:user_id", r.profileHandler.GetProfileByUserID)
			}

			// Feed routes
			feed := protected.Group("/feed")
			{
				feed.GET("/next", r.feedHandler.NextCandidate)
			}

			// Swipe routes
			swipes := protected.Group("/swipes")
			{
				swipes.POST("", r.swipeHandler.CreateSwipe)
				swipes.POST("/super-like", r.swipeHandler.SuperLike)
				swipes.POST("/rewind", r.swipeHandler.Rewind)
				swipes.GET("/likes-received", r.swipeHandler.LikesReceived)
			}

			// Match and chat routes
			matches := protected.Group("/matches")
			{
				matches.GET("", r.matchHandler.ListMatches)
				matches.DELETE("/:match_id", r.matchHandler.Unmatch)
				matches.POST("/:match_id/messages", r.chatHandler.SendMessage)
				matches.GET("/:match_id/messages", r.chatHandler.GetHistory)
			}

			// Check-in routes
			protected.GET("/establishments", r.checkInHandler.ListEstablishments)
			protected.GET("/establishments/:establishment_id/visitors", r.checkInHandler.ListVisitors)
			protected.POST("/checkins", r.checkInHandler.CheckIn)
			protected.DELETE("/checkins/current", r.checkInHandler.CheckOut)

			// Billing routes
			billing := protected.Group("/billing")
			{
				billing.POST("/sync", r.billingHandler.SyncSubscription)
				billing.GET("/subscription", r.billingHandler.GetSubscription)
			}
		}
	}

	return router
}

// registerValidators installs custom binding rules on gin's validator.
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("swipetype", func(fl validator.FieldLevel) bool {
			switch fl.Field().String() {
			case domain.SwipeTypeLike, domain.SwipeTypeDislike:
				return true
			}
			return false
		})
	}
}
