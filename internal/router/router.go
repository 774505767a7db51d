package router

import (
	"time"

	"huddle/config"
	"huddle/internal/clock"
	"huddle/internal/discovery"
	"huddle/internal/handler"
	"huddle/internal/middleware"
	"huddle/internal/repository"
	"huddle/internal/service"
	"huddle/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, cloud cloudinary.Client, clk clock.Clock) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewSlidingWindowLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	presenceRepo := repository.NewPresenceRepository(db, clk)
	locRepo := repository.NewLocationRepository(db, clk)
	blockRepo := repository.NewBlockRepository(db)
	convRepo := repository.NewConversationRepository(db)

	// Services
	authSvc := service.NewAuthService(cfg, userRepo)
	engine := discovery.NewEngine(presenceRepo, blockRepo, locRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc, presenceRepo)
	googleOAuthHandler := handler.NewGoogleOAuthHandler(cfg, authSvc, presenceRepo)
	meHandler := handler.NewMeHandler(userRepo, cloud)
	presenceHandler := handler.NewPresenceHandler(presenceRepo)
	locationHandler := handler.NewLocationHandler(locRepo, userRepo, blockRepo)
	nearbyHandler := handler.NewNearbyHandler(engine)
	blockHandler := handler.NewBlockHandler(blockRepo, userRepo)
	chatHandler := handler.NewChatHandler(convRepo, userRepo, blockRepo, clk)
	cleanupHandler := handler.NewCleanupHandler(presenceRepo, convRepo, &cfg.Cleanup, clk)

	authMw := middleware.AuthRequired(&cfg.JWT)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", authMw, authHandler.Logout)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.PATCH("/change-password", authMw, authHandler.ChangePassword)
			authGroup.GET("/google", googleOAuthHandler.Redirect)
			authGroup.GET("/google/callback", googleOAuthHandler.Callback)
			authGroup.POST("/google/token", googleOAuthHandler.Token)
		}

		api.POST("/locations/batch", authMw, locationHandler.AppendBatch)
		api.GET("/locations/:user_id", authMw, locationHandler.GetUserLocation)
		api.GET("/users/nearby", authMw, nearbyHandler.FindNearby)

		api.POST("/presence/heartbeat", authMw, presenceHandler.Heartbeat)
		api.POST("/presence/status", authMw, presenceHandler.SetStatus)
		api.GET("/presence/me", authMw, presenceHandler.GetMyPresence)

		api.POST("/blocks", authMw, blockHandler.Create)
		api.DELETE("/blocks/:id", authMw, blockHandler.Delete)
		api.GET("/blocks", authMw, blockHandler.List)

		api.POST("/conversations", authMw, chatHandler.CreateConversation)
		api.GET("/conversations", authMw, chatHandler.ListConversations)
		api.POST("/conversations/:id/messages", authMw, chatHandler.PostMessage)
		api.GET("/conversations/:id/messages", authMw, chatHandler.ListMessages)

		me := api.Group("/me")
		me.Use(authMw)
		{
			me.GET("/profile", meHandler.GetProfile)
			me.PATCH("/profile", meHandler.UpdateProfile)
			me.POST("/avatar", meHandler.UploadAvatar)
			me.DELETE("", meHandler.DeleteAccount)
		}

		// Internal triggers for the external scheduler; the message
		// endpoint is gated by the shared secret instead of a bearer token.
		api.POST("/cleanup/inactive-users", cleanupHandler.InactiveUsers)
		api.POST("/cleanup/messages", cleanupHandler.Messages)
	}

	return r
}
