package server

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/photospot-app/photospot-backend/internal/adapter/handler"
	"github.com/photospot-app/photospot-backend/internal/domain/entity"
	"github.com/photospot-app/photospot-backend/internal/infrastructure/middleware"
)

type Router struct {
	engine            *gin.Engine
	authHandler       *handler.AuthHandler
	photoHandler      *handler.PhotoHandler
	uploadHandler     *handler.UploadHandler
	moderationHandler *handler.ModerationHandler
	favoriteHandler   *handler.FavoriteHandler
	authMiddleware    *middleware.AuthMiddleware
	rateLimiter       *middleware.RateLimiter
	corsOrigins       []string
	logger            *zap.Logger
}

type RouterConfig struct {
	AuthHandler       *handler.AuthHandler
	PhotoHandler      *handler.PhotoHandler
	UploadHandler     *handler.UploadHandler
	ModerationHandler *handler.ModerationHandler
	FavoriteHandler   *handler.FavoriteHandler
	AuthMiddleware    *middleware.AuthMiddleware
	RateLimiter       *middleware.RateLimiter
	CORSOrigins       []string
	Logger            *zap.Logger
	Environment       string
}

func NewRouter(cfg RouterConfig) *Router {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	r := &Router{
		engine:            engine,
		authHandler:       cfg.AuthHandler,
		photoHandler:      cfg.PhotoHandler,
		uploadHandler:     cfg.UploadHandler,
		moderationHandler: cfg.ModerationHandler,
		favoriteHandler:   cfg.FavoriteHandler,
		authMiddleware:    cfg.AuthMiddleware,
		rateLimiter:       cfg.RateLimiter,
		corsOrigins:       cfg.CORSOrigins,
		logger:            cfg.Logger,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.CORS(r.corsOrigins))
	if r.rateLimiter != nil {
		r.engine.Use(r.rateLimiter.Limit())
	}
}

func (r *Router) setupRoutes() {
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.engine.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
			auth.POST("/refresh", r.authHandler.Refresh)
			auth.POST("/logout", r.authMiddleware.RequireAuth(), r.authHandler.Logout)
		}

		// Browsing is open to everyone; a token only changes what the
		// viewer is allowed to see.
		photos := api.Group("/photos")
		{
			photos.GET("", r.authMiddleware.OptionalAuth(), r.photoHandler.List)
			photos.GET("/:id", r.authMiddleware.OptionalAuth(), r.photoHandler.Get)

			photos.POST("", r.authMiddleware.RequireAuth(), r.uploadHandler.Upload)
			photos.DELETE("/:id", r.authMiddleware.RequireAuth(), r.uploadHandler.Delete)

			photos.PUT("/:id/favorite", r.authMiddleware.RequireAuth(), r.favoriteHandler.Add)
			photos.DELETE("/:id/favorite", r.authMiddleware.RequireAuth(), r.favoriteHandler.Remove)
		}

		moderation := api.Group("/moderation")
		moderation.Use(r.authMiddleware.RequireAuth(), middleware.RequireRole(entity.RoleModerator))
		{
			moderation.GET("/photos", r.moderationHandler.ListPending)
			moderation.POST("/photos/:id/approve", r.moderationHandler.Approve)
			moderation.POST("/photos/:id/reject", r.moderationHandler.Reject)
		}
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
