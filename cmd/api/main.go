package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/photospot-app/photospot-backend/internal/adapter/handler"
	"github.com/photospot-app/photospot-backend/internal/adapter/repository/postgres"
	"github.com/photospot-app/photospot-backend/internal/infrastructure/auth"
	"github.com/photospot-app/photospot-backend/internal/infrastructure/cache"
	"github.com/photospot-app/photospot-backend/internal/infrastructure/config"
	"github.com/photospot-app/photospot-backend/internal/infrastructure/database"
	"github.com/photospot-app/photospot-backend/internal/infrastructure/middleware"
	"github.com/photospot-app/photospot-backend/internal/infrastructure/observability"
	"github.com/photospot-app/photospot-backend/internal/infrastructure/server"
	"github.com/photospot-app/photospot-backend/internal/infrastructure/storage"
	authUC "github.com/photospot-app/photospot-backend/internal/usecase/auth"
	"github.com/photospot-app/photospot-backend/internal/usecase/favorite"
	"github.com/photospot-app/photospot-backend/internal/usecase/moderation"
	"github.com/photospot-app/photospot-backend/internal/usecase/photo"
	"github.com/photospot-app/photospot-backend/internal/usecase/upload"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	if err := database.RunMigrations(ctx, cfg.Database); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	pool, err := database.NewPostgresPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Repositories
	profileRepo := postgres.NewProfileRepo(pool)
	photoRepo := postgres.NewPhotoRepo(pool)
	favoriteRepo := postgres.NewFavoriteRepo(pool)
	refreshTokenRepo := postgres.NewRefreshTokenRepo(pool)

	// Infrastructure services
	jwtSvc := auth.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL)
	passwordHasher := auth.NewPasswordHasher(12)
	totalCounts := cache.NewTotalCounts(redisClient, cfg.Cache.TotalsTTL, logger)

	s3Storage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		logger.Fatal("failed to create s3 storage", zap.Error(err))
	}
	imageProcessor := storage.NewImageProcessor()

	// Use cases
	authSvc := authUC.NewService(profileRepo, refreshTokenRepo, jwtSvc, passwordHasher, cfg.JWT.RefreshTokenTTL)
	photoSvc := photo.NewService(photoRepo, profileRepo, favoriteRepo, totalCounts)
	uploadSvc := upload.NewService(photoRepo, s3Storage, imageProcessor)
	moderationSvc := moderation.NewService(photoRepo)
	favoriteSvc := favorite.NewService(photoRepo, favoriteRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	photoHandler := handler.NewPhotoHandler(photoSvc)
	uploadHandler := handler.NewUploadHandler(uploadSvc)
	moderationHandler := handler.NewModerationHandler(moderationSvc)
	favoriteHandler := handler.NewFavoriteHandler(favoriteSvc)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtSvc)
	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = middleware.NewRateLimiter(redisClient, cfg.RateLimit)
	}

	// Router
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:       authHandler,
		PhotoHandler:      photoHandler,
		UploadHandler:     uploadHandler,
		ModerationHandler: moderationHandler,
		FavoriteHandler:   favoriteHandler,
		AuthMiddleware:    authMiddleware,
		RateLimiter:       rateLimiter,
		CORSOrigins:       cfg.CORS.AllowedOrigins,
		Logger:            logger,
		Environment:       cfg.Server.Environment,
	})

	// Server
	srv := server.NewServer(server.ServerConfig{
		Port:            cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Handler:         router.Engine(),
		Logger:          logger,
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	logger.Info("server stopped")
}
