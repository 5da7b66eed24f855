package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"estate-hub/internal/api"
	"estate-hub/internal/api/handlers"
	"estate-hub/internal/recommend"
	"estate-hub/internal/repository"
	"estate-hub/internal/service"
	"estate-hub/pkg/auth"
	"estate-hub/pkg/config"
	"estate-hub/pkg/logger"
	"estate-hub/pkg/mailer"
	"estate-hub/pkg/postgres"

	"go.uber.org/zap"
)

// @title EstateHub API
// @version 1.0
// @description Real-estate marketplace API with personalized recommendations

// @contact.name API Support
// @contact.email support@estatehub.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:3001
// @BasePath /api

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting EstateHub service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	propertyRepo := repository.NewPropertyRepository(db, appLogger)
	commentRepo := repository.NewCommentRepository(db, appLogger)
	favoriteRepo := repository.NewFavoriteRepository(db, appLogger)
	otpRepo := repository.NewOTPRepository(db, appLogger)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Scoring weights: defaults unless an override file is configured
	weights := recommend.DefaultWeights()
	if path := os.Getenv("RECOMMEND_WEIGHTS"); path != "" {
		weights, err = recommend.LoadWeightsFromFile(path)
		if err != nil {
			appLogger.Warn("Failed to load weights file, using defaults", zap.Error(err))
		}
	}
	engine := recommend.NewEngine(weights)

	// Initialize services
	mail := mailer.New(&cfg.SMTP, appLogger)
	emailService := service.NewEmailService(mail, appLogger)
	authService := service.NewAuthService(userRepo, otpRepo, emailService, jwtManager, cfg.OTP, appLogger)
	propertyService := service.NewPropertyService(propertyRepo, commentRepo, cfg.Upload, appLogger)
	favoriteService := service.NewFavoriteService(favoriteRepo, propertyRepo, appLogger)
	recommendationService := service.NewRecommendationService(engine, propertyRepo, favoriteRepo, appLogger)
	adminService := service.NewAdminService(userRepo, propertyRepo, appLogger)

	// Initialize handlers
	h := api.Handlers{
		Auth:           handlers.NewAuthHandler(authService, appLogger),
		Property:       handlers.NewPropertyHandler(propertyService, appLogger),
		Favorite:       handlers.NewFavoriteHandler(favoriteService, appLogger),
		Recommendation: handlers.NewRecommendationHandler(recommendationService, appLogger),
		Admin:          handlers.NewAdminHandler(adminService, emailService, appLogger),
	}

	// Setup router
	app := api.SetupRouter(h, jwtManager, cfg.Upload.Dir, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
