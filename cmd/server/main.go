package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "nestify/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"nestify/internal/auth"
	"nestify/internal/cache"
	"nestify/internal/config"
	"nestify/internal/db"
	"nestify/internal/handler"
	"nestify/internal/logging"
	"nestify/internal/media"
	"nestify/internal/model"
	"nestify/internal/repository"
	"nestify/internal/router"
	"nestify/internal/service"
	"nestify/internal/validation"
)

const shutdownTimeout = 10 * time.Second

// @title Nestify API
// @version 1.0
// @description Property rental and roommate marketplace API with JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err := cfg.Validate(); err != nil {
		logging.Fatal().Err(err).Msg("invalid configuration")
	}
	if cfg.JWTSecret == config.DevJWTSecret {
		logging.Warn().Msg("JWT_SECRET not set, signing tokens with the development secret")
	}

	gormDB, err := db.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		logging.Fatal().Err(err).Msg("database init")
	}
	defer func() {
		if err := db.Close(gormDB); err != nil {
			logging.Warn().Err(err).Msg("close database")
		}
	}()

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		logging.Warn().Msg("RESET_DB=true detected, dropping all tables")
		for _, table := range []any{&model.RoomRequest{}, &model.Property{}, &model.User{}} {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				logging.Warn().Err(err).Msg("failed to drop table (may not exist)")
			}
		}
	}

	if err := db.Migrate(gormDB); err != nil {
		logging.Fatal().Err(err).Msg("migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if cacheClient == nil {
		logging.Warn().Msg("REDIS_ADDR not set, caching and token revocation are in-process only")
	}

	mediaDelegate := media.NewBreaker(media.NewCloudinary(media.CloudinaryConfig{
		BaseURL:   cfg.MediaBaseURL,
		CloudName: cfg.MediaCloudName,
		APIKey:    cfg.MediaAPIKey,
		APISecret: cfg.MediaAPISecret,
		Folder:    cfg.MediaFolder,
	}), media.DefaultBreakerSettings)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	propertyRepo := repository.NewPropertyRepository(gormDB)
	roomRequestRepo := repository.NewRoomRequestRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry)
	var tokenStore auth.TokenStoreInterface = auth.NewTokenStore(cacheClient)
	if cacheClient == nil {
		tokenStore = auth.NewMemoryTokenStore()
	}

	validate := validation.New()

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore, mediaDelegate, cacheClient, validate)
	userService := service.NewUserService(userRepo, mediaDelegate, cacheClient, validate)
	propertyService := service.NewPropertyService(propertyRepo, mediaDelegate, validate)
	roomRequestService := service.NewRoomRequestService(roomRequestRepo, validate)
	subscriptionService := service.NewSubscriptionService(userRepo, cacheClient, cfg.SubscriptionPeriod)
	adminService := service.NewAdminService(userRepo, propertyRepo, roomRequestRepo)

	e := router.New(cfg, router.Deps{
		JWT:          jwtService,
		AuthService:  authService,
		HealthChecks: healthChecks(gormDB, cacheClient, mediaDelegate),
	}, router.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		User:         handler.NewUserHandler(userService),
		Property:     handler.NewPropertyHandler(propertyService),
		RoomRequest:  handler.NewRoomRequestHandler(roomRequestService),
		Subscription: handler.NewSubscriptionHandler(subscriptionService),
		Admin:        handler.NewAdminHandler(adminService),
	})

	logging.Info().Str("url", "http://localhost:"+cfg.ServerPort+"/swagger/index.html").Msg("swagger documentation available")

	run(e, ":"+cfg.ServerPort)
}

// healthChecks lists what /healthz checks. The cache and media host fail
// soft, so they only degrade the status.
func healthChecks(gormDB *gorm.DB, cacheClient *cache.Client, mediaDelegate *media.Breaker) []router.HealthCheck {
	checks := []router.HealthCheck{{
		Name: "database",
		Check: func(ctx context.Context) error {
			sqlDB, err := gormDB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}}
	if cacheClient != nil {
		checks = append(checks, router.HealthCheck{Name: "cache", Check: cacheClient.Ping, Optional: true})
	}
	return append(checks, router.HealthCheck{Name: "media", Check: mediaDelegate.Check, Optional: true})
}

// run serves until SIGINT or SIGTERM, then drains in-flight requests.
func run(e *echo.Echo, addr string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logging.Info().Str("addr", addr).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error().Err(err).Msg("server start")
			stop()
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("graceful shutdown")
	}
}
