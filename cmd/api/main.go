package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/medlaunch/onboard-api/internal/config"
	"github.com/medlaunch/onboard-api/internal/email"
	"github.com/medlaunch/onboard-api/internal/handler"
	authHandler "github.com/medlaunch/onboard-api/internal/handler/auth"
	submissionHandler "github.com/medlaunch/onboard-api/internal/handler/submission"
	uploadHandler "github.com/medlaunch/onboard-api/internal/handler/upload"
	"github.com/medlaunch/onboard-api/internal/media"
	"github.com/medlaunch/onboard-api/internal/middleware"
	"github.com/medlaunch/onboard-api/internal/repository/postgres"
	redisrepo "github.com/medlaunch/onboard-api/internal/repository/redis"
	"github.com/medlaunch/onboard-api/internal/router"
	authService "github.com/medlaunch/onboard-api/internal/service/auth"
	submissionService "github.com/medlaunch/onboard-api/internal/service/submission"
	"github.com/medlaunch/onboard-api/pkg/auth"
	"github.com/medlaunch/onboard-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{
		Level:   cfg.Log.Level,
		Console: !cfg.IsProduction(),
	})
	log.Logger = *appLogger.Zerolog()

	mediaCfg, err := config.LoadMedia()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load media configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	tokenRepo, err := redisrepo.NewTokenRepository(cfg.Redis.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}

	uploader, err := media.NewUploader(mediaCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init media uploader")
	}

	submissionRepo := postgres.NewSubmissionRepository(db)
	adminRepo := postgres.NewAdminRepository(db)

	if err := authService.SeedAdmin(context.Background(), adminRepo, cfg.Admin); err != nil {
		log.Fatal().Err(err).Msg("failed to seed admin account")
	}

	jwtSvc := auth.NewJWTService(cfg.JWT)
	emailSvc := email.NewService(cfg.SMTP)

	authSvc := authService.NewService(adminRepo, tokenRepo, jwtSvc)
	submissionSvc := submissionService.NewService(submissionRepo, emailSvc)

	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	r := router.NewRouter(
		authMiddleware,
		authHandler.NewHandler(authSvc, cfg.IsProduction()),
		submissionHandler.NewHandler(submissionSvc, cfg.IsProduction()),
		uploadHandler.NewHandler(uploader, cfg.IsProduction()),
		handler.NewHealthHandler(db),
		router.Config{
			Production: cfg.IsProduction(),
			RateLimit:  cfg.Server.RateLimit,
			RateBurst:  cfg.Server.RateBurst,
			CORS:       middleware.DefaultCORSConfig(),
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
