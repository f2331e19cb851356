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

	"github.com/talentgrid/talentgrid-be/internal/api"
	"github.com/talentgrid/talentgrid-be/internal/api/handlers"
	"github.com/talentgrid/talentgrid-be/internal/auth"
	"github.com/talentgrid/talentgrid-be/internal/config"
	"github.com/talentgrid/talentgrid-be/internal/database"
	"github.com/talentgrid/talentgrid-be/internal/logger"
	"github.com/talentgrid/talentgrid-be/internal/middleware"
	"github.com/talentgrid/talentgrid-be/internal/monitoring"
	"github.com/talentgrid/talentgrid-be/internal/services"
	"github.com/talentgrid/talentgrid-be/internal/websocket"
)

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if cfg.JWTSecret == config.DefaultJWTSecret {
		log.Warn().Msg("JWT_SECRET is unset; using the built-in development secret")
	}

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	hub := websocket.NewHub()
	go hub.Run()

	tokenTTL := time.Duration(cfg.TokenTTLHours) * time.Hour
	tokens := auth.NewTokenManager(cfg.JWTSecret, tokenTTL)

	userService := services.NewUserService(db)
	eventService := services.NewEventService(db, hub)
	employerService := services.NewEmployerService(db, eventService)
	jobService := services.NewJobService(db)
	applicationService := services.NewApplicationService(db, eventService)
	jobSeekerService := services.NewJobSeekerService(db)

	sweeper, err := monitoring.NewSweeper(jobService, eventService, cfg.SweepSchedule)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure job expiry sweeper")
	}
	go sweeper.Run()

	authenticator := auth.NewAuthenticator(tokens, userService)
	limiter := middleware.NewRedisLimiter(cfg.RedisAddr, 20, time.Minute)

	router := api.NewRouter(api.Deps{
		Authenticator: authenticator,
		RateLimiter:   limiter,
		CORSOrigin:    cfg.CORSOrigin,
		Auth:          handlers.NewAuthHandler(userService, tokens, tokenTTL, cfg.Production),
		Employer:      handlers.NewEmployerHandler(employerService, userService, eventService),
		Job:           handlers.NewJobHandler(jobService),
		Application:   handlers.NewApplicationHandler(applicationService),
		JobSeeker:     handlers.NewJobSeekerHandler(jobSeekerService, userService, applicationService),
		Feed:          handlers.NewFeedHandler(hub),
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	sweeper.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
