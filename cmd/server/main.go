package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/sustaincity/city-backend/internal/api"
	"github.com/sustaincity/city-backend/internal/core/service"
	"github.com/sustaincity/city-backend/internal/infrastructure/db/redis"
	"github.com/sustaincity/city-backend/internal/infrastructure/queue"
	"github.com/sustaincity/city-backend/internal/infrastructure/ratelimit"
	"github.com/sustaincity/city-backend/internal/pkg/config"
	"github.com/sustaincity/city-backend/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Redis only backs the login throttle; the demo runs fine without it.
	var rdb *goredis.Client
	var limiter service.LoginLimiter
	if cfg.Redis.Addr != "" {
		client, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, login throttle disabled")
		} else {
			rdb = client
			limiter = ratelimit.NewLoginLimiter(rdb, cfg.Redis.MaxFailures, cfg.Redis.Cooldown, log)
			defer func() { _ = rdb.Close() }()
		}
	}

	// --- Core services ---
	hasher := service.NewPasswordHasher(0)
	users := service.NewUserRegistry(hasher, log)
	if err := users.SeedDemoUsers(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to seed demo users")
	}

	issuer := service.NewTokenIssuer(cfg.JWTSecret, 24*time.Hour)
	auth := service.NewAuthService(users, issuer, limiter, log)

	scheduler := queue.NewScheduler(cfg.Simulation.Workers, log)
	simulations := service.NewSimulationRegistry(scheduler, cfg.Simulation.RunDelay, log)
	simulations.SeedDemoData()
	scheduler.Start(ctx, simulations)

	notifications := service.NewNotificationRegistry(log)
	notifications.SeedDemoData()

	dashboard := service.NewDashboardService()

	// --- HTTP server ---
	e := api.NewRouter(api.Services{
		Auth:          auth,
		Users:         users,
		Simulations:   simulations,
		Notifications: notifications,
		Dashboard:     dashboard,
	}, rdb, cfg.JWTSecret, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("city management backend started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
