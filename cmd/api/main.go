package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/devcatalog/projects-api/config"
	"github.com/devcatalog/projects-api/internal/bootstrap"
	"github.com/devcatalog/projects-api/internal/db"
	"github.com/devcatalog/projects-api/internal/ratelimit"
)

const serviceName = "projects-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	bootstrap.InitLogger(cfg.App.Environment, cfg.App.LogLevel)
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx, db.Options{
		DSN:      cfg.Database.DSN,
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		slog.Error("database unavailable", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		slog.Error("schema setup failed", "error", err)
		os.Exit(1)
	}

	limiter, sweeper, err := buildLimiter(cfg)
	if err != nil {
		slog.Error("rate limiter setup failed", "error", err)
		os.Exit(1)
	}
	if sweeper != nil {
		sweeper.Start()
		defer sweeper.Stop()
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		DB:          database.Pool,
		CORS:        cfg.CORS,
		Limiter:     limiter,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown incomplete", "error", err)
	}
}

// buildLimiter picks the Redis-backed window when REDIS_ADDR is configured
// so multiple instances share limits; otherwise the in-memory window with
// its periodic sweep.
func buildLimiter(cfg *config.Config) (ratelimit.Limiter, *ratelimit.Sweeper, error) {
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return ratelimit.NewRedisWindow(client, cfg.RateLimit.Burst, time.Second), nil, nil
	}

	window := ratelimit.NewSlidingWindow(cfg.RateLimit.Burst, time.Second)
	sweeper, err := ratelimit.NewSweeper(window)
	if err != nil {
		return nil, nil, err
	}
	return window, sweeper, nil
}
