package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SaulT-G/skateshop/internal/cache"
	"github.com/SaulT-G/skateshop/internal/config"
	"github.com/SaulT-G/skateshop/internal/gateway"
	"github.com/SaulT-G/skateshop/internal/obs"
	"github.com/SaulT-G/skateshop/internal/platform"
)

func main() {
	config.LoadEnv()
	cfg := config.LoadGateway()

	if cfg.PlatformURL == "" || cfg.PlatformAnonKey == "" {
		obs.Logger.Error("PLATFORM_URL and PLATFORM_ANON_KEY must be set")
		os.Exit(1)
	}

	pc := platform.NewClient(cfg.PlatformURL, cfg.PlatformAnonKey)
	store := buildCache(cfg)

	srv := gateway.NewServer(pc, store, cfg.MaxUploadSize)
	httpSrv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      srv.Routes(cfg.RequestTimeout),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		obs.Logger.Info("gateway listening", "addr", cfg.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			obs.Logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	obs.Logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		obs.Logger.Error("forced shutdown", "err", err)
		os.Exit(1)
	}
	obs.Logger.Info("server exited")
}

// buildCache prefers redis when configured and reachable, falling back to
// the in-process cache so the gateway still runs without one.
func buildCache(cfg config.Gateway) cache.Cache {
	if cfg.RedisAddr == "" {
		return cache.NewMemory(15 * time.Minute)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		obs.Logger.Warn("redis unreachable, using in-process cache", "addr", cfg.RedisAddr, "err", err)
		return cache.NewMemory(15 * time.Minute)
	}
	obs.Logger.Info("redis product cache enabled", "addr", cfg.RedisAddr)
	return cache.NewRedis(rdb, "skateshop")
}
