package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cotizador/internal/clients"
	"cotizador/internal/config"
	"cotizador/internal/document"
	"cotizador/internal/service"
	"cotizador/internal/transport/ratelimit"
	"cotizador/internal/transport/rest"
	"cotizador/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	log := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if envErr != nil {
		log.Debug().Msg("no .env file found, using system env or defaults")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	limiter, closeLimiter := mustInitLimiter(ctx, cfg, log)
	defer closeLimiter()

	quotations := service.NewQuotationService()
	renderers := document.NewRegistry(
		document.NewPDFRenderer(),
		document.NewXLSXRenderer(),
	)

	handler := rest.NewHandler(quotations, renderers, log, rest.Options{
		RequestTimeout: cfg.RequestTimeout,
		TrustProxy:     cfg.TrustProxy,
		AllowedOrigins: cfg.AllowedOrigins,
	})
	router := handler.InitRouterWithLimiter(ratelimit.Middleware(limiter))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvErr <- err
			return
		}
		srvErr <- nil
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-srvErr:
		if err != nil {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("shutdown signal received")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("HTTP server shutdown error")
		}

		log.Info().Msg("shutdown complete")
	}
}

// mustInitLimiter picks the Redis limiter when REDIS_ADDR is set and the
// in-memory one otherwise.
func mustInitLimiter(ctx context.Context, cfg config.AppConfig, log zerolog.Logger) (ratelimit.Limiter, func()) {
	if !cfg.Redis.Enabled() {
		mem := ratelimit.NewMemoryLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Window)
		log.Info().Int("capacity", cfg.RateLimit.Capacity).Dur("window", cfg.RateLimit.Window).Msg("using in-memory rate limiter")
		return mem, mem.Stop
	}

	redisClient, err := clients.NewRedisClient(ctx, clients.RedisConfig{
		Addr:        cfg.Redis.Addr,
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		MaxRetries:  cfg.Redis.MaxRetries,
		DialTimeout: time.Duration(cfg.Redis.DialTimeout) * time.Second,
		Timeout:     time.Duration(cfg.Redis.Timeout) * time.Second,
		Prefix:      cfg.Redis.Prefix,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis init error")
	}

	log.Info().Str("addr", cfg.Redis.Addr).Msg("using redis rate limiter")
	return ratelimit.NewRedisLimiter(redisClient, cfg.RateLimit.Capacity, cfg.RateLimit.Window), redisClient.Close
}
