package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/Silveira-k7/PragmaL/internal/analytics"
	"github.com/Silveira-k7/PragmaL/internal/api/router"
	"github.com/Silveira-k7/PragmaL/internal/assistant"
	"github.com/Silveira-k7/PragmaL/internal/auth"
	appconfig "github.com/Silveira-k7/PragmaL/internal/config"
	"github.com/Silveira-k7/PragmaL/internal/facilities"
	"github.com/Silveira-k7/PragmaL/internal/observability/metrics"
	"github.com/Silveira-k7/PragmaL/internal/recurrence"
	"github.com/Silveira-k7/PragmaL/internal/reservations"
	"github.com/Silveira-k7/PragmaL/internal/webchat"
	"github.com/Silveira-k7/PragmaL/pkg/logging"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting pragma API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	if cfg.JWTSecret == "" {
		logger.Error("JWT_SECRET is required")
		os.Exit(1)
	}
	if cfg.DatabaseURL == "" {
		logger.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to create pgx pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}

	// Repositories and services
	facilitiesRepo := facilities.NewRepository(pool)
	reservationsRepo := reservations.NewRepository(pool)
	reservationsSvc := reservations.NewService(reservationsRepo, recurrence.NewExpander(nil), logger)
	analyticsRepo := analytics.NewRepository(pool)
	authRepo := auth.NewRepository(pool)
	authSvc := auth.NewService(authRepo, cfg.JWTSecret, cfg.TokenTTL, nil)

	assistantMetrics := metrics.NewAssistantMetrics(nil)

	var sessions assistant.SessionStore
	if cfg.UseMemorySessions {
		logger.Info("using in-memory chat sessions")
		sessions = assistant.NewMemorySessionStore()
	} else {
		opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		redisClient := redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Error("failed to ping redis, falling back to memory sessions", "error", err)
			sessions = assistant.NewMemorySessionStore()
		} else {
			sessions = assistant.NewRedisSessionStore(redisClient, cfg.SessionTTL, nil)
		}
	}

	assistantSvc := assistant.NewService(
		assistant.NewExtractor(nil, nil),
		sessions,
		facilitiesRepo,
		reservationsSvc,
		assistantMetrics,
		logger,
		assistant.Config{Name: cfg.AssistantName, DefaultWeeks: cfg.DefaultWeeks},
	)

	// Handlers
	routerCfg := &router.Config{
		Logger:              logger,
		AuthHandler:         auth.NewHandler(authSvc, logger),
		FacilitiesHandler:   facilities.NewHandler(facilitiesRepo, logger),
		ReservationsHandler: reservations.NewHandler(reservationsRepo, reservationsSvc, logger),
		AnalyticsHandler:    analytics.NewHandler(analyticsRepo, logger, nil),
		ChatHandler:         webchat.NewHandler(assistantSvc, logger),
		MetricsHandler:      promhttp.Handler(),
		JWTSecret:           cfg.JWTSecret,
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.New(routerCfg),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	logger.Info("server stopped")
}
