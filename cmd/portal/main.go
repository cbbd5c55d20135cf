package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/wolfman30/wellness-portal/internal/api/router"
	"github.com/wolfman30/wellness-portal/internal/backend"
	appconfig "github.com/wolfman30/wellness-portal/internal/config"
	"github.com/wolfman30/wellness-portal/internal/http/handlers"
	httpmiddleware "github.com/wolfman30/wellness-portal/internal/http/middleware"
	"github.com/wolfman30/wellness-portal/internal/observability/metrics"
	"github.com/wolfman30/wellness-portal/internal/session"
	"github.com/wolfman30/wellness-portal/internal/validation"
	"github.com/wolfman30/wellness-portal/internal/views"
	"github.com/wolfman30/wellness-portal/pkg/logging"
)

func main() {
	// .env is optional outside local development
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	loc, _ := cfg.Location()

	logger.Info("starting wellness portal",
		"env", cfg.Env,
		"port", cfg.Port,
		"backend", cfg.BackendBaseURL,
		"session_store", cfg.SessionStore,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	portalMetrics := metrics.NewPortalMetrics(prometheus.DefaultRegisterer)

	client := backend.NewClient(backend.Config{
		BaseURL:  cfg.BackendBaseURL,
		Timeout:  cfg.BackendTimeout,
		Location: loc,
		Metrics:  portalMetrics,
	}, logger)

	store, closeStore, err := buildSessionStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize session store", "error", err)
		os.Exit(1)
	}
	defer closeStore()
	if purger, ok := store.(session.Purger); ok {
		go session.NewJanitor(purger, logger).Run(ctx)
	}

	sessions := session.NewManager(store, client, session.ManagerConfig{
		TTL:     cfg.SessionTTL,
		Metrics: portalMetrics,
	}, logger)
	cookie := session.Cookie{Name: cfg.SessionCookieName, Secure: cfg.SessionCookieSecure}

	loader := views.NewLoader(client, loc, logger)
	validator := validation.New()
	responder := handlers.NewResponder(sessions, cookie, cfg.LoginPath, logger)

	var limiter *httpmiddleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		limiter = httpmiddleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		limiter.StartCleanup(ctx.Done())
	}

	r := router.New(&router.Config{
		Logger:             logger,
		Auth:               handlers.NewAuthHandler(sessions, client, validator, cookie, responder, logger),
		Portal:             handlers.NewPortalHandler(loader, responder, logger),
		Appointments:       handlers.NewAppointmentsHandler(loader, client, validator, responder, logger),
		Admin:              handlers.NewAdminHandler(loader, client, validator, responder, logger),
		Sessions:           sessions,
		Cookie:             cookie,
		LoginPath:          cfg.LoginPath,
		RateLimiter:        limiter,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.BackendTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func buildSessionStore(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (session.Store, func(), error) {
	switch cfg.SessionStore {
	case appconfig.SessionStoreRedis:
		opts := &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		logger.Info("using redis session store", "addr", cfg.RedisAddr)
		return session.NewRedisStore(client), func() { _ = client.Close() }, nil
	case appconfig.SessionStorePostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		logger.Info("using postgres session store")
		return session.NewPostgresStore(pool), pool.Close, nil
	default:
		logger.Info("using in-memory session store")
		return session.NewMemoryStore(), func() {}, nil
	}
}
