package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartmarshall/dndsheet/internal/config"
	"github.com/heartmarshall/dndsheet/internal/transport/middleware"
	"github.com/heartmarshall/dndsheet/internal/transport/rest"
)

const rateLimiterCleanup = 5 * time.Minute

// Run is the server entry point. It loads configuration, opens storage,
// hydrates the sheet and serves HTTP until ctx is cancelled, then shuts
// down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("storage", cfg.Storage.Driver),
	)

	store, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("close storage", slog.String("error", err.Error()))
		}
	}()

	if err := store.Sheet.Hydrate(ctx); err != nil {
		return fmt.Errorf("hydrate sheet: %w", err)
	}

	limiter := middleware.NewRateLimiter(rateLimiterCleanup)
	defer limiter.Stop()

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      NewHandler(cfg, store, logger, limiter),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// NewHandler builds the routed, middleware-wrapped HTTP handler.
func NewHandler(cfg *config.Config, store *Store, logger *slog.Logger, limiter *middleware.RateLimiter) http.Handler {
	mux := http.NewServeMux()

	health := rest.NewHealthHandler(store.Repo, cfg.Storage.Driver, BuildVersion())
	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)

	if cfg.Metrics.Enabled {
		mux.Handle("GET "+cfg.Metrics.Path, promhttp.Handler())
	}

	mux.HandleFunc("/api/sheet-data", rest.SheetData)
	rest.NewSheetHandler(store.Sheet, logger).Register(mux)

	// RequestID must stay outermost: it replaces the request, and the
	// inner middleware read the mux pattern off the replacement.
	return middleware.Chain(
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.Metrics(),
		middleware.CORS(cfg.CORS),
		limiter.Limit(cfg.Server.RateLimitPerMinute),
	)(mux)
}
