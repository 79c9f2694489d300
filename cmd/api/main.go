// Package main is the entry point for the Wanderlist API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/pkordes/wanderlist/internal/config"
	"github.com/pkordes/wanderlist/internal/handler"
	"github.com/pkordes/wanderlist/internal/kv"
	"github.com/pkordes/wanderlist/internal/middleware"
	"github.com/pkordes/wanderlist/internal/repo"
	"github.com/pkordes/wanderlist/internal/service"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// JSON handler writes machine-readable output suitable for log aggregators.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	// --- Storage ----------------------------------------------------------
	surface, closeSurface, err := openSurface(cfg.Storage)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeSurface(); err != nil {
			logger.Error("failed to close storage", "error", err)
		}
	}()
	logger.Info("storage ready",
		"backend", cfg.Storage.Backend,
		"path", cfg.Storage.Path,
	)

	// --- Services ---------------------------------------------------------
	store := repo.NewTripStore(surface, repo.WithLogger(logger))
	tripSvc := service.NewTripService(store)
	exportSvc := service.NewExportService(store)
	srvHandlers := handler.NewServer(tripSvc, exportSvc, logger)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → body limit.
	// RequestID generates a unique trace ID per request.
	// SlogLogger writes one structured JSON log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Mount("/", srvHandlers.Routes())

	// --- HTTP Server ------------------------------------------------------
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	// Graceful shutdown: wait for a signal (or a failed listener), then give
	// in-flight requests up to 15 seconds to complete.
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}

// openSurface builds the key-value backend named in cfg. The returned close
// function is always non-nil.
func openSurface(cfg config.Storage) (kv.Surface, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case config.BackendMemory:
		return kv.NewMemory(kv.WithQuota(int(cfg.QuotaBytes))), noop, nil
	case config.BackendFile:
		f, err := kv.NewFile(cfg.Path)
		if err != nil {
			return nil, noop, fmt.Errorf("open file storage: %w", err)
		}
		return f, noop, nil
	case config.BackendSQLite:
		s, err := kv.OpenSQLite(cfg.Path)
		if err != nil {
			return nil, noop, fmt.Errorf("open sqlite storage: %w", err)
		}
		return s, s.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
