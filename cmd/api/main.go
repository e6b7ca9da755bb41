// Package main is the entry point for the trip planner API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
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

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/trip-planner/backend/internal/catalog"
	"github.com/pkordes/trip-planner/backend/internal/config"
	"github.com/pkordes/trip-planner/backend/internal/handler"
	"github.com/pkordes/trip-planner/backend/internal/middleware"
	"github.com/pkordes/trip-planner/backend/internal/service"
	"github.com/pkordes/trip-planner/backend/internal/store"
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
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Catalog ----------------------------------------------------------
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		slog.Error("failed to load activity catalog", "path", cfg.CatalogPath, "error", err)
		os.Exit(1)
	}

	// --- Session store ----------------------------------------------------
	// SQL stores are migrated on open so a fresh database is usable at once.
	st, err := store.Open(context.Background(), store.Options{
		Kind:        cfg.Store,
		DatabaseURL: cfg.DatabaseURL,
		SQLitePath:  cfg.SQLitePath,
	})
	if err != nil {
		slog.Error("failed to open session store", "store", cfg.Store, "error", err)
		os.Exit(1)
	}
	defer st.Close()
	slog.Info("session store ready", "store", st.Kind())

	// --- Services ---------------------------------------------------------
	sessions := st.Sessions
	srvHandlers := handler.NewServer(handler.Services{
		Sessions: service.NewSessionService(sessions, cat),
		Itinerary: service.NewItineraryService(sessions, cat,
			service.WithSampleDelay(cfg.SampleDelay),
			service.WithLogger(logger),
		),
		Budget:  service.NewBudgetService(sessions),
		Catalog: service.NewCatalogService(sessions, cat),
		Export:  service.NewExportService(sessions),
	}, logger)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer → CORS → MaxBody.
	// RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy).
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
	// The write timeout leaves room for a configured sample delay.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10*time.Second + cfg.SampleDelay,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
