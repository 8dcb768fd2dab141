// Package main is the entry point for the hunt packages API server.
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

	"github.com/pkordes/hunt-packages/backend/internal/catalog"
	"github.com/pkordes/hunt-packages/backend/internal/config"
	"github.com/pkordes/hunt-packages/backend/internal/email"
	"github.com/pkordes/hunt-packages/backend/internal/handler"
	"github.com/pkordes/hunt-packages/backend/internal/middleware"
	"github.com/pkordes/hunt-packages/backend/internal/repo"
	"github.com/pkordes/hunt-packages/backend/internal/service"
)

// sessionSweepInterval is how often expired package sessions are dropped.
const sessionSweepInterval = time.Minute

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use the default logger before ours is configured.
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

	// ctx lives until shutdown and stops the background goroutines.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Catalog ----------------------------------------------------------
	src, closeSource, err := catalogSource(ctx, cfg, logger)
	if err != nil {
		slog.Error("failed to set up catalog source", "error", err)
		os.Exit(1)
	}
	defer closeSource()

	accessor := catalog.NewAccessor(src, logger)
	// Warm the catalog in the background. A failure is not fatal: /readyz
	// stays 503 and the next request that needs the catalog retries.
	go func() {
		if _, err := accessor.Load(ctx); err != nil {
			slog.Error("initial catalog load failed", "error", err)
		}
	}()

	// --- Sessions ---------------------------------------------------------
	sessions := repo.NewMemSelectionRepo(cfg.SessionTTL)
	go sessions.RunJanitor(ctx, sessionSweepInterval, func(removed int) {
		slog.Info("expired package sessions removed", "count", removed, "remaining", sessions.Len())
	})

	// --- Mail -------------------------------------------------------------
	mailer := email.NewMailgunMailer(cfg.Mail)
	if !mailer.Enabled() {
		slog.Info("mailgun not configured, inquiries are returned as mailto links only")
	}

	// --- Services ---------------------------------------------------------
	catalogSvc := service.NewCatalogService(accessor)
	quoteSvc := service.NewQuoteService(accessor)
	packageSvc := service.NewPackageService(sessions, accessor)
	inquirySvc := service.NewInquiryService(packageSvc, mailer, cfg.ContactEmail, logger)

	inquiryLimiter := middleware.NewPerMinuteRateLimiter(cfg.InquiryRatePerMinute)
	server := handler.NewServer(catalogSvc, quoteSvc, packageSvc, inquirySvc).
		WithInquiryMiddleware(inquiryLimiter.Handler)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → body limit. RealIP must precede the inquiry rate limiter,
	// which keys on the client address.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Mount("/", server.Routes())

	// --- HTTP Server ------------------------------------------------------
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "catalog_source", cfg.CatalogSource())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
