// Package main is the entry point for the Medivisor public site server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"medivisor/internal/cache"
	"medivisor/internal/cms"
	"medivisor/internal/config"
	"medivisor/internal/database"
	"medivisor/internal/forms"
	"medivisor/internal/handlers"
	"medivisor/internal/middleware"
	"medivisor/internal/render"
	"medivisor/internal/router"
	"medivisor/internal/store"
)

func main() {
	// Structured logger — outputs JSON in production, text in development.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Local .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"cms", cfg.CMSBaseURL,
	)

	// Connect to PostgreSQL (lead storage).
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Connect to Valkey (Redis-compatible page cache).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Initialize the HTML template renderer for public pages.
	renderer, err := render.New()
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	// Content API client and external form-submission collaborator.
	cmsClient := cms.New(cfg.CMSBaseURL, cfg.CMSAPIKey, cfg.CMSSiteID)
	submitter := forms.NewSubmitter(cfg.FormsEndpoint)

	// Initialize the lead store and the L2 page cache.
	inquiryStore := store.NewInquiryStore(db)
	pageCache := cache.NewPageCache(valkeyClient, cache.DefaultPageTTL)

	// Create handler groups with their dependencies.
	publicHandlers := handlers.NewPublic(cmsClient, renderer, pageCache)
	contactHandlers := handlers.NewContact(renderer, inquiryStore, submitter)
	opsHandlers := handlers.NewOps(pageCache, inquiryStore, cfg.OpsToken)

	// Contact POSTs are rate-limited per IP.
	contactLimiter := middleware.NewRateLimiter(5, time.Minute)
	defer contactLimiter.Stop()

	// Set up the Chi router with all middleware and routes.
	r := router.New(publicHandlers, contactHandlers, opsHandlers, contactLimiter, cfg.AllowedOrigins)

	// Create the HTTP server with sensible timeouts. WriteTimeout covers
	// pages that fan out to several CMS queries on a cold cache.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
