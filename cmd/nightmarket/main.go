// Package main is the entry point for the nightmarket server.
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

	"nightmarket/internal/cache"
	"nightmarket/internal/config"
	"nightmarket/internal/database"
	"nightmarket/internal/github"
	"nightmarket/internal/handlers"
	"nightmarket/internal/middleware"
	"nightmarket/internal/render"
	"nightmarket/internal/router"
	"nightmarket/internal/session"
	"nightmarket/internal/storefront"
	"nightmarket/internal/store"
	"nightmarket/internal/themes"
)

func main() {
	// Structured logger for the whole process.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load a .env file when present. Real environment variables win.
	if err := godotenv.Load(); err == nil {
		slog.Debug("loaded .env file")
	}

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
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

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (Redis-compatible cache + session store).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Initialize session store backed by Valkey.
	// In non-development environments, mark session cookies as Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)

	// Initialize the HTML template renderer for admin pages.
	renderer, err := render.New()
	if err != nil {
		slog.Error("failed to initialize admin renderer", "error", err)
		os.Exit(1)
	}

	// Initialize the storefront renderer with its theme variants.
	storefrontRenderer, err := storefront.NewRenderer()
	if err != nil {
		slog.Error("failed to initialize storefront renderer", "error", err)
		os.Exit(1)
	}

	// Initialize data stores.
	userStore := store.NewUserStore(db)
	productStore := store.NewProductStore(db)
	eventStore := store.NewEventStore(db)
	themeStore := store.NewThemeStore(db)

	// GitHub issue client. An incomplete configuration is allowed; theme
	// requests then fail at call time with a descriptive error.
	githubClient := github.New(cfg.GitHub)
	if !githubClient.Configured() {
		slog.Warn("github issue tracker not configured — theme requests will fail")
	}

	// Theme lifecycle service ties the stores to the issue tracker.
	themeService := themes.NewService(eventStore, themeStore, githubClient)

	// Full-page HTML cache for the storefront (Valkey-backed).
	pageCache := cache.NewPageCache(valkeyClient, cache.DefaultPageTTL)

	// Rate limiter for credential-guessing surfaces (login, 2FA codes).
	loginLimiter := middleware.NewRateLimiter(10, time.Minute)
	defer loginLimiter.Stop()

	// Create handler groups with their dependencies.
	adminHandlers := handlers.NewAdmin(renderer, productStore, eventStore, themeStore, themeService, pageCache)
	authHandlers := handlers.NewAuth(renderer, sessionStore, userStore)
	publicHandlers := handlers.NewPublic(productStore, eventStore, themeStore, storefrontRenderer, pageCache)
	apiHandlers := handlers.NewAPI(themeService)

	// Set up the Chi router with all middleware and routes.
	r := router.New(sessionStore, loginLimiter, secureCookies, adminHandlers, authHandlers, publicHandlers, apiHandlers)

	// Create the HTTP server with sensible timeouts. WriteTimeout covers
	// the outbound GitHub API call made during theme requests.
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
