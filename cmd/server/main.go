package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"finnet/internal/auth"
	"finnet/internal/config"
	"finnet/internal/middleware"
	"finnet/internal/quotes"
	"finnet/internal/service"
	"finnet/internal/storage/sqlite"
	"finnet/internal/web"
	"finnet/pkg/logging"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	// Setup structured logging
	logging.Setup()
	logger := slog.Default()

	// Load configuration
	cfgPath := getEnv("FINNET_CONFIG", "./finnet.toml")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", cfgPath, "error", err)
		os.Exit(1)
	}

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.Server.DatabasePath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.Server.DatabasePath)

	// Wire up authentication and services
	authenticator := auth.NewPasswordAuthenticator(store)
	jwtManager := auth.NewJWTManager(cfg.Server.JWTSecret, cfg.SessionTTL())
	provider := quotes.NewClient(cfg.Quotes.BaseURL, cfg.QuoteTimeout(), logger)
	portfolioService := service.NewPortfolioService(store, provider, logger)
	friendService := service.NewFriendService(store, portfolioService, logger)

	handlers := web.New(
		authenticator,
		jwtManager,
		store,
		portfolioService,
		friendService,
		cfg.SessionTTL(),
		logger,
	)

	mux := handlers.Routes()
	mux.Handle("GET /metrics", promhttp.Handler())

	// Add logging and metrics middleware
	wrapped := middleware.Logging(middleware.Metrics(mux))

	// Wrap with h2c for HTTP/2 without TLS
	h2cHandler := h2c.NewHandler(wrapped, &http2.Server{})

	slog.Info("Server starting", "address", cfg.Server.Bind)
	if err := http.ListenAndServe(cfg.Server.Bind, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
