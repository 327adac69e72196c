package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/sessions"

	"github.com/mrsabeurmohamed/Modern-Industrial-Equipment-Maintenance-System-CMMS/internal/api"
	"github.com/mrsabeurmohamed/Modern-Industrial-Equipment-Maintenance-System-CMMS/internal/config"
	"github.com/mrsabeurmohamed/Modern-Industrial-Equipment-Maintenance-System-CMMS/internal/session"
	"github.com/mrsabeurmohamed/Modern-Industrial-Equipment-Maintenance-System-CMMS/internal/store"
	"github.com/mrsabeurmohamed/Modern-Industrial-Equipment-Maintenance-System-CMMS/internal/view"
	"github.com/mrsabeurmohamed/Modern-Industrial-Equipment-Maintenance-System-CMMS/internal/web"
)

const (
	shutdownTimeout = 10 * time.Second
	cleanupInterval = time.Hour
)

func main() {
	// Load config first to get log level
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	logger.Info("Starting CMMS web UI", "backend", cfg.APIBaseURL, "session_store", cfg.SessionStore)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sessionStore, err := openSessionStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open session store", "error", err)
		os.Exit(1)
	}

	views, err := view.New()
	if err != nil {
		logger.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	backend := api.NewBackend(cfg.APIBaseURL, cfg.APITimeout, logger)
	server := web.New(backend, session.NewController(sessionStore, logger), views, logger, web.Options{
		Addr:             cfg.ListenAddr,
		DashboardRefresh: cfg.DashboardRefresh,
	})
	server.Start()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

// openSessionStore returns the signed cookie store, or the Postgres store
// with its schema migrated and a cleanup loop running until ctx ends.
func openSessionStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (sessions.Store, error) {
	opts := session.CookieOptions(cfg.SessionMaxAge, cfg.CookieSecure)
	if cfg.SessionStore != config.SessionStorePostgres {
		return session.NewCookieStore(cfg.SessionSecret, opts)
	}

	if err := store.Migrate(cfg.DatabaseURL); err != nil {
		return nil, err
	}
	db, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	hashKey, blockKey, err := session.DeriveKeys(cfg.SessionSecret)
	if err != nil {
		return nil, err
	}
	pg := store.NewPGStore(db, logger, hashKey, blockKey)
	pg.Options = opts
	go pg.Cleanup(ctx, cleanupInterval)
	logger.Info("Postgres session store ready")
	return pg, nil
}

func newLogger(level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(level)}
	if strings.EqualFold(format, "text") {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
