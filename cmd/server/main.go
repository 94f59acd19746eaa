package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/LuiFig19/TaskChrono-sub001/internal/config"
	"github.com/LuiFig19/TaskChrono-sub001/internal/database"
	"github.com/LuiFig19/TaskChrono-sub001/internal/db"
	"github.com/LuiFig19/TaskChrono-sub001/internal/logging"
	"github.com/LuiFig19/TaskChrono-sub001/internal/realtime"
	"github.com/LuiFig19/TaskChrono-sub001/internal/router"
	appsentry "github.com/LuiFig19/TaskChrono-sub001/internal/sentry"
)

func main() {
	// Initialize structured logging (reads LOGGING_LEVEL env var)
	logging.Initialize()

	// Load configuration
	cfg := config.Load()

	// Error tracking, scrubbed before anything leaves the process
	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.SentryEnvironment,
			BeforeSend:  appsentry.ScrubEvent,
		})
		if err != nil {
			slog.Error("failed to initialize sentry", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer sentry.Flush(2 * time.Second)
	}

	// Initialize database
	sqlDB, err := database.New(cfg.DatabasePath)
	if err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer sqlDB.Close()

	// Run migrations
	if err := database.RunMigrations(sqlDB); err != nil {
		slog.Error("failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize queries and the realtime fan-out registry
	queries := db.New(sqlDB)
	registry := realtime.NewRegistry()

	// Create router
	r := router.New(cfg, queries, registry)

	// Start server
	addr := ":" + cfg.Port
	slog.Info("starting server", slog.String("addr", addr))

	if err := http.ListenAndServe(addr, r); err != nil {
		slog.Error("server failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
