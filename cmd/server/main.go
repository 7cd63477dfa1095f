package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"clinicstats/internal/config"
	"clinicstats/internal/logging"
	"clinicstats/internal/visits"
	"clinicstats/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"data_file", cfg.Data.File,
		"rate_limit_enabled", cfg.Rate.Enabled,
		"metrics_enabled", cfg.Metrics.Enabled,
	)

	// Load the visit dataset once at startup. The snapshot is immutable for
	// the lifetime of the process; restart to pick up a changed file.
	store := visits.NewStore()
	dataset, err := store.Open(cfg.Data.File)
	if err != nil {
		userMsg := visits.MapError(err)
		slog.Error("failed to load dataset",
			"file", cfg.Data.File,
			"error", err,
			"code", userMsg.Code,
		)
		os.Exit(1)
	}

	slog.Info("dataset loaded",
		"file", cfg.Data.File,
		"records", dataset.Len(),
		"dataset_id", dataset.ID,
	)

	server := web.NewServer(dataset, cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
