package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/mt-api/internal/api"
	"github.com/lysyi3m/mt-api/internal/catalog"
	"github.com/lysyi3m/mt-api/internal/cfg"
	"github.com/lysyi3m/mt-api/internal/config"
	"github.com/lysyi3m/mt-api/internal/database"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown
		return
	}

	level := slog.LevelInfo
	if appCfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	slog.Info("Starting Mediathek API server", "version", appCfg.Version)

	settings, err := config.NewLoader(appCfg.SettingsFile).Load()
	if err != nil {
		slog.Error("Failed to load settings", "error", err)
		os.Exit(1)
	}
	slog.Info("Settings loaded", "signatures", len(settings.Signatures), "dialect", settings.Dialect,
		"list_cap", settings.ListCap, "max_limit", settings.MaxLimit, "query_timeout", settings.GetQueryTimeout())

	slog.Info("Connecting to database", "path", appCfg.DBPath)
	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "schema_version", version, "dirty", dirty)

	breaker := database.NewBreaker("catalog", settings.Breaker.Failures, settings.GetBreakerCooldown())
	store := database.NewCatalogStore(db, breaker)
	pipeline := catalog.NewPipeline(store, settings)

	handler := api.NewHandler(pipeline, store, settings, appCfg.DebugAll, appCfg.Version)
	server := api.NewServer(handler)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		slog.Info("Endpoints available",
			"api", fmt.Sprintf("http://localhost:%s/?mode=api", appCfg.Port),
			"health", fmt.Sprintf("http://localhost:%s/health", appCfg.Port),
			"metrics", fmt.Sprintf("http://localhost:%s/metrics", appCfg.Port))

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	slog.Info("Mediathek API server shutdown complete")
}
