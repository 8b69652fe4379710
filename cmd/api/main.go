// Command api serves tidy NHL schedule and draft tables over HTTP.
//
// Usage:
//
//	scoracle-nhl-api
//	API_PORT=8080 TZ_NAME=America/Toronto scoracle-nhl-api

// @title Scoracle NHL API
// @version 1.0.0
// @description Tidy NHL schedule and draft tables built from the public NHL stats API.
// @host localhost:8000
// @BasePath /
// @schemes http https
// @contact.name Scoracle
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/albapepper/scoracle-nhl/internal/api"
	"github.com/albapepper/scoracle-nhl/internal/api/handler"
	"github.com/albapepper/scoracle-nhl/internal/catalog"
	"github.com/albapepper/scoracle-nhl/internal/config"
	"github.com/albapepper/scoracle-nhl/internal/db"
	"github.com/albapepper/scoracle-nhl/internal/provider/nhl"
	"github.com/albapepper/scoracle-nhl/internal/tidy"

	_ "github.com/albapepper/scoracle-nhl/docs" // swagger docs
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// The database is optional. Without it /health/db reports "disabled"
	// and catalogs cannot come from Postgres.
	var (
		pool   *db.Pool
		pinger handler.Pinger
	)
	if cfg.DatabaseURL != "" {
		logger.Info("Connecting to database...")
		pool, err = db.New(ctx, cfg)
		if err != nil {
			logger.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		pinger = pool
		logger.Info("Database connected",
			"min_conns", cfg.DBPoolMinConns,
			"max_conns", cfg.DBPoolMaxConns)
	}

	var q catalog.Querier
	if pool != nil {
		q = pool
	}
	catalogs, err := catalog.Open(ctx, cfg.CatalogSource, cfg.CatalogDir, q)
	if err != nil {
		logger.Error("Failed to load catalogs", "source", cfg.CatalogSource, "error", err)
		os.Exit(1)
	}
	logger.Info("Catalogs loaded",
		"source", cfg.CatalogSource,
		"seasons", len(catalogs.Seasons()),
		"teams", len(catalogs.Teams()),
		"draft_years", len(catalogs.DraftYears()))

	client := nhl.NewClient(cfg.NHLBaseURL, cfg.RequestsPerMinute, cfg.HTTPTimeout, logger)
	if cfg.ProspectsFromAPI {
		// Without mappings every draft row has a null player_id.
		withPlayers, err := catalog.EnsurePlayers(ctx, catalogs, client)
		if err != nil {
			logger.Warn("Prospect mappings unavailable", "error", err)
		} else {
			catalogs = withPlayers
			logger.Info("Prospect mappings loaded", "players", len(catalogs.Players()))
		}
	}
	svc := tidy.NewService(client, catalogs, logger)

	router := api.NewRouter(svc, catalogs, pinger, cfg, logger)

	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:        addr,
		Handler:     router,
		ReadTimeout: 10 * time.Second,
		// Multi-season requests are paced by the NHL client.
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting Scoracle NHL API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
