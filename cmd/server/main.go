// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/careermatch/internal/api"
	"github.com/tomtom215/careermatch/internal/config"
	"github.com/tomtom215/careermatch/internal/database"
	"github.com/tomtom215/careermatch/internal/logging"
	"github.com/tomtom215/careermatch/internal/recommend"
	"github.com/tomtom215/careermatch/internal/supervisor"
	"github.com/tomtom215/careermatch/internal/supervisor/services"
)

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("careermatch stopped with an error")
	}
}

//nolint:gocyclo // sequential setup steps
func run() error {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("cache_backend", cfg.Cache.Backend).
		Bool("insights_enabled", cfg.Insights.Enabled).
		Msg("Starting careermatch with supervisor tree")

	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	resultCache, closeCache, err := openResultCache(&cfg.Cache, db)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeCache(); err != nil {
			logging.Error().Err(err).Msg("Error closing result cache")
		}
	}()
	// Registered before seeding so results cached by a previous run under
	// an older catalog are dropped.
	clearOnCatalogChange(db, resultCache)

	if cfg.Catalog.SeedPath != "" {
		n, err := db.SeedFromFile(ctx, cfg.Catalog.SeedPath)
		if err != nil {
			return fmt.Errorf("seed career catalog: %w", err)
		}
		logging.Info().Int("careers", n).Str("path", cfg.Catalog.SeedPath).Msg("Career catalog seeded")
	}

	engine, err := recommend.NewEngine(cfg.Recommend.EngineConfig(), recommend.Dependencies{
		Catalog: db,
		Cache:   resultCache,
		Audit:   db,
	}, logging.WithComponent("recommend"))
	if err != nil {
		return fmt.Errorf("create recommendation engine: %w", err)
	}
	// Runs before the cache and database are closed.
	defer engine.WaitWriteBacks()

	handler := api.NewHandler(cfg, api.Dependencies{
		Recommender: engine,
		Cache:       resultCache,
		Catalog:     db,
		Audit:       db,
		DB:          db,
		Insights:    initInsights(ctx, &cfg.Insights),
	}, logging.Logger())

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      api.NewRouter(handler).SetupChi(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	if cfg.Cache.SweepInterval > 0 {
		tree.AddMaintenanceService(services.NewCacheSweepService(resultCache, cfg.Cache.SweepInterval, logging.Logger()))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server configured")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
	return nil
}
