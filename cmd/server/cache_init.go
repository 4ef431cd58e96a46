// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/careermatch/internal/cache"
	"github.com/tomtom215/careermatch/internal/config"
	"github.com/tomtom215/careermatch/internal/database"
	"github.com/tomtom215/careermatch/internal/logging"
	"github.com/tomtom215/careermatch/internal/recommend"
)

// openResultCache builds the configured result cache backend. The returned
// close func releases backend resources; the DuckDB backend shares the
// catalog connection and has nothing to release.
func openResultCache(cfg *config.CacheConfig, db *database.DB) (recommend.ResultCache, func() error, error) {
	noop := func() error { return nil }

	backend, err := cache.ParseBackend(cfg.Backend)
	if err != nil {
		return nil, nil, err
	}

	switch backend {
	case cache.BackendBadger:
		store, err := cache.OpenBadgerStore(cache.BadgerConfig{
			Path:     cfg.BadgerPath,
			InMemory: cfg.BadgerInMemory,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("open badger result cache: %w", err)
		}
		logging.Info().Str("path", cfg.BadgerPath).Bool("in_memory", cfg.BadgerInMemory).Msg("Result cache: badger")
		return store, store.Close, nil

	case cache.BackendMemory:
		logging.Info().Msg("Result cache: memory")
		return cache.NewMemoryStore(), noop, nil

	default:
		if db == nil {
			return nil, nil, errors.New("duckdb result cache requires a database")
		}
		logging.Info().Msg("Result cache: duckdb")
		return database.NewCacheStore(db), noop, nil
	}
}

// clearOnCatalogChange drops every cached result set whenever the catalog is
// edited. A request still computing during the edit may store its result
// after the clear; that entry expires with the normal TTL.
func clearOnCatalogChange(db *database.DB, rc recommend.ResultCache) {
	clearer, ok := rc.(recommend.CacheClearer)
	if !ok {
		logging.Warn().Msg("Result cache cannot be cleared; catalog edits are visible after the cache TTL")
		return
	}
	db.SetOnCatalogChanged(func(ctx context.Context) {
		n, err := clearer.Clear(ctx)
		if err != nil {
			logging.Warn().Err(err).Msg("Failed to clear result cache after catalog change")
			return
		}
		logging.Debug().Int64("entries", n).Msg("Result cache cleared after catalog change")
	})
}
