// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/careermatch/internal/metrics"
)

// sweepTimeout bounds a single purge.
const sweepTimeout = time.Minute

// CachePurger removes expired result cache entries. recommend.ResultCache
// implementations satisfy it.
type CachePurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// CacheSweepService purges expired KNN result cache entries every interval.
// Expired entries are already ignored on read; the sweep only reclaims
// space.
type CacheSweepService struct {
	cache    CachePurger
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewCacheSweepService creates a sweep over cache. interval must be positive.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCacheSweepService(cache CachePurger, interval time.Duration, logger zerolog.Logger) *CacheSweepService {
	return &CacheSweepService{
		cache:    cache,
		interval: interval,
		logger:   logger.With().Str("service", "cache-sweep").Logger(),
		name:     "cache-sweep",
	}
}

// Serve implements suture.Service. Failed sweeps are logged and retried on
// the next tick rather than returned, so a flaky backend does not trip the
// supervisor's backoff.
func (s *CacheSweepService) Serve(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.interval).Msg("cache sweep starting")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("cache sweep shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep runs one purge and returns the number of entries removed.
func (s *CacheSweepService) sweep(ctx context.Context) int64 {
	sweepCtx, cancel := context.WithTimeout(ctx, sweepTimeout)
	defer cancel()

	start := time.Now()
	n, err := s.cache.PurgeExpired(sweepCtx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("cache sweep failed")
		return 0
	}
	metrics.CacheEntriesPurged.Add(float64(n))

	if n > 0 {
		s.logger.Info().Int64("purged", n).Dur("duration", time.Since(start)).Msg("expired cache entries purged")
	}
	return n
}

func (s *CacheSweepService) String() string {
	return s.name
}
