// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/careermatch/internal/metrics"
	"github.com/tomtom215/careermatch/internal/recommend"
)

var (
	_ recommend.ResultCache  = (*CacheStore)(nil)
	_ recommend.CacheClearer = (*CacheStore)(nil)
)

// CacheStore is the KNN result cache backed by the knn_cache table.
// Expiry is evaluated against the store's clock, not DuckDB's, so tests and
// the in-process backends agree on what "expired" means.
type CacheStore struct {
	db *DB
}

// NewCacheStore returns a result cache over db.
func NewCacheStore(db *DB) *CacheStore {
	return &CacheStore{db: db}
}

// Get returns the unexpired entry for (hash, k), or nil when absent.
func (s *CacheStore) Get(ctx context.Context, hash string, k int) (entry *recommend.CachedResult, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("get", "knn_cache", time.Since(start), err) }()

	var (
		payload   string
		computeMs int64
		expiresAt time.Time
	)
	err = s.db.conn.QueryRowContext(ctx, `
		SELECT career_recommendations_json, computation_time_ms, expires_at
		FROM knn_cache
		WHERE user_features_hash = ? AND k_value = ? AND expires_at > ?`,
		hash, k, s.db.now().UTC(),
	).Scan(&payload, &computeMs, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read knn cache: %w", err)
	}

	return &recommend.CachedResult{
		Hash:         hash,
		K:            k,
		Payload:      []byte(payload),
		ComputedAtMs: computeMs,
		ExpiresAt:    expiresAt,
	}, nil
}

// Put upserts the entry for (hash, k).
func (s *CacheStore) Put(ctx context.Context, entry recommend.CachedResult) (err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("upsert", "knn_cache", time.Since(start), err) }()

	_, err = s.db.conn.ExecContext(ctx, `
		INSERT INTO knn_cache (
			user_features_hash, k_value, career_recommendations_json,
			computation_time_ms, expires_at, created_at
		) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_features_hash, k_value) DO UPDATE SET
			career_recommendations_json = excluded.career_recommendations_json,
			computation_time_ms = excluded.computation_time_ms,
			expires_at = excluded.expires_at,
			created_at = excluded.created_at`,
		entry.Hash, entry.K, string(entry.Payload),
		entry.ComputedAtMs, entry.ExpiresAt.UTC(), s.db.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to write knn cache: %w", err)
	}
	return nil
}

// PurgeExpired deletes expired entries.
func (s *CacheStore) PurgeExpired(ctx context.Context) (n int64, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("purge", "knn_cache", time.Since(start), err) }()

	res, err := s.db.conn.ExecContext(ctx,
		"DELETE FROM knn_cache WHERE expires_at <= ?", s.db.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to purge knn cache: %w", err)
	}
	n, err = res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to purge knn cache: %w", err)
	}
	return n, nil
}

// Clear deletes every entry.
func (s *CacheStore) Clear(ctx context.Context) (n int64, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("clear", "knn_cache", time.Since(start), err) }()

	res, err := s.db.conn.ExecContext(ctx, "DELETE FROM knn_cache")
	if err != nil {
		return 0, fmt.Errorf("failed to clear knn cache: %w", err)
	}
	n, err = res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to clear knn cache: %w", err)
	}
	return n, nil
}

// Stats reports entry counts and the mean computation time.
func (s *CacheStore) Stats(ctx context.Context) (stats recommend.CacheStats, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("stats", "knn_cache", time.Since(start), err) }()

	var avg sql.NullFloat64
	err = s.db.conn.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE expires_at > ?),
			AVG(computation_time_ms)
		FROM knn_cache`, s.db.now().UTC(),
	).Scan(&stats.TotalEntries, &stats.ActiveEntries, &avg)
	if err != nil {
		return recommend.CacheStats{}, fmt.Errorf("failed to read knn cache stats: %w", err)
	}

	stats.Backend = "duckdb"
	stats.ExpiredEntries = stats.TotalEntries - stats.ActiveEntries
	stats.AvgComputationTime = avg.Float64
	return stats, nil
}
