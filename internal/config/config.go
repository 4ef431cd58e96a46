// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

package config

import (
	"time"

	"github.com/tomtom215/careermatch/internal/recommend"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Cache     CacheConfig     `koanf:"cache"`
	Recommend RecommendConfig `koanf:"recommend"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Insights  InsightsConfig  `koanf:"insights"`
	API       APIConfig       `koanf:"api"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// DatabaseConfig holds DuckDB settings
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // 0 = use NumCPU
}

// CacheConfig selects and tunes the KNN result cache backend.
//
// Environment Variables:
//   - CACHE_BACKEND: duckdb, badger or memory (default: duckdb)
//   - CACHE_BADGER_PATH: Badger directory (default: /data/knn-cache)
//   - CACHE_BADGER_IN_MEMORY: run Badger without disk (default: false)
//   - CACHE_SWEEP_INTERVAL: how often expired entries are purged (default: 1h, 0 disables)
type CacheConfig struct {
	Backend        string        `koanf:"backend"`
	BadgerPath     string        `koanf:"badger_path"`
	BadgerInMemory bool          `koanf:"badger_in_memory"`
	SweepInterval  time.Duration `koanf:"sweep_interval"`
}

// RecommendConfig mirrors recommend.Config so it can be loaded by koanf.
//
// Environment Variables:
//   - RECOMMEND_DEFAULT_K (default: 5)
//   - RECOMMEND_MAX_K (default: 50)
//   - RECOMMEND_CACHE_TTL (default: 24h)
//   - RECOMMEND_WORKERS (default: 8)
//   - RECOMMEND_WRITEBACK_TIMEOUT (default: 30s)
//   - RECOMMEND_FEATURE_WEIGHTS: comma-separated, empty or 16 values
type RecommendConfig struct {
	DefaultK         int           `koanf:"default_k"`
	MaxK             int           `koanf:"max_k"`
	CacheTTL         time.Duration `koanf:"cache_ttl"`
	Workers          int           `koanf:"workers"`
	WriteBackTimeout time.Duration `koanf:"writeback_timeout"`
	FeatureWeights   []float64     `koanf:"feature_weights"`
}

// EngineConfig converts the loaded settings to the engine's configuration.
func (r *RecommendConfig) EngineConfig() *recommend.Config {
	return &recommend.Config{
		DefaultK:         r.DefaultK,
		MaxK:             r.MaxK,
		CacheTTL:         r.CacheTTL,
		Workers:          r.Workers,
		WriteBackTimeout: r.WriteBackTimeout,
		FeatureWeights:   append([]float64(nil), r.FeatureWeights...),
	}
}

// CatalogConfig controls catalog seeding at startup.
type CatalogConfig struct {
	// SeedPath is a YAML file of careers upserted on startup. Empty skips seeding.
	SeedPath string `koanf:"seed_path"`
}

// InsightsConfig configures the optional LLM narrative generator.
type InsightsConfig struct {
	Enabled bool          `koanf:"enabled"`
	APIKey  string        `koanf:"api_key"`
	Model   string        `koanf:"model"`
	Timeout time.Duration `koanf:"timeout"`

	// Breaker settings
	MaxFailures  uint32        `koanf:"max_failures"`
	OpenInterval time.Duration `koanf:"open_interval"`
}

// APIConfig holds request limits for the HTTP API.
type APIConfig struct {
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	MaxBodyBytes      int64         `koanf:"max_body_bytes"`
	SimilarProfiles   int           `koanf:"similar_profiles"` // profiles scanned for similar-user lookup

	// CORSOrigins are the browser origins allowed to call the API.
	CORSOrigins []string `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller adds file:line to each event.
	Caller bool `koanf:"caller"`
}
