// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/careermatch/config.yaml",
	"/etc/careermatch/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Default returns the built-in defaults without reading a file or the
// environment.
func Default() *Config {
	return defaultConfig()
}

// defaultConfig returns a Config struct with all default values.
// These are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            3860,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Path:      "/data/careermatch.duckdb",
			MaxMemory: "1GB",
			Threads:   0,
		},
		Cache: CacheConfig{
			Backend:        "duckdb",
			BadgerPath:     "/data/knn-cache",
			BadgerInMemory: false,
			SweepInterval:  time.Hour,
		},
		Recommend: RecommendConfig{
			DefaultK:         5,
			MaxK:             50,
			CacheTTL:         24 * time.Hour,
			Workers:          8,
			WriteBackTimeout: 30 * time.Second,
		},
		Catalog: CatalogConfig{
			SeedPath: "",
		},
		Insights: InsightsConfig{
			Enabled:      false,
			Model:        "gemini-2.0-flash",
			Timeout:      20 * time.Second,
			MaxFailures:  5,
			OpenInterval: time.Minute,
		},
		API: APIConfig{
			RateLimitRequests: 60,
			RateLimitWindow:   time.Minute,
			MaxBodyBytes:      1 << 20,
			SimilarProfiles:   200,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: built-in defaults
//  2. Config File: optional YAML config file (if exists)
//  3. Environment Variables: override any setting
//
// Precedence is ENV > File > Defaults.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables
	// RECOMMEND_DEFAULT_K -> recommend.default_k
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}
	if err := processFloatSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are parsed from comma-separated env values.
var sliceConfigPaths = []string{
	"api.cors_origins",
}

// processSliceFields converts comma-separated string values to string
// slices. YAML lists are left untouched.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// floatSliceConfigPaths are parsed from comma-separated env values.
var floatSliceConfigPaths = []string{
	"recommend.feature_weights",
}

// processFloatSliceFields converts comma-separated string values to float
// slices. YAML lists are left untouched.
func processFloatSliceFields(k *koanf.Koanf) error {
	for _, path := range floatSliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		if strings.TrimSpace(strVal) == "" {
			if err := k.Set(path, []float64{}); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
			continue
		}

		parts := strings.Split(strVal, ",")
		values := make([]float64, 0, len(parts))
		for _, p := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return fmt.Errorf("%s: invalid number %q", path, p)
			}
			values = append(values, f)
		}
		if err := k.Set(path, values); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_idle_timeout":     "server.idle_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",

	// Database
	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",

	// Cache
	"cache_backend":          "cache.backend",
	"cache_badger_path":      "cache.badger_path",
	"cache_badger_in_memory": "cache.badger_in_memory",
	"cache_sweep_interval":   "cache.sweep_interval",

	// Recommendation engine
	"recommend_default_k":         "recommend.default_k",
	"recommend_max_k":             "recommend.max_k",
	"recommend_cache_ttl":         "recommend.cache_ttl",
	"recommend_workers":           "recommend.workers",
	"recommend_writeback_timeout": "recommend.writeback_timeout",
	"recommend_feature_weights":   "recommend.feature_weights",

	// Catalog
	"catalog_seed_path": "catalog.seed_path",

	// Insights
	"insights_enabled":       "insights.enabled",
	"gemini_api_key":         "insights.api_key",
	"insights_model":         "insights.model",
	"insights_timeout":       "insights.timeout",
	"insights_max_failures":  "insights.max_failures",
	"insights_open_interval": "insights.open_interval",

	// API
	"rate_limit_requests":  "api.rate_limit_requests",
	"rate_limit_window":    "api.rate_limit_window",
	"api_max_body_bytes":   "api.max_body_bytes",
	"api_similar_profiles": "api.similar_profiles",
	"cors_origins":         "api.cors_origins",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped variables return an empty key and are skipped.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
