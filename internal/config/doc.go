// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

/*
Package config provides centralized configuration management for Careermatch.

Configuration is loaded with Koanf v2 in three layers, each overriding the
previous one:

  - Defaults: defaultConfig()
  - Config file: YAML from CONFIG_PATH, or the first of DefaultConfigPaths found
  - Environment variables: mapped explicitly in envMappings

Unmapped environment variables are ignored.

# Sections

  - ServerConfig: HTTP listener and timeouts (HTTP_*)
  - DatabaseConfig: DuckDB file and tuning (DUCKDB_*)
  - CacheConfig: KNN result cache backend and sweep interval (CACHE_*)
  - RecommendConfig: engine tuning (RECOMMEND_*)
  - CatalogConfig: optional YAML seed file (CATALOG_SEED_PATH)
  - InsightsConfig: optional Gemini narrative generator (INSIGHTS_*, GEMINI_API_KEY)
  - APIConfig: rate limiting and request limits
  - LoggingConfig: LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Example

	cfg, err := config.LoadWithKoanf()
	if err != nil {
	    log.Fatal(err)
	}
	engineCfg := cfg.Recommend.EngineConfig()

RECOMMEND_FEATURE_WEIGHTS accepts a comma-separated list of 16 non-negative
numbers; YAML files may use a list instead.
*/
package config
