// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

package config

import (
	"errors"
	"fmt"

	"github.com/tomtom215/careermatch/internal/cache"
)

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// Validate checks that all configuration values are usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateInsights(); err != nil {
		return err
	}
	if err := c.validateAPI(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("HTTP_READ_TIMEOUT and HTTP_WRITE_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("DUCKDB_PATH is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be non-negative")
	}
	return nil
}

func (c *Config) validateCache() error {
	backend, err := cache.ParseBackend(c.Cache.Backend)
	if err != nil {
		return fmt.Errorf("CACHE_BACKEND: %w", err)
	}
	if backend == cache.BackendBadger && !c.Cache.BadgerInMemory && c.Cache.BadgerPath == "" {
		return fmt.Errorf("CACHE_BADGER_PATH is required when CACHE_BACKEND=badger")
	}
	if c.Cache.SweepInterval < 0 {
		return fmt.Errorf("CACHE_SWEEP_INTERVAL must be non-negative")
	}
	return nil
}

// validateRecommend delegates to the engine's own validation so both
// layers agree on what is acceptable.
func (c *Config) validateRecommend() error {
	if err := c.Recommend.EngineConfig().Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	return nil
}

func (c *Config) validateInsights() error {
	if !c.Insights.Enabled {
		return nil
	}
	if c.Insights.APIKey == "" {
		return errors.New("GEMINI_API_KEY is required when INSIGHTS_ENABLED=true")
	}
	if c.Insights.Model == "" {
		return errors.New("INSIGHTS_MODEL is required when INSIGHTS_ENABLED=true")
	}
	if c.Insights.Timeout <= 0 {
		return errors.New("INSIGHTS_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.RateLimitRequests < 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be non-negative (0 disables limiting)")
	}
	if c.API.RateLimitRequests > 0 && c.API.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive when rate limiting is enabled")
	}
	if c.API.MaxBodyBytes <= 0 {
		return fmt.Errorf("API_MAX_BODY_BYTES must be positive")
	}
	if c.API.SimilarProfiles < 0 {
		return fmt.Errorf("API_SIMILAR_PROFILES must be non-negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
