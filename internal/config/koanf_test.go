// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"
)

// isolate points the loader at a temp directory with no config file.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)
	t.Setenv(ConfigPathEnvVar, "")
	return tmpDir
}

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 3860 {
		t.Errorf("Server.Port = %d, want 3860", cfg.Server.Port)
	}
	if cfg.Database.Path != "/data/careermatch.duckdb" {
		t.Errorf("Database.Path = %q, want /data/careermatch.duckdb", cfg.Database.Path)
	}
	if cfg.Cache.Backend != "duckdb" {
		t.Errorf("Cache.Backend = %q, want duckdb", cfg.Cache.Backend)
	}
	if cfg.Recommend.DefaultK != 5 || cfg.Recommend.MaxK != 50 {
		t.Errorf("Recommend K = %d/%d, want 5/50", cfg.Recommend.DefaultK, cfg.Recommend.MaxK)
	}
	if cfg.Recommend.CacheTTL != 24*time.Hour {
		t.Errorf("Recommend.CacheTTL = %v, want 24h", cfg.Recommend.CacheTTL)
	}
	if cfg.Insights.Enabled {
		t.Error("Insights.Enabled should be false by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaultConfig().Validate() = %v, want nil", err)
	}
}

func TestLoadWithKoanf_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Recommend.WriteBackTimeout != 30*time.Second {
		t.Errorf("Recommend.WriteBackTimeout = %v, want 30s", cfg.Recommend.WriteBackTimeout)
	}
	if len(cfg.Recommend.FeatureWeights) != 0 {
		t.Errorf("Recommend.FeatureWeights = %v, want empty", cfg.Recommend.FeatureWeights)
	}
}

func TestLoadWithKoanf_FileThenEnv(t *testing.T) {
	tmpDir := isolate(t)

	weights := make([]string, 16)
	for i := range weights {
		weights[i] = "    - 1"
	}
	weights[0] = "    - 2.5"

	yaml := `server:
  port: 9000
cache:
  backend: memory
recommend:
  default_k: 3
  cache_ttl: 1h
  feature_weights:
` + strings.Join(weights, "\n") + `
logging:
  level: debug
`
	path := filepath.Join(tmpDir, "custom.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "9100")
	t.Setenv("RECOMMEND_WORKERS", "2")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9100 {
		t.Errorf("Server.Port = %d, want 9100 (env beats file)", cfg.Server.Port)
	}
	if cfg.Cache.Backend != "memory" {
		t.Errorf("Cache.Backend = %q, want memory", cfg.Cache.Backend)
	}
	if cfg.Recommend.DefaultK != 3 {
		t.Errorf("Recommend.DefaultK = %d, want 3", cfg.Recommend.DefaultK)
	}
	if cfg.Recommend.CacheTTL != time.Hour {
		t.Errorf("Recommend.CacheTTL = %v, want 1h", cfg.Recommend.CacheTTL)
	}
	if cfg.Recommend.Workers != 2 {
		t.Errorf("Recommend.Workers = %d, want 2", cfg.Recommend.Workers)
	}
	if len(cfg.Recommend.FeatureWeights) != 16 || cfg.Recommend.FeatureWeights[0] != 2.5 {
		t.Errorf("Recommend.FeatureWeights = %v, want 16 entries starting with 2.5", cfg.Recommend.FeatureWeights)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	// Untouched sections keep defaults.
	if cfg.Database.MaxMemory != "1GB" {
		t.Errorf("Database.MaxMemory = %q, want 1GB", cfg.Database.MaxMemory)
	}
}

func TestLoadWithKoanf_FeatureWeightsFromEnv(t *testing.T) {
	isolate(t)

	tests := []struct {
		name    string
		value   string
		want    int
		wantErr bool
	}{
		{"sixteen values", strings.TrimSuffix(strings.Repeat("1,", 16), ","), 16, false},
		{"empty disables weighting", "", 0, false},
		{"wrong length", "1,2,3", 0, true},
		{"not a number", strings.Repeat("x,", 15) + "x", 0, true},
		{"negative weight", "-1" + strings.Repeat(",1", 15), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("RECOMMEND_FEATURE_WEIGHTS", tt.value)

			cfg, err := LoadWithKoanf()
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadWithKoanf() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && len(cfg.Recommend.FeatureWeights) != tt.want {
				t.Errorf("len(FeatureWeights) = %d, want %d", len(cfg.Recommend.FeatureWeights), tt.want)
			}
		})
	}
}

func TestLoadWithKoanf_CORSOriginsFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("CORS_ORIGINS", "https://careers.example.com, http://localhost:5173,")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	want := []string{"https://careers.example.com", "http://localhost:5173"}
	if !slices.Equal(cfg.API.CORSOrigins, want) {
		t.Errorf("API.CORSOrigins = %v, want %v", cfg.API.CORSOrigins, want)
	}
}

func TestLoadWithKoanf_InvalidValues(t *testing.T) {
	isolate(t)

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"port out of range", "HTTP_PORT", "70000"},
		{"unknown cache backend", "CACHE_BACKEND", "redis"},
		{"bad log level", "LOG_LEVEL", "verbose"},
		{"zero default k", "RECOMMEND_DEFAULT_K", "0"},
		{"insights without key", "INSIGHTS_ENABLED", "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			t.Setenv("GEMINI_API_KEY", "")
			if _, err := LoadWithKoanf(); err == nil {
				t.Errorf("LoadWithKoanf() with %s=%s error = nil, want error", tt.key, tt.value)
			}
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	tmpDir := isolate(t)

	t.Run("no config file exists", func(t *testing.T) {
		if got := findConfigFile(); got != "" {
			t.Errorf("findConfigFile() = %q, want empty string", got)
		}
	})

	t.Run("config.yaml exists", func(t *testing.T) {
		configPath := filepath.Join(tmpDir, "config.yaml")
		if err := os.WriteFile(configPath, []byte("logging:\n  level: info\n"), 0o600); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		defer os.Remove(configPath)

		if got := findConfigFile(); got != "config.yaml" {
			t.Errorf("findConfigFile() = %q, want config.yaml", got)
		}
	})

	t.Run("CONFIG_PATH with non-existent file falls back", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, "/non/existent/config.yaml")
		if got := findConfigFile(); got != "" {
			t.Errorf("findConfigFile() = %q, want empty string", got)
		}
	})
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"RECOMMEND_CACHE_TTL", "recommend.cache_ttl"},
		{"GEMINI_API_KEY", "insights.api_key"},
		{"CORS_ORIGINS", "api.cors_origins"},
		{"cache_backend", "cache.backend"},
		{"PATH", ""},
		{"HOME", ""},
	}
	for _, tt := range tests {
		if got := envTransformFunc(tt.key); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestEngineConfig(t *testing.T) {
	rc := defaultConfig().Recommend
	rc.FeatureWeights = make([]float64, 16)

	ec := rc.EngineConfig()
	if ec.DefaultK != rc.DefaultK || ec.MaxK != rc.MaxK || ec.CacheTTL != rc.CacheTTL {
		t.Errorf("EngineConfig() = %+v, want fields copied from %+v", ec, rc)
	}

	ec.FeatureWeights[0] = 9
	if rc.FeatureWeights[0] != 0 {
		t.Error("EngineConfig() shares FeatureWeights with the source")
	}
}
