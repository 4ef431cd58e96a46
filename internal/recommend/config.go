// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

package recommend

import (
	"errors"
	"fmt"
	"time"
)

// Config contains the engine configuration.
type Config struct {
	// DefaultK is used when a request does not set K.
	DefaultK int `json:"default_k"`

	// MaxK caps the requested K.
	MaxK int `json:"max_k"`

	// CacheTTL is how long a computed result set stays valid.
	CacheTTL time.Duration `json:"cache_ttl"`

	// Workers bounds concurrent feature extraction per request.
	Workers int `json:"workers"`

	// WriteBackTimeout bounds the background vector reconcile step, which
	// outlives the originating request.
	WriteBackTimeout time.Duration `json:"writeback_timeout"`

	// FeatureWeights optionally scales each feature dimension before distance
	// computation. Empty means every dimension has weight 1.
	FeatureWeights []float64 `json:"feature_weights"`
}

// DefaultConfig returns production defaults.
func DefaultConfig() *Config {
	return &Config{
		DefaultK:         5,
		MaxK:             50,
		CacheTTL:         24 * time.Hour,
		Workers:          8,
		WriteBackTimeout: 30 * time.Second,
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.DefaultK < 1 {
		return fmt.Errorf("default_k must be at least 1, got %d", c.DefaultK)
	}
	if c.MaxK < c.DefaultK {
		return fmt.Errorf("max_k (%d) must be >= default_k (%d)", c.MaxK, c.DefaultK)
	}
	if c.CacheTTL < 0 {
		return errors.New("cache_ttl must not be negative")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.WriteBackTimeout <= 0 {
		return errors.New("writeback_timeout must be positive")
	}
	if n := len(c.FeatureWeights); n != 0 && n != Dimension {
		return fmt.Errorf("feature_weights must have %d entries, got %d", Dimension, n)
	}
	for i, w := range c.FeatureWeights {
		if w < 0 {
			return fmt.Errorf("feature_weights[%d] must not be negative", i)
		}
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	if c.FeatureWeights != nil {
		clone.FeatureWeights = append([]float64(nil), c.FeatureWeights...)
	}
	return &clone
}

// resolveK applies the default and the cap to a requested K.
func (c *Config) resolveK(k int) int {
	if k <= 0 {
		return c.DefaultK
	}
	if k > c.MaxK {
		return c.MaxK
	}
	return k
}
