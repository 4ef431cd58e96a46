// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

package main

import (
	"context"

	"github.com/tomtom215/careermatch/internal/config"
	"github.com/tomtom215/careermatch/internal/insights"
	"github.com/tomtom215/careermatch/internal/logging"
)

// initInsights returns the Gemini generator, or nil when insights are
// disabled or the client cannot be created. Recommendations never depend on
// insights, so a failure here is not fatal.
func initInsights(ctx context.Context, cfg *config.InsightsConfig) insights.Generator {
	if !cfg.Enabled {
		logging.Info().Msg("Insight generation disabled (INSIGHTS_ENABLED=false)")
		return nil
	}

	gen, err := insights.NewGemini(ctx, cfg)
	if err != nil {
		logging.Warn().Err(err).Msg("Failed to create Gemini client, insights disabled")
		return nil
	}

	logging.Info().
		Str("model", cfg.Model).
		Uint32("max_failures", cfg.MaxFailures).
		Dur("open_interval", cfg.OpenInterval).
		Msg("Insight generation enabled")
	return gen
}
