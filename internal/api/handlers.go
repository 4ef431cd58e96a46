// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

package api

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/careermatch/internal/config"
	"github.com/tomtom215/careermatch/internal/database"
	"github.com/tomtom215/careermatch/internal/insights"
	"github.com/tomtom215/careermatch/internal/recommend"
)

// Recommender computes recommendations. *recommend.Engine implements it.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
}

// CatalogReader reads the career catalog.
type CatalogReader interface {
	CatalogStats(ctx context.Context) (database.CatalogStats, error)
	ListActiveCareers(ctx context.Context) ([]recommend.CareerProfile, error)
	ListCareersByIndustry(ctx context.Context, industry string) ([]recommend.CareerProfile, error)
	ListCareersByExperienceLevel(ctx context.Context, level string) ([]recommend.CareerProfile, error)
	SearchCareersBySkills(ctx context.Context, skills []string, minMatches int) ([]recommend.CareerProfile, error)
	GetCareer(ctx context.Context, id string) (recommend.CareerProfile, error)
	DistinctIndustries(ctx context.Context) ([]string, error)
	DistinctExperienceLevels(ctx context.Context) ([]string, error)
}

// AuditReader reads the assessment audit trail.
type AuditReader interface {
	SystemMetrics(ctx context.Context) (database.SystemMetrics, error)
	RecentProfiles(ctx context.Context, limit int) ([]recommend.UserProfile, error)
	LatestSummary(ctx context.Context, assessmentID, userID string) (database.ResultsSummary, error)
}

// Pinger checks backing store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies are the collaborators of a Handler. Insights may be nil when
// generation is disabled.
type Dependencies struct {
	Recommender Recommender
	Cache       recommend.ResultCache
	Catalog     CatalogReader
	Audit       AuditReader
	DB          Pinger
	Insights    insights.Generator
}

// Handler serves the HTTP API.
type Handler struct {
	deps      Dependencies
	config    *config.Config
	logger    zerolog.Logger
	startTime time.Time
}

// NewHandler creates a handler.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func NewHandler(cfg *config.Config, deps Dependencies, logger zerolog.Logger) *Handler {
	return &Handler{
		deps:      deps,
		config:    cfg,
		logger:    logger.With().Str("component", "api").Logger(),
		startTime: time.Now(),
	}
}
