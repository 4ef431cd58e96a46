// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/careermatch/internal/database"
	"github.com/tomtom215/careermatch/internal/insights"
	"github.com/tomtom215/careermatch/internal/logging"
	"github.com/tomtom215/careermatch/internal/metrics"
	"github.com/tomtom215/careermatch/internal/models"
	"github.com/tomtom215/careermatch/internal/recommend"
)

const (
	apiVersion = "1.0.0"

	// similarForInsights is how many similar profiles are described to the
	// insights model.
	similarForInsights = 3
)

// Recommendations handles POST /api/v1/recommendations.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req RecommendationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.deps.Recommender.Recommend(r.Context(), recommend.Request{
		Profile: *req.UserProfile,
		Options: req.Options.engineOptions(),
	})
	if err != nil {
		if errors.Is(err, recommend.ErrEmptyCandidatePool) {
			respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable,
				"Cannot compute recommendations yet: the career catalog is empty", err)
			return
		}
		respondError(w, r, http.StatusInternalServerError, ErrCodeRecommendationError,
			"Recommendations unavailable, try again", err)
		return
	}

	data := models.RecommendationsData{
		AssessmentID: resp.AssessmentID,
		UserID:       req.UserProfile.UserID,
		Careers:      models.NewCareerViews(resp.Recommendations),
		Analysis:     resp.Analysis,
		Debug:        resp.Debug,
	}

	if req.Options.wantsInsights() {
		data.Insights, data.InsightsError = h.generateInsights(r.Context(), req.UserProfile, resp)
	}

	respondSuccess(w, r, data, models.Metadata{
		QueryTimeMS: time.Since(start).Milliseconds(),
		Cached:      resp.CacheHit,
	})
}

// generateInsights never fails the request; problems are returned as a
// client-facing message.
func (h *Handler) generateInsights(ctx context.Context, p *recommend.UserProfile, resp *recommend.Response) (*insights.Insights, string) {
	if h.deps.Insights == nil {
		return nil, "insights are not enabled"
	}

	logger := logging.Ctx(ctx)

	var similar []recommend.UserProfile
	if h.deps.Audit != nil {
		recent, err := h.deps.Audit.RecentProfiles(ctx, h.config.API.SimilarProfiles)
		if err != nil {
			logger.Warn().Err(err).Msg("recent profiles unavailable for insights")
		} else if similar, err = recommend.FindSimilarProfiles(p, recent, similarForInsights); err != nil {
			logger.Warn().Err(err).Msg("similar profile lookup failed")
			similar = nil
		}
	}

	out, err := insights.Generate(ctx, h.deps.Insights, insights.BuildSummary(p, resp, similar))
	if err != nil {
		logger.Warn().Err(err).Msg("insight generation failed")
		return nil, "insights unavailable, try again later"
	}
	return out, ""
}

// StatusResponse is the payload of the status endpoint.
type StatusResponse struct {
	Status     string                 `json:"status"`
	APIVersion string                 `json:"apiVersion"`
	KNN        KNNStatus              `json:"knn"`
	Catalog    database.CatalogStats  `json:"catalog"`
	Cache      recommend.CacheStats   `json:"cache"`
	Metrics    database.SystemMetrics `json:"metrics"`
}

// KNNStatus reports the active engine settings.
type KNNStatus struct {
	DefaultK        int    `json:"defaultK"`
	MaxK            int    `json:"maxK"`
	CacheBackend    string `json:"cacheBackend"`
	CacheTTL        string `json:"cacheTtl"`
	InsightsEnabled bool   `json:"insightsEnabled"`
}

// Status handles GET /api/v1/recommendations/status.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	out := StatusResponse{
		Status:     "Ready",
		APIVersion: apiVersion,
		KNN: KNNStatus{
			DefaultK:        h.config.Recommend.DefaultK,
			MaxK:            h.config.Recommend.MaxK,
			CacheBackend:    h.config.Cache.Backend,
			CacheTTL:        h.config.Recommend.CacheTTL.String(),
			InsightsEnabled: h.deps.Insights != nil,
		},
	}

	var err error
	if out.Catalog, err = h.deps.Catalog.CatalogStats(ctx); err != nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Status unavailable", err)
		return
	}
	if out.Cache, err = h.deps.Cache.Stats(ctx); err != nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Status unavailable", err)
		return
	}
	if out.Metrics, err = h.deps.Audit.SystemMetrics(ctx); err != nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Status unavailable", err)
		return
	}

	respondSuccess(w, r, out, models.Metadata{})
}

// Summary handles GET /api/v1/recommendations/summary?assessmentId=...|userId=...
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	assessmentID := r.URL.Query().Get("assessmentId")
	userID := r.URL.Query().Get("userId")
	if assessmentID == "" && userID == "" {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "assessmentId or userId is required", nil)
		return
	}

	summary, err := h.deps.Audit.LatestSummary(r.Context(), assessmentID, userID)
	if errors.Is(err, database.ErrSummaryNotFound) {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "No results summary found", nil)
		return
	}
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "Failed to fetch results summary", err)
		return
	}

	respondSuccess(w, r, summary, models.Metadata{})
}

// PurgeCacheResponse reports a purge sweep.
type PurgeCacheResponse struct {
	Purged int64                `json:"purged"`
	Cache  recommend.CacheStats `json:"cache"`
}

// PurgeCache handles POST /api/v1/cache/purge.
func (h *Handler) PurgeCache(w http.ResponseWriter, r *http.Request) {
	n, err := h.deps.Cache.PurgeExpired(r.Context())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "Cache purge failed", err)
		return
	}
	stats, err := h.deps.Cache.Stats(r.Context())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "Cache purge failed", err)
		return
	}

	metrics.CacheEntriesPurged.Add(float64(n))
	h.logger.Info().Int64("purged", n).Msg("result cache purged on demand")
	respondSuccess(w, r, PurgeCacheResponse{Purged: n, Cache: stats}, models.Metadata{})
}
