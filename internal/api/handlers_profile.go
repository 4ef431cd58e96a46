// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

package api

import (
	"net/http"

	"github.com/tomtom215/careermatch/internal/models"
	"github.com/tomtom215/careermatch/internal/recommend"
)

// defaultSimilarLimit is used when a similar-profiles request sets no limit.
const defaultSimilarLimit = 5

// AnalyzeProfile handles POST /api/v1/profile/analysis.
func (h *Handler) AnalyzeProfile(w http.ResponseWriter, r *http.Request) {
	var req ProfileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	respondSuccess(w, r, recommend.AnalyzeProfile(req.UserProfile), models.Metadata{})
}

// SimilarProfilesResponse lists the closest recent profiles.
type SimilarProfilesResponse struct {
	Profiles []recommend.UserProfile `json:"profiles"`
	Scanned  int                     `json:"scanned"`
}

// SimilarProfiles handles POST /api/v1/profile/similar. It compares the
// profile with the most recent assessments in feature space.
func (h *Handler) SimilarProfiles(w http.ResponseWriter, r *http.Request) {
	var req ProfileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	limit := req.Limit
	if limit == 0 {
		limit = defaultSimilarLimit
	}

	recent, err := h.deps.Audit.RecentProfiles(r.Context(), h.config.API.SimilarProfiles)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "Failed to load recent profiles", err)
		return
	}

	similar, err := recommend.FindSimilarProfiles(req.UserProfile, recent, limit)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "Similar profile lookup failed", err)
		return
	}

	respondSuccess(w, r, SimilarProfilesResponse{Profiles: similar, Scanned: len(recent)}, models.Metadata{})
}
