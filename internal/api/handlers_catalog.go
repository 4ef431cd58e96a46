// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/careermatch/internal/database"
	"github.com/tomtom215/careermatch/internal/models"
	"github.com/tomtom215/careermatch/internal/recommend"
)

// maxSkillFilters bounds the skills query parameter.
const maxSkillFilters = 20

// Careers handles GET /api/v1/careers.
//
// Filters (at most one applies, in this order):
//   - skills=a,b&minMatches=n: careers requiring at least n of the skills
//   - industry=...
//   - experienceLevel=...
func (h *Handler) Careers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	var (
		careers []recommend.CareerProfile
		err     error
	)
	switch {
	case q.Get("skills") != "":
		skills := parseCommaSeparated(q.Get("skills"))
		if len(skills) > maxSkillFilters {
			respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "Too many skills in filter", nil)
			return
		}
		minMatches := parseIntParam(q.Get("minMatches"), 1)
		careers, err = h.deps.Catalog.SearchCareersBySkills(ctx, skills, minMatches)
	case q.Get("industry") != "":
		careers, err = h.deps.Catalog.ListCareersByIndustry(ctx, q.Get("industry"))
	case q.Get("experienceLevel") != "":
		careers, err = h.deps.Catalog.ListCareersByExperienceLevel(ctx, q.Get("experienceLevel"))
	default:
		careers, err = h.deps.Catalog.ListActiveCareers(ctx)
	}
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "Failed to list careers", err)
		return
	}

	respondSuccess(w, r, careers, models.Metadata{})
}

// Career handles GET /api/v1/careers/{id}.
func (h *Handler) Career(w http.ResponseWriter, r *http.Request) {
	c, err := h.deps.Catalog.GetCareer(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, database.ErrCareerNotFound) {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Career not found", nil)
		return
	}
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "Failed to load career", err)
		return
	}
	respondSuccess(w, r, c, models.Metadata{})
}

// CareerFacets lists the filter values present in the active catalog.
type CareerFacets struct {
	Industries       []string `json:"industries"`
	ExperienceLevels []string `json:"experienceLevels"`
}

// Facets handles GET /api/v1/careers/facets.
func (h *Handler) Facets(w http.ResponseWriter, r *http.Request) {
	industries, err := h.deps.Catalog.DistinctIndustries(r.Context())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "Failed to load facets", err)
		return
	}
	levels, err := h.deps.Catalog.DistinctExperienceLevels(r.Context())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "Failed to load facets", err)
		return
	}
	respondSuccess(w, r, CareerFacets{Industries: industries, ExperienceLevels: levels}, models.Metadata{})
}

// parseIntParam parses a positive integer, returning defaultValue otherwise.
func parseIntParam(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 1 {
		return defaultValue
	}
	return parsed
}

// parseCommaSeparated splits a comma-separated list, dropping blanks.
func parseCommaSeparated(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
