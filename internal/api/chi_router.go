// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/careermatch/internal/middleware"
)

// Router wires handlers to routes.
type Router struct {
	handler *Handler
}

// NewRouter creates a router for h.
func NewRouter(h *Handler) *Router {
	return &Router{handler: h}
}

// rateLimit returns per-IP limiting from config, or a pass-through when
// limiting is disabled (RATE_LIMIT_REQUESTS=0).
func (router *Router) rateLimit() func(http.Handler) http.Handler {
	cfg := router.handler.config.API
	if cfg.RateLimitRequests == 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}
	return httprate.Limit(
		cfg.RateLimitRequests,
		cfg.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			respondError(w, r, http.StatusTooManyRequests, "TOO_MANY_REQUESTS", "Rate limit exceeded", nil)
		}),
	)
}

// corsMaxAge is how long browsers may cache a preflight response, in seconds.
const corsMaxAge = 300

// corsHandler allows browser clients from the configured origins. An empty origin
// list disables CORS headers.
func (router *Router) corsHandler() func(http.Handler) http.Handler {
	origins := router.handler.config.API.CORSOrigins
	if len(origins) == 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         corsMaxAge,
	})
}

// SetupChi configures all HTTP routes using Chi router.
func (router *Router) SetupChi() http.Handler {
	h := router.handler
	r := chi.NewRouter()

	// Global Middleware Stack
	r.Use(middleware.RequestID)
	r.Use(router.corsHandler())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)

	// Health endpoints are not rate limited so probes never fail on quota.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.rateLimit())
		r.Use(chimiddleware.RequestSize(h.config.API.MaxBodyBytes))

		r.Route("/recommendations", func(r chi.Router) {
			r.Post("/", h.Recommendations)
			r.Get("/status", h.Status)
			r.Get("/summary", h.Summary)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Post("/analysis", h.AnalyzeProfile)
			r.Post("/similar", h.SimilarProfiles)
		})

		r.Route("/careers", func(r chi.Router) {
			r.Get("/", h.Careers)
			r.Get("/facets", h.Facets)
			r.Get("/{id}", h.Career)
		})

		r.Post("/cache/purge", h.PurgeCache)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
