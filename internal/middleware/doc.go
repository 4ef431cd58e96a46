// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

/*
Package middleware provides HTTP middleware components for the API.

Key Components:

  - Request ID: UUID-based request tracking, propagated to the logging context
  - Prometheus Metrics: request count and latency by method, route and status

Both are plain func(http.Handler) http.Handler and plug into chi directly:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)

Metrics are labelled with the chi route pattern (for example
"/api/v1/recommendations/summary") rather than the raw path, so query strings
and path parameters cannot grow label cardinality.
*/
package middleware
