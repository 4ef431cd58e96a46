// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Recommendation Engine Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careermatch_recommend_requests_total",
			Help: "Total number of recommendation requests by outcome",
		},
		[]string{"outcome"}, // "success", "empty_pool", "dimension_mismatch", "error"
	)

	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "careermatch_recommend_duration_seconds",
			Help:    "Duration of recommendation requests in seconds",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"path"}, // "cache", "compute"
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careermatch_cache_lookups_total",
			Help: "Total number of result cache lookups by result",
		},
		[]string{"result"}, // "hit", "miss", "error"
	)

	CacheWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careermatch_cache_writes_total",
			Help: "Total number of result cache writes by result",
		},
		[]string{"result"}, // "success", "error"
	)

	CacheEntriesPurged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "careermatch_cache_entries_purged_total",
			Help: "Total number of expired result cache entries purged",
		},
	)

	CandidatePoolSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "careermatch_candidate_pool_size",
			Help: "Number of active careers scanned by the most recent computation",
		},
	)

	VectorWriteBacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careermatch_vector_writebacks_total",
			Help: "Total number of feature vector write-back batches by result",
		},
		[]string{"result"}, // "success", "error"
	)

	AuditWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careermatch_audit_writes_total",
			Help: "Total number of assessment audit writes by result",
		},
		[]string{"result"},
	)

	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through the circuit breaker",
		},
		[]string{"name", "result"}, // "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)
)

// RecordRecommendation records one finished recommendation request.
func RecordRecommendation(outcome string, cacheHit bool, duration time.Duration) {
	RecommendRequests.WithLabelValues(outcome).Inc()
	if outcome != "success" {
		return
	}
	path := "compute"
	if cacheHit {
		path = "cache"
	}
	RecommendDuration.WithLabelValues(path).Observe(duration.Seconds())
}

// RecordCacheLookup records a cache lookup result: "hit", "miss" or "error".
func RecordCacheLookup(result string) {
	CacheLookups.WithLabelValues(result).Inc()
}

// RecordCacheWrite records a cache store attempt.
func RecordCacheWrite(err error) {
	CacheWrites.WithLabelValues(resultLabel(err)).Inc()
}

// RecordWriteBack records one feature vector reconcile batch.
func RecordWriteBack(err error) {
	VectorWriteBacks.WithLabelValues(resultLabel(err)).Inc()
}

// RecordAuditWrite records one assessment audit write.
func RecordAuditWrite(err error) {
	AuditWrites.WithLabelValues(resultLabel(err)).Inc()
}

// RecordDBQuery records a database query metric.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
