// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

/*
Package metrics provides Prometheus metrics for Careermatch.

# Overview

The package provides metrics for:
  - Recommendation requests, outcomes and latency
  - Result cache lookups by outcome and backend
  - Candidate pool size and feature vector write-backs
  - DuckDB query performance
  - HTTP request latency and throughput
  - The insight generator's circuit breaker

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8080/metrics

All collectors are registered with the default registry through promauto,
so importing the package is enough to expose them.
*/
package metrics
