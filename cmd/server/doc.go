// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

/*
Package main is the entry point for the careermatch server.

careermatch recommends careers for a completed skills and personality
assessment by running a K-nearest-neighbor search over a DuckDB career
catalog, caching result sets and recording every assessment for audit.

# Application Architecture

	RootSupervisor ("careermatch")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── Cache sweep (CACHE_SWEEP_INTERVAL > 0)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config file
 2. Logging: zerolog with JSON/console output modes
 3. Database: DuckDB catalog, result cache and audit tables
 4. Result cache: duckdb, badger or memory backend, cleared on catalog edits
 5. Catalog seed: optional YAML file upserted on startup
 6. Engine: KNN recommendation engine
 7. Insights: optional Gemini generator behind a circuit breaker
 8. Supervisor Tree: suture v4 process supervision
 9. HTTP Server: Chi router with middleware stack

# Configuration

	Priority: Environment variables > Config file > Defaults

Core environment variables:

	HTTP_PORT=3860
	DUCKDB_PATH=/data/careermatch.duckdb
	CATALOG_SEED_PATH=/etc/careermatch/careers.yaml
	CACHE_BACKEND=duckdb            # duckdb, badger or memory
	RECOMMEND_DEFAULT_K=5
	RECOMMEND_CACHE_TTL=24h
	INSIGHTS_ENABLED=false
	GEMINI_API_KEY=<key>            # required when insights are enabled
	LOG_LEVEL=info
	LOG_FORMAT=json

# Signal Handling

SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains
in-flight requests, pending vector write-backs finish, and the cache and
database are closed in that order.
*/
package main
