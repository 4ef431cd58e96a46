// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

/*
Package database provides DuckDB persistence for Careermatch.

A single *DB serves three roles for the recommendation engine:

  - Career catalog: implements recommend.CatalogStore and
    recommend.BatchVectorWriter over the careers table. Careers are
    soft-deleted, and upserts clear a stored feature vector that no longer
    matches the career's attributes.
  - Audit trail: implements recommend.AuditSink over the assessments,
    career_recommendations and knn_results_summary tables, and serves
    SystemMetrics and RecentProfiles.
  - Result cache: NewCacheStore wraps the DB as a recommend.ResultCache
    over the knn_cache table.

Seed files are YAML (see testdata/careers.yaml) and are loaded with
SeedFromFile at startup.

# Usage

	db, err := database.New(&cfg.Database)
	if err != nil {
	    return err
	}
	defer db.Close()

	if cfg.Catalog.SeedPath != "" {
	    if _, err := db.SeedFromFile(ctx, cfg.Catalog.SeedPath); err != nil {
	        return err
	    }
	}

Every query records its latency and failures through internal/metrics.
*/
package database
