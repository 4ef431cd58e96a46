// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

/*
schema.go - Database Schema Management

Tables:
  - careers: the career catalog; features_vector holds the last persisted
    feature vector as comma-separated text, NULL until computed
  - knn_cache: KNN result sets keyed by (user_features_hash, k_value)
  - assessments: one row per recommendation request, with the profile as JSON
  - career_recommendations: the ranked careers returned for an assessment
  - knn_results_summary: per-assessment aggregate and confidence score

No secondary indexes are created on columns that upserts rewrite; DuckDB
implements such updates as delete plus insert and rejects them on
conflicting keys.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the database tables
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range tableCreationQueries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	return nil
}

var tableCreationQueries = []string{
	`CREATE TABLE IF NOT EXISTS careers (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		industry TEXT NOT NULL DEFAULT '',
		experience_level TEXT NOT NULL DEFAULT '',
		work_environment TEXT NOT NULL DEFAULT '',
		average_salary TEXT NOT NULL DEFAULT '',
		growth_outlook TEXT NOT NULL DEFAULT '',
		required_skills_json TEXT NOT NULL DEFAULT '{}',
		personality_fit_json TEXT NOT NULL DEFAULT '{}',
		features_vector TEXT,
		is_active BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS knn_cache (
		user_features_hash TEXT NOT NULL,
		k_value INTEGER NOT NULL,
		career_recommendations_json TEXT NOT NULL,
		computation_time_ms BIGINT NOT NULL DEFAULT 0,
		expires_at TIMESTAMP NOT NULL,
		created_at TIMESTAMP NOT NULL,
		PRIMARY KEY (user_features_hash, k_value)
	)`,

	`CREATE TABLE IF NOT EXISTS assessments (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL DEFAULT '',
		experience_level TEXT NOT NULL DEFAULT '',
		career_goals_json TEXT NOT NULL DEFAULT '[]',
		preferences_json TEXT NOT NULL DEFAULT '{}',
		profile_json TEXT NOT NULL,
		analysis_json TEXT NOT NULL,
		completed_at TIMESTAMP NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS career_recommendations (
		assessment_id TEXT NOT NULL,
		result_rank INTEGER NOT NULL,
		user_id TEXT NOT NULL DEFAULT '',
		career_id TEXT NOT NULL,
		career_title TEXT NOT NULL,
		match_score INTEGER NOT NULL,
		similarity_score DOUBLE NOT NULL,
		knn_distance DOUBLE NOT NULL,
		match_reasons_json TEXT NOT NULL DEFAULT '[]',
		k_value INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL,
		PRIMARY KEY (assessment_id, result_rank)
	)`,

	`CREATE TABLE IF NOT EXISTS knn_results_summary (
		assessment_id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL DEFAULT '',
		knn_generated INTEGER NOT NULL,
		avg_match_score INTEGER NOT NULL,
		industries_count INTEGER NOT NULL,
		processing_time_ms BIGINT NOT NULL,
		total_profiles_analyzed INTEGER NOT NULL,
		confidence_score DOUBLE NOT NULL,
		algorithm_type TEXT NOT NULL,
		k_value INTEGER NOT NULL,
		cache_used BOOLEAN NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_career_recommendations_career ON career_recommendations(career_id)`,
	`CREATE INDEX IF NOT EXISTS idx_assessments_completed ON assessments(completed_at)`,
}
