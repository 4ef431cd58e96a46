// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/careermatch/internal/metrics"
	"github.com/tomtom215/careermatch/internal/recommend"
)

var _ recommend.AuditSink = (*DB)(nil)

const (
	algorithmLabel = "Euclidean KNN"
	maxConfidence  = 95.0
	confidenceLift = 10.0
	topCareerLimit = 5
)

// SystemMetrics aggregates the audit trail.
type SystemMetrics struct {
	TotalAssessments    int64         `json:"totalAssessments"`
	AvgProcessingTimeMs int64         `json:"avgProcessingTimeMs"`
	CacheHitRate        float64       `json:"cacheHitRate"`
	TopCareers          []CareerCount `json:"topCareers"`
}

// CareerCount is how often a career was recommended.
type CareerCount struct {
	Career          string `json:"career"`
	Recommendations int64  `json:"recommendations"`
}

// ResultsSummary is the stored aggregate of one assessment run.
type ResultsSummary struct {
	AssessmentID          string    `json:"assessmentId"`
	UserID                string    `json:"userId"`
	KNNGenerated          int       `json:"knnGenerated"`
	AvgMatchScore         int       `json:"avgMatchScore"`
	IndustriesCount       int       `json:"industriesCount"`
	ProcessingTimeMs      int64     `json:"processingTimeMs"`
	TotalProfilesAnalyzed int       `json:"totalProfilesAnalyzed"`
	ConfidenceScore       float64   `json:"confidenceScore"`
	AlgorithmType         string    `json:"algorithmType"`
	K                     int       `json:"kValue"`
	CacheUsed             bool      `json:"cacheUsed"`
	CreatedAt             time.Time `json:"createdAt"`
}

// ConfidenceScore derives the summary confidence from the average similarity.
func ConfidenceScore(avgSimilarity float64) float64 {
	return math.Min(maxConfidence, avgSimilarity+confidenceLift)
}

// RecordAssessment persists the assessment, its ranked recommendations and a
// summary row in one transaction.
func (db *DB) RecordAssessment(ctx context.Context, rec *recommend.AssessmentRecord) (err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("record", "assessments", time.Since(start), err) }()

	p := &rec.Profile
	profileJSON, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	analysisJSON, err := json.Marshal(rec.Analysis)
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}
	goals := p.CareerGoals
	if goals == nil {
		goals = []string{}
	}
	goalsJSON, err := json.Marshal(goals)
	if err != nil {
		return fmt.Errorf("marshal career goals: %w", err)
	}
	prefsJSON, err := json.Marshal(p.Preferences)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}

	created := rec.CreatedAt.UTC()
	summary := summarizeRecommendations(rec.Recommendations)

	return db.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO assessments (
				id, user_id, experience_level, career_goals_json, preferences_json,
				profile_json, analysis_json, completed_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.ID, p.UserID, p.ExperienceLevel, string(goalsJSON), string(prefsJSON),
			string(profileJSON), string(analysisJSON), created,
		); err != nil {
			return fmt.Errorf("insert assessment: %w", err)
		}

		if len(rec.Recommendations) > 0 {
			stmt, err := tx.PrepareContext(ctx, `
				INSERT INTO career_recommendations (
					assessment_id, result_rank, user_id, career_id, career_title, match_score,
					similarity_score, knn_distance, match_reasons_json, k_value, created_at
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
			if err != nil {
				return fmt.Errorf("prepare recommendation insert: %w", err)
			}
			defer closeQuietly(stmt)

			for i := range rec.Recommendations {
				r := &rec.Recommendations[i]
				reasons, err := json.Marshal(r.MatchReasons)
				if err != nil {
					return fmt.Errorf("marshal match reasons: %w", err)
				}
				if _, err := stmt.ExecContext(ctx,
					rec.ID, i+1, p.UserID, r.Career.ID, r.Career.Title, int(math.Round(r.Similarity)),
					r.Similarity, r.Distance, string(reasons), rec.K, created,
				); err != nil {
					return fmt.Errorf("insert recommendation %s: %w", r.Career.ID, err)
				}
			}
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO knn_results_summary (
				assessment_id, user_id, knn_generated, avg_match_score, industries_count,
				processing_time_ms, total_profiles_analyzed, confidence_score,
				algorithm_type, k_value, cache_used, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.ID, p.UserID, len(rec.Recommendations), summary.avgMatch, summary.industries,
			rec.Analysis.ProcessingTimeMs, rec.Analysis.TotalCandidates,
			ConfidenceScore(rec.Analysis.AverageSimilarity), algorithmLabel, rec.K, rec.CacheUsed, created,
		); err != nil {
			return fmt.Errorf("insert results summary: %w", err)
		}
		return nil
	})
}

type recommendationSummary struct {
	avgMatch   int
	industries int
}

func summarizeRecommendations(results []recommend.NeighborResult) recommendationSummary {
	if len(results) == 0 {
		return recommendationSummary{}
	}
	var sum float64
	industries := make(map[string]struct{})
	for i := range results {
		sum += math.Round(results[i].Similarity)
		if ind := results[i].Career.Industry; ind != "" {
			industries[ind] = struct{}{}
		}
	}
	return recommendationSummary{
		avgMatch:   int(math.Round(sum / float64(len(results)))),
		industries: len(industries),
	}
}

// SystemMetrics returns totals over the audit trail.
func (db *DB) SystemMetrics(ctx context.Context) (m SystemMetrics, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("system_metrics", "assessments", time.Since(start), err) }()

	var (
		avgTime sql.NullFloat64
		hitRate sql.NullFloat64
	)
	err = db.conn.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			AVG(processing_time_ms)::DOUBLE,
			AVG(CASE WHEN cache_used THEN 1 ELSE 0 END)::DOUBLE
		FROM knn_results_summary`,
	).Scan(&m.TotalAssessments, &avgTime, &hitRate)
	if err != nil {
		return SystemMetrics{}, fmt.Errorf("failed to read assessment totals: %w", err)
	}
	m.AvgProcessingTimeMs = int64(math.Round(avgTime.Float64))
	m.CacheHitRate = hitRate.Float64

	rows, err := db.conn.QueryContext(ctx, `
		SELECT career_title, COUNT(*) AS recommendations
		FROM career_recommendations
		GROUP BY career_title
		ORDER BY recommendations DESC, career_title
		LIMIT ?`, topCareerLimit)
	if err != nil {
		return SystemMetrics{}, fmt.Errorf("failed to query top careers: %w", err)
	}
	defer rows.Close()

	m.TopCareers = []CareerCount{}
	for rows.Next() {
		var c CareerCount
		if err = rows.Scan(&c.Career, &c.Recommendations); err != nil {
			return SystemMetrics{}, fmt.Errorf("failed to scan top career: %w", err)
		}
		m.TopCareers = append(m.TopCareers, c)
	}
	if err = rows.Err(); err != nil {
		return SystemMetrics{}, err
	}
	return m, nil
}

// RecentProfiles returns up to limit profiles from the most recent
// assessments, newest first.
func (db *DB) RecentProfiles(ctx context.Context, limit int) (profiles []recommend.UserProfile, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("recent_profiles", "assessments", time.Since(start), err) }()

	rows, err := db.conn.QueryContext(ctx,
		"SELECT profile_json FROM assessments ORDER BY completed_at DESC, id LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent profiles: %w", err)
	}
	defer rows.Close()

	profiles = []recommend.UserProfile{}
	for rows.Next() {
		var raw string
		if err = rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		var p recommend.UserProfile
		if err = json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, fmt.Errorf("failed to decode profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// LatestSummary returns the results summary for assessmentID, or when that
// is empty the newest summary for userID.
func (db *DB) LatestSummary(ctx context.Context, assessmentID, userID string) (s ResultsSummary, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("latest_summary", "knn_results_summary", time.Since(start), err) }()

	const columns = `
		SELECT assessment_id, user_id, knn_generated, avg_match_score, industries_count,
			processing_time_ms, total_profiles_analyzed, confidence_score, algorithm_type,
			k_value, cache_used, created_at
		FROM knn_results_summary`

	var row *sql.Row
	switch {
	case assessmentID != "":
		row = db.conn.QueryRowContext(ctx, columns+" WHERE assessment_id = ?", assessmentID)
	case userID != "":
		row = db.conn.QueryRowContext(ctx,
			columns+" WHERE user_id = ? ORDER BY created_at DESC, assessment_id LIMIT 1", userID)
	default:
		return ResultsSummary{}, fmt.Errorf("%w: assessment or user ID required", ErrSummaryNotFound)
	}

	err = row.Scan(&s.AssessmentID, &s.UserID, &s.KNNGenerated, &s.AvgMatchScore, &s.IndustriesCount,
		&s.ProcessingTimeMs, &s.TotalProfilesAnalyzed, &s.ConfidenceScore, &s.AlgorithmType,
		&s.K, &s.CacheUsed, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ResultsSummary{}, ErrSummaryNotFound
	}
	if err != nil {
		return ResultsSummary{}, fmt.Errorf("failed to read results summary: %w", err)
	}
	s.CreatedAt = s.CreatedAt.UTC()
	return s, nil
}
