// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

package database

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/tomtom215/careermatch/internal/recommend"
)

func testAssessment(id string, cacheUsed bool, careers ...string) *recommend.AssessmentRecord {
	results := make([]recommend.NeighborResult, len(careers))
	for i, title := range careers {
		results[i] = recommend.NeighborResult{
			Career:       recommend.CareerProfile{ID: recommend.CareerID(title), Title: title, Industry: "Technology"},
			Distance:     float64(i),
			Similarity:   90 - float64(i*10),
			MatchReasons: []string{"Good overall profile match"},
		}
	}
	return &recommend.AssessmentRecord{
		ID: id,
		Profile: recommend.UserProfile{
			UserID:            "user-" + id,
			ExperienceLevel:   "Mid Level",
			SkillResults:      []recommend.SkillResult{{Skill: "Technical Aptitude", Score: 9}},
			PersonalityTraits: []recommend.PersonalityTrait{{Trait: "Analytical Thinking", Score: 80}},
			Preferences:       recommend.Preferences{Industry: "Technology", WorkEnvironment: "Team-oriented"},
		},
		K:               len(careers),
		CacheUsed:       cacheUsed,
		Recommendations: results,
		Analysis: recommend.AnalysisSummary{
			TotalCandidates:   6,
			AverageSimilarity: 85,
			ProcessingTimeMs:  40,
		},
		CreatedAt: testNow,
	}
}

func TestRecordAssessment(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	rec := testAssessment("a1", false, "Software Engineer", "Data Scientist")
	if err := db.RecordAssessment(ctx, rec); err != nil {
		t.Fatalf("RecordAssessment() error = %v", err)
	}

	var (
		generated, avgMatch, industries int
		confidence                      float64
		algorithm                       string
	)
	err := db.Conn().QueryRowContext(ctx, `
		SELECT knn_generated, avg_match_score, industries_count, confidence_score, algorithm_type
		FROM knn_results_summary WHERE assessment_id = ?`, "a1",
	).Scan(&generated, &avgMatch, &industries, &confidence, &algorithm)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	if generated != 2 || avgMatch != 85 || industries != 1 || confidence != 95 || algorithm != algorithmLabel {
		t.Errorf("summary = %d/%d/%d/%v/%s, want 2/85/1/95/%s",
			generated, avgMatch, industries, confidence, algorithm, algorithmLabel)
	}

	var ranks int
	if err := db.Conn().QueryRowContext(ctx,
		"SELECT COUNT(*) FROM career_recommendations WHERE assessment_id = ?", "a1").Scan(&ranks); err != nil {
		t.Fatalf("count recommendations: %v", err)
	}
	if ranks != 2 {
		t.Errorf("career_recommendations rows = %d, want 2", ranks)
	}

	// Same ID again violates the primary key and leaves nothing half-written.
	if err := db.RecordAssessment(ctx, rec); err == nil {
		t.Error("RecordAssessment(duplicate) error = nil, want error")
	}
}

func TestRecordAssessment_NoRecommendations(t *testing.T) {
	db := setupTestDB(t)

	if err := db.RecordAssessment(context.Background(), testAssessment("empty", false)); err != nil {
		t.Fatalf("RecordAssessment() error = %v", err)
	}
}

func TestSystemMetrics(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	m, err := db.SystemMetrics(ctx)
	if err != nil {
		t.Fatalf("SystemMetrics(empty) error = %v", err)
	}
	if m.TotalAssessments != 0 || m.TopCareers == nil {
		t.Errorf("SystemMetrics(empty) = %+v", m)
	}

	records := []*recommend.AssessmentRecord{
		testAssessment("a1", false, "Software Engineer", "Data Scientist"),
		testAssessment("a2", true, "Software Engineer"),
		testAssessment("a3", true, "Software Engineer", "Data Scientist", "UX/UI Designer"),
		testAssessment("a4", false, "Sales Manager"),
	}
	for _, r := range records {
		if err := db.RecordAssessment(ctx, r); err != nil {
			t.Fatalf("RecordAssessment(%s) error = %v", r.ID, err)
		}
	}

	m, err = db.SystemMetrics(ctx)
	if err != nil {
		t.Fatalf("SystemMetrics() error = %v", err)
	}
	if m.TotalAssessments != 4 {
		t.Errorf("TotalAssessments = %d, want 4", m.TotalAssessments)
	}
	if m.AvgProcessingTimeMs != 40 {
		t.Errorf("AvgProcessingTimeMs = %d, want 40", m.AvgProcessingTimeMs)
	}
	if m.CacheHitRate != 0.5 {
		t.Errorf("CacheHitRate = %v, want 0.5", m.CacheHitRate)
	}

	want := []CareerCount{
		{Career: "Software Engineer", Recommendations: 3},
		{Career: "Data Scientist", Recommendations: 2},
		{Career: "Sales Manager", Recommendations: 1},
		{Career: "UX/UI Designer", Recommendations: 1},
	}
	if fmt.Sprint(m.TopCareers) != fmt.Sprint(want) {
		t.Errorf("TopCareers = %v, want %v", m.TopCareers, want)
	}
}

func TestRecentProfiles(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	for i := range 3 {
		rec := testAssessment(fmt.Sprintf("a%d", i), false, "Software Engineer")
		rec.CreatedAt = testNow.Add(-time.Duration(i) * time.Minute)
		if err := db.RecordAssessment(ctx, rec); err != nil {
			t.Fatalf("RecordAssessment() error = %v", err)
		}
	}

	profiles, err := db.RecentProfiles(ctx, 2)
	if err != nil {
		t.Fatalf("RecentProfiles() error = %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("RecentProfiles(2) = %d profiles, want 2", len(profiles))
	}
	if profiles[0].UserID != "user-a0" || profiles[1].UserID != "user-a1" {
		t.Errorf("RecentProfiles() users = %s, %s; want user-a0, user-a1", profiles[0].UserID, profiles[1].UserID)
	}
	if profiles[0].SkillResults[0].Score != 9 {
		t.Errorf("profile skills not round-tripped: %+v", profiles[0].SkillResults)
	}
}

func TestConfidenceScore(t *testing.T) {
	tests := []struct {
		avg  float64
		want float64
	}{
		{0, 10},
		{70, 80},
		{85, 95},
		{99, 95},
	}
	for _, tt := range tests {
		if got := ConfidenceScore(tt.avg); got != tt.want {
			t.Errorf("ConfidenceScore(%v) = %v, want %v", tt.avg, got, tt.want)
		}
	}
}

func TestLatestSummary(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	older := testAssessment("a1", false, "Software Engineer")
	older.CreatedAt = testNow.Add(-time.Hour)
	newer := testAssessment("a2", true, "Data Scientist", "Sales Manager")
	newer.Profile.UserID = older.Profile.UserID
	for _, r := range []*recommend.AssessmentRecord{older, newer} {
		if err := db.RecordAssessment(ctx, r); err != nil {
			t.Fatalf("RecordAssessment(%s) error = %v", r.ID, err)
		}
	}

	s, err := db.LatestSummary(ctx, "a1", "")
	if err != nil {
		t.Fatalf("LatestSummary(a1) error = %v", err)
	}
	if s.AssessmentID != "a1" || s.KNNGenerated != 1 || s.AvgMatchScore != 90 || s.CacheUsed {
		t.Errorf("LatestSummary(a1) = %+v", s)
	}
	if s.AlgorithmType != algorithmLabel || s.K != 1 || !s.CreatedAt.Equal(older.CreatedAt) {
		t.Errorf("LatestSummary(a1) = %+v", s)
	}

	s, err = db.LatestSummary(ctx, "", "user-a1")
	if err != nil {
		t.Fatalf("LatestSummary(user) error = %v", err)
	}
	if s.AssessmentID != "a2" || s.KNNGenerated != 2 || s.AvgMatchScore != 85 || !s.CacheUsed {
		t.Errorf("LatestSummary(user) = %+v, want newest assessment a2", s)
	}

	if _, err := db.LatestSummary(ctx, "missing", ""); !errors.Is(err, ErrSummaryNotFound) {
		t.Errorf("LatestSummary(missing) error = %v, want ErrSummaryNotFound", err)
	}
	if _, err := db.LatestSummary(ctx, "", ""); !errors.Is(err, ErrSummaryNotFound) {
		t.Errorf("LatestSummary(no IDs) error = %v, want ErrSummaryNotFound", err)
	}
}
