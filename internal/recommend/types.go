// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

package recommend

import (
	"context"
	"time"
)

// PersonalityTrait is one scored trait from the personality assessment.
type PersonalityTrait struct {
	// Trait is the trait name, e.g. "Analytical Thinking".
	Trait string `json:"trait" validate:"required,notblank,max=100"`

	// Score is the trait score on a 0-100 scale.
	Score float64 `json:"score" validate:"gte=0,lte=100"`
}

// SkillResult is one scored skill from the skills assessment.
type SkillResult struct {
	// Skill is the skill name, e.g. "Technical Aptitude".
	Skill string `json:"skill" validate:"required,notblank,max=100"`

	// Score is the self-assessed level on a 0-10 scale.
	Score float64 `json:"score" validate:"gte=0,lte=10"`

	// Category is a free-form grouping label such as "Technical".
	Category string `json:"category,omitempty" validate:"max=100"`
}

// Preferences captures the user's stated work preferences.
type Preferences struct {
	WorkEnvironment string `json:"workEnvironment" validate:"max=100"`
	Industry        string `json:"industry" validate:"max=100"`
	Location        string `json:"location,omitempty" validate:"max=200"`
}

// UserProfile is the query entity: one completed assessment.
// It is treated as immutable once passed to the engine.
type UserProfile struct {
	// UserID identifies the user; empty for anonymous assessments.
	UserID string `json:"userId,omitempty" validate:"max=100"`

	PersonalityTraits []PersonalityTrait `json:"personalityTraits" validate:"max=50,dive"`
	SkillResults      []SkillResult      `json:"skillResults" validate:"max=50,dive"`
	Preferences       Preferences        `json:"preferences"`

	// ExperienceLevel is "Entry Level", "Mid Level", "Senior Level", etc.
	ExperienceLevel string `json:"experienceLevel" validate:"max=50"`

	// CareerGoals are free-text goals carried into the audit record.
	CareerGoals []string `json:"careerGoals,omitempty" validate:"max=20,dive,max=500"`
}

// CareerProfile is one candidate career from the catalog.
type CareerProfile struct {
	// ID is stable and derived from the title (see CareerID).
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`

	// RequiredSkills maps skill name to required level (0-10).
	RequiredSkills map[string]float64 `json:"requiredSkills"`

	// PersonalityFit maps trait name to fit level (0-10).
	PersonalityFit map[string]float64 `json:"personalityFit"`

	Industry        string `json:"industry"`
	ExperienceLevel string `json:"experienceLevel"`
	WorkEnvironment string `json:"workEnvironment"`
	SalaryRange     string `json:"salaryRange"`
	GrowthOutlook   string `json:"growthOutlook"`

	// FeatureVector is the last persisted vector, nil when never computed or
	// invalidated by a catalog edit.
	FeatureVector []float64 `json:"featureVector,omitempty"`

	// IsActive is the soft-delete flag; inactive careers are never candidates.
	IsActive bool `json:"isActive"`
}

// Candidate pairs a career with the vector used for distance computation.
type Candidate struct {
	Career CareerProfile
	Vector []float64
}

// NeighborResult is one career in a KNN result.
type NeighborResult struct {
	Career CareerProfile `json:"career"`

	// Distance is the Euclidean distance to the query vector (>= 0).
	Distance float64 `json:"distance"`

	// Similarity is 0-100, decreasing in Distance for a fixed pool.
	Similarity float64 `json:"similarity"`

	// MatchReasons explain the match; never empty once explained.
	MatchReasons []string `json:"matchReasons"`
}

// CachedResult is one stored (hash, k) entry.
type CachedResult struct {
	Hash string `json:"hash"`
	K    int    `json:"k"`

	// Payload is the serialized result set.
	Payload []byte `json:"payload"`

	// ComputedAtMs is how long the original computation took in milliseconds.
	ComputedAtMs int64     `json:"computedAtMs"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// Valid reports whether the entry may still be served at now.
func (c *CachedResult) Valid(now time.Time) bool {
	return c != nil && now.Before(c.ExpiresAt)
}

// CacheStats summarizes a result cache backend.
type CacheStats struct {
	Backend            string  `json:"backend"`
	TotalEntries       int64   `json:"totalEntries"`
	ActiveEntries      int64   `json:"activeEntries"`
	ExpiredEntries     int64   `json:"expiredEntries"`
	AvgComputationTime float64 `json:"avgComputationTimeMs"`
}

// AnalysisSummary aggregates one recommendation run.
type AnalysisSummary struct {
	// TotalCandidates is the size of the active candidate pool.
	TotalCandidates int `json:"totalCandidates"`

	// AverageSimilarity is the rounded mean similarity of returned results.
	AverageSimilarity float64 `json:"averageSimilarity"`

	// TopSkillMatches are the user's strongest skills (score >= 7).
	TopSkillMatches []string `json:"topSkillMatches"`

	// TopPersonalityMatches are the user's strongest traits (score >= 70).
	TopPersonalityMatches []string `json:"topPersonalityMatches"`

	// ProcessingTimeMs is wall-clock time for the request in milliseconds.
	ProcessingTimeMs int64 `json:"processingTimeMs"`
}

// Options controls a single Recommend call.
type Options struct {
	// K is the number of neighbors; <= 0 selects the configured default.
	K int `json:"k"`

	// UseCache enables the result cache lookup and store.
	UseCache bool `json:"useCache"`

	// IncludeDebug attaches DebugInfo to the response.
	IncludeDebug bool `json:"includeDebug"`

	// SkipAudit disables persisting the assessment record.
	SkipAudit bool `json:"skipAudit"`
}

// DefaultOptions returns the caller-facing defaults (cache on, debug off).
func DefaultOptions() Options {
	return Options{UseCache: true}
}

// Request is one recommendation request.
type Request struct {
	Profile UserProfile `json:"userProfile"`
	Options Options     `json:"options"`
}

// DebugInfo exposes engine internals for troubleshooting.
type DebugInfo struct {
	UserFeatures      []float64 `json:"userFeatures"`
	CacheKey          string    `json:"cacheKey"`
	CacheUsed         bool      `json:"cacheUsed"`
	PendingWriteBacks int       `json:"pendingWriteBacks"`
}

// Response is the result of Recommend.
type Response struct {
	AssessmentID    string           `json:"assessmentId"`
	Recommendations []NeighborResult `json:"recommendations"`
	Analysis        AnalysisSummary  `json:"analysis"`
	CacheHit        bool             `json:"cacheHit"`
	Debug           *DebugInfo       `json:"debugInfo,omitempty"`
}

// VectorUpdate is one pending feature vector write-back.
type VectorUpdate struct {
	CareerID string
	Vector   []float64
}

// AssessmentRecord is the audit trail entry persisted after each request.
type AssessmentRecord struct {
	ID              string
	Profile         UserProfile
	K               int
	CacheUsed       bool
	Recommendations []NeighborResult
	Analysis        AnalysisSummary
	CreatedAt       time.Time
}

// CatalogStore is the engine's view of the career catalog.
type CatalogStore interface {
	// ListActiveCareers returns every active career in stable catalog order.
	ListActiveCareers(ctx context.Context) ([]CareerProfile, error)

	// UpdateFeatureVector persists a computed vector for one career.
	UpdateFeatureVector(ctx context.Context, careerID string, vector []float64) error
}

// BatchVectorWriter is optionally implemented by catalog stores that can
// persist many vectors in one round trip.
type BatchVectorWriter interface {
	BulkUpdateFeatureVectors(ctx context.Context, updates []VectorUpdate) error
}

// ResultCache stores computed results keyed by (hash, k).
type ResultCache interface {
	// Get returns nil, nil on a miss or an expired entry.
	Get(ctx context.Context, hash string, k int) (*CachedResult, error)

	// Put upserts the entry, resetting its expiry.
	Put(ctx context.Context, entry CachedResult) error

	// PurgeExpired deletes expired entries and returns how many were removed.
	PurgeExpired(ctx context.Context) (int64, error)

	// Stats reports entry counts for monitoring.
	Stats(ctx context.Context) (CacheStats, error)
}

// CacheClearer is optionally implemented by result caches that can drop
// every entry at once, used when the catalog changes.
type CacheClearer interface {
	Clear(ctx context.Context) (int64, error)
}

// AuditSink persists assessment records.
type AuditSink interface {
	RecordAssessment(ctx context.Context, rec *AssessmentRecord) error
}
