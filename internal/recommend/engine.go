// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/careermatch/internal/metrics"
)

// Dependencies are the engine's collaborators. Catalog is required; a nil
// Cache disables caching and a nil Audit disables assessment records.
type Dependencies struct {
	Catalog CatalogStore
	Cache   ResultCache
	Audit   AuditSink
}

// Engine computes career recommendations. It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	catalog CatalogStore
	cache   ResultCache
	audit   AuditSink

	// now is replaceable in tests.
	now func() time.Time

	// writeBacks tracks background reconcile goroutines.
	writeBacks sync.WaitGroup
}

// cachedPayload is the serialized form of a result set.
type cachedPayload struct {
	PoolSize int              `json:"poolSize"`
	Results  []NeighborResult `json:"results"`
}

// NewEngine creates a recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, deps Dependencies, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if deps.Catalog == nil {
		return nil, errors.New("catalog store is required")
	}

	return &Engine{
		config:  cfg.Clone(),
		logger:  logger.With().Str("component", "recommend").Logger(),
		catalog: deps.Catalog,
		cache:   deps.Cache,
		audit:   deps.Audit,
		now:     time.Now,
	}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Recommend returns the K careers nearest to the profile, explained and
// sorted by descending similarity.
//
// Only catalog read failures, ErrDimensionMismatch and ErrEmptyCandidatePool
// fail the call. Cache and audit failures are logged and absorbed, and vector
// write-back runs in the background after the response is built.
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := e.now()
	k := e.config.resolveK(req.Options.K)
	useCache := req.Options.UseCache && e.cache != nil
	profile := &req.Profile

	logger := e.logger.With().
		Int("k", k).
		Bool("use_cache", useCache).
		Logger()

	query, err := ApplyWeights(ExtractUserFeatures(profile), e.config.FeatureWeights)
	if err != nil {
		return nil, e.fail(logger, err, start)
	}
	key := CacheKey{Hash: HashQuery(query, e.config.FeatureWeights), K: k}

	var (
		payload  *cachedPayload
		cacheHit bool
		pending  []VectorUpdate
	)

	if useCache {
		payload = e.tryGetCached(ctx, key, logger)
		cacheHit = payload != nil
	}

	if !cacheHit {
		payload, pending, err = e.compute(ctx, profile, query, k)
		if err != nil {
			return nil, e.fail(logger, err, start)
		}
		if useCache {
			e.storeCached(ctx, key, payload, e.now().Sub(start), logger)
		}
	}

	results := payload.Results
	SortBySimilarity(results)

	resp := &Response{
		AssessmentID:    uuid.NewString(),
		Recommendations: results,
		Analysis:        Summarize(profile, results, payload.PoolSize, e.now().Sub(start)),
		CacheHit:        cacheHit,
	}
	if req.Options.IncludeDebug {
		resp.Debug = &DebugInfo{
			UserFeatures:      query,
			CacheKey:          key.String(),
			CacheUsed:         cacheHit,
			PendingWriteBacks: len(pending),
		}
	}

	if !req.Options.SkipAudit {
		e.recordAudit(ctx, profile, k, resp, logger)
	}
	if len(pending) > 0 {
		e.reconcileAsync(ctx, pending)
	}

	metrics.RecordRecommendation("success", cacheHit, e.now().Sub(start))
	logger.Debug().
		Bool("cache_hit", cacheHit).
		Int("results", len(results)).
		Int("pool", payload.PoolSize).
		Dur("elapsed", e.now().Sub(start)).
		Msg("recommendations computed")

	return resp, nil
}

// fail records and returns a request-level error.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) fail(logger zerolog.Logger, err error, start time.Time) error {
	outcome := "error"
	switch {
	case errors.Is(err, ErrDimensionMismatch):
		outcome = "dimension_mismatch"
		logger.Error().Err(err).Msg("feature vector invariant violated")
	case errors.Is(err, ErrEmptyCandidatePool):
		outcome = "empty_pool"
		logger.Warn().Msg("no active careers in catalog")
	default:
		logger.Error().Err(err).Msg("recommendation failed")
	}
	metrics.RecordRecommendation(outcome, false, e.now().Sub(start))
	return err
}

// compute runs the full KNN path over the active catalog.
func (e *Engine) compute(ctx context.Context, profile *UserProfile, query []float64, k int) (*cachedPayload, []VectorUpdate, error) {
	careers, err := e.catalog.ListActiveCareers(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list active careers: %w", err)
	}
	metrics.CandidatePoolSize.Set(float64(len(careers)))

	candidates, pending, err := e.prepareCandidates(ctx, careers)
	if err != nil {
		return nil, nil, err
	}

	results, err := FindKNearest(query, candidates, k)
	if err != nil {
		return nil, nil, err
	}
	for i := range results {
		results[i].MatchReasons = Explain(profile, &results[i].Career)
	}

	return &cachedPayload{PoolSize: len(careers), Results: results}, pending, nil
}

// prepareCandidates resolves a vector for every career, computing missing
// ones concurrently. Computed vectors are returned as pending write-backs.
func (e *Engine) prepareCandidates(ctx context.Context, careers []CareerProfile) ([]Candidate, []VectorUpdate, error) {
	candidates := make([]Candidate, len(careers))
	computed := make([]bool, len(careers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.config.Workers)

	for i := range careers {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			career := careers[i]
			if len(career.FeatureVector) == 0 {
				career.FeatureVector = ExtractCareerFeatures(&career)
				computed[i] = true
			}
			vector, err := ApplyWeights(career.FeatureVector, e.config.FeatureWeights)
			if err != nil {
				return fmt.Errorf("career %q: %w", career.ID, err)
			}
			candidates[i] = Candidate{Career: career, Vector: vector}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var pending []VectorUpdate
	for i, c := range computed {
		if c {
			pending = append(pending, VectorUpdate{
				CareerID: candidates[i].Career.ID,
				Vector:   candidates[i].Career.FeatureVector,
			})
		}
	}
	return candidates, pending, nil
}

// tryGetCached returns the cached payload or nil. Failures count as misses.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) tryGetCached(ctx context.Context, key CacheKey, logger zerolog.Logger) *cachedPayload {
	entry, err := e.cache.Get(ctx, key.Hash, key.K)
	if err != nil {
		metrics.RecordCacheLookup("error")
		logger.Warn().Err(fmt.Errorf("%w: %w", ErrCacheUnavailable, err)).Str("key", key.String()).Msg("cache lookup failed, computing")
		return nil
	}
	if entry == nil || !entry.Valid(e.now()) {
		metrics.RecordCacheLookup("miss")
		return nil
	}

	var payload cachedPayload
	if err := json.Unmarshal(entry.Payload, &payload); err != nil {
		metrics.RecordCacheLookup("error")
		logger.Warn().Err(err).Str("key", key.String()).Msg("cached payload unreadable, computing")
		return nil
	}
	metrics.RecordCacheLookup("hit")
	return &payload
}

// storeCached upserts the payload. Failures are logged.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) storeCached(ctx context.Context, key CacheKey, payload *cachedPayload, took time.Duration, logger zerolog.Logger) {
	data, err := json.Marshal(payload)
	if err == nil {
		err = e.cache.Put(ctx, CachedResult{
			Hash:         key.Hash,
			K:            key.K,
			Payload:      data,
			ComputedAtMs: took.Milliseconds(),
			ExpiresAt:    e.now().Add(e.config.CacheTTL),
		})
	}
	metrics.RecordCacheWrite(err)
	if err != nil {
		logger.Warn().Err(fmt.Errorf("%w: %w", ErrCacheUnavailable, err)).Str("key", key.String()).Msg("cache store failed")
	}
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) recordAudit(ctx context.Context, profile *UserProfile, k int, resp *Response, logger zerolog.Logger) {
	if e.audit == nil {
		return
	}
	err := e.audit.RecordAssessment(ctx, &AssessmentRecord{
		ID:              resp.AssessmentID,
		Profile:         *profile,
		K:               k,
		CacheUsed:       resp.CacheHit,
		Recommendations: resp.Recommendations,
		Analysis:        resp.Analysis,
		CreatedAt:       e.now().UTC(),
	})
	metrics.RecordAuditWrite(err)
	if err != nil {
		logger.Warn().Err(err).Str("assessment_id", resp.AssessmentID).Msg("failed to record assessment")
	}
}

// Reconcile persists computed feature vectors to the catalog. Stores that
// implement BatchVectorWriter receive a single batch. Any failure is wrapped
// in ErrCatalogWriteBackFailed.
func (e *Engine) Reconcile(ctx context.Context, updates []VectorUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	var err error
	if bw, ok := e.catalog.(BatchVectorWriter); ok {
		err = bw.BulkUpdateFeatureVectors(ctx, updates)
	} else {
		var errs []error
		for _, u := range updates {
			if uerr := e.catalog.UpdateFeatureVector(ctx, u.CareerID, u.Vector); uerr != nil {
				errs = append(errs, fmt.Errorf("career %q: %w", u.CareerID, uerr))
			}
		}
		err = errors.Join(errs...)
	}

	metrics.RecordWriteBack(err)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCatalogWriteBackFailed, err)
	}
	return nil
}

// reconcileAsync runs Reconcile detached from the request's cancellation,
// bounded by WriteBackTimeout.
func (e *Engine) reconcileAsync(ctx context.Context, updates []VectorUpdate) {
	bg, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.config.WriteBackTimeout)
	e.writeBacks.Add(1)
	go func() {
		defer e.writeBacks.Done()
		defer cancel()
		if err := e.Reconcile(bg, updates); err != nil {
			e.logger.Warn().Err(err).Int("vectors", len(updates)).Msg("feature vector write-back failed")
			return
		}
		e.logger.Debug().Int("vectors", len(updates)).Msg("feature vectors written back")
	}()
}

// WaitWriteBacks blocks until all background write-backs have finished.
func (e *Engine) WaitWriteBacks() {
	e.writeBacks.Wait()
}
