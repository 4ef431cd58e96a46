// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

// Package recommend implements the similarity-based career recommendation engine.
//
// # Architecture
//
// A user's assessment profile and every career in the catalog are projected into
// the same fixed 16-dimensional feature space:
//
//   - 8 skill dimensions (user score/10, career requirement/10)
//   - 5 personality dimensions (user score/100, career fit/10)
//   - 3 categorical dimensions (technology industry, experience ordinal, team work)
//
// The engine then runs an exact K-nearest-neighbor scan (Euclidean distance),
// converts distances into 0-100 similarity scores normalized by the largest
// distance in the full candidate pool, and explains each match from the raw
// profile fields.
//
// # Design Principles
//
//   - Deterministic: ties keep catalog order (stable sort)
//   - Exact: a linear O(N·D) scan; catalogs hold tens to low thousands of careers,
//     so no approximate or indexed neighbor structure is used
//   - Cache is an optimization: results are keyed by a content hash of the query
//     vector and K, and any cache failure degrades to recomputation
//   - Explicit reconcile: feature vectors computed for careers that lack one are
//     written back by Engine.Reconcile, never on the request's critical path
//
// # Usage
//
//	engine, err := recommend.NewEngine(cfg, recommend.Dependencies{
//	    Catalog: catalogStore,
//	    Cache:   resultCache,
//	    Audit:   auditStore,
//	}, logger)
//
//	resp, err := engine.Recommend(ctx, recommend.Request{
//	    Profile: profile,
//	    Options: recommend.DefaultOptions(),
//	})
//
// # Thread Safety
//
// The engine holds no mutable state on the read path and is safe for concurrent
// use. Concurrent identical requests may both compute and both write the cache;
// payloads are identical, so the last write wins.
package recommend
