// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

// Package cache provides result cache backends for the recommendation engine.
//
// Two backends live here:
//
//   - MemoryStore: a process-local TTL map, suited to single-instance and
//     test deployments
//   - BadgerStore: a BadgerDB keyspace using Badger's native per-entry TTL
//
// A third backend, the DuckDB knn_cache table, lives in the database package
// next to the catalog. All three implement recommend.ResultCache with the
// same semantics: Put upserts and resets expiry, and Get treats an expired
// entry exactly like a missing one.
package cache
