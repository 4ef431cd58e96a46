// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

package recommend

import "errors"

var (
	// ErrDimensionMismatch reports two feature vectors of different length.
	// It is an invariant violation and fails the request.
	ErrDimensionMismatch = errors.New("feature vector dimension mismatch")

	// ErrEmptyCandidatePool reports that the catalog has no active careers.
	ErrEmptyCandidatePool = errors.New("no active careers available")

	// ErrCacheUnavailable wraps result cache failures. The engine recovers by
	// computing without the cache.
	ErrCacheUnavailable = errors.New("result cache unavailable")

	// ErrCatalogWriteBackFailed wraps feature vector persistence failures.
	// It is logged and never returned from Recommend.
	ErrCatalogWriteBackFailed = errors.New("catalog feature vector write-back failed")
)
