// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

package database

import (
	"errors"
	"io"
)

var (
	// ErrCareerNotFound is returned when no active career has the given ID.
	ErrCareerNotFound = errors.New("career not found")

	// ErrInvalidCareer is returned when a career cannot be stored.
	ErrInvalidCareer = errors.New("invalid career")

	// ErrSummaryNotFound is returned when no results summary matches.
	ErrSummaryNotFound = errors.New("results summary not found")
)

// closeQuietly closes a resource and explicitly ignores any error
// Use this for cleanup operations in error paths where Close() errors are not actionable
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close() // Explicitly ignore error - cleanup is best-effort
	}
}
