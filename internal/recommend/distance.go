// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

package recommend

import (
	"fmt"
	"math"
)

// EuclideanDistance returns the L2 distance between a and b.
// Vectors of different length are rejected with ErrDimensionMismatch.
func EuclideanDistance(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d != %d", ErrDimensionMismatch, len(a), len(b))
	}
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum), nil
}

// Similarity converts a distance into a 0-100 score relative to the largest
// distance in the candidate pool. A zero maxDistance means every candidate
// is identical to the query, and all score 100.
func Similarity(distance, maxDistance float64) float64 {
	if maxDistance == 0 {
		return 100
	}
	s := 100 * (1 - distance/maxDistance)
	switch {
	case s < 0:
		return 0
	case s > 100:
		return 100
	default:
		return s
	}
}
