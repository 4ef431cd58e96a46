// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

package recommend

import (
	"fmt"
	"sort"
)

// neighbor is a candidate index paired with its distance to the query.
type neighbor struct {
	index    int
	distance float64
}

// FindKNearest returns the k candidates closest to query, nearest first.
//
// Every candidate is scanned (O(N·D)); there is no index structure. Equal
// distances keep candidate order. When fewer than k candidates exist all of
// them are returned. Similarities are normalized by the maximum distance over
// the whole pool, so scores stay comparable across different k.
//
// MatchReasons are left empty; see Explain.
func FindKNearest(query []float64, candidates []Candidate, k int) ([]NeighborResult, error) {
	if len(candidates) == 0 {
		return nil, ErrEmptyCandidatePool
	}
	if k <= 0 {
		return nil, fmt.Errorf("invalid k: %d", k)
	}

	neighbors := make([]neighbor, len(candidates))
	var maxDistance float64
	for i := range candidates {
		d, err := EuclideanDistance(query, candidates[i].Vector)
		if err != nil {
			return nil, fmt.Errorf("career %q: %w", candidates[i].Career.ID, err)
		}
		neighbors[i] = neighbor{index: i, distance: d}
		if d > maxDistance {
			maxDistance = d
		}
	}

	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].distance < neighbors[j].distance
	})

	if k > len(neighbors) {
		k = len(neighbors)
	}

	results := make([]NeighborResult, k)
	for i, n := range neighbors[:k] {
		results[i] = NeighborResult{
			Career:     candidates[n.index].Career,
			Distance:   n.distance,
			Similarity: Similarity(n.distance, maxDistance),
		}
	}
	return results, nil
}

// SortBySimilarity orders results by descending similarity, keeping the
// existing order for equal scores.
func SortBySimilarity(results []NeighborResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
}
