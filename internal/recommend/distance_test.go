// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

package recommend

import (
	"errors"
	"math"
	"testing"
)

func TestEuclideanDistance(t *testing.T) {
	vectors := [][]float64{
		{0, 0, 0},
		{1, 0, 0},
		{0.3, 0.4, 0},
		{1, 1, 1},
	}
	for i, a := range vectors {
		self, err := EuclideanDistance(a, a)
		if err != nil || self != 0 {
			t.Errorf("d(v%d, v%d) = %v, %v; want 0, nil", i, i, self, err)
		}
		for j, b := range vectors {
			ab, _ := EuclideanDistance(a, b)
			ba, _ := EuclideanDistance(b, a)
			if ab != ba {
				t.Errorf("d(v%d,v%d)=%v != d(v%d,v%d)=%v", i, j, ab, j, i, ba)
			}
			if ab < 0 {
				t.Errorf("d(v%d,v%d) = %v, want >= 0", i, j, ab)
			}
		}
	}

	d, _ := EuclideanDistance(vectors[0], vectors[2])
	if math.Abs(d-0.5) > 1e-12 {
		t.Errorf("d = %v, want 0.5", d)
	}
}

func TestEuclideanDistance_DimensionMismatch(t *testing.T) {
	_, err := EuclideanDistance([]float64{1, 2}, []float64{1, 2, 3})
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("error = %v, want ErrDimensionMismatch", err)
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name        string
		distance    float64
		maxDistance float64
		want        float64
	}{
		{"identical pool", 0, 0, 100},
		{"nearest", 0, 2, 100},
		{"halfway", 1, 2, 50},
		{"farthest", 2, 2, 0},
		{"beyond max clamps", 3, 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Similarity(tt.distance, tt.maxDistance); got != tt.want {
				t.Errorf("Similarity(%v, %v) = %v, want %v", tt.distance, tt.maxDistance, got, tt.want)
			}
		})
	}
}
