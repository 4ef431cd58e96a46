// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

package recommend

import "testing"

func TestRollingHash_KnownValues(t *testing.T) {
	tests := map[string]string{
		"":   "0",
		"a":  "2p",
		"ab": "2e9",
	}
	for in, want := range tests {
		if got := rollingHash(in); got != want {
			t.Errorf("rollingHash(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestHashVector_RoundingTolerance(t *testing.T) {
	a := []float64{0.1, 0.2, 0.3}
	b := []float64{0.1000001, 0.1999999, 0.3000004}
	c := []float64{0.101, 0.2, 0.3}

	if HashVector(a) != HashVector(b) {
		t.Error("vectors equal after rounding should hash identically")
	}
	if HashVector(a) == HashVector(c) {
		t.Error("vectors differing at the third decimal should hash differently")
	}
}

func TestHashVector_Deterministic(t *testing.T) {
	p := UserProfile{SkillResults: []SkillResult{{Skill: "Creativity", Score: 7}}}
	first := HashVector(ExtractUserFeatures(&p))
	for i := 0; i < 10; i++ {
		if got := HashVector(ExtractUserFeatures(&p)); got != first {
			t.Fatalf("hash changed between calls: %s != %s", got, first)
		}
	}
}

func TestHashQuery_Weights(t *testing.T) {
	v := []float64{0.9, 0.8, 0}
	ones := []float64{1, 1, 1}
	dropLast := []float64{1, 1, 0}

	if HashQuery(v, nil) != HashVector(v) {
		t.Error("unweighted HashQuery() should equal HashVector()")
	}
	if HashQuery(v, ones) == HashQuery(v, dropLast) {
		t.Error("weights differing only where the query is zero must hash differently")
	}
	if HashQuery(v, ones) == HashVector(v) {
		t.Error("weighted and unweighted queries must hash differently")
	}
	if HashQuery(v, ones) != HashQuery(v, []float64{1, 1, 1}) {
		t.Error("HashQuery() is not deterministic")
	}
}

func TestCacheKeyString(t *testing.T) {
	if got := (CacheKey{Hash: "abc", K: 5}).String(); got != "abc:5" {
		t.Errorf("String() = %q, want abc:5", got)
	}
}
