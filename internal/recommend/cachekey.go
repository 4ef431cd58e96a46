// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

package recommend

import (
	"strconv"
	"strings"
)

// hashPrecision is the number of decimals kept per component. Vectors equal
// after rounding share a cache key; scores finer than this are not part of
// the key.
const hashPrecision = 3

// HashVector derives the cache key hash for a query vector.
//
// Components are formatted with three decimals, joined with commas and fed
// through a 32-bit shift-and-subtract rolling hash (h = h*31 + c) rendered in
// base 36. This is not a security primitive: a collision only costs an extra
// cache miss because results are a pure function of the vector.
func HashVector(v []float64) string {
	var b strings.Builder
	writeComponents(&b, v)
	return rollingHash(b.String())
}

// HashQuery is HashVector for a query scaled by feature weights. The weights
// are part of the hashed text, so results computed under one weighting are
// never served under another. Without weights it equals HashVector.
func HashQuery(v, weights []float64) string {
	if len(weights) == 0 {
		return HashVector(v)
	}
	var b strings.Builder
	writeComponents(&b, v)
	b.WriteString("|w:")
	writeComponents(&b, weights)
	return rollingHash(b.String())
}

func writeComponents(b *strings.Builder, v []float64) {
	for i, x := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(x, 'f', hashPrecision, 64))
	}
}

func rollingHash(s string) string {
	var h int32
	for i := 0; i < len(s); i++ {
		h = (h << 5) - h + int32(s[i])
	}
	abs := int64(h)
	if abs < 0 {
		abs = -abs
	}
	return strconv.FormatInt(abs, 36)
}

// CacheKey identifies one cached result set.
type CacheKey struct {
	Hash string
	K    int
}

// String renders the key as hash:k.
func (k CacheKey) String() string {
	return k.Hash + ":" + strconv.Itoa(k.K)
}
