// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

package recommend

import "strings"

// CareerID derives a stable catalog ID from a career title: lowercase ASCII
// letters and digits, with every other run of characters collapsed to a
// single '-'. Leading and trailing separators are dropped.
func CareerID(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	dash := false
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
