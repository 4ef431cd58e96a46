// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

package cache

import (
	"fmt"
	"strconv"

	"github.com/tomtom215/careermatch/internal/recommend"
)

// Backend names a result cache implementation.
type Backend string

const (
	// BackendDuckDB stores entries in the catalog database (default).
	BackendDuckDB Backend = "duckdb"

	// BackendBadger stores entries in a BadgerDB directory.
	BackendBadger Backend = "badger"

	// BackendMemory keeps entries in process memory.
	BackendMemory Backend = "memory"
)

// ParseBackend validates a backend name.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(s); b {
	case BackendDuckDB, BackendBadger, BackendMemory:
		return b, nil
	default:
		return "", fmt.Errorf("unknown cache backend %q (want duckdb, badger or memory)", s)
	}
}

var (
	_ recommend.ResultCache = (*MemoryStore)(nil)
	_ recommend.ResultCache = (*BadgerStore)(nil)

	_ recommend.CacheClearer = (*MemoryStore)(nil)
	_ recommend.CacheClearer = (*BadgerStore)(nil)
)

// entryKey renders the composite (hash, k) key.
func entryKey(hash string, k int) string {
	return hash + ":" + strconv.Itoa(k)
}
