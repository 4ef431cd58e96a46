// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

package cache

import (
	"context"
	"sync"
	"time"

	"github.com/tomtom215/careermatch/internal/recommend"
)

// MemoryStore is a thread-safe in-memory result cache.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]recommend.CachedResult

	// now is replaceable in tests.
	now func() time.Time
}

// NewMemoryStore creates an empty in-memory store. Expired entries are
// dropped lazily on Get and in bulk by PurgeExpired.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]recommend.CachedResult),
		now:     time.Now,
	}
}

// Get returns the entry for (hash, k), or nil when absent or expired.
func (s *MemoryStore) Get(_ context.Context, hash string, k int) (*recommend.CachedResult, error) {
	key := entryKey(hash, k)

	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if !entry.Valid(s.now()) {
		s.mu.Lock()
		// Re-check: a concurrent Put may have refreshed the entry.
		if cur, still := s.entries[key]; still && !cur.Valid(s.now()) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, nil
	}

	entry.Payload = append([]byte(nil), entry.Payload...)
	return &entry, nil
}

// Put upserts the entry.
func (s *MemoryStore) Put(_ context.Context, entry recommend.CachedResult) error {
	entry.Payload = append([]byte(nil), entry.Payload...)

	s.mu.Lock()
	s.entries[entryKey(entry.Hash, entry.K)] = entry
	s.mu.Unlock()
	return nil
}

// PurgeExpired removes every expired entry.
func (s *MemoryStore) PurgeExpired(_ context.Context) (int64, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for key, entry := range s.entries {
		if !entry.Valid(now) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed, nil
}

// Clear removes every entry.
func (s *MemoryStore) Clear(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := int64(len(s.entries))
	s.entries = make(map[string]recommend.CachedResult)
	return n, nil
}

// Stats reports entry counts.
func (s *MemoryStore) Stats(_ context.Context) (recommend.CacheStats, error) {
	now := s.now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := recommend.CacheStats{Backend: string(BackendMemory)}
	var totalMs int64
	for _, entry := range s.entries {
		stats.TotalEntries++
		totalMs += entry.ComputedAtMs
		if entry.Valid(now) {
			stats.ActiveEntries++
		} else {
			stats.ExpiredEntries++
		}
	}
	if stats.TotalEntries > 0 {
		stats.AvgComputationTime = float64(totalMs) / float64(stats.TotalEntries)
	}
	return stats, nil
}
