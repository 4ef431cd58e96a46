// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/careermatch/internal/recommend"
)

const badgerKeyPrefix = "knn_cache:"

// BadgerConfig configures the Badger backend.
type BadgerConfig struct {
	// Path is the database directory. Ignored when InMemory is set.
	Path string

	// InMemory keeps the whole keyspace in memory.
	InMemory bool

	// SyncWrites fsyncs every write.
	SyncWrites bool
}

// BadgerStore is a result cache backed by BadgerDB. Entries carry a native
// Badger TTL so expired keys disappear without a sweep; PurgeExpired only
// catches entries whose recorded expiry has passed ahead of Badger's clock.
type BadgerStore struct {
	db     *badger.DB
	ownsDB bool

	// now is replaceable in tests.
	now func() time.Time
}

// OpenBadgerStore opens (or creates) a Badger database for the cache.
func OpenBadgerStore(cfg BadgerConfig) (*BadgerStore, error) {
	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.SyncWrites = cfg.SyncWrites
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for result cache: %w", err)
	}
	return &BadgerStore{db: db, ownsDB: true, now: time.Now}, nil
}

// NewBadgerStore wraps an already open database. Close leaves it open.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db, now: time.Now}
}

// Close closes the database if this store opened it.
func (s *BadgerStore) Close() error {
	if s.ownsDB {
		return s.db.Close()
	}
	return nil
}

// Get returns the entry for (hash, k), or nil when absent or expired.
func (s *BadgerStore) Get(_ context.Context, hash string, k int) (*recommend.CachedResult, error) {
	var entry recommend.CachedResult

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(badgerKeyPrefix + entryKey(hash, k)))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cache entry: %w", err)
	}

	if !entry.Valid(s.now()) {
		return nil, nil
	}
	return &entry, nil
}

// Put upserts the entry with a Badger TTL matching ExpiresAt. An entry that
// is already expired replaces any previous value with nothing.
func (s *BadgerStore) Put(_ context.Context, entry recommend.CachedResult) error {
	key := []byte(badgerKeyPrefix + entryKey(entry.Hash, entry.K))
	ttl := entry.ExpiresAt.Sub(s.now())

	if ttl <= 0 {
		return s.db.Update(func(txn *badger.Txn) error {
			if err := txn.Delete(key); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("delete cache entry: %w", err)
			}
			return nil
		})
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.SetEntry(badger.NewEntry(key, data).WithTTL(ttl)); err != nil {
			return fmt.Errorf("set cache entry: %w", err)
		}
		return nil
	})
}

// PurgeExpired deletes entries whose recorded expiry has passed.
func (s *BadgerStore) PurgeExpired(_ context.Context) (int64, error) {
	now := s.now()
	var expired [][]byte

	err := s.forEach(func(key []byte, entry *recommend.CachedResult) {
		if !entry.Valid(now) {
			expired = append(expired, key)
		}
	})
	if err != nil {
		return 0, fmt.Errorf("scan cache entries: %w", err)
	}
	if len(expired) == 0 {
		return 0, nil
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()
	for _, key := range expired {
		if err := wb.Delete(key); err != nil {
			return 0, fmt.Errorf("delete cache entry: %w", err)
		}
	}
	if err := wb.Flush(); err != nil {
		return 0, fmt.Errorf("flush cache purge: %w", err)
	}
	return int64(len(expired)), nil
}

// Clear removes every cache entry, expired or not.
func (s *BadgerStore) Clear(_ context.Context) (int64, error) {
	var n int64
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(badgerKeyPrefix)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count cache entries: %w", err)
	}
	if err := s.db.DropPrefix([]byte(badgerKeyPrefix)); err != nil {
		return 0, fmt.Errorf("drop cache entries: %w", err)
	}
	return n, nil
}

// Stats reports entry counts.
func (s *BadgerStore) Stats(_ context.Context) (recommend.CacheStats, error) {
	now := s.now()
	stats := recommend.CacheStats{Backend: string(BackendBadger)}
	var totalMs int64

	err := s.forEach(func(_ []byte, entry *recommend.CachedResult) {
		stats.TotalEntries++
		totalMs += entry.ComputedAtMs
		if entry.Valid(now) {
			stats.ActiveEntries++
		} else {
			stats.ExpiredEntries++
		}
	})
	if err != nil {
		return stats, fmt.Errorf("scan cache entries: %w", err)
	}
	if stats.TotalEntries > 0 {
		stats.AvgComputationTime = float64(totalMs) / float64(stats.TotalEntries)
	}
	return stats, nil
}

// forEach visits every live cache entry. Keys are copied.
func (s *BadgerStore) forEach(fn func(key []byte, entry *recommend.CachedResult)) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(badgerKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			var entry recommend.CachedResult
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &entry)
			}); err != nil {
				return err
			}
			fn(item.KeyCopy(nil), &entry)
		}
		return nil
	})
}
