package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"scratchrobin-hq/advanced/pkg/audit"
)

// MemoryStorage implements audit.Storage using an in-memory slice.
type MemoryStorage struct {
	records []*audit.Record
	mu      sync.RWMutex
}

// NewMemoryStorage creates a new in-memory storage backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Store persists a copy of record.
func (s *MemoryStorage) Store(ctx context.Context, record *audit.Record) error {
	if err := ctx.Err(); err != nil {
		return audit.NewStorageError("memory", "store", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	recordCopy := *record
	s.records = append(s.records, &recordCopy)
	return nil
}

// Query returns matching records, newest first.
func (s *MemoryStorage) Query(ctx context.Context, query *audit.Query) ([]*audit.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := []*audit.Record{}
	for _, record := range s.records {
		if query.Matches(record) {
			recordCopy := *record
			results = append(results, &recordCopy)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Time.After(results[j].Time)
	})

	if query != nil && query.Limit > 0 && len(results) > query.Limit {
		results = results[:query.Limit]
	}
	return results, nil
}

// Count returns the number of matching records.
func (s *MemoryStorage) Count(ctx context.Context, query *audit.Query) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, record := range s.records {
		if query.Matches(record) {
			count++
		}
	}
	return count, nil
}

// DeleteOlderThan removes records before cutoff.
func (s *MemoryStorage) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.records[:0]
	var deleted int64
	for _, record := range s.records {
		if record.Time.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, record)
	}
	s.records = kept
	return deleted, nil
}

// DeleteOldest removes the n oldest records.
func (s *MemoryStorage) DeleteOldest(ctx context.Context, n int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n <= 0 {
		return 0, nil
	}
	if n > int64(len(s.records)) {
		n = int64(len(s.records))
	}

	sort.SliceStable(s.records, func(i, j int) bool {
		return s.records[i].Time.Before(s.records[j].Time)
	})
	s.records = append([]*audit.Record(nil), s.records[n:]...)
	return n, nil
}

// Close drops all records.
func (s *MemoryStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
	return nil
}

// Size returns the number of stored records.
func (s *MemoryStorage) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}
