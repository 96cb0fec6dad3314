package history

import (
	"context"
	"slices"
	"sort"
	"sync"
)

// MemoryStorage implements Storage using an in-memory map.
// Records are lost when the process exits.
type MemoryStorage struct {
	records map[string]*Record
	mu      sync.RWMutex
}

// NewMemoryStorage creates a new in-memory storage backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		records: make(map[string]*Record),
	}
}

// Store persists a record to memory.
func (s *MemoryStorage) Store(ctx context.Context, record *Record) error {
	if record == nil || record.ID == "" {
		return NewStorageError("memory", "store", errMissingID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Copy to avoid mutation through the caller's pointer
	recordCopy := *record
	s.records[record.ID] = &recordCopy

	return nil
}

// Query retrieves records matching the query filters.
func (s *MemoryStorage) Query(ctx context.Context, query *Query) ([]*Record, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	results := s.matching(query)
	s.mu.RUnlock()

	sortRecords(results, query.ascending())

	start := query.Offset
	if start > len(results) {
		return []*Record{}, nil
	}
	results = results[start:]

	if query.Limit > 0 && query.Limit < len(results) {
		results = results[:query.Limit]
	}

	return results, nil
}

// Count returns the number of records matching the query filters.
func (s *MemoryStorage) Count(ctx context.Context, query *Query) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, record := range s.records {
		if matchesQuery(record, query) {
			count++
		}
	}

	return count, nil
}

// Delete removes records matching the query filters.
func (s *MemoryStorage) Delete(ctx context.Context, query *Query) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, record := range s.records {
		if matchesQuery(record, query) {
			delete(s.records, id)
			deleted++
		}
	}

	return deleted, nil
}

// Latest returns the most recent record for source.
func (s *MemoryStorage) Latest(ctx context.Context, source string) (*Record, error) {
	records, err := s.Query(ctx, &Query{Source: source, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return records[0], nil
}

// Close is a no-op for in-memory storage.
func (s *MemoryStorage) Close() error {
	return nil
}

// matching returns copies of the matching records. Callers hold the lock.
func (s *MemoryStorage) matching(query *Query) []*Record {
	results := []*Record{}
	for _, record := range s.records {
		if matchesQuery(record, query) {
			recordCopy := *record
			results = append(results, &recordCopy)
		}
	}
	return results
}

// matchesQuery checks if a record matches the query filters.
func matchesQuery(record *Record, query *Query) bool {
	if query == nil {
		return true
	}

	if len(query.IDs) > 0 && !slices.Contains(query.IDs, record.ID) {
		return false
	}
	if query.Source != "" && record.Source != query.Source {
		return false
	}
	if query.Status != "" && record.Status != query.Status {
		return false
	}
	if query.Requester != "" && record.Requester != query.Requester {
		return false
	}
	if !query.Since.IsZero() && record.AnalyzedAt.Before(query.Since) {
		return false
	}
	if !query.Until.IsZero() && record.AnalyzedAt.After(query.Until) {
		return false
	}

	return true
}

// sortRecords orders by analysis time, then ID so equal times are stable.
func sortRecords(records []*Record, ascending bool) {
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.AnalyzedAt.Equal(b.AnalyzedAt) {
			if ascending {
				return a.AnalyzedAt.Before(b.AnalyzedAt)
			}
			return a.AnalyzedAt.After(b.AnalyzedAt)
		}
		if ascending {
			return a.ID < b.ID
		}
		return a.ID > b.ID
	})
}

var _ Storage = (*MemoryStorage)(nil)
