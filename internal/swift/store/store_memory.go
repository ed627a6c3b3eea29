package store

import (
	"context"
	"strings"
	"sync"

	"swiftindex/internal/swift"
)

// MemoryStore is a map-backed Store used in development and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]swift.Record
	// order preserves first-insertion order for country scans so responses
	// are stable across identical runs.
	order []string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]swift.Record)}
}

func (s *MemoryStore) GetByCode(_ context.Context, code string) (*swift.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[code]
	if !ok {
		return nil, swift.ErrNotFound
	}
	return &rec, nil
}

func (s *MemoryStore) GetByCountry(_ context.Context, countryISO2 string) ([]swift.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []swift.Record
	for _, code := range s.order {
		if rec, ok := s.records[code]; ok && rec.CountryISO2 == countryISO2 {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *MemoryStore) GetBranches(_ context.Context, prefix string) ([]swift.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []swift.Record
	for _, code := range s.order {
		rec, ok := s.records[code]
		if ok && !rec.IsHeadquarter && strings.HasPrefix(rec.SwiftCode, prefix) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *MemoryStore) Exists(_ context.Context, code string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.records[code]
	return ok, nil
}

func (s *MemoryStore) UpsertBatch(_ context.Context, records []swift.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range records {
		s.put(rec)
	}
	return nil
}

func (s *MemoryStore) Insert(_ context.Context, record swift.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[record.SwiftCode]; ok {
		return swift.ErrDuplicate
	}
	s.put(record)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[code]; !ok {
		return swift.ErrNotFound
	}
	delete(s.records, code)
	for i, c := range s.order {
		if c == code {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// put must be called with the write lock held.
func (s *MemoryStore) put(rec swift.Record) {
	if _, ok := s.records[rec.SwiftCode]; !ok {
		s.order = append(s.order, rec.SwiftCode)
	}
	s.records[rec.SwiftCode] = rec
}

// Len reports the number of stored records.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
