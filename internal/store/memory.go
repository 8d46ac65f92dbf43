package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore is an in-memory RecordStore used when no database is configured
// and throughout the test suite. Documents are kept as raw JSON so encode and
// merge behavior matches the persistent implementation exactly.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string][]byte
	order       map[string][]string // insertion order of ids per collection
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string][]byte),
		order:       make(map[string][]string),
	}
}

func (s *MemoryStore) ListAll(_ context.Context, collection string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := s.collections[collection]
	records := make([]Record, 0, len(docs))
	for _, id := range s.order[collection] {
		data, ok := docs[id]
		if !ok {
			continue
		}
		cp := make([]byte, len(data))
		copy(cp, data)
		records = append(records, Record{ID: id, Data: cp})
	}
	return records, nil
}

func (s *MemoryStore) Get(_ context.Context, collection, id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.collections[collection][id]
	if !ok {
		return Record{}, ErrNotFound
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return Record{ID: id, Data: cp}, nil
}

func (s *MemoryStore) Put(_ context.Context, collection, id string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", collection, id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(collection, id, data)
	return nil
}

func (s *MemoryStore) MergeUpsert(_ context.Context, collection, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := map[string]any{}
	if existing, ok := s.collections[collection][id]; ok {
		if err := json.Unmarshal(existing, &merged); err != nil {
			merged = map[string]any{}
		}
	}
	for k, v := range fields {
		merged[k] = v
	}

	data, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("merge %s/%s: %w", collection, id, err)
	}
	s.set(collection, id, data)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if docs, ok := s.collections[collection]; ok {
		delete(docs, id)
	}
	return nil
}

func (s *MemoryStore) ClearAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.collections = make(map[string]map[string][]byte)
	s.order = make(map[string][]string)
	return nil
}

// set stores raw payload bytes, tracking first-insertion order. Caller holds
// the write lock.
func (s *MemoryStore) set(collection, id string, data []byte) {
	docs, ok := s.collections[collection]
	if !ok {
		docs = make(map[string][]byte)
		s.collections[collection] = docs
	}
	if _, exists := docs[id]; !exists {
		s.order[collection] = append(s.order[collection], id)
	}
	docs[id] = data
}
