package recordstore

import (
	"context"
	"strings"
	"sync"
)

// MemoryStore implements Store on an in-process map. Used by tests and demo
// runs; transactional updates buffer writes and apply them under one lock.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.records[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), value...), nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = append([]byte(nil), value...)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, key)
	return nil
}

func (s *MemoryStore) ScanPrefix(_ context.Context, prefix string) ([][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	values := make([][]byte, 0)
	for key, value := range s.records {
		if strings.HasPrefix(key, prefix) {
			values = append(values, append([]byte(nil), value...))
		}
	}
	return values, nil
}

func (s *MemoryStore) Update(_ context.Context, fn func(txn Txn) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	txn := &memoryTxn{
		store:   s,
		sets:    make(map[string][]byte),
		deletes: make(map[string]bool),
	}
	if err := fn(txn); err != nil {
		return err
	}

	for key, value := range txn.sets {
		s.records[key] = value
	}
	for key := range txn.deletes {
		delete(s.records, key)
	}
	return nil
}

func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

type memoryTxn struct {
	store   *MemoryStore
	sets    map[string][]byte
	deletes map[string]bool
}

func (t *memoryTxn) Get(key string) ([]byte, error) {
	if t.deletes[key] {
		return nil, ErrKeyNotFound
	}
	if value, ok := t.sets[key]; ok {
		return append([]byte(nil), value...), nil
	}
	value, ok := t.store.records[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), value...), nil
}

func (t *memoryTxn) Set(key string, value []byte) error {
	delete(t.deletes, key)
	t.sets[key] = append([]byte(nil), value...)
	return nil
}

func (t *memoryTxn) Delete(key string) error {
	delete(t.sets, key)
	t.deletes[key] = true
	return nil
}
