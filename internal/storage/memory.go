package storage

import "sync"

// MemoryStore is the test backend: same contract as SQLiteStore, nothing
// survives the process.
type MemoryStore struct {
	mu       sync.Mutex
	blobs    map[string][]byte
	watchers watchers
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (s *MemoryStore) Read(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.blobs[key]
	if !ok {
		return nil, false
	}
	copied := make([]byte, len(value))
	copy(copied, value)
	return copied, true
}

func (s *MemoryStore) Write(key string, value []byte) error {
	copied := make([]byte, len(value))
	copy(copied, value)

	s.mu.Lock()
	s.blobs[key] = copied
	s.mu.Unlock()

	s.watchers.notify(key)
	return nil
}

func (s *MemoryStore) Remove(key string) error {
	s.mu.Lock()
	delete(s.blobs, key)
	s.mu.Unlock()

	s.watchers.notify(key)
	return nil
}

func (s *MemoryStore) Watch() <-chan Event {
	return s.watchers.subscribe()
}

func (s *MemoryStore) Close() error {
	s.watchers.closeAll()
	return nil
}
