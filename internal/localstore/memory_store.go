package localstore

import (
	"encoding/json"
	"sync"
)

// MemoryStore is an in-memory Store. It backs tests and deployments that
// do not configure a state file.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	// SaveErr, when set, is returned by every Save. Lets tests exercise
	// the write-failure path.
	SaveErr error
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Save serializes value and stores it under key.
func (s *MemoryStore) Save(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.SaveErr != nil {
		return s.SaveErr
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.data[key] = data
	return nil
}

// Load deserializes the value stored under key into dest.
func (s *MemoryStore) Load(key string, dest any) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.data[key]
	if !ok {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

// Delete removes the value stored under key.
func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// SetRaw stores raw bytes directly. Lets tests inject malformed data.
func (s *MemoryStore) SetRaw(key string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = data
}
