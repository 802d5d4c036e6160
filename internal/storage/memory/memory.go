// Package memory provides an in-memory KeyValueStorage for tests and
// ephemeral runs (storage.driver = "memory").
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/tom3k5/portfel-gpw-advisor-sub001/internal/interfaces"
)

// KVStorage implements interfaces.KeyValueStorage with a mutex-guarded map.
type KVStorage struct {
	mu   sync.RWMutex
	data map[string]string

	// FailWrites forces Set/Delete to error, for exercising fail-soft paths.
	FailWrites bool
	// FailReads forces Get/GetAll to error.
	FailReads bool
}

// NewKVStorage creates an empty in-memory key-value storage.
func NewKVStorage() *KVStorage {
	return &KVStorage{data: make(map[string]string)}
}

// Get retrieves a value by key.
func (s *KVStorage) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailReads {
		return "", fmt.Errorf("read failure injected for key %s", key)
	}
	v, ok := s.data[key]
	if !ok {
		return "", fmt.Errorf("key not found: %s", key)
	}
	return v, nil
}

// Set stores a key-value pair.
func (s *KVStorage) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites {
		return fmt.Errorf("write failure injected for key %s", key)
	}
	s.data[key] = value
	return nil
}

// Delete removes a key-value pair. Absent keys are not an error.
func (s *KVStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites {
		return fmt.Errorf("write failure injected for key %s", key)
	}
	delete(s.data, key)
	return nil
}

// GetAll retrieves all key-value pairs.
func (s *KVStorage) GetAll(_ context.Context) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailReads {
		return nil, fmt.Errorf("read failure injected")
	}
	out := make(map[string]string, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out, nil
}

// Manager implements interfaces.StorageManager over the in-memory store.
type Manager struct {
	kv *KVStorage
}

// NewManager creates a new in-memory storage manager.
func NewManager() *Manager {
	return &Manager{kv: NewKVStorage()}
}

// KeyValueStorage returns the KeyValue storage interface.
func (m *Manager) KeyValueStorage() interfaces.KeyValueStorage {
	return m.kv
}

// Close is a no-op for the in-memory manager.
func (m *Manager) Close() error {
	return nil
}
