package store

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/Veraticus/pantrychef/internal/common"
)

// MemoryBackend is an in-process Backend, used by tests and dry runs.
type MemoryBackend struct {
	data map[string][]byte
	// SaveErr, when set, is returned by every Save.
	SaveErr error
	saves   int
	mu      sync.Mutex
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

// Load implements Backend.
func (m *MemoryBackend) Load(_ context.Context, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.data[name]
	if !ok {
		return nil, fmt.Errorf("store %q: %w", name, common.ErrNotFound)
	}
	return slices.Clone(data), nil
}

// Save implements Backend.
func (m *MemoryBackend) Save(_ context.Context, name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.data[name] = slices.Clone(data)
	m.saves++
	return nil
}

// Put seeds raw data under name.
func (m *MemoryBackend) Put(name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[name] = slices.Clone(data)
}

// Saves returns how many successful saves have happened.
func (m *MemoryBackend) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
