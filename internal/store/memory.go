package store

import (
	"bytes"
	"context"
	"sync"
)

// MemoryBlob is a process-local Blob, used for tests and throwaway runs.
type MemoryBlob struct {
	mu     sync.Mutex
	data   []byte
	ok     bool
	writes int
}

func NewMemoryBlob() *MemoryBlob {
	return &MemoryBlob{}
}

func (m *MemoryBlob) Get(_ context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.ok {
		return nil, ErrNotFound
	}
	return bytes.Clone(m.data), nil
}

func (m *MemoryBlob) Put(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = bytes.Clone(data)
	m.ok = true
	m.writes++
	return nil
}

// Set seeds the blob with raw bytes without counting a write.
func (m *MemoryBlob) Set(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = bytes.Clone(data)
	m.ok = true
}

// Writes reports how many times Put has been called.
func (m *MemoryBlob) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

func (m *MemoryBlob) Close() error { return nil }
