package store

import (
	"context"
	"sync"
)

// MemoryBlobstore is a map-backed Blobstore. Useful in tests and as a
// cache layer in front of a slower backend.
type MemoryBlobstore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryBlobstore creates an empty in-memory store.
func NewMemoryBlobstore() *MemoryBlobstore {
	return &MemoryBlobstore{
		blobs: make(map[string][]byte),
	}
}

// Get retrieves the blob stored under key, or nil if absent.
func (m *MemoryBlobstore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.blobs[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Put stores data under key.
func (m *MemoryBlobstore) Put(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cp := make([]byte, len(data))
	copy(cp, data)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = cp
	return nil
}

// Has reports whether a blob exists under key.
func (m *MemoryBlobstore) Has(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.blobs[key]
	return ok, nil
}

// Len returns the number of stored blobs.
func (m *MemoryBlobstore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.blobs)
}
