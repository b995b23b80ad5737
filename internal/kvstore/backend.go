// Package kvstore is the key/value storage layer behind reader preferences.
//
// A Backend is the raw medium (memory, SQLite, cookie jar). An Adapter binds
// a Backend to one scope and adds JSON encoding with a lenient read policy:
// a corrupted entry is logged and treated as absent instead of failing the
// caller.
package kvstore

import (
	"context"
	"sync"
)

// Backend is a synchronous, string-keyed storage medium partitioned by scope.
type Backend interface {
	// Get returns the stored value for key in scope. ok is false when the
	// key was never set or has been removed.
	Get(ctx context.Context, scope, key string) (value string, ok bool, err error)
	// Set overwrites the value for key in scope.
	Set(ctx context.Context, scope, key, value string) error
	// Remove clears key in scope. Removing a missing key is not an error.
	Remove(ctx context.Context, scope, key string) error
}

// MemoryBackend keeps entries in process memory.
type MemoryBackend struct {
	mu      sync.RWMutex
	entries map[string]map[string]string
}

// NewMemoryBackend returns an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{entries: make(map[string]map[string]string)}
}

func (m *MemoryBackend) Get(_ context.Context, scope, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[scope][key]
	return v, ok, nil
}

func (m *MemoryBackend) Set(_ context.Context, scope, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	bucket, ok := m.entries[scope]
	if !ok {
		bucket = make(map[string]string)
		m.entries[scope] = bucket
	}
	bucket[key] = value
	return nil
}

func (m *MemoryBackend) Remove(_ context.Context, scope, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries[scope], key)
	return nil
}

// FallbackBackend reads from a primary Backend and, for keys the primary
// does not hold, from a fallback. Writes and removals only touch the primary.
type FallbackBackend struct {
	primary  Backend
	fallback Backend
}

// NewFallbackBackend layers primary over fallback.
func NewFallbackBackend(primary, fallback Backend) *FallbackBackend {
	return &FallbackBackend{primary: primary, fallback: fallback}
}

func (f *FallbackBackend) Get(ctx context.Context, scope, key string) (string, bool, error) {
	v, ok, err := f.primary.Get(ctx, scope, key)
	if err != nil || ok {
		return v, ok, err
	}
	return f.fallback.Get(ctx, scope, key)
}

func (f *FallbackBackend) Set(ctx context.Context, scope, key, value string) error {
	return f.primary.Set(ctx, scope, key, value)
}

func (f *FallbackBackend) Remove(ctx context.Context, scope, key string) error {
	return f.primary.Remove(ctx, scope, key)
}
