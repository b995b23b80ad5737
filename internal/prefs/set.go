// Package prefs provides write-through collections persisted in a kvstore.
package prefs

import (
	"context"
	"fmt"
	"slices"

	"github.com/ziadkadry99/docsite/internal/kvstore"
)

// PersistedSet is an ordered sequence of strings mirrored to one storage key.
// Every mutation is flushed to the adapter before it returns; if the flush
// fails the mutation is undone, so memory and storage never disagree.
//
// Duplicates are not rejected here. Callers check Contains before Append.
type PersistedSet struct {
	adapter *kvstore.Adapter
	key     string
	values  []string
}

// Load hydrates a PersistedSet from key. Missing or corrupt data yields an
// empty set.
func Load(ctx context.Context, adapter *kvstore.Adapter, key string) *PersistedSet {
	s := &PersistedSet{adapter: adapter, key: key}
	s.Reload(ctx)
	return s
}

// Reload discards the in-memory copy and reads the stored value again.
func (s *PersistedSet) Reload(ctx context.Context) {
	var stored []string
	if !s.adapter.GetJSON(ctx, s.key, &stored) {
		stored = nil
	}
	s.values = stored
}

// Key returns the storage key backing the set.
func (s *PersistedSet) Key() string { return s.key }

// Len returns the number of stored values.
func (s *PersistedSet) Len() int { return len(s.values) }

// Contains reports whether v is in the set.
func (s *PersistedSet) Contains(v string) bool {
	return slices.Contains(s.values, v)
}

// IndexOf returns the position of v, or -1.
func (s *PersistedSet) IndexOf(v string) int {
	return slices.Index(s.values, v)
}

// Values returns a copy of the current sequence.
func (s *PersistedSet) Values() []string {
	return slices.Clone(s.values)
}

// Append adds v to the end and persists.
func (s *PersistedSet) Append(ctx context.Context, v string) error {
	prev := s.values
	s.values = append(slices.Clone(prev), v)
	if err := s.flush(ctx); err != nil {
		s.values = prev
		return err
	}
	return nil
}

// RemoveAt deletes the element at i and persists. An out-of-range index is
// a no-op.
func (s *PersistedSet) RemoveAt(ctx context.Context, i int) error {
	if i < 0 || i >= len(s.values) {
		return nil
	}
	prev := s.values
	s.values = slices.Delete(slices.Clone(prev), i, i+1)
	if err := s.flush(ctx); err != nil {
		s.values = prev
		return err
	}
	return nil
}

// Clear removes the stored entry and empties the set. On error the set is
// left unchanged.
func (s *PersistedSet) Clear(ctx context.Context) error {
	if err := s.adapter.RemoveRaw(ctx, s.key); err != nil {
		return fmt.Errorf("clearing %s: %w", s.key, err)
	}
	s.values = nil
	return nil
}

func (s *PersistedSet) flush(ctx context.Context) error {
	out := s.values
	if out == nil {
		out = []string{}
	}
	if err := s.adapter.SetJSON(ctx, s.key, out); err != nil {
		return fmt.Errorf("persisting %s: %w", s.key, err)
	}
	return nil
}
