package service

import (
	"log/slog"
	"sort"
	"sync"
)

// Entity is anything a Store can hold. Clone must return a deep copy.
type Entity[T any] interface {
	GetID() string
	GetTenant() string
	Clone() T
}

// Store is a bounded in-memory, tenant-scoped store.
// In production, this should be replaced with a database.
type Store[T Entity[T]] struct {
	name     string
	items    map[string]T
	seq      map[string]uint64
	next     uint64
	mu       sync.RWMutex
	maxItems int           // Maximum items to keep, 0 = unlimited
	onEvict  func(id string) // called without lock held
}

func NewStore[T Entity[T]](name string, maxItems int) *Store[T] {
	if maxItems < 0 {
		maxItems = 0
	}
	slog.Info("store initialized", "store", name, "max_items", maxItems)
	return &Store[T]{
		name:     name,
		items:    make(map[string]T),
		seq:      make(map[string]uint64),
		maxItems: maxItems,
	}
}

// OnEvict registers a hook run for every item removed by cleanup
func (s *Store[T]) OnEvict(fn func(id string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onEvict = fn
}

// Save inserts or replaces an item. Replacing keeps the original insertion order.
func (s *Store[T]) Save(item T) {
	s.mu.Lock()
	id := item.GetID()
	s.items[id] = item
	if _, ok := s.seq[id]; !ok {
		s.next++
		s.seq[id] = s.next
	}
	evicted := s.cleanupIfNeeded()
	hook := s.onEvict
	s.mu.Unlock()

	if hook != nil {
		for _, id := range evicted {
			hook(id)
		}
	}
}

// Get returns a snapshot of the item owned by tenant
func (s *Store[T]) Get(tenant, id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok || item.GetTenant() != tenant {
		var zero T
		return zero, false
	}
	return item.Clone(), true
}

// GetByTenant returns snapshots of the tenant's items in insertion order
func (s *Store[T]) GetByTenant(tenant string) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]T, 0)
	for _, item := range s.items {
		if item.GetTenant() == tenant {
			result = append(result, item.Clone())
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return s.seq[result[i].GetID()] < s.seq[result[j].GetID()]
	})
	return result
}

// Update runs fn on the live item under the write lock and returns a snapshot.
// A missing or foreign item is left untouched.
func (s *Store[T]) Update(tenant, id string, fn func(item T) error) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	item, ok := s.items[id]
	if !ok || item.GetTenant() != tenant {
		return zero, ErrNotFound
	}
	if err := fn(item); err != nil {
		return zero, err
	}
	return item.Clone(), nil
}

// Delete removes the tenant's item and reports whether it existed
func (s *Store[T]) Delete(tenant, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok || item.GetTenant() != tenant {
		return false
	}
	delete(s.items, id)
	delete(s.seq, id)
	return true
}

// Count returns the number of items in the store
func (s *Store[T]) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// cleanupIfNeeded removes the oldest items if the store exceeds maxItems
// Must be called with lock held
func (s *Store[T]) cleanupIfNeeded() []string {
	if s.maxItems <= 0 || len(s.items) <= s.maxItems {
		return nil
	}

	ids := make([]string, 0, len(s.items))
	for id := range s.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return s.seq[ids[i]] < s.seq[ids[j]]
	})

	removeCount := len(ids) - s.maxItems
	evicted := ids[:removeCount]
	for _, id := range evicted {
		slog.Info("auto-cleaning old item", "store", s.name, "id", id)
		delete(s.items, id)
		delete(s.seq, id)
	}
	return evicted
}
