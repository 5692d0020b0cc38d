package collection

import (
	"strconv"
	"sync"
)

// Store is the authoritative, ordered sequence of entities of one view.
// Identifiers are sequential and never reissued, even after a removal.
type Store[T Entity[T]] struct {
	mu      sync.RWMutex
	items   []T
	pkCount int
	version uint64
}

// NewStore returns a Store rehydrated from a copy of seed.
// The id counter starts past the highest numeric seed id (or the seed size, whichever is bigger);
// seed entities without an id are given one.
func NewStore[T Entity[T]](seed []T) *Store[T] {
	s := &Store[T]{items: make([]T, 0, len(seed))}
	for _, e := range seed {
		if n, err := strconv.Atoi(e.EntityID()); err == nil && n > s.pkCount {
			s.pkCount = n
		}
	}
	if len(seed) > s.pkCount {
		s.pkCount = len(seed)
	}
	for _, e := range seed {
		if e.EntityID() == "" {
			e = e.WithID(s.nextID())
		}
		s.items = append(s.items, e.Clone())
	}
	return s
}

func (s *Store[T]) nextID() string {
	s.pkCount++
	return strconv.Itoa(s.pkCount)
}

func (s *Store[T]) index(id string) int {
	for i, e := range s.items {
		if e.EntityID() == id {
			return i
		}
	}
	return -1
}

// Add assigns a fresh id to e, appends it and returns the stored entity.
func (s *Store[T]) Add(e T) T {
	s.mu.Lock()
	defer s.mu.Unlock()

	e = e.WithID(s.nextID())
	s.items = append(s.items, e.Clone())
	s.version++
	return e
}

// Update replaces the entity identified by id with replacement (keeping id).
// It reports whether a match existed; a missing id leaves the store unchanged.
func (s *Store[T]) Update(id string, replacement T) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.index(id)
	if idx < 0 {
		var zero T
		return zero, false
	}
	replacement = replacement.WithID(id)
	s.items[idx] = replacement.Clone()
	s.version++
	return replacement, true
}

// Remove drops the entity identified by id. It reports whether a match existed.
func (s *Store[T]) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.index(id)
	if idx < 0 {
		return false
	}
	s.items = append(s.items[:idx:idx], s.items[idx+1:]...)
	s.version++
	return true
}

// Get returns a copy of the entity identified by id.
func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if idx := s.index(id); idx >= 0 {
		return s.items[idx].Clone(), true
	}
	var zero T
	return zero, false
}

// All returns a copy of every entity, in order.
func (s *Store[T]) All() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.all()
}

func (s *Store[T]) all() []T {
	items := make([]T, 0, len(s.items))
	for _, e := range s.items {
		items = append(items, e.Clone())
	}
	return items
}

// Snapshot returns All() together with the Version it was taken at.
func (s *Store[T]) Snapshot() ([]T, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.all(), s.version
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Version is bumped by every mutation.
func (s *Store[T]) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}
