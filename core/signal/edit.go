package signal

import "sync"

// Cloner is implemented by entities that can be deep-copied.
type Cloner[T any] interface {
	Clone() T
}

// Edit holds the private working copy of the entity being edited.
// The copy never aliases the store's entity.
type Edit[T Cloner[T]] struct {
	mu      sync.Mutex
	target  T
	editing bool
}

// Begin starts editing a copy of e, replacing any edit in progress.
func (ed *Edit[T]) Begin(e T) T {
	ed.mu.Lock()
	defer ed.mu.Unlock()

	ed.target, ed.editing = e.Clone(), true
	return ed.target.Clone()
}

func (ed *Edit[T]) Current() (T, bool) {
	ed.mu.Lock()
	defer ed.mu.Unlock()

	if !ed.editing {
		var zero T
		return zero, false
	}
	return ed.target.Clone(), true
}

// Revise applies fn to the working copy. It reports false when nothing is being edited.
func (ed *Edit[T]) Revise(fn func(T) (T, error)) (T, bool, error) {
	ed.mu.Lock()
	defer ed.mu.Unlock()

	var zero T
	if !ed.editing {
		return zero, false, nil
	}
	revised, err := fn(ed.target.Clone())
	if err != nil {
		return zero, true, err
	}
	ed.target = revised.Clone()
	return revised, true, nil
}

func (ed *Edit[T]) Cancel() {
	ed.mu.Lock()
	defer ed.mu.Unlock()

	var zero T
	ed.target, ed.editing = zero, false
}

// Take returns the working copy and ends the edit.
func (ed *Edit[T]) Take() (T, bool) {
	ed.mu.Lock()
	defer ed.mu.Unlock()

	var zero T
	target, ok := ed.target, ed.editing
	ed.target, ed.editing = zero, false
	return target, ok
}
