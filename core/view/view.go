// Package view implements the filtered-collection view model shared by the list screens:
// one authoritative store, a derived filtered list and the transient signals around them.
package view

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/core/collection"
	"github.com/trezcool/masomo-admin/core/signal"
)

// Mutation kinds reported to an Observer.
const (
	OpAdd      = "add"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpRegister = "register"
)

type (
	// Observer is notified of every store mutation.
	Observer interface {
		Mutated(collection, op string)
	}

	Options struct {
		Clock       clock.Clock
		NoticeTTL   time.Duration
		SubmitDelay time.Duration
		CacheSize   int
		Observer    Observer
	}

	// Messages are the success notices shown after each mutation.
	Messages struct {
		Added      string
		Updated    string
		Deleted    string
		Registered string
	}

	// Descriptor describes one entity type to a View.
	Descriptor[T any] struct {
		Name     string // eg. "students"
		Label    string // eg. "Student"
		Plural   string // eg. "students"; defaults to Name
		Spec     collection.Spec[T]
		Messages Messages
	}

	// Result is a rendered list: the matching entities plus an explicit empty-state message.
	Result[T any] struct {
		Items        []T    `json:"items"`
		Count        int    `json:"count"`
		Total        int    `json:"total"`
		EmptyMessage string `json:"empty_message,omitempty"`
	}

	// View serialises its events, so concurrent requests behave like sequential UI events.
	View[T collection.Entity[T]] struct {
		mu      sync.Mutex
		closed  bool
		desc    Descriptor[T]
		msgs    Messages
		store   *collection.Store[T]
		signals *signal.Channel[T]
		cache   *collection.ViewCache[Result[T]]
		obs     Observer
	}
)

func (d Descriptor[T]) plural() string {
	if d.Plural != "" {
		return d.Plural
	}
	return d.Name
}

func (d Descriptor[T]) messages() Messages {
	msgs := d.Messages
	if msgs.Added == "" {
		msgs.Added = d.Label + " added successfully!"
	}
	if msgs.Updated == "" {
		msgs.Updated = d.Label + " updated successfully!"
	}
	if msgs.Deleted == "" {
		msgs.Deleted = d.Label + " deleted successfully!"
	}
	if msgs.Registered == "" {
		msgs.Registered = d.Label + " registered successfully!"
	}
	return msgs
}

// EmptyMessage is shown when no entity matches the current query.
func (d Descriptor[T]) EmptyMessage() string {
	return fmt.Sprintf("No %s found matching your criteria.", strings.ToLower(d.plural()))
}

type noopObserver struct{}

func (noopObserver) Mutated(string, string) {}

// New returns a View over a fresh store rehydrated from seed.
func New[T collection.Entity[T]](desc Descriptor[T], seed []T, opts Options) (*View[T], error) {
	cache, err := collection.NewViewCache[Result[T]](opts.CacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "creating view cache")
	}
	obs := opts.Observer
	if obs == nil {
		obs = noopObserver{}
	}
	return &View[T]{
		desc:    desc,
		msgs:    desc.messages(),
		store:   collection.NewStore(seed),
		signals: signal.NewChannel[T](opts.Clock, opts.NoticeTTL, opts.SubmitDelay),
		cache:   cache,
		obs:     obs,
	}, nil
}

func (v *View[T]) Name() string { return v.desc.Name }

func (v *View[T]) Label() string { return v.desc.Label }

// Filters lists the filter dimensions of the view.
func (v *View[T]) Filters() []collection.DimensionOptions {
	return v.desc.Spec.Options()
}

// List derives the visible entities from the store and q.
func (v *View[T]) List(q collection.Query) Result[T] {
	q.Clean()
	res, ok := v.cache.Get(v.store.Version(), q)
	if !ok {
		items, version := v.store.Snapshot()
		res = Result[T]{
			Items: collection.Filter(items, v.desc.Spec, q),
			Total: len(items),
		}
		res.Count = len(res.Items)
		if res.Count == 0 {
			res.EmptyMessage = v.desc.EmptyMessage()
		}
		v.cache.Add(version, q, res)
	}

	items := make([]T, 0, len(res.Items))
	for _, e := range res.Items {
		items = append(items, e.Clone())
	}
	res.Items = items
	return res
}

// All returns every entity of the view, unfiltered.
func (v *View[T]) All() []T {
	return v.store.All()
}

func (v *View[T]) Get(id string) (T, error) {
	e, ok := v.store.Get(id)
	if !ok {
		return e, errors.Wrapf(core.ErrNotFound, "%s %q", strings.ToLower(v.desc.Label), id)
	}
	return e, nil
}

// Add stores e under a fresh id and shows the "added" notice.
func (v *View[T]) Add(e T) T {
	v.mu.Lock()
	defer v.mu.Unlock()

	added := v.store.Add(e)
	v.obs.Mutated(v.desc.Name, OpAdd)
	v.signals.Notice.Set(v.msgs.Added)
	return added
}

// Register adds e once the simulated submit latency elapses.
// A second registration before then replaces the first one.
func (v *View[T]) Register(e T) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	e = e.Clone()
	return v.signals.Submits.Submit(func() {
		v.mu.Lock()
		defer v.mu.Unlock()

		if v.closed {
			return
		}
		v.store.Add(e)
		v.obs.Mutated(v.desc.Name, OpRegister)
		v.signals.Notice.Set(v.msgs.Registered)
	})
}

// BeginEdit starts editing a private copy of the entity identified by id.
// A pending delete confirmation of that same entity is dropped.
func (v *View[T]) BeginEdit(id string) (T, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	e, err := v.Get(id)
	if err != nil {
		return e, err
	}
	if pending, ok := v.signals.Delete.Pending(); ok && pending == id {
		v.signals.Delete.Cancel()
	}
	return v.signals.Edit.Begin(e), nil
}

// Editing returns the working copy, if any.
func (v *View[T]) Editing() (T, bool) {
	return v.signals.Edit.Current()
}

// ReviseEdit applies fn to the working copy, leaving the store untouched.
func (v *View[T]) ReviseEdit(fn func(T) (T, error)) (T, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	revised, ok, err := v.signals.Edit.Revise(fn)
	if !ok {
		return revised, core.ErrNoEditTarget
	}
	return revised, err
}

// CommitEdit replaces the edited entity with replacement and ends the edit.
// The edited entity's id always wins over replacement's.
func (v *View[T]) CommitEdit(replacement T) (T, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	target, ok := v.signals.Edit.Take()
	if !ok {
		var zero T
		return zero, core.ErrNoEditTarget
	}
	return v.update(target.EntityID(), replacement), nil
}

// SaveEdit commits the working copy once check accepts it.
// A rejected working copy stays under edit.
func (v *View[T]) SaveEdit(check func(T) (T, error)) (T, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	working, ok := v.signals.Edit.Current()
	if !ok {
		var zero T
		return zero, core.ErrNoEditTarget
	}
	checked, err := check(working)
	if err != nil {
		return working, err
	}
	v.signals.Edit.Take()
	return v.update(working.EntityID(), checked), nil
}

// update is a silent no-op when the entity is gone.
func (v *View[T]) update(id string, replacement T) T {
	updated, ok := v.store.Update(id, replacement)
	if !ok {
		updated = replacement.WithID(id)
	} else {
		v.obs.Mutated(v.desc.Name, OpUpdate)
	}
	v.signals.Notice.Set(v.msgs.Updated)
	return updated
}

func (v *View[T]) CancelEdit() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.signals.Edit.Cancel()
}

// RequestDelete asks for a confirmation before deleting the entity identified by id.
// It overwrites any pending request, and drops an edit of that same entity.
func (v *View[T]) RequestDelete(id string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, err := v.Get(id); err != nil {
		return err
	}
	if editing, ok := v.signals.Edit.Current(); ok && editing.EntityID() == id {
		v.signals.Edit.Cancel()
	}
	v.signals.Delete.Request(id)
	return nil
}

// ConfirmDelete removes the entity awaiting confirmation and returns its id.
func (v *View[T]) ConfirmDelete() (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	id, ok := v.signals.Delete.Take()
	if !ok {
		return "", core.ErrNoPendingDelete
	}
	if v.store.Remove(id) {
		v.obs.Mutated(v.desc.Name, OpDelete)
	}
	v.signals.Notice.Set(v.msgs.Deleted)
	return id, nil
}

func (v *View[T]) CancelDelete() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.signals.Delete.Cancel()
}

// Signals returns the renderable transient state of the view.
func (v *View[T]) Signals() signal.Snapshot[T] {
	return v.signals.Snapshot()
}

// Notice returns the visible success message, if any.
func (v *View[T]) Notice() string {
	return v.signals.Notice.Text()
}

// Close tears the view down; no timer fires afterwards.
func (v *View[T]) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.closed = true
	v.signals.Close()
	v.cache.Purge()
}
