package dashboard

import (
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-admin/core"
)

// SessionObserver is notified when sessions open & close.
type SessionObserver interface {
	SessionOpened()
	SessionClosed()
}

type noopSessionObserver struct{}

func (noopSessionObserver) SessionOpened() {}
func (noopSessionObserver) SessionClosed() {}

// Registry holds the open sessions.
type Registry struct {
	mu       sync.RWMutex
	seed     *Seed
	opts     Options
	obs      SessionObserver
	sessions map[string]*Dashboard
}

func NewRegistry(seed *Seed, opts Options, obs SessionObserver) *Registry {
	if obs == nil {
		obs = noopSessionObserver{}
	}
	return &Registry{
		seed:     seed,
		opts:     opts,
		obs:      obs,
		sessions: make(map[string]*Dashboard),
	}
}

// Open mounts a new dashboard.
func (r *Registry) Open() (*Dashboard, error) {
	d, err := New(uuid.New().String(), r.seed, r.opts)
	if err != nil {
		return nil, errors.Wrap(err, "opening session")
	}

	r.mu.Lock()
	r.sessions[d.ID] = d
	r.mu.Unlock()

	r.obs.SessionOpened()
	return d, nil
}

func (r *Registry) Get(id string) (*Dashboard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.sessions[id]
	if !ok {
		return nil, errors.Wrapf(core.ErrNotFound, "session %q", id)
	}
	return d, nil
}

// Close unmounts the dashboard identified by id.
func (r *Registry) Close(id string) error {
	r.mu.Lock()
	d, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if !ok {
		return errors.Wrapf(core.ErrNotFound, "session %q", id)
	}
	d.Close()
	r.obs.SessionClosed()
	return nil
}

// CloseAll unmounts every dashboard.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*Dashboard)
	r.mu.Unlock()

	for _, d := range sessions {
		d.Close()
		r.obs.SessionClosed()
	}
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
