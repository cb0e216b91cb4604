package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry manages the view states of the web front end, keyed by an opaque
// id. Entries idle for longer than the TTL are discarded by Sweep.
type Registry struct {
	sessions map[string]*entry
	mu       sync.RWMutex

	ttl      time.Duration
	darkMode bool
	now      func() time.Time
}

type entry struct {
	state    *State
	lastSeen time.Time
	open     int
}

// NewRegistry creates a registry whose new states start with darkMode.
func NewRegistry(ttl time.Duration, darkMode bool) *Registry {
	return &Registry{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		darkMode: darkMode,
		now:      time.Now,
	}
}

// Create registers a fresh state under a new random id.
func (r *Registry) Create() (string, *State) {
	id := uuid.NewString()
	st := NewState(r.darkMode)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = &entry{state: st, lastSeen: r.now()}
	return id, st
}

// Get retrieves a state by id and marks it as recently used.
func (r *Registry) Get(id string) (*State, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = r.now()
	return e.state, true
}

// Touch marks a state as recently used without returning it.
func (r *Registry) Touch(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if ok {
		e.lastSeen = r.now()
	}
	return ok
}

// Attach pins a state for the lifetime of a live connection. Sweep never
// removes a pinned state. The returned release unpins it and counts as use.
func (r *Registry) Attach(id string) (release func(), ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return func() {}, false
	}
	e.open++
	e.lastSeen = r.now()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			e.open--
			e.lastSeen = r.now()
		})
	}, true
}

// Remove discards a state.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Count returns the number of registered states
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep removes idle states and returns how many were removed. States with a
// round trip in flight or an attached connection are kept.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, e := range r.sessions {
		if e.lastSeen.Before(cutoff) && e.open == 0 && !e.state.Pending() {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is cancelled.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}
