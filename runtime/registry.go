package runtime

import (
	"sync"

	"live-reviews/contract"
)

// Registry is the broadcaster's map of connected sessions to their delivery
// sinks. It is never exposed outside the broadcaster; add-on-connect and
// remove-on-disconnect are its only mutations.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]contract.EventSink
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]contract.EventSink)}
}

// Subscribe registers a session's delivery sink. A session id is never reused,
// so an existing entry under the same id is simply replaced.
func (r *Registry) Subscribe(sessionID string, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sessionID] = sink
}

// Unsubscribe removes a session. Removing an unknown id is a no-op, which
// covers the race between a delivery failure and a regular disconnect both
// trying to drop the same session.
func (r *Registry) Unsubscribe(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
}

// Sessions returns a copy of the current session map so the fanout can walk
// it without holding the lock during delivery.
func (r *Registry) Sessions() map[string]contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sessions := make(map[string]contract.EventSink, len(r.sessions))
	for id, sink := range r.sessions {
		sessions[id] = sink
	}
	return sessions
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
