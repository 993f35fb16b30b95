/*
Package chat contains the core logic for the chat relay: session lifecycle,
the shared username registry, command parsing, and message routing.

This file defines the Registry, the process-wide concurrent map from username
to Session and the single source of truth for who is online.
*/
package chat

import (
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sabihanjum/Socket-Chat-Server/internal/pkg/logx"
)

// Registry maps usernames to live sessions. It is shared by every connection
// handler; all access goes through its mutex so a username can never be held
// by two sessions at once.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	logger zerolog.Logger
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		logger:   logx.With("registry"),
	}
}

// TryRegister atomically inserts the session under name iff the name is free.
// The absence check and the insert happen under one mutex hold, so of any
// number of sessions racing on the same name exactly one wins.
func (r *Registry) TryRegister(name string, s *Session) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.sessions[name]; taken {
		return false
	}

	r.sessions[name] = s

	r.logger.Info().
		Str("username", name).
		Str("session_id", s.ID()).
		Int("online", len(r.sessions)).
		Msg("Username registered")

	return true
}

// Unregister removes name, but only if it currently maps to s. This guards
// the disconnect path of a session that lost a login race from evicting the
// winner. It reports whether an entry was removed.
func (r *Registry) Unregister(name string, s *Session) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.sessions[name]
	if !ok || current != s {
		return false
	}

	delete(r.sessions, name)

	r.logger.Info().
		Str("username", name).
		Str("session_id", s.ID()).
		Int("online", len(r.sessions)).
		Msg("Username unregistered")

	return true
}

// Lookup returns the session registered under name, if any.
func (r *Registry) Lookup(name string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[name]
	return s, ok
}

// Names returns a sorted snapshot of the currently registered usernames,
// used to answer WHO.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.sessions))
	for name := range r.sessions {
		names = append(names, name)
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Sessions returns a snapshot of the registered sessions for fan-out. The
// snapshot is taken under the lock; delivery to each session happens outside
// it so one slow recipient never stalls the registry.
func (r *Registry) Sessions() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	return out
}

// Len reports the number of registered usernames.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}
