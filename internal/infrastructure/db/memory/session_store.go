// Package memory provides process-local implementations of the storage
// ports, used in development and tests.
package memory

import (
	"context"
	"sync"

	"github.com/lawbot360/web/internal/core/domain"
	"github.com/lawbot360/web/internal/core/ports"
	"github.com/lawbot360/web/internal/core/session"
)

// SessionStore keeps session entries in a map. Entries never expire.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]map[string]string
}

var _ ports.SessionStore = (*SessionStore)(nil)

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]map[string]string)}
}

func (s *SessionStore) Load(_ context.Context, id string) (domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return session.Decode(s.sessions[id]), nil
}

func (s *SessionStore) Save(_ context.Context, id string, sess domain.Session) error {
	entries, err := session.Encode(sess)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(entries) == 0 {
		delete(s.sessions, id)
		return nil
	}
	s.sessions[id] = entries
	return nil
}

func (s *SessionStore) Clear(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *SessionStore) Ping(context.Context) error { return nil }

// Entries returns a copy of the raw entries for id. Tests use it to check
// exactly what was persisted.
func (s *SessionStore) Entries(id string) map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.sessions[id]))
	for k, v := range s.sessions[id] {
		out[k] = v
	}
	return out
}
