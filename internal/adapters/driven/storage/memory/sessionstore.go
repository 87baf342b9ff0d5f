package memory

import (
	"context"
	"sync"

	"github.com/bdlens/bdlens-cli/internal/core/domain"
	"github.com/bdlens/bdlens-cli/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory implementation of driven.SessionStore.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]driven.Session
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]driven.Session),
	}
}

// SaveSession stores or replaces the session for its origin.
func (s *SessionStore) SaveSession(_ context.Context, session driven.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Origin] = session
	return nil
}

// GetSession returns the session for origin.
func (s *SessionStore) GetSession(_ context.Context, origin string) (*driven.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[origin]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &session, nil
}

// DeleteSession removes the session for origin.
func (s *SessionStore) DeleteSession(_ context.Context, origin string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, origin)
	return nil
}
