package driven

import (
	"context"
	"time"
)

// Session is a persisted backend session cookie.
type Session struct {
	// Origin is the backend scheme://host[:port] the cookie belongs to.
	Origin string

	// Token is the access_token cookie value.
	Token string

	// ExpiresAt is the cookie expiry. Zero means a session cookie.
	ExpiresAt time.Time

	// UpdatedAt is when the token was last stored.
	UpdatedAt time.Time
}

// Expired reports whether the session has passed its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// SessionStore persists sessions keyed by backend origin.
type SessionStore interface {
	// SaveSession stores or replaces the session for its origin.
	SaveSession(ctx context.Context, session Session) error

	// GetSession returns the session for origin.
	// Returns domain.ErrNotFound if none is stored.
	GetSession(ctx context.Context, origin string) (*Session, error)

	// DeleteSession removes the session for origin. Missing sessions are not an error.
	DeleteSession(ctx context.Context, origin string) error
}

// SessionState is the live client-side session.
type SessionState interface {
	// HasSession reports whether a session cookie is held.
	HasSession() bool

	// Clear drops the cookie and its persisted copy.
	Clear(ctx context.Context) error
}
