package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bdlens/bdlens-cli/internal/core/domain"
	"github.com/bdlens/bdlens-cli/internal/core/ports/driven"
)

// sessionStore implements driven.SessionStore.
type sessionStore struct {
	store *Store
}

var _ driven.SessionStore = (*sessionStore)(nil)

// SaveSession stores or replaces the session for its origin.
func (s *sessionStore) SaveSession(ctx context.Context, session driven.Session) error {
	if session.Origin == "" {
		return fmt.Errorf("%w: session origin is required", domain.ErrInvalidInput)
	}
	if session.UpdatedAt.IsZero() {
		session.UpdatedAt = time.Now().UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO sessions (origin, token, expires_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(origin) DO UPDATE SET
			token = excluded.token,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at
	`, session.Origin, session.Token, nullTime(session.ExpiresAt), session.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// GetSession returns the session for origin.
func (s *sessionStore) GetSession(ctx context.Context, origin string) (*driven.Session, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT origin, token, expires_at, updated_at FROM sessions WHERE origin = ?
	`, origin)

	var session driven.Session
	var expiresAt sql.NullTime
	if err := row.Scan(&session.Origin, &session.Token, &expiresAt, &session.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("getting session: %w", err)
	}
	if expiresAt.Valid {
		session.ExpiresAt = expiresAt.Time
	}
	return &session, nil
}

// DeleteSession removes the session for origin.
func (s *sessionStore) DeleteSession(ctx context.Context, origin string) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM sessions WHERE origin = ?", origin); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}
