package driving

import (
	"context"

	"github.com/bdlens/bdlens-cli/internal/core/domain"
)

// AuthService manages the user's backend session.
type AuthService interface {
	// Register creates an account. It does not log in.
	Register(ctx context.Context, email, password string) (*domain.User, error)

	// Login authenticates and persists the session cookie.
	Login(ctx context.Context, email, password string) (*domain.User, error)

	// Logout ends the backend session and always clears the local one.
	Logout(ctx context.Context) error

	// CurrentUser returns the logged-in user.
	// Returns an error wrapping domain.ErrAuthRequired when logged out.
	CurrentUser(ctx context.Context) (*domain.User, error)
}
