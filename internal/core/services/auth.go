package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bdlens/bdlens-cli/internal/core/domain"
	"github.com/bdlens/bdlens-cli/internal/core/ports/driven"
	"github.com/bdlens/bdlens-cli/internal/core/ports/driving"
	"github.com/bdlens/bdlens-cli/internal/logger"
)

// Ensure AuthService implements the interface.
var _ driving.AuthService = (*AuthService)(nil)

// AuthService manages the session against the backend.
type AuthService struct {
	gateway driven.Gateway
	session driven.SessionState
}

// NewAuthService creates a new auth service.
// session may be nil, in which case Logout only calls the backend.
func NewAuthService(gateway driven.Gateway, session driven.SessionState) *AuthService {
	return &AuthService{
		gateway: gateway,
		session: session,
	}
}

// Register creates an account.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	creds, err := credentials(email, password)
	if err != nil {
		return nil, err
	}

	user, err := s.gateway.Register(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("register %s: %w", creds.Email, err)
	}
	logger.Debug("auth: registered %s (%s)", user.Email, user.ID)
	return user, nil
}

// Login authenticates; the session cookie is stored by the client's jar.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	creds, err := credentials(email, password)
	if err != nil {
		return nil, err
	}

	res, err := s.gateway.Login(ctx, creds)
	if err != nil {
		return nil, err
	}
	if s.session != nil && !s.session.HasSession() {
		logger.Warn("login succeeded but the backend did not set a session cookie")
	}
	logger.Debug("auth: logged in as %s", res.User.Email)
	return &res.User, nil
}

// Logout ends the backend session. The local session is cleared even when
// the backend call fails, and the backend error is still returned.
func (s *AuthService) Logout(ctx context.Context) error {
	_, err := s.gateway.Logout(ctx)
	if err != nil {
		logger.Debug("auth: backend logout failed: %v", err)
	}

	if s.session != nil {
		if clearErr := s.session.Clear(ctx); clearErr != nil {
			err = errors.Join(err, clearErr)
		}
	}
	return err
}

// CurrentUser returns the logged-in user.
func (s *AuthService) CurrentUser(ctx context.Context) (*domain.User, error) {
	return s.gateway.CurrentUser(ctx)
}

func credentials(email, password string) (domain.Credentials, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return domain.Credentials{}, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}
	if password == "" {
		return domain.Credentials{}, fmt.Errorf("%w: password is required", domain.ErrInvalidInput)
	}
	return domain.Credentials{Email: email, Password: password}, nil
}
