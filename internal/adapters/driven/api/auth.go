package api

import (
	"context"
	"net/http"

	"github.com/bdlens/bdlens-cli/internal/core/domain"
)

// Register creates an account.
func (c *Client) Register(ctx context.Context, creds domain.Credentials) (*domain.User, error) {
	var user domain.User
	if err := c.sendJSON(ctx, http.MethodPost, "/api/auth/register", creds, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login starts a session. The backend sets the access_token cookie on the jar.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (*domain.LoginResult, error) {
	var result domain.LoginResult
	if err := c.sendJSON(ctx, http.MethodPost, "/api/auth/login", creds, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Logout ends the session. The backend deletes the cookie.
func (c *Client) Logout(ctx context.Context) (*domain.Message, error) {
	var msg domain.Message
	if err := c.sendJSON(ctx, http.MethodPost, "/api/auth/logout", struct{}{}, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// CurrentUser returns the user owning the session cookie.
func (c *Client) CurrentUser(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.getJSON(ctx, "/api/auth/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}
