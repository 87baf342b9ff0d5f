package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdlens/bdlens-cli/internal/core/domain"
)

func TestAuthService_Login_TrimsEmail(t *testing.T) {
	gw := newMockGateway()
	sess := &mockSession{has: true}
	svc := NewAuthService(gw, sess)

	user, err := svc.Login(context.Background(), "  admin@bdlens.test ", "secret")

	require.NoError(t, err)
	assert.Equal(t, "admin@bdlens.test", user.Email)
	assert.Equal(t, "admin@bdlens.test", gw.lastCreds.Email)
	assert.Equal(t, "secret", gw.lastCreds.Password)
}

func TestAuthService_EmptyCredentials(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"empty email", "", "secret"},
		{"blank email", "   ", "secret"},
		{"empty password", "a@b.c", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := newMockGateway()
			svc := NewAuthService(gw, nil)
			ctx := context.Background()

			_, err := svc.Login(ctx, tt.email, tt.password)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)

			_, err = svc.Register(ctx, tt.email, tt.password)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)

			assert.Zero(t, gw.count("Login"))
			assert.Zero(t, gw.count("Register"))
		})
	}
}

func TestAuthService_Register(t *testing.T) {
	gw := newMockGateway()
	svc := NewAuthService(gw, nil)

	user, err := svc.Register(context.Background(), "new@bdlens.test", "pw")

	require.NoError(t, err)
	assert.Equal(t, "new@bdlens.test", user.Email)
	assert.Equal(t, 1, gw.count("Register"))
}

func TestAuthService_Register_WrapsError(t *testing.T) {
	gw := newMockGateway()
	gw.errs["Register"] = errors.New("Email already registered")
	svc := NewAuthService(gw, nil)

	_, err := svc.Register(context.Background(), "dup@bdlens.test", "pw")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Email already registered")
}

func TestAuthService_Logout_ClearsSession(t *testing.T) {
	gw := newMockGateway()
	sess := &mockSession{has: true}
	svc := NewAuthService(gw, sess)

	require.NoError(t, svc.Logout(context.Background()))
	assert.Equal(t, 1, sess.cleared)
	assert.False(t, sess.HasSession())
}

func TestAuthService_Logout_ClearsSessionWhenBackendFails(t *testing.T) {
	gw := newMockGateway()
	backendErr := errors.New("connection refused")
	gw.errs["Logout"] = backendErr
	sess := &mockSession{has: true}
	svc := NewAuthService(gw, sess)

	err := svc.Logout(context.Background())

	assert.ErrorIs(t, err, backendErr)
	assert.Equal(t, 1, sess.cleared)
}

func TestAuthService_Logout_JoinsClearError(t *testing.T) {
	gw := newMockGateway()
	clearErr := errors.New("disk full")
	sess := &mockSession{has: true, clearErr: clearErr}
	svc := NewAuthService(gw, sess)

	err := svc.Logout(context.Background())

	assert.ErrorIs(t, err, clearErr)
}

func TestAuthService_CurrentUser(t *testing.T) {
	gw := newMockGateway()
	gw.user = &domain.User{ID: "u-1", Email: "a@b.c", IsAdmin: true}
	svc := NewAuthService(gw, nil)

	user, err := svc.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.True(t, user.IsAdmin)

	gw.errs["CurrentUser"] = domain.ErrAuthRequired
	_, err = svc.CurrentUser(context.Background())
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
}
