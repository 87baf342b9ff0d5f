package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdlens/bdlens-cli/internal/core/domain"
)

func withStdin(t *testing.T, input string) {
	t.Helper()
	orig := stdin
	stdin = strings.NewReader(input)
	t.Cleanup(func() { stdin = orig })
}

func TestAuthLogin_Flags(t *testing.T) {
	setupTestServices(t, true)

	out, _, err := execute(t, "auth", "login", "--email", testEmail, "--password", testPassword)
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as "+testEmail+" (admin).")

	out, _, err = execute(t, "auth", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Email:   "+testEmail)
	assert.Contains(t, out, "Role:    admin")
}

func TestAuthLogin_Prompts(t *testing.T) {
	setupTestServices(t, false)
	withStdin(t, testEmail+"\n"+testPassword+"\n")

	out, _, err := execute(t, "auth", "login")
	require.NoError(t, err)
	assert.Contains(t, out, "Email: ")
	assert.Contains(t, out, "Password: ")
	assert.Contains(t, out, "(user)")
}

func TestAuthLogin_WrongPassword(t *testing.T) {
	setupTestServices(t, true)

	_, _, err := execute(t, "auth", "login", "-e", testEmail, "--password", "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
	assert.Contains(t, err.Error(), "login failed")
	assert.Contains(t, err.Error(), "Incorrect email or password")
}

func TestAuthRegister(t *testing.T) {
	env := setupTestServices(t, false)

	out, _, err := execute(t, "auth", "register", "--email", "new@bdlens.test", "--password", "s3cret-pass")
	require.NoError(t, err)
	assert.Contains(t, out, "Registered new@bdlens.test.")
	assert.Equal(t, "/api/auth/register", env.backend.LastRequest().Path)
}

func TestAuthWhoami_NotLoggedIn(t *testing.T) {
	setupTestServices(t, true)

	_, _, err := execute(t, "auth", "whoami")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
	assert.Contains(t, FormatError(err), "bdlens auth login")
}

func TestAuthWhoami_JSON(t *testing.T) {
	env := setupTestServices(t, true)
	env.login(t)

	out, _, err := execute(t, "auth", "whoami", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"email": "`+testEmail+`"`)
	assert.Contains(t, out, `"is_admin": true`)
}

func TestAuthLogout(t *testing.T) {
	env := setupTestServices(t, true)
	env.login(t)

	out, _, err := execute(t, "auth", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out.")

	_, _, err = execute(t, "auth", "whoami")
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
}

func TestAuth_NoService(t *testing.T) {
	SetServices(nil)
	t.Cleanup(func() { resetFlags(rootCmd) })

	for _, args := range [][]string{
		{"auth", "login", "-e", "a@b.c", "--password", "x"},
		{"auth", "register", "-e", "a@b.c", "--password", "x"},
		{"auth", "logout"},
		{"auth", "whoami"},
	} {
		_, _, err := execute(t, args...)
		assert.ErrorIs(t, err, errNoAuthService, strings.Join(args, " "))
	}
}
