package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdlens/bdlens-cli/internal/adapters/driven/api"
	"github.com/bdlens/bdlens-cli/internal/adapters/driven/session"
	"github.com/bdlens/bdlens-cli/internal/adapters/driven/storage/memory"
	"github.com/bdlens/bdlens-cli/internal/config"
	"github.com/bdlens/bdlens-cli/internal/core/services"
	"github.com/bdlens/bdlens-cli/internal/pdfcheck"
	"github.com/bdlens/bdlens-cli/internal/testutil/fakebackend"
)

const (
	testEmail    = "admin@bdlens.test"
	testPassword = "correct-horse"
)

type testEnv struct {
	backend *fakebackend.Backend
	auth    *services.AuthService
	config  *memory.ConfigStore
	ledger  *memory.UploadLedger
}

// setupTestServices wires real services against a fake backend and
// installs them for the commands. The account is an admin unless admin
// is false.
func setupTestServices(t *testing.T, admin bool) *testEnv {
	t.Helper()

	b := fakebackend.New().Start()
	b.AddUser(testEmail, testPassword, admin)

	jar, err := session.NewJar(context.Background(), b.URL(), memory.NewSessionStore())
	require.NoError(t, err)

	gw := api.New(api.Options{BaseURL: b.URL(), Jar: jar})
	env := &testEnv{
		backend: b,
		auth:    services.NewAuthService(gw, jar),
		config:  memory.NewConfigStore(),
		ledger:  memory.NewUploadLedger(),
	}

	SetServices(&Services{
		Auth:      env.auth,
		Documents: services.NewDocumentService(gw),
		Search:    services.NewSearchService(gw),
		Admin:     services.NewAdminService(gw, pdfcheck.New()),
		Config:    env.config,
		Ledger:    env.ledger,
		Settings: config.Settings{
			BaseURL:       b.URL(),
			BaseURLSource: "flag",
			CheckPDF:      true,
		},
	})

	t.Cleanup(func() {
		SetServices(nil)
		resetFlags(rootCmd)
		b.Close()
	})
	return env
}

// login starts a session through the auth service.
func (e *testEnv) login(t *testing.T) {
	t.Helper()
	_, err := e.auth.Login(context.Background(), testEmail, testPassword)
	require.NoError(t, err)
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	err := executeWith(context.Background(), stdout, stderr, args...)
	return stdout.String(), stderr.String(), err
}

func executeWith(ctx context.Context, stdout, stderr io.Writer, args ...string) error {
	clearContexts(rootCmd)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	}()
	return rootCmd.ExecuteContext(ctx)
}

// syncBuffer is a bytes.Buffer safe to read while a command writes to it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// clearContexts drops the context each command kept from an earlier run.
// Cobra only hands a context down to commands whose own is nil.
func clearContexts(cmd *cobra.Command) {
	cmd.SetContext(nil) //nolint:staticcheck // nil makes the command inherit again
	for _, c := range cmd.Commands() {
		clearContexts(c)
	}
}

// resetFlags restores every flag to its default. Cobra keeps flag values
// in package variables that outlive a single execution.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func TestRootCmd_Help(t *testing.T) {
	out, _, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "bdlens")
	for _, name := range []string{"auth", "document", "search", "source", "job", "analytics", "upload", "config", "tui", "mcp"} {
		assert.Contains(t, out, name)
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{"auth", "document", "search", "source", "job", "analytics", "upload", "config", "tui", "mcp", "version"} {
		assert.True(t, names[name], "missing command %s", name)
	}
}

func TestPreRun_Bootstrap(t *testing.T) {
	env := setupTestServices(t, true)

	var got Flags
	SetBootstrap(func(_ context.Context, flags Flags) (*Services, error) {
		got = flags
		return &Services{
			Config:   env.config,
			Settings: config.Settings{BaseURL: flags.BaseURL, BaseURLSource: "flag"},
		}, nil
	})
	defer SetBootstrap(nil)

	out, _, err := execute(t, "config", "show", "--base-url", "http://gateway.test", "--config-dir", "/tmp/bdlens")
	require.NoError(t, err)
	assert.Equal(t, "http://gateway.test", got.BaseURL)
	assert.Equal(t, "/tmp/bdlens", got.ConfigDir)
	assert.Contains(t, out, "http://gateway.test (from flag)")
}

func TestPreRun_BootstrapError(t *testing.T) {
	SetBootstrap(func(context.Context, Flags) (*Services, error) {
		return nil, assert.AnError
	})
	defer SetBootstrap(nil)
	defer SetServices(nil)

	_, _, err := execute(t, "config", "path")
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.True(t, strings.HasPrefix(err.Error(), "initialise:"))
}

func TestExecute_FreshContextPerRun(t *testing.T) {
	type runKey struct{}
	var seen []any
	check := &cobra.Command{
		Use:         "context-check",
		Annotations: map[string]string{skipBootstrap: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			seen = append(seen, cmd.Context().Value(runKey{}))
			return nil
		},
	}
	rootCmd.AddCommand(check)
	t.Cleanup(func() { rootCmd.RemoveCommand(check) })

	for _, run := range []string{"first", "second"} {
		ctx := context.WithValue(context.Background(), runKey{}, run)
		require.NoError(t, executeWith(ctx, io.Discard, io.Discard, "context-check"))
	}

	assert.Equal(t, []any{"first", "second"}, seen)
}

func TestExecute_ClosesServices(t *testing.T) {
	closed := false
	SetServices(&Services{Close: func() error {
		closed = true
		return nil
	}})
	defer SetServices(nil)

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"version"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, Execute(context.Background()))
	assert.True(t, closed)
}
