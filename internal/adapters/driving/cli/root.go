// Package cli implements the bdlens command line interface.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bdlens/bdlens-cli/internal/config"
	"github.com/bdlens/bdlens-cli/internal/core/ports/driven"
	"github.com/bdlens/bdlens-cli/internal/core/ports/driving"
	"github.com/bdlens/bdlens-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// skipBootstrap marks commands that run without services.
const skipBootstrap = "bdlens/skip-bootstrap"

// Global flags.
var (
	verbose      bool
	baseURLFlag  string
	configDirArg string
)

// Services is everything the commands drive.
type Services struct {
	Auth      driving.AuthService
	Documents driving.DocumentService
	Search    driving.SearchService
	Admin     driving.AdminService

	Config driven.ConfigStore
	Ledger driven.UploadLedger

	Settings config.Settings

	// Close releases resources such as the session database. May be nil.
	Close func() error
}

// Flags are the global flag values handed to the bootstrap function.
type Flags struct {
	BaseURL   string
	ConfigDir string
}

// BootstrapFunc builds Services once flags are parsed.
type BootstrapFunc func(ctx context.Context, flags Flags) (*Services, error)

var (
	authService     driving.AuthService
	documentService driving.DocumentService
	searchService   driving.SearchService
	adminService    driving.AdminService
	configStore     driven.ConfigStore
	uploadLedger    driven.UploadLedger
	settings        config.Settings
	closeServices   func() error

	bootstrap BootstrapFunc
)

var rootCmd = &cobra.Command{
	Use:   "bdlens",
	Short: "BdLens command line client",
	Long: `bdlens talks to a BdLens backend: search Bangladesh government documents,
browse summaries, and manage crawl sources as an admin.

The backend URL comes from --base-url, BDLENS_API_BASE_URL,
NEXT_PUBLIC_API_BASE_URL or the config file, in that order.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: preRun,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log requests to stderr")
	rootCmd.PersistentFlags().StringVar(&baseURLFlag, "base-url", "", "backend URL (overrides environment and config)")
	rootCmd.PersistentFlags().StringVar(&configDirArg, "config-dir", "", "config directory (default ~/.bdlens)")
}

// SetBootstrap registers the function that wires services after flag parsing.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// SetServices installs services directly.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	authService = s.Auth
	documentService = s.Documents
	searchService = s.Search
	adminService = s.Admin
	configStore = s.Config
	uploadLedger = s.Ledger
	settings = s.Settings
	closeServices = s.Close
}

// Execute runs the root command and releases services afterwards.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if closeServices != nil {
		if cerr := closeServices(); cerr != nil {
			logger.Warn("close: %v", cerr)
		}
	}
	return err
}

func preRun(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[skipBootstrap] == "true" {
			return nil
		}
	}
	if bootstrap == nil {
		return nil
	}

	s, err := bootstrap(cmd.Context(), Flags{BaseURL: baseURLFlag, ConfigDir: configDirArg})
	if err != nil {
		return fmt.Errorf("initialise: %w", err)
	}
	SetServices(s)
	logger.Debug("backend %s (from %s)", settings.BaseURL, settings.BaseURLSource)
	return nil
}
