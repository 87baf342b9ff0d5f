// Command bdlens is the BdLens command line client.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bdlens/bdlens-cli/internal/adapters/driven/api"
	"github.com/bdlens/bdlens-cli/internal/adapters/driven/config/file"
	"github.com/bdlens/bdlens-cli/internal/adapters/driven/session"
	"github.com/bdlens/bdlens-cli/internal/adapters/driven/storage/sqlite"
	"github.com/bdlens/bdlens-cli/internal/adapters/driving/cli"
	"github.com/bdlens/bdlens-cli/internal/config"
	"github.com/bdlens/bdlens-cli/internal/core/ports/driven"
	"github.com/bdlens/bdlens-cli/internal/core/services"
	"github.com/bdlens/bdlens-cli/internal/logger"
	"github.com/bdlens/bdlens-cli/internal/pdfcheck"
)

const userAgent = "bdlens-cli"

func main() {
	if err := config.LoadDotEnv(); err != nil {
		logger.Error("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	cli.SetBootstrap(bootstrap)
	err := cli.Execute(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error: "+cli.FormatError(err))
		os.Exit(1)
	}
}

// bootstrap wires the services for one invocation.
func bootstrap(ctx context.Context, flags cli.Flags) (*cli.Services, error) {
	configDir := flags.ConfigDir
	if configDir == "" {
		dir, err := file.DefaultDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}

	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	settings := config.Resolve(store, config.Overrides{BaseURL: flags.BaseURL}, nil)

	db, err := sqlite.NewStore(config.DataDir(configDir))
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	jar, err := session.NewJar(ctx, settings.BaseURL, db.SessionStore())
	if err != nil {
		db.Close()
		return nil, err
	}

	gateway := api.New(api.Options{
		BaseURL:           settings.BaseURL,
		Jar:               jar,
		Timeout:           settings.Timeout,
		RequestsPerSecond: settings.RequestsPerSecond,
		UserAgent:         userAgent,
	})

	var checker driven.PDFChecker
	if settings.CheckPDF {
		checker = pdfcheck.New()
	}

	return &cli.Services{
		Auth:      services.NewAuthService(gateway, jar),
		Documents: services.NewDocumentService(gateway),
		Search:    services.NewSearchService(gateway),
		Admin:     services.NewAdminService(gateway, checker),
		Config:    store,
		Ledger:    db.UploadLedger(),
		Settings:  settings,
		Close:     db.Close,
	}, nil
}
