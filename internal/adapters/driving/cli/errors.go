package cli

import (
	"errors"
	"strings"

	"github.com/bdlens/bdlens-cli/internal/adapters/driven/api"
	"github.com/bdlens/bdlens-cli/internal/core/domain"
)

// Sentinel configuration errors.
var (
	errNoAuthService     = errors.New("auth service not configured")
	errNoDocumentService = errors.New("document service not configured")
	errNoSearchService   = errors.New("search service not configured")
	errNoAdminService    = errors.New("admin service not configured")
	errNoConfigStore     = errors.New("config store not configured")
)

// FormatError renders err for the terminal, adding a hint for the
// failures a user can fix themselves.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(err.Error())

	switch {
	case errors.Is(err, domain.ErrAuthRequired):
		b.WriteString("\nHint: run `bdlens auth login` first.")
	case errors.Is(err, domain.ErrForbidden):
		b.WriteString("\nHint: this command needs an admin account.")
	case api.IsTransport(err):
		if settings.BaseURL != "" {
			b.WriteString("\nHint: is the backend running at " + settings.BaseURL + "?")
		} else {
			b.WriteString("\nHint: is the backend running?")
		}
	}
	return b.String()
}
