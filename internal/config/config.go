// Package config resolves runtime settings from flags, the environment,
// an optional .env file and the TOML config store.
//
// Precedence for the backend URL, highest first:
//
//  1. --base-url flag
//  2. BDLENS_API_BASE_URL
//  3. NEXT_PUBLIC_API_BASE_URL
//  4. api.base_url in ~/.bdlens/config.toml
//  5. http://localhost:8000
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/bdlens/bdlens-cli/internal/core/ports/driven"
)

// Environment variables.
const (
	EnvBaseURL       = "BDLENS_API_BASE_URL"
	EnvPublicBaseURL = "NEXT_PUBLIC_API_BASE_URL"
)

// Config file keys.
const (
	KeyBaseURL           = "api.base_url"
	KeyTimeoutSeconds    = "api.timeout_seconds"
	KeyRequestsPerSecond = "api.requests_per_second"
	KeyCheckPDF          = "upload.check_pdf"
)

// DefaultBaseURL is the local development backend.
const DefaultBaseURL = "http://localhost:8000"

// Settings is the resolved runtime configuration.
type Settings struct {
	BaseURL string

	// BaseURLSource names where BaseURL came from (flag, env var, config, default).
	BaseURLSource string

	// Timeout bounds each request. Zero means none.
	Timeout time.Duration

	// RequestsPerSecond throttles the client. Zero means unthrottled.
	RequestsPerSecond float64

	// CheckPDF runs the local PDF preflight before uploads.
	CheckPDF bool
}

// Overrides are values given on the command line.
type Overrides struct {
	BaseURL string
}

// LoadDotEnv loads .env files without overriding variables already set.
// Missing files are ignored; with no paths, ./.env is tried.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Resolve builds Settings. store may be nil. getenv defaults to os.Getenv.
func Resolve(store driven.ConfigStore, flags Overrides, getenv func(string) string) Settings {
	if getenv == nil {
		getenv = os.Getenv
	}

	s := Settings{CheckPDF: true}

	switch {
	case strings.TrimSpace(flags.BaseURL) != "":
		s.BaseURL, s.BaseURLSource = flags.BaseURL, "--base-url"
	case getenv(EnvBaseURL) != "":
		s.BaseURL, s.BaseURLSource = getenv(EnvBaseURL), EnvBaseURL
	case getenv(EnvPublicBaseURL) != "":
		s.BaseURL, s.BaseURLSource = getenv(EnvPublicBaseURL), EnvPublicBaseURL
	case store != nil && store.GetString(KeyBaseURL) != "":
		s.BaseURL, s.BaseURLSource = store.GetString(KeyBaseURL), "config"
	default:
		s.BaseURL, s.BaseURLSource = DefaultBaseURL, "default"
	}
	s.BaseURL = strings.TrimRight(strings.TrimSpace(s.BaseURL), "/")

	if store == nil {
		return s
	}
	if secs := store.GetFloat(KeyTimeoutSeconds); secs > 0 {
		s.Timeout = time.Duration(secs * float64(time.Second))
	}
	if rps := store.GetFloat(KeyRequestsPerSecond); rps > 0 {
		s.RequestsPerSecond = rps
	}
	if v, ok := store.Get(KeyCheckPDF); ok {
		if b, isBool := v.(bool); isBool {
			s.CheckPDF = b
		}
	}
	return s
}

// DataDir returns the directory holding the session database for configDir.
func DataDir(configDir string) string {
	return filepath.Join(configDir, "data")
}

// KnownKeys lists the keys `config set` accepts, in display order.
func KnownKeys() []string {
	return []string{KeyBaseURL, KeyTimeoutSeconds, KeyRequestsPerSecond, KeyCheckPDF}
}

// ParseValue converts a command-line string into the type stored for key.
func ParseValue(key, raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	switch key {
	case KeyBaseURL:
		if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
			return nil, fmt.Errorf("%s must start with http:// or https://", key)
		}
		return strings.TrimRight(raw, "/"), nil
	case KeyTimeoutSeconds:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%s must be a non-negative integer", key)
		}
		return n, nil
	case KeyRequestsPerSecond:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || f < 0 {
			return nil, fmt.Errorf("%s must be a non-negative number", key)
		}
		return f, nil
	case KeyCheckPDF:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%s must be true or false", key)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(KnownKeys(), ", "))
	}
}
