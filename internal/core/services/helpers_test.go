package services

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bdlens/bdlens-cli/internal/core/domain"
)

func mustTime(t *testing.T, s string) domain.Time {
	t.Helper()
	tm, err := domain.ParseTime(s)
	require.NoError(t, err)
	return tm
}

// readOnly hides any Seek method of the wrapped reader.
type readOnly struct {
	r io.Reader
}

func (r readOnly) Read(p []byte) (int, error) { return r.r.Read(p) }
