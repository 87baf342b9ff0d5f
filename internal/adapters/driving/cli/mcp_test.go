package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bdlens/bdlens-cli/internal/adapters/driving/mcp"
)

func TestMCPServeCmd_PortFlag(t *testing.T) {
	f := mcpServeCmd.Flags().Lookup("port")
	if assert.NotNil(t, f) {
		assert.Equal(t, "p", f.Shorthand)
		assert.Equal(t, "0", f.DefValue)
	}
}

func TestMCPServeCmd_MissingServices(t *testing.T) {
	SetServices(nil)

	_, _, err := execute(t, "mcp", "serve")
	assert.ErrorIs(t, err, mcp.ErrMissingSearchService)
}

func TestMCPServeCmd_InvalidPort(t *testing.T) {
	SetServices(nil)

	_, _, err := execute(t, "mcp", "serve", "--port", "70000")
	assert.EqualError(t, err, "invalid port 70000")
}
