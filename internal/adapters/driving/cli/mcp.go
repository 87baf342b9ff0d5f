package cli

import (
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bdlens/bdlens-cli/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve BdLens to AI assistants",
	Long:  `Expose search and documents to AI assistants over the Model Context Protocol.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server",
	Long: `Run an MCP server that answers with the stored bdlens session.

Without --port the server speaks JSON-RPC on stdin and stdout, which is what
desktop assistants expect:

  {
    "mcpServers": {
      "bdlens": {"command": "bdlens", "args": ["mcp", "serve"]}
    }
  }

With --port it serves streamable HTTP on localhost, e.g. for MCP Inspector:

  bdlens mcp serve --port 8080

Log in first with "bdlens auth login"; tools fail with an authentication
error otherwise.`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "serve HTTP on this port instead of stdio")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return err
	}
	if port < 0 || port > 65535 {
		return fmt.Errorf("invalid port %d", port)
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Search:   searchService,
		Document: documentService,
	}, mcp.WithVersion(version))
	if err != nil {
		return err
	}

	if port == 0 {
		return server.Run(cmd.Context())
	}

	addr := net.JoinHostPort("localhost", strconv.Itoa(port))
	fmt.Fprintf(cmd.ErrOrStderr(), "Serving MCP on http://%s\n", addr)
	return server.RunHTTP(cmd.Context(), addr)
}
