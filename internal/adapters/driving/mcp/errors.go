// Package mcp serves BdLens to AI assistants over the Model Context Protocol.
// Assistants search and read government documents with the session of the
// user who started the server.
package mcp

import "errors"

// ErrMissingSearchService means Ports.Search was nil.
var ErrMissingSearchService = errors.New("mcp: search service is required")
