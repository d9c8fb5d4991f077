// Package mcp provides an MCP (Model Context Protocol) server adapter for ims.
// It lets AI assistants search and filter the configured inventory page.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")
