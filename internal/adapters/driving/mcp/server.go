package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/ims-cli/internal/logger"
)

// DefaultVersion is reported when Options.Version is empty.
const DefaultVersion = "dev"

// instructions is sent to clients on initialisation.
const instructions = `ims exposes the searchable elements (table rows, cards, list items) of one
inventory page. Use "search" for ranked fuzzy matches, "filter" for the
table filter (case-insensitive substring) and "score" to check a single
candidate. Targets are CSS selectors; the default comes from settings.`

// Options configures the server.
type Options struct {
	// Version is reported to clients.
	Version string

	// Trace, when set, receives every JSON-RPC message on the stdio transport.
	Trace io.Writer
}

// Server serves the page search tools over MCP.
type Server struct {
	ports  *Ports
	opts   Options
	server *mcp.Server
}

// NewServer creates a server exposing the search tools and the settings,
// ui-state and elements resources.
func NewServer(ports *Ports, opts Options) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}
	if opts.Version == "" {
		opts.Version = DefaultVersion
	}

	impl := &mcp.Implementation{Name: "ims", Version: opts.Version}
	s := &Server{
		ports: ports,
		opts:  opts,
		server: mcp.NewServer(impl, &mcp.ServerOptions{
			Instructions: instructions,
			InitializedHandler: func(context.Context, *mcp.InitializedRequest) {
				logger.Debug("MCP client initialised")
			},
		}),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run serves over stdio until ctx is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	var transport mcp.Transport = &mcp.StdioTransport{}
	if s.opts.Trace != nil {
		transport = &mcp.LoggingTransport{Transport: transport, Writer: s.opts.Trace}
	}
	logger.Debug("MCP server on stdio")
	return s.server.Run(ctx, transport)
}

// RunHTTP serves the streamable HTTP transport on addr until ctx is cancelled.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("MCP HTTP shutdown: %v", err)
		}
	}()

	logger.Debug("MCP server on %s", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
