package registry

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// Run serves MCP over stdio until the context is cancelled or the
// client disconnects. The catalog is scanned once up front so listing
// and search tools start warm.
func (s *Server) Run(ctx context.Context) error {
	if err := s.catalog.Scan(); err != nil {
		s.logger.Warn("initial catalog scan failed", zap.Error(err))
	}
	s.logger.Info("serving documents over stdio",
		zap.String("root", s.root),
		zap.Int("documents", len(s.catalog.List())))
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// HTTPHandler returns a streamable-HTTP handler for the same server,
// for mounting on an http.ServeMux.
func (s *Server) HTTPHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcp
	}, nil)
}

// Connect attaches the server to an arbitrary transport and returns the
// session. Used by in-process clients and tests.
func (s *Server) Connect(ctx context.Context, t mcp.Transport) (*mcp.ServerSession, error) {
	return s.mcp.Connect(ctx, t, nil)
}
