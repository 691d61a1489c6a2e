package mcp

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/HerbHall/terroir/internal/simulation"
	"github.com/HerbHall/terroir/internal/version"
)

// Server is the MCP server for terroir.
type Server struct {
	engine  *simulation.Engine
	metrics *simulation.Metrics
	logger  *zap.Logger
	server  *mcp.Server
}

// NewServer creates an MCP server backed by engine. metrics may be nil.
func NewServer(engine *simulation.Engine, metrics *simulation.Metrics, logger *zap.Logger) (*Server, error) {
	if engine == nil {
		return nil, ErrMissingEngine
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	impl := &mcp.Implementation{
		Name:    "terroir",
		Version: version.Version,
	}

	s := &Server{
		engine:  engine,
		metrics: metrics,
		logger:  logger,
		server:  mcp.NewServer(impl, nil),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run serves MCP over stdio until ctx is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("mcp server listening on stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves MCP over streamable HTTP on addr until ctx is cancelled.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
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
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	s.logger.Info("mcp server listening", zap.String("addr", addr))
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
