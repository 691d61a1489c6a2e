package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/HerbHall/terroir/internal/version"
)

// RouteRegistrar is implemented by handlers that mount their own routes.
type RouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux)
}

// Options tunes the HTTP server.
type Options struct {
	// RateLimit is the sustained request rate per second. Zero disables limiting.
	RateLimit float64
	// RateBurst is the token bucket size.
	RateBurst int
	// Registry, when set, receives HTTP metrics and is served at /metrics.
	Registry *prometheus.Registry
}

// Server is the main terroir HTTP server.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
	limiter    *rate.Limiter
	requests   *prometheus.CounterVec
}

// New creates a new Server instance with the given route registrars mounted.
func New(addr string, logger *zap.Logger, opts Options, registrars ...RouteRegistrar) (*Server, error) {
	mux := http.NewServeMux()

	s := &Server{
		logger: logger,
		mux:    mux,
	}

	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst <= 0 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	if opts.Registry != nil {
		s.requests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "terroir_http_requests_total",
				Help: "Total number of HTTP requests by method and status code",
			},
			[]string{"method", "code"},
		)
		if err := opts.Registry.Register(s.requests); err != nil {
			return nil, fmt.Errorf("register http metrics: %w", err)
		}
		mux.Handle("GET /metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))
	}

	s.registerCoreRoutes()
	for _, r := range registrars {
		r.RegisterRoutes(mux)
	}

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped request handler.
func (s *Server) Handler() http.Handler {
	return s.withRequestID(s.withAccessLog(s.withRateLimit(s.mux)))
}

// registerCoreRoutes sets up routes that are always available.
func (s *Server) registerCoreRoutes() {
	s.mux.HandleFunc("GET /api/v1/health", s.handleHealth)
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Terroir-Version", version.Short())
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"service": "terroir",
		"version": version.Map(),
	})
}
