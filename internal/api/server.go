// internal/api/server.go
package api

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"prospect-dashboard/internal/common/config"
	"prospect-dashboard/internal/common/logger"
	"prospect-dashboard/internal/common/observability"
	"prospect-dashboard/internal/snapshots"
)

// ReadinessFunc pings the configured backends and returns a status per backend.
type ReadinessFunc func(ctx context.Context) (map[string]string, error)

type Server struct {
	service   *snapshots.Service
	app       config.AppConfig
	cfg       config.ServerConfig
	metrics   string
	readiness ReadinessFunc
	obs       *observability.Observability
	logger    logger.Logger
	now       func() time.Time
	mux       *http.ServeMux
}

type Option func(*Server)

func WithReadiness(fn ReadinessFunc) Option {
	return func(s *Server) { s.readiness = fn }
}

func WithObservability(obs *observability.Observability) Option {
	return func(s *Server) { s.obs = obs }
}

func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

func New(svc *snapshots.Service, cfg *config.Config, log logger.Logger, opts ...Option) *Server {
	s := &Server{
		service: svc,
		app:     cfg.App,
		cfg:     cfg.Server,
		metrics: cfg.Observability.MetricsPath,
		logger:  log.WithFields(map[string]interface{}{"component": "http"}),
		now:     time.Now,
		mux:     http.NewServeMux(),
	}
	if s.metrics == "" {
		s.metrics = "/metrics"
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /api/health", s.handleHealth)
	s.mux.HandleFunc("GET /ready", s.handleReady)
	s.mux.Handle("GET "+s.metrics, promhttp.Handler())

	s.mux.HandleFunc("POST /api/snapshots", s.handleCreateSnapshot)
	s.mux.HandleFunc("GET /api/snapshots/latest", s.handleLatestSnapshot)

	s.mux.HandleFunc("GET /api/prospects", s.handleListProspects)
	s.mux.HandleFunc("GET /api/prospects/stats", s.handleStats)
	s.mux.HandleFunc("GET /api/prospects/filters", s.handleFilterOptions)
	s.mux.HandleFunc("GET /api/prospects/export", s.handleExport)
	s.mux.HandleFunc("GET /api/prospects/{id}", s.handleGetProspect)

	// CORS preflight
	s.mux.HandleFunc("OPTIONS /api/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

// Handler returns the mux wrapped in the CORS and instrumentation middleware.
func (s *Server) Handler() http.Handler {
	return s.withCORS(s.instrument(s.mux))
}

// Run serves on cfg.Port until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", net.JoinHostPort("", itoa(s.cfg.Port)))
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run over an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  millis(s.cfg.ReadTimeout, 10*time.Second),
		WriteTimeout: millis(s.cfg.WriteTimeout, 30*time.Second),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", map[string]interface{}{"addr": ln.Addr().String()})
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), millis(s.cfg.ShutdownTimeout, 10*time.Second))
	defer cancel()

	s.logger.Info("Shutting down HTTP server", nil)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func millis(ms int, def time.Duration) time.Duration {
	if ms <= 0 {
		return def
	}
	return time.Duration(ms) * time.Millisecond
}
