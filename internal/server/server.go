// Package server implements the orrery HTTP API.
//
// The API exposes the computation pipeline over JSON: chart assembly,
// synastry comparison, standalone layout resolution, and saved report
// management. All computation goes through the shared pipeline Runner so
// the CLI and the API produce identical results for identical inputs.
//
// # Endpoints
//
//	POST /api/v1/chart     compute a natal chart
//	POST /api/v1/synastry  compare two subjects
//	POST /api/v1/layout    resolve display tracks for raw longitudes
//	POST /api/v1/reports   compute and persist a report
//	GET  /api/v1/reports   list saved reports
//	GET  /api/v1/reports/{id}
//	DELETE /api/v1/reports/{id}
//	GET  /healthz          liveness probe
//
// Errors carry the structured code from pkg/errors in the response body,
// mapped onto HTTP status codes.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/siderealab/orrery/pkg/ephemeris"
	"github.com/siderealab/orrery/pkg/pipeline"
	"github.com/siderealab/orrery/pkg/store"
)

// Default server settings.
const (
	DefaultAddr      = ":8080"
	requestTimeout   = 30 * time.Second
	shutdownGrace    = 10 * time.Second
	maxRequestBody   = 1 << 20 // 1 MiB
	defaultListLimit = 50
)

// Config configures the HTTP server.
type Config struct {
	// Addr is the listen address, defaulting to ":8080".
	Addr string

	// ProviderName namespaces cache keys, defaulting to the pipeline's.
	ProviderName string
}

// Server wires the pipeline runner, report store, and ephemeris
// providers behind the HTTP API.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	eph    ephemeris.Provider
	sid    ephemeris.SiderealTimeProvider
	logger *log.Logger
	cfg    Config
}

// New creates a server. The store may be nil, in which case the report
// endpoints respond 501 UNSUPPORTED.
func New(runner *pipeline.Runner, st store.Store, eph ephemeris.Provider, sid ephemeris.SiderealTimeProvider, logger *log.Logger, cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		runner: runner,
		store:  st,
		eph:    eph,
		sid:    sid,
		logger: logger,
		cfg:    cfg,
	}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/chart", s.handleChart)
		r.Post("/synastry", s.handleSynastry)
		r.Post("/layout", s.handleLayout)

		r.Route("/reports", func(r chi.Router) {
			r.Post("/", s.handleCreateReport)
			r.Get("/", s.handleListReports)
			r.Get("/{id}", s.handleGetReport)
			r.Delete("/{id}", s.handleDeleteReport)
		})
	})

	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// logRequests logs one line per request with method, path, status, and
// duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond))
	})
}
