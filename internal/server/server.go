// Package server exposes the render pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz  build information
//	GET  /render   render from query parameters
//	POST /render   render from a JSON body
//
// Both render routes accept the same parameters (count, x_min, x_max,
// y_min, y_max, density, show_grid, kinds, seed, width, height,
// stroke_width, format). Unset parameters fall back to the server's
// defaults. The response body is the artifact; the X-Seed header carries
// the seed, so a client can reproduce the layout in another format.
// Requests over Config.MaxCount figures or Config.MaxPixels pixels are
// rejected before any sampling happens.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/shapescatter/pkg/observability"
	"github.com/matzehuels/shapescatter/pkg/pipeline"
)

// Response headers.
const (
	HeaderRequestID = "X-Request-ID"
	HeaderSeed      = "X-Seed"
	HeaderCache     = "X-Cache"
)

const shutdownTimeout = 10 * time.Second

// Config configures the HTTP listener and request limits.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// MaxCount caps the figure count per request. Zero means no cap.
	MaxCount int

	// MaxPixels caps width*height of the requested surface. Zero means
	// only the per-side limit of the geom package applies.
	MaxPixels int
}

// Server serves rendered drawings.
type Server struct {
	runner   *pipeline.Runner
	defaults pipeline.Options
	cfg      Config
	logger   *log.Logger
	router   chi.Router
}

// New creates a server that renders with runner. Parameters missing from
// a request are taken from defaults.
func New(runner *pipeline.Runner, defaults pipeline.Options, cfg Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:   runner,
		defaults: defaults,
		cfg:      cfg,
		logger:   logger,
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Get("/render", s.handleRenderQuery)
	r.Post("/render", s.handleRenderJSON)
	return r
}

// Run listens on cfg.Addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type requestIDKey struct{}

// requestID assigns every request an ID, reusing a client-supplied one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(HeaderRequestID, id)
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFromContext returns the request ID set by the server, if any.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := RequestIDFromContext(r.Context())
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path, id)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, elapsed)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "status", status,
			"bytes", ww.BytesWritten(), "elapsed", elapsed.Round(time.Microsecond), "id", id)
	})
}
