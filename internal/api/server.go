// Package api implements the HTTP server: map descriptions in, arranged
// layouts or rendered artifacts out. Responses are cached by map content
// hash so identical requests skip the arrangement entirely.
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jverhoeven/anchormap/pkg/cache"
)

// Config wires the server's collaborators and arrangement defaults.
type Config struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	MinSpacing  float64
	GroupMargin float64
	Scale       float64
	CacheTTL    time.Duration
}

// Server handles layout and render requests.
type Server struct {
	cfg Config
}

// New creates a server. Nil collaborators get safe defaults: a null cache,
// the default keyer, and the default logger.
func New(cfg Config) *Server {
	if cfg.Cache == nil {
		cfg.Cache = cache.NewNullCache()
	}
	if cfg.Keyer == nil {
		cfg.Keyer = cache.NewDefaultKeyer()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.MinSpacing == 0 {
		cfg.MinSpacing = 30
	}
	if cfg.Scale == 0 {
		cfg.Scale = 1
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 24 * time.Hour
	}
	return &Server{cfg: cfg}
}

// Router builds the HTTP route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Post("/api/layout", s.handleLayout)
	r.Post("/api/render", s.handleRender)
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.cfg.Logger.Debug("request",
			"method", r.Method, "path", r.URL.Path,
			"status", ww.Status(), "elapsed", time.Since(start).Round(time.Millisecond))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// floatParam reads a float query parameter, falling back to def when absent
// or malformed.
func floatParam(r *http.Request, name string, def float64) float64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return def
	}
	return v
}
