// Package server exposes chart rendering over HTTP.
//
// Definitions are stored through a store.Store and rendered on demand as
// SVG or PNG. Rendered artifacts are cached keyed by a hash of the
// definition and the render parameters, so updating a chart naturally
// invalidates its cache entries.
package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/chartkit/chartkit/pkg/cache"
	"github.com/chartkit/chartkit/pkg/store"
)

// DefaultArtifactTTL bounds how long rendered artifacts stay cached.
// Entries are keyed by definition hash, so the TTL only limits storage
// growth, not staleness.
const DefaultArtifactTTL = 24 * time.Hour

// DefinitionTTL bounds how long fetched definitions stay cached. Writes
// through this server invalidate the entry immediately; the short TTL
// limits staleness from writes that bypass it.
const DefinitionTTL = time.Minute

// Server handles chart storage and rendering requests.
type Server struct {
	store  store.Store
	cache  cache.Cache
	keyer  cache.Keyer
	logger *log.Logger
	ttl    time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithCache sets the artifact cache backend. Defaults to a null cache.
func WithCache(c cache.Cache) Option {
	return func(s *Server) { s.cache = c }
}

// WithKeyer sets the cache key derivation. Defaults to the standard keyer.
func WithKeyer(k cache.Keyer) Option {
	return func(s *Server) { s.keyer = k }
}

// WithLogger sets the request logger. Defaults to log.Default().
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithArtifactTTL sets the cache TTL for rendered artifacts.
func WithArtifactTTL(ttl time.Duration) Option {
	return func(s *Server) { s.ttl = ttl }
}

// New creates a server backed by the given definition store.
func New(st store.Store, opts ...Option) *Server {
	s := &Server{
		store:  st,
		cache:  cache.NewNullCache(),
		keyer:  cache.NewDefaultKeyer(),
		logger: log.Default(),
		ttl:    DefaultArtifactTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the HTTP routing tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)

	r.Route("/v1/charts", func(r chi.Router) {
		r.Get("/", s.handleListCharts)
		r.Put("/{chartID}", s.handlePutChart)
		r.Get("/{chartID}", s.handleGetChart)
		r.Delete("/{chartID}", s.handleDeleteChart)
		r.Get("/{chartID}.svg", s.handleChartSVG)
		r.Get("/{chartID}.png", s.handleChartPNG)
		r.Get("/{chartID}/axes/{axisID}.svg", s.handleAxisSVG)
	})

	return r
}
