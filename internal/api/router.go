// Package api exposes the venue engine over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"venue-intelligence/internal/analysis"
	"venue-intelligence/internal/catalog"
	"venue-intelligence/internal/common/logger"
	"venue-intelligence/internal/plan"
	"venue-intelligence/internal/venue/pagination"
	"venue-intelligence/internal/venue/ranking"
)

// Check reports whether one dependency is usable.
type Check func(ctx context.Context) error

type Config struct {
	RequestTimeout time.Duration
	TopN           int
	Pagination     pagination.Config
	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64
}

func DefaultConfig() Config {
	return Config{
		RequestTimeout: 30 * time.Second,
		TopN:           ranking.DefaultTopN,
		Pagination:     pagination.DefaultConfig(),
		MaxBodyBytes:   4 << 20,
	}
}

// Deps are the services behind the routes. Catalog and Checks are optional.
type Deps struct {
	Catalog  catalog.Source
	Analyzer *analysis.Analyzer
	Plans    *plan.Service
	Checks   map[string]Check
}

type Server struct {
	config Config
	deps   Deps
	logger logger.Logger
}

func NewServer(cfg Config, deps Deps, log logger.Logger) *Server {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultConfig().RequestTimeout
	}
	if cfg.TopN <= 0 {
		cfg.TopN = ranking.DefaultTopN
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultConfig().MaxBodyBytes
	}
	return &Server{
		config: cfg,
		deps:   deps,
		logger: log.WithFields(map[string]interface{}{"component": "api"}),
	}
}

// Router builds the chi handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(s.recoverer)
	r.Use(s.requestLogger)
	r.Use(countRequests)

	r.Get("/health", s.health)
	r.Get("/ready", s.ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Use(chimiddleware.AllowContentType("application/json"))
		r.Use(chimiddleware.Timeout(s.config.RequestTimeout))

		r.Post("/recommendations", s.recommend)
		r.Post("/venues/filter", s.filterVenues)
		r.Post("/venues/{id}/analysis", s.analyzeVenue)
		r.Post("/plans", s.createPlan)
		r.Get("/plans/{id}", s.getPlan)
	})

	return r
}
