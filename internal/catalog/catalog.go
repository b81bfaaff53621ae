// internal/catalog/catalog.go

// Package catalog loads candidate venues for a requirement. Sources apply
// only the coarse city and capacity cut; scoring and filtering happen later.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"venue-intelligence/internal/common/config"
	apperrors "venue-intelligence/internal/common/errors"
	"venue-intelligence/internal/common/logger"
	"venue-intelligence/internal/common/metrics"
	"venue-intelligence/internal/models"
)

const DefaultLimit = 50

const (
	SourcePostgres      = "postgres"
	SourceElasticsearch = "elasticsearch"
	SourceFile          = "file"
)

var (
	ErrUnknownSource = errors.New("UNKNOWN_CATALOG_SOURCE")
)

// Query is the coarse catalog cut: same city, enough seats.
type Query struct {
	City        string
	MinCapacity int
	Limit       int
}

// QueryFor builds the catalog query for a requirement.
func QueryFor(req models.EventRequirement, limit int) Query {
	return Query{City: req.City, MinCapacity: req.AttendeeCount, Limit: limit}
}

func (q Query) limit() int {
	if q.Limit <= 0 || q.Limit > DefaultLimit {
		return DefaultLimit
	}
	return q.Limit
}

// Source returns venues matching a Query.
type Source interface {
	Name() string
	Venues(ctx context.Context, q Query) ([]models.Venue, error)
}

// Sanitize clamps out-of-range fields on every venue and logs one
// DATA_INTEGRITY_WARNING per clamped field.
func Sanitize(venues []models.Venue, log logger.Logger) []models.Venue {
	out := make([]models.Venue, 0, len(venues))
	for _, v := range venues {
		clean, warnings := v.Sanitized()
		for _, w := range warnings {
			log.Warn("venue field clamped", map[string]interface{}{
				"code":    string(w.Code),
				"venueId": v.ID,
				"details": w.Details,
			})
		}
		out = append(out, clean)
	}
	return out
}

// Instrumented wraps a Source with metrics, sanitisation and error mapping
// onto CATALOG_TIMEOUT / CATALOG_QUERY_FAILED.
type Instrumented struct {
	source Source
	logger logger.Logger
}

func Instrument(source Source, log logger.Logger) *Instrumented {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Instrumented{
		source: source,
		logger: log.WithFields(map[string]interface{}{"component": "catalog", "source": source.Name()}),
	}
}

func (i *Instrumented) Name() string {
	return i.source.Name()
}

func (i *Instrumented) Venues(ctx context.Context, q Query) ([]models.Venue, error) {
	start := time.Now()
	venues, err := i.source.Venues(ctx, q)
	metrics.CatalogQueryDuration.WithLabelValues(i.source.Name()).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.CatalogQueries.WithLabelValues(i.source.Name(), "error").Inc()
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.NewCatalogTimeoutError(i.source.Name())
		}
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		if _, ok := apperrors.AsStandard(err); ok {
			return nil, err
		}
		return nil, apperrors.NewCatalogQueryFailedError(i.source.Name(), err)
	}

	metrics.CatalogQueries.WithLabelValues(i.source.Name(), "success").Inc()
	i.logger.Debug("catalog query complete", map[string]interface{}{
		"city":    q.City,
		"minSeat": q.MinCapacity,
		"count":   len(venues),
	})
	return Sanitize(venues, i.logger), nil
}

// Deps carries the backends a source may need. Only the one matching the
// configured source has to be set.
type Deps struct {
	Postgres *PostgresSource
	Search   *SearchSource
}

// New picks the configured source and instruments it.
func New(cfg config.CatalogConfig, deps Deps, log logger.Logger) (Source, error) {
	var src Source
	switch cfg.Source {
	case SourcePostgres:
		if deps.Postgres == nil {
			return nil, fmt.Errorf("%w: postgres source not connected", ErrUnknownSource)
		}
		src = deps.Postgres
	case SourceElasticsearch:
		if deps.Search == nil {
			return nil, fmt.Errorf("%w: elasticsearch source not connected", ErrUnknownSource)
		}
		src = deps.Search
	case SourceFile:
		fs, err := LoadFile(cfg.SeedFile, time.Duration(cfg.LatencyMS)*time.Millisecond)
		if err != nil {
			return nil, err
		}
		src = fs
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, cfg.Source)
	}
	return Instrument(src, log), nil
}
