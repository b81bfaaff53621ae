// internal/analysis/analyzer.go

// Package analysis produces the per-venue intelligence report. It asks the
// reasoning oracle when it can and falls back to a heuristic when it cannot,
// so a caller with a valid requirement always gets a result.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/singleflight"

	"venue-intelligence/internal/common/config"
	apperrors "venue-intelligence/internal/common/errors"
	"venue-intelligence/internal/common/logger"
	"venue-intelligence/internal/common/metrics"
	"venue-intelligence/internal/models"
	"venue-intelligence/internal/oracle"
)

const breakerName = "venue-oracle"

// Config is the analysis policy.
type Config struct {
	CacheTTL         time.Duration
	RateLimitMax     int
	RateLimitWindow  time.Duration
	Retry            RetryPolicy
	BreakerFailures  uint32
	BreakerOpenDelay time.Duration
	Temperature      float64
	MaxOutputTokens  int
}

func DefaultConfig() Config {
	return Config{
		CacheTTL:         time.Hour,
		RateLimitMax:     10,
		RateLimitWindow:  time.Minute,
		Retry:            DefaultRetryPolicy(),
		BreakerFailures:  5,
		BreakerOpenDelay: 30 * time.Second,
		Temperature:      oracle.DefaultTemperature,
		MaxOutputTokens:  oracle.DefaultMaxOutputTokens,
	}
}

// ConfigFrom maps the loaded configuration onto the analysis policy. Zero
// values keep the defaults.
func ConfigFrom(a config.AnalysisConfig, o config.OracleConfig) Config {
	cfg := DefaultConfig()
	if a.CacheTTL > 0 {
		cfg.CacheTTL = config.GetDuration(a.CacheTTL)
	}
	if a.RateLimitMax > 0 {
		cfg.RateLimitMax = a.RateLimitMax
	}
	if a.RateLimitWindow > 0 {
		cfg.RateLimitWindow = config.GetDuration(a.RateLimitWindow)
	}
	if a.MaxRetries > 0 {
		cfg.Retry.MaxRetries = a.MaxRetries
	}
	if a.RetryBaseDelay > 0 {
		cfg.Retry.BaseDelay = config.GetDuration(a.RetryBaseDelay)
	}
	if a.BreakerFailures > 0 {
		cfg.BreakerFailures = uint32(a.BreakerFailures)
	}
	if a.BreakerOpenDelay > 0 {
		cfg.BreakerOpenDelay = config.GetDuration(a.BreakerOpenDelay)
	}
	if o.Temperature != nil {
		cfg.Temperature = *o.Temperature
	}
	if o.MaxOutputTokens > 0 {
		cfg.MaxOutputTokens = o.MaxOutputTokens
	}
	return cfg
}

type Option func(*Analyzer)

// WithClock replaces time.Now for cache freshness and the rate limiter.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) { a.now = now }
}

// WithRand replaces the source used for the fallback confidence level.
func WithRand(intn IntnFunc) Option {
	return func(a *Analyzer) { a.intn = intn }
}

// WithSleep replaces the wait between retries.
func WithSleep(sleep SleepFunc) Option {
	return func(a *Analyzer) { a.sleep = sleep }
}

type Analyzer struct {
	config  Config
	oracle  oracle.Client
	store   Store
	limiter *SlidingWindow
	breaker *gobreaker.CircuitBreaker[string]
	group   singleflight.Group
	now     func() time.Time
	intn    IntnFunc
	sleep   SleepFunc
	logger  logger.Logger
}

// NewAnalyzer wires the analysis pipeline. A nil client means every analysis
// uses the fallback; a nil store means an in-memory cache.
func NewAnalyzer(cfg Config, client oracle.Client, store Store, log logger.Logger, opts ...Option) *Analyzer {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	if store == nil {
		store = NewMemoryStore()
	}

	a := &Analyzer{
		config: cfg,
		oracle: client,
		store:  store,
		now:    time.Now,
		intn:   rand.Intn,
		sleep:  sleepCtx,
		logger: log.WithFields(map[string]interface{}{"component": "analysis"}),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.limiter = NewSlidingWindow(cfg.RateLimitMax, cfg.RateLimitWindow, a.now)
	a.breaker = gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     cfg.BreakerOpenDelay,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.CircuitBreakerState.WithLabelValues(name).Set(breakerGauge(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
			a.logger.Warn("circuit breaker state changed", map[string]interface{}{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			})
		},
	})
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	return a
}

func breakerGauge(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	}
	return 0
}

// BreakerState exposes the oracle circuit state.
func (a *Analyzer) BreakerState() gobreaker.State {
	return a.breaker.State()
}

// Analyze returns the report for venue. Concurrent calls for the same venue
// share one computation. Only an invalid requirement, a cancelled context or
// an internal failure produce an error.
func (a *Analyzer) Analyze(ctx context.Context, venue models.Venue, req models.EventRequirement) (models.AIAnalysisResult, error) {
	if err := req.Validate(); err != nil {
		return models.AIAnalysisResult{}, err
	}
	if venue.ID == "" {
		return models.AIAnalysisResult{}, apperrors.NewValidationError("venue id is required")
	}

	key := CacheKey(venue.ID)
	if cached, ok := a.lookup(ctx, key); ok {
		return a.served(cached), nil
	}

	for {
		ch := a.group.DoChan(key, func() (interface{}, error) {
			return a.compute(ctx, key, venue, req)
		})

		select {
		case <-ctx.Done():
			return models.AIAnalysisResult{}, ctx.Err()
		case res := <-ch:
			if res.Err != nil {
				// The leader's context ended; ours has not, so run again.
				if res.Shared && isContextErr(res.Err) && ctx.Err() == nil {
					continue
				}
				return models.AIAnalysisResult{}, res.Err
			}
			// Followers share the leader's value; each caller gets its own copy.
			result := res.Val.(models.AIAnalysisResult).Clone()
			metrics.AnalysisResults.WithLabelValues(string(result.Source)).Inc()
			return result, nil
		}
	}
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func (a *Analyzer) served(entry Entry) models.AIAnalysisResult {
	result := entry.Analysis.Clone()
	result.Source = models.SourceCache
	metrics.AnalysisResults.WithLabelValues(string(models.SourceCache)).Inc()
	return result
}

// lookup returns a fresh cached entry. Store errors count as a miss.
func (a *Analyzer) lookup(ctx context.Context, key string) (Entry, bool) {
	entry, ok, err := a.store.Get(ctx, key)
	switch {
	case err != nil:
		metrics.AnalysisCacheLookups.WithLabelValues("error").Inc()
		a.logger.Warn("analysis cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
		return Entry{}, false
	case !ok:
		metrics.AnalysisCacheLookups.WithLabelValues("miss").Inc()
		return Entry{}, false
	case !entry.Fresh(a.now(), a.config.CacheTTL):
		metrics.AnalysisCacheLookups.WithLabelValues("stale").Inc()
		return Entry{}, false
	}
	metrics.AnalysisCacheLookups.WithLabelValues("hit").Inc()
	return entry, true
}

func (a *Analyzer) compute(ctx context.Context, key string, venue models.Venue, req models.EventRequirement) (models.AIAnalysisResult, error) {
	// A flight that finished just before this one may have filled the cache.
	if cached, ok := a.lookup(ctx, key); ok {
		result := cached.Analysis
		result.Source = models.SourceCache
		return result, nil
	}

	result, err := a.fromOracle(ctx, venue, req)
	if err != nil {
		return models.AIAnalysisResult{}, err
	}

	now := a.now()
	result.GeneratedAt = now
	if err := a.store.Set(ctx, key, Entry{Analysis: result, Timestamp: now.UnixMilli()}); err != nil {
		a.logger.Warn("analysis cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}

	return result, nil
}

// fromOracle asks the oracle and falls back on every failure except a
// cancelled context.
func (a *Analyzer) fromOracle(ctx context.Context, venue models.Venue, req models.EventRequirement) (models.AIAnalysisResult, error) {
	log := a.logger.WithFields(map[string]interface{}{"venueId": venue.ID})

	if a.oracle == nil {
		return a.fallback(venue)
	}
	if a.breaker.State() == gobreaker.StateOpen {
		log.Info("oracle circuit open, using fallback", nil)
		return a.fallback(venue)
	}
	if !a.limiter.Allow() {
		metrics.OracleRateLimited.Inc()
		log.Warn("oracle rate limit reached, using fallback", map[string]interface{}{
			"code": string(apperrors.ErrCodeOracleRateLimited),
		})
		return a.fallback(venue)
	}

	text, err := a.callOracle(ctx, BuildPrompt(venue, req), log)
	if err != nil {
		if ctx.Err() != nil {
			return models.AIAnalysisResult{}, ctx.Err()
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			log.Info("oracle circuit rejected call, using fallback", nil)
		} else {
			log.Warn("oracle unavailable, using fallback", map[string]interface{}{
				"code":  string(apperrors.ErrCodeOracleUnavailable),
				"error": err.Error(),
			})
		}
		return a.fallback(venue)
	}

	parsed, err := ParseAnalysis(text)
	if err != nil {
		metrics.OracleCalls.WithLabelValues("malformed").Inc()
		log.Warn("oracle reply unparseable, using fallback", map[string]interface{}{"error": err.Error()})
		return a.fallback(venue)
	}

	parsed.Source = models.SourceOracle
	return parsed, nil
}

// callOracle runs the retry sequence inside the breaker. A panicking client
// is reported as a failed call.
func (a *Analyzer) callOracle(ctx context.Context, prompt string, log logger.Logger) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("oracle client panicked: %v", r)
		}
	}()

	return a.breaker.Execute(func() (string, error) {
		var out string
		temperature := a.config.Temperature
		err := a.config.Retry.Do(ctx, a.sleep, func(ctx context.Context) error {
			reply, err := a.oracle.Generate(ctx, oracle.Request{
				Prompt:          prompt,
				Temperature:     &temperature,
				MaxOutputTokens: a.config.MaxOutputTokens,
			})
			metrics.OracleCalls.WithLabelValues(callOutcome(err)).Inc()
			if err != nil {
				log.Debug("oracle attempt failed", map[string]interface{}{"error": err.Error()})
				return err
			}
			out = reply
			return nil
		})
		return out, err
	})
}

func callOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, oracle.ErrEmptyResponse):
		return "empty"
	case oracle.IsClientError(err):
		return "client_error"
	}
	return "error"
}

// fallback only errors if the heuristic itself panics.
func (a *Analyzer) fallback(venue models.Venue) (result models.AIAnalysisResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("fallback analysis panicked", map[string]interface{}{"venueId": venue.ID, "panic": fmt.Sprint(r)})
			err = apperrors.NewAnalysisUnavailableError(fmt.Sprint(r))
		}
	}()

	result = Fallback(venue, a.intn)
	result.Normalize()
	return result, nil
}
