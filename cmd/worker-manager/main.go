// cmd/worker-manager/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"venue-intelligence/internal/analysis"
	"venue-intelligence/internal/api"
	"venue-intelligence/internal/catalog"
	"venue-intelligence/internal/common/aws"
	"venue-intelligence/internal/common/camunda"
	"venue-intelligence/internal/common/config"
	"venue-intelligence/internal/common/database"
	"venue-intelligence/internal/common/logger"
	"venue-intelligence/internal/common/observability"
	"venue-intelligence/internal/oracle"
	"venue-intelligence/internal/plan"
	"venue-intelligence/internal/venue/pagination"
	"venue-intelligence/pkg/registry"

	analyze "venue-intelligence/internal/workers/venue/analyze-venue"
	buildplan "venue-intelligence/internal/workers/venue/build-plan-summary"
	filtervenues "venue-intelligence/internal/workers/venue/filter-venues"
	rankvenues "venue-intelligence/internal/workers/venue/rank-venues"
	searchvenues "venue-intelligence/internal/workers/venue/search-venues"
	validate "venue-intelligence/internal/workers/venue/validate-event-requirement"
)

// startupRetry covers brokers and stores that come up after this process in
// docker-compose.
var startupRetry = &camunda.RetryConfig{
	MaxRetries: 9,
	BaseDelay:  2 * time.Second,
	MaxDelay:   30 * time.Second,
}

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		zapLog.Fatal("worker manager failed", zap.Error(err))
	}
	zapLog.Info("Worker manager stopped gracefully")
}

// backends holds the connections the configuration asks for. Unused ones stay nil.
type backends struct {
	zeebe    *camunda.Client
	postgres *database.PostgresClient
	search   *database.ElasticsearchClient
	redis    *database.RedisClient
}

func (b *backends) checks() map[string]api.Check {
	checks := map[string]api.Check{"zeebe": b.zeebe.HealthCheck}
	if b.postgres != nil {
		checks["postgres"] = b.postgres.Ping
	}
	if b.search != nil {
		checks["elasticsearch"] = b.search.Ping
	}
	if b.redis != nil {
		checks["redis"] = b.redis.Ping
	}
	return checks
}

func (b *backends) close(log logger.Logger) {
	if b.redis != nil {
		if err := b.redis.Close(); err != nil {
			log.Error("Error closing Redis", map[string]interface{}{"error": err.Error()})
		}
	}
	if b.postgres != nil {
		if err := b.postgres.Close(); err != nil {
			log.Error("Error closing PostgreSQL", map[string]interface{}{"error": err.Error()})
		}
	}
	if b.zeebe != nil {
		if err := b.zeebe.Close(); err != nil {
			log.Error("Error closing Zeebe client", map[string]interface{}{"error": err.Error()})
		}
	}
}

func connect(ctx context.Context, cfg *config.Config, log logger.Logger) (*backends, error) {
	b := &backends{}

	err := camunda.Retry(ctx, startupRetry, log, "Zeebe client initialization", func(context.Context) error {
		var err error
		b.zeebe, err = camunda.NewClientWithConfig(camunda.ClientConfigFrom(cfg.Camunda))
		return err
	})
	if err != nil {
		return b, err
	}
	log.Info("Zeebe client connected successfully", map[string]interface{}{"gateway": cfg.Camunda.BrokerAddress})

	if cfg.Catalog.Source == catalog.SourcePostgres {
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return b, err
		}
		b.postgres = pg
		if err := camunda.Retry(ctx, startupRetry, log, "PostgreSQL connection", pg.Ping); err != nil {
			return b, err
		}
		if err := pg.EnsureSchema(ctx); err != nil {
			return b, err
		}
		log.Info("PostgreSQL connected successfully", nil)
	}

	if cfg.Catalog.Source == catalog.SourceElasticsearch {
		es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return b, err
		}
		b.search = es
		if err := camunda.Retry(ctx, startupRetry, log, "Elasticsearch connection", es.Ping); err != nil {
			return b, err
		}
		if err := es.EnsureIndex(ctx, cfg.Database.Elasticsearch.VenuesIndex); err != nil {
			return b, err
		}
		log.Info("Elasticsearch connected successfully", nil)
	}

	if cfg.Analysis.CacheBackend == "redis" {
		b.redis = database.NewRedis(cfg.Database.Redis)
		if err := camunda.Retry(ctx, startupRetry, log, "Redis connection", b.redis.Ping); err != nil {
			return b, err
		}
		log.Info("Redis connected successfully", nil)
	}

	return b, nil
}

func newCatalog(cfg *config.Config, b *backends, log logger.Logger) (catalog.Source, error) {
	var deps catalog.Deps
	if b.postgres != nil {
		deps.Postgres = catalog.NewPostgresSource(b.postgres.DB)
	}
	if b.search != nil {
		deps.Search = catalog.NewSearchSource(b.search.Client, cfg.Database.Elasticsearch.VenuesIndex)
	}
	return catalog.New(cfg.Catalog, deps, log)
}

func newAnalyzer(cfg *config.Config, b *backends, log logger.Logger) *analysis.Analyzer {
	var store analysis.Store = analysis.NewMemoryStore()
	if b.redis != nil {
		store = analysis.NewRedisStore(b.redis.Client, config.GetDuration(cfg.Analysis.CacheTTL))
	}

	var client oracle.Client
	if cfg.Oracle.Enabled {
		client = oracle.NewGeminiClient(cfg.Oracle, nil, log)
	} else {
		log.Info("reasoning oracle disabled, analyses use the heuristic fallback", nil)
	}

	return analysis.NewAnalyzer(analysis.ConfigFrom(cfg.Analysis, cfg.Oracle), client, store, log)
}

func newPlanService(ctx context.Context, cfg *config.Config, b *backends, log logger.Logger) (*plan.Service, error) {
	var store plan.Store = plan.NewMemoryStore()
	if b.redis != nil {
		store = plan.NewRedisStore(b.redis.Client, config.GetDuration(cfg.Plan.StoreTTL))
	}

	// Left as nil interfaces when disabled so the sharer reports "disabled".
	var (
		email plan.EmailSender
		sms   plan.SMSSender
	)
	region := cfg.Notifications.AWS.Region
	if cfg.Notifications.Email.Enabled {
		ses, err := aws.NewSESClient(ctx, region, cfg.Notifications.Email.FromEmail)
		if err != nil {
			return nil, fmt.Errorf("ses client: %w", err)
		}
		email = ses
	}
	if cfg.Notifications.SMS.Enabled {
		sns, err := aws.NewSNSClient(ctx, region, cfg.Notifications.SMS.SenderID)
		if err != nil {
			return nil, fmt.Errorf("sns client: %w", err)
		}
		sms = sns
	}

	builder := plan.NewBuilder(cfg.Plan.ShareBaseURL)
	return plan.NewService(builder, store, plan.NewSharer(email, sms, log), log), nil
}

// jobTimeout prefers the per-worker config and falls back to the handler default.
func jobTimeout(wcfg config.WorkerConfig, def time.Duration) time.Duration {
	if wcfg.Timeout <= 0 {
		return def
	}
	return config.GetDuration(wcfg.Timeout)
}

func startWorkers(cfg *config.Config, pool *camunda.Pool, source catalog.Source, analyzer *analysis.Analyzer, plans *plan.Service, obs *observability.Observability, log logger.Logger) error {
	reg, err := registry.Default()
	if err != nil {
		return fmt.Errorf("activity registry: %w", err)
	}

	wcfg := config.GetWorkerConfig(cfg, validate.TaskType)
	validateHandler, err := validate.NewHandler(&validate.Config{Timeout: jobTimeout(wcfg, validate.DefaultConfig().Timeout)}, reg, log)
	if err != nil {
		return fmt.Errorf("create %s handler: %w", validate.TaskType, err)
	}
	pool.Start(validate.TaskType, wcfg, validateHandler.Handle)

	wcfg = config.GetWorkerConfig(cfg, searchvenues.TaskType)
	searchHandler := searchvenues.NewHandler(&searchvenues.Config{
		Timeout:    jobTimeout(wcfg, searchvenues.DefaultConfig().Timeout),
		MaxResults: cfg.Catalog.MaxResults,
	}, source, log)
	pool.Start(searchvenues.TaskType, wcfg, searchHandler.Handle)

	wcfg = config.GetWorkerConfig(cfg, rankvenues.TaskType)
	rankHandler := rankvenues.NewHandler(&rankvenues.Config{
		Timeout: jobTimeout(wcfg, rankvenues.DefaultConfig().Timeout),
		TopN:    cfg.Plan.TopN,
	}, obs, log)
	pool.Start(rankvenues.TaskType, wcfg, rankHandler.Handle)

	wcfg = config.GetWorkerConfig(cfg, filtervenues.TaskType)
	filterHandler := filtervenues.NewHandler(&filtervenues.Config{
		Timeout:   jobTimeout(wcfg, filtervenues.DefaultConfig().Timeout),
		PageSize:  cfg.Pagination.PageSize,
		Increment: cfg.Pagination.Increment,
	}, log)
	pool.Start(filtervenues.TaskType, wcfg, filterHandler.Handle)

	wcfg = config.GetWorkerConfig(cfg, analyze.TaskType)
	analyzeHandler := analyze.NewHandler(&analyze.Config{Timeout: jobTimeout(wcfg, analyze.DefaultConfig().Timeout)}, analyzer, obs, log)
	pool.Start(analyze.TaskType, wcfg, analyzeHandler.Handle)

	wcfg = config.GetWorkerConfig(cfg, buildplan.TaskType)
	planCfg := buildplan.DefaultConfig()
	planCfg.Timeout = jobTimeout(wcfg, planCfg.Timeout)
	planHandler := buildplan.NewHandler(planCfg, plans, log)
	pool.Start(buildplan.TaskType, wcfg, planHandler.Handle)

	log.Info("workers registered", map[string]interface{}{"taskTypes": pool.TaskTypes()})
	return nil
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	log.Info("Starting worker manager...", map[string]interface{}{
		"app":         cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	})

	obs := observability.New(cfg.App.Name, log)
	defer obs.Shutdown()

	b, err := connect(ctx, cfg, log)
	defer b.close(log)
	if err != nil {
		return err
	}

	source, err := newCatalog(cfg, b, log)
	if err != nil {
		return fmt.Errorf("venue catalog: %w", err)
	}
	analyzer := newAnalyzer(cfg, b, log)
	plans, err := newPlanService(ctx, cfg, b, log)
	if err != nil {
		return err
	}

	pool := camunda.NewPool(b.zeebe.GetClient(), log)
	defer pool.Close()
	if err := startWorkers(cfg, pool, source, analyzer, plans, obs, log); err != nil {
		return err
	}

	server := api.NewServer(api.Config{
		TopN: cfg.Plan.TopN,
		Pagination: pagination.Config{
			PageSize:  cfg.Pagination.PageSize,
			Increment: cfg.Pagination.Increment,
			Latency:   config.GetDuration(cfg.Pagination.LoadLatencyMS),
		},
	}, api.Deps{
		Catalog:  source,
		Analyzer: analyzer,
		Plans:    plans,
		Checks:   b.checks(),
	}, log)

	httpServer := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", map[string]interface{}{"address": cfg.Server.Address})
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutdown signal received, stopping workers...", nil)
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", map[string]interface{}{"error": err.Error()})
	}
	return nil
}
