// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Camunda       CamundaConfig           `mapstructure:"camunda"`
	Database      DatabaseConfig          `mapstructure:"database"`
	Workers       map[string]WorkerConfig `mapstructure:"workers"`
	Catalog       CatalogConfig           `mapstructure:"catalog"`
	Oracle        OracleConfig            `mapstructure:"oracle"`
	Analysis      AnalysisConfig          `mapstructure:"analysis"`
	Pagination    PaginationConfig        `mapstructure:"pagination"`
	Plan          PlanConfig              `mapstructure:"plan"`
	Notifications NotificationConfig      `mapstructure:"notifications"`
	Server        ServerConfig            `mapstructure:"server"`
	Logging       LoggingConfig           `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
	Plaintext      bool   `mapstructure:"plaintext"`
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses   []string `mapstructure:"addresses"`
	Username    string   `mapstructure:"username"`
	Password    string   `mapstructure:"password"`
	VenuesIndex string   `mapstructure:"venues_index"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"` // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"`
}

// CatalogConfig selects the venue catalog backend.
type CatalogConfig struct {
	Source     string `mapstructure:"source"` // postgres | elasticsearch | file
	SeedFile   string `mapstructure:"seed_file"`
	MaxResults int    `mapstructure:"max_results"`
	LatencyMS  int    `mapstructure:"latency_ms"` // simulated, file source only
}

// OracleConfig holds the reasoning oracle (Gemini generateContent) settings.
type OracleConfig struct {
	Enabled         bool     `mapstructure:"enabled"`
	BaseURL         string   `mapstructure:"base_url"`
	Model           string   `mapstructure:"model"`
	APIKey          string   `mapstructure:"api_key"`
	Timeout         int      `mapstructure:"timeout"`     // milliseconds
	Temperature     *float64 `mapstructure:"temperature"` // nil means 0.1
	MaxOutputTokens int      `mapstructure:"max_output_tokens"`
}

// AnalysisConfig holds the venue analysis policy.
type AnalysisConfig struct {
	CacheBackend     string `mapstructure:"cache_backend"` // redis | memory
	CacheTTL         int    `mapstructure:"cache_ttl"`     // milliseconds
	RateLimitMax     int    `mapstructure:"rate_limit_max"`
	RateLimitWindow  int    `mapstructure:"rate_limit_window"` // milliseconds
	MaxRetries       int    `mapstructure:"max_retries"`
	RetryBaseDelay   int    `mapstructure:"retry_base_delay"` // milliseconds
	BreakerFailures  int    `mapstructure:"breaker_failures"`
	BreakerOpenDelay int    `mapstructure:"breaker_open_delay"` // milliseconds
}

type PaginationConfig struct {
	PageSize      int `mapstructure:"page_size"`
	Increment     int `mapstructure:"increment"`
	LoadLatencyMS int `mapstructure:"load_latency_ms"`
}

type PlanConfig struct {
	ShareBaseURL string `mapstructure:"share_base_url"`
	StoreTTL     int    `mapstructure:"store_ttl"` // milliseconds
	TopN         int    `mapstructure:"top_n"`
}

// NotificationConfig holds the plan sharing channels.
type NotificationConfig struct {
	AWS struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"aws"`
	Email struct {
		Enabled   bool   `mapstructure:"enabled"`
		FromEmail string `mapstructure:"from_email"`
	} `mapstructure:"email"`
	SMS struct {
		Enabled  bool   `mapstructure:"enabled"`
		SenderID string `mapstructure:"sender_id"`
	} `mapstructure:"sms"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
