package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
camunda:
  broker_address: localhost:26500
catalog:
  source: file
  seed_file: venues.json
analysis:
  cache_backend: memory
workers:
  rank-venues:
    enabled: true
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Catalog.MaxResults)
	assert.Equal(t, 3600000, cfg.Analysis.CacheTTL)
	assert.Equal(t, 10, cfg.Analysis.RateLimitMax)
	assert.Equal(t, 60000, cfg.Analysis.RateLimitWindow)
	assert.Equal(t, 3, cfg.Analysis.MaxRetries)
	assert.Equal(t, 1000, cfg.Analysis.RetryBaseDelay)
	assert.Equal(t, 6, cfg.Pagination.PageSize)
	assert.Equal(t, 6, cfg.Pagination.Increment)
	require.NotNil(t, cfg.Oracle.Temperature)
	assert.Equal(t, 0.1, *cfg.Oracle.Temperature)
	assert.Equal(t, 1000, cfg.Oracle.MaxOutputTokens)
	assert.Equal(t, ":8080", cfg.Server.Address)

	w := cfg.Workers["rank-venues"]
	assert.True(t, w.Enabled)
	assert.Equal(t, 5, w.MaxJobsActive)
	assert.Equal(t, 30000, w.Timeout)
}

func TestLoadFromFile_ExpandsEnvPlaceholders(t *testing.T) {
	t.Setenv("TEST_ORACLE_KEY", "secret-key")
	path := writeConfig(t, `
camunda:
  broker_address: localhost:26500
catalog:
  source: file
  seed_file: venues.json
analysis:
  cache_backend: memory
oracle:
  enabled: true
  api_key: ${TEST_ORACLE_KEY}
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "secret-key", cfg.Oracle.APIKey)
}

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "missing broker",
			body:    "catalog:\n  source: file\n  seed_file: x.json\n",
			wantErr: "camunda.broker_address",
		},
		{
			name:    "postgres catalog without host",
			body:    "camunda:\n  broker_address: b:1\n",
			wantErr: "database.postgres",
		},
		{
			name:    "unknown catalog source",
			body:    "camunda:\n  broker_address: b:1\ncatalog:\n  source: mongo\n",
			wantErr: "catalog.source",
		},
		{
			name:    "redis cache without address",
			body:    "camunda:\n  broker_address: b:1\ncatalog:\n  source: file\n  seed_file: x.json\n",
			wantErr: "database.redis.address",
		},
		{
			name:    "oracle enabled without key",
			body:    "camunda:\n  broker_address: b:1\ncatalog:\n  source: file\n  seed_file: x.json\nanalysis:\n  cache_backend: memory\noracle:\n  enabled: true\n",
			wantErr: "oracle.api_key",
		},
		{
			name:    "temperature out of range",
			body:    "camunda:\n  broker_address: b:1\ncatalog:\n  source: file\n  seed_file: x.json\nanalysis:\n  cache_backend: memory\noracle:\n  temperature: 3\n",
			wantErr: "oracle.temperature",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GEMINI_API_KEY", "")
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromFile_KeepsZeroTemperature(t *testing.T) {
	path := writeConfig(t, `
camunda:
  broker_address: localhost:26500
catalog:
  source: file
  seed_file: venues.json
analysis:
  cache_backend: memory
oracle:
  temperature: 0
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Oracle.Temperature)
	assert.Equal(t, 0.0, *cfg.Oracle.Temperature)
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, time.Hour, GetDuration(3600000))
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))
}

func TestGetWorkerConfig_Fallback(t *testing.T) {
	cfg := &Config{Workers: map[string]WorkerConfig{"analyze-venue": {Enabled: false}}}

	assert.False(t, IsWorkerEnabled(cfg, "analyze-venue"))
	assert.True(t, IsWorkerEnabled(cfg, "rank-venues"))
	assert.Equal(t, 30000, GetWorkerConfig(cfg, "rank-venues").Timeout)
}
