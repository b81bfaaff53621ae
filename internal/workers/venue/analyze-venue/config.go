// internal/workers/venue/analyze-venue/config.go
package analyzevenue

import "time"

type Config struct {
	// Covers every oracle retry, so it is well above the oracle's own timeout.
	Timeout time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		Timeout: 60 * time.Second,
	}
}
