// internal/workers/venue/search-venues/config.go
package searchvenues

import (
	"time"

	"venue-intelligence/internal/catalog"
)

type Config struct {
	Timeout    time.Duration
	MaxResults int
}

func DefaultConfig() *Config {
	return &Config{
		Timeout:    10 * time.Second,
		MaxResults: catalog.DefaultLimit,
	}
}
