// internal/workers/venue/filter-venues/config.go
package filtervenues

import (
	"time"

	"venue-intelligence/internal/venue/pagination"
)

type Config struct {
	Timeout   time.Duration
	PageSize  int
	Increment int
}

func DefaultConfig() *Config {
	return &Config{
		Timeout:   5 * time.Second,
		PageSize:  pagination.DefaultPageSize,
		Increment: pagination.DefaultIncrement,
	}
}
