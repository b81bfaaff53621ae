// internal/workers/venue/rank-venues/config.go
package rankvenues

import (
	"time"

	"venue-intelligence/internal/venue/ranking"
)

type Config struct {
	Timeout time.Duration
	TopN    int
}

func DefaultConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
		TopN:    ranking.DefaultTopN,
	}
}
