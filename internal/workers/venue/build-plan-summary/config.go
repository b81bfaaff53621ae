// internal/workers/venue/build-plan-summary/config.go
package buildplansummary

import "time"

type Config struct {
	Timeout time.Duration
	// MaxRecipients bounds how many share deliveries one job may request.
	MaxRecipients int
}

func DefaultConfig() *Config {
	return &Config{
		Timeout:       30 * time.Second,
		MaxRecipients: 10,
	}
}
