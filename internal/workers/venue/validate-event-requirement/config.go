// internal/workers/venue/validate-event-requirement/config.go
package validateeventrequirement

import "time"

type Config struct {
	Timeout time.Duration
	// ThrowOnInvalid raises VALIDATION_ERROR instead of completing with requirementValid=false.
	ThrowOnInvalid bool
}

func DefaultConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
