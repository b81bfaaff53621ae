// Package oracle talks to the external reasoning service that explains venues.
package oracle

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrEmptyResponse = errors.New("ORACLE_EMPTY_RESPONSE")
	ErrNotConfigured = errors.New("ORACLE_NOT_CONFIGURED")
)

// Request is one text generation call.
type Request struct {
	Prompt          string
	// Temperature nil uses DefaultTemperature; zero is a valid setting.
	Temperature     *float64
	MaxOutputTokens int
}

// Client turns a prompt into generated text.
type Client interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// StatusError is a non-2xx reply.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("oracle returned status %d", e.StatusCode)
}

// ClientError reports a 4xx status. Those are not worth retrying.
func (e *StatusError) ClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// IsClientError reports whether err carries a 4xx StatusError.
func IsClientError(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.ClientError()
}
