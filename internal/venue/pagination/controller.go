// Package pagination tracks the "load more" window over a filtered venue list.
package pagination

import (
	"context"
	"errors"
	"sync"
	"time"
)

const (
	DefaultPageSize  = 6
	DefaultIncrement = 6
)

var (
	ErrLoadInFlight = errors.New("LOAD_IN_FLIGHT")
)

type Config struct {
	PageSize  int
	Increment int
	Latency   time.Duration
}

func DefaultConfig() Config {
	return Config{PageSize: DefaultPageSize, Increment: DefaultIncrement}
}

// Controller is safe for concurrent use. 0 <= Visible() <= filtered count holds
// at every observable point.
type Controller struct {
	mu         sync.Mutex
	cfg        Config
	visible    int
	filtered   int
	loading    bool
	generation uint64
}

func NewController(cfg Config) *Controller {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Increment <= 0 {
		cfg.Increment = DefaultIncrement
	}
	return &Controller{cfg: cfg, visible: cfg.PageSize}
}

// LoadMore waits out the configured latency and then grows the window by one
// increment, bounded by the filtered count. A call made while another is in
// flight returns ErrLoadInFlight and changes nothing. If ctx ends during the
// wait, or the filters change under it, the window is left untouched.
func (c *Controller) LoadMore(ctx context.Context) (int, error) {
	c.mu.Lock()
	if c.loading {
		v := c.clamped()
		c.mu.Unlock()
		return v, ErrLoadInFlight
	}
	if c.visible >= c.filtered {
		v := c.clamped()
		c.mu.Unlock()
		return v, nil
	}
	c.loading = true
	gen := c.generation
	c.mu.Unlock()

	err := wait(ctx, c.cfg.Latency)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false

	if err != nil {
		return c.clamped(), err
	}
	if gen != c.generation {
		return c.clamped(), nil
	}

	c.visible += c.cfg.Increment
	if c.visible > c.filtered {
		c.visible = c.filtered
	}
	return c.clamped(), nil
}

// OnFilterChange resets the window to the base page size.
func (c *Controller) OnFilterChange() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.visible = c.cfg.PageSize
	c.generation++
}

func (c *Controller) SetFilteredCount(n int) {
	if n < 0 {
		n = 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filtered = n
}

func (c *Controller) Visible() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clamped()
}

func (c *Controller) HasMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clamped() < c.filtered
}

func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *Controller) clamped() int {
	if c.visible > c.filtered {
		return c.filtered
	}
	return c.visible
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
