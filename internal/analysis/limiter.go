// internal/analysis/limiter.go
package analysis

import (
	"sync"
	"time"
)

// SlidingWindow admits at most max calls in any trailing window.
type SlidingWindow struct {
	mu     sync.Mutex
	max    int
	window time.Duration
	now    func() time.Time
	calls  []time.Time
}

func NewSlidingWindow(max int, window time.Duration, now func() time.Time) *SlidingWindow {
	if now == nil {
		now = time.Now
	}
	return &SlidingWindow{max: max, window: window, now: now}
}

// Allow records a call and returns true if the window has room.
func (s *SlidingWindow) Allow() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.prune(now)
	if len(s.calls) >= s.max {
		return false
	}
	s.calls = append(s.calls, now)
	return true
}

// Remaining is the number of calls the window would still admit.
func (s *SlidingWindow) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune(s.now())
	return s.max - len(s.calls)
}

func (s *SlidingWindow) prune(now time.Time) {
	cutoff := now.Add(-s.window)
	i := 0
	for i < len(s.calls) && !s.calls[i].After(cutoff) {
		i++
	}
	s.calls = s.calls[i:]
}
