package oracle

import (
	"context"
	"sync"
)

// Reply is one scripted Stub answer.
type Reply struct {
	Text string
	Err  error
}

// Stub replays scripted replies in order and repeats the last one once the
// script runs out. It records every request it receives.
type Stub struct {
	mu       sync.Mutex
	replies  []Reply
	requests []Request
}

func NewStub(replies ...Reply) *Stub {
	return &Stub{replies: replies}
}

func (s *Stub) Generate(ctx context.Context, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, req)
	if len(s.replies) == 0 {
		return "", ErrEmptyResponse
	}
	idx := len(s.requests) - 1
	if idx >= len(s.replies) {
		idx = len(s.replies) - 1
	}
	r := s.replies[idx]
	return r.Text, r.Err
}

func (s *Stub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func (s *Stub) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Func adapts a plain function to Client.
type Func func(ctx context.Context, req Request) (string, error)

func (f Func) Generate(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}
