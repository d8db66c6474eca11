package actions

import (
	"context"
	"sync"
)

// Session is the state shared by the hooks of one shell.
//
// Commands whose children are all optional (list, install, history) cannot
// know at hook time whether a child will follow, so their hooks queue work
// with Defer and a matched child replaces it. The caller runs whatever is
// queued with Flush once the whole line dispatched without error.
type Session struct {
	mu      sync.Mutex
	pending func(ctx context.Context) error
	stopped bool
}

func NewSession() *Session {
	return &Session{}
}

// Defer queues fn, replacing anything queued earlier on the same line.
func (s *Session) Defer(fn func(ctx context.Context) error) {
	s.mu.Lock()
	s.pending = fn
	s.mu.Unlock()
}

// Flush runs and clears the queued work.
func (s *Session) Flush(ctx context.Context) error {
	s.mu.Lock()
	fn := s.pending
	s.pending = nil
	s.mu.Unlock()

	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// Reset drops queued work after a failed dispatch.
func (s *Session) Reset() {
	s.mu.Lock()
	s.pending = nil
	s.mu.Unlock()
}

// Stop asks the read loop to end after the current line.
func (s *Session) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
}

// Running reports whether the read loop should keep going.
func (s *Session) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.stopped
}
