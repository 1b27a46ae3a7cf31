package ratelimit

import (
	"context"
	"sync"
	"time"
)

// SlidingWindow is an in-memory per-identity limiter. All state lives behind
// a single mutex: a map from identity to the timestamps of its requests in
// the trailing window. Stale identities are evicted by Sweep.
type SlidingWindow struct {
	limit  int
	window time.Duration
	ttl    time.Duration

	mu      sync.Mutex
	clients map[string]*clientHistory

	now func() time.Time // overridable in tests
}

type clientHistory struct {
	requests []time.Time
	last     time.Time
}

const defaultIdleTTL = 60 * time.Second

func NewSlidingWindow(limit int, window time.Duration) *SlidingWindow {
	return &SlidingWindow{
		limit:   limit,
		window:  window,
		ttl:     defaultIdleTTL,
		clients: make(map[string]*clientHistory),
		now:     time.Now,
	}
}

// Allow records the request and admits it if fewer than limit requests from
// the same identity fall inside the trailing window.
func (s *SlidingWindow) Allow(_ context.Context, identity string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	cutoff := now.Add(-s.window)

	hist, ok := s.clients[identity]
	if !ok {
		hist = &clientHistory{}
		s.clients[identity] = hist
	}

	kept := hist.requests[:0]
	for _, t := range hist.requests {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	hist.requests = kept

	if len(hist.requests) >= s.limit {
		return false
	}

	hist.requests = append(hist.requests, now)
	hist.last = now
	return true
}

// Sweep evicts identities that have been idle longer than the TTL, keeping
// the map bounded by active clients rather than everything ever seen.
func (s *SlidingWindow) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	for identity, hist := range s.clients {
		if hist.last.Before(cutoff) {
			delete(s.clients, identity)
		}
	}
}

// Len reports the number of tracked identities.
func (s *SlidingWindow) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}
