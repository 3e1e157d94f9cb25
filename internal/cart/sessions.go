package cart

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type session struct {
	mu       sync.Mutex
	cart     *Cart
	lastSeen time.Time
}

// Sessions owns one Cart per browsing session. Carts are created on first
// use and discarded by Sweep once idle for longer than IdleTTL.
type Sessions struct {
	IdleTTL time.Duration
	Now     func() time.Time

	mu    sync.Mutex
	items map[string]*session
}

func NewSessions(idle time.Duration) *Sessions {
	return &Sessions{IdleTTL: idle, Now: time.Now, items: map[string]*session{}}
}

func NewSessionID() string { return uuid.NewString() }

func (s *Sessions) get(id string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.items == nil {
		s.items = map[string]*session{}
	}
	ss, ok := s.items[id]
	if !ok {
		ss = &session{cart: New()}
		s.items[id] = ss
	}
	ss.lastSeen = s.now()
	return ss
}

// With runs fn with exclusive access to the session's cart.
func (s *Sessions) With(id string, fn func(c *Cart) error) error {
	ss := s.get(id)
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return fn(ss.cart)
}

// End tears a session down immediately.
func (s *Sessions) End(id string) {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
}

// Sweep removes idle sessions and reports how many were dropped.
func (s *Sessions) Sweep() int {
	if s.IdleTTL <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.IdleTTL)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, ss := range s.items {
		if ss.lastSeen.Before(cutoff) {
			delete(s.items, id)
			n++
		}
	}
	return n
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Sessions) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
