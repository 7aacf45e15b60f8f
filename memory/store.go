// Package memory implements an in-process edubridge.SessionStore.
//
// Sessions live until the process exits. There is no eviction; a store
// created without WithMaxHistory keeps every turn of every session.
package memory

import (
	"sort"
	"sync"

	"github.com/fwojciec/edubridge"
	"github.com/jonboulle/clockwork"
)

// Interface compliance check.
var _ edubridge.SessionStore = (*Store)(nil)

// Store maps session keys to sessions.
type Store struct {
	mu         sync.Mutex
	sessions   map[string]*edubridge.Session
	maxHistory int
	clock      clockwork.Clock
}

// Option configures a Store.
type Option func(*Store)

// WithMaxHistory bounds each new session to n turns, dropping the oldest.
// Zero means unbounded.
func WithMaxHistory(n int) Option {
	return func(s *Store) { s.maxHistory = n }
}

// WithClock sets the clock used for session creation times.
func WithClock(c clockwork.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// New returns an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		sessions: make(map[string]*edubridge.Session),
		clock:    clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.maxHistory < 0 {
		s.maxHistory = 0
	}
	return s
}

// GetOrCreate returns the session for key, registering an empty one on
// first use.
func (s *Store) GetOrCreate(key string) *edubridge.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[key]; ok {
		return sess
	}
	now := s.clock.Now()
	sess := &edubridge.Session{
		Key:       key,
		Limit:     s.maxHistory,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.sessions[key] = sess
	return sess
}

// Get returns the session for key without creating it.
func (s *Store) Get(key string) (*edubridge.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[key]
	return sess, ok
}

// Keys returns the registered session keys in sorted order.
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.sessions))
	for k := range s.sessions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
