// Package ttlcache implements an edubridge.SessionStore whose sessions
// expire after a period without access, backed by
// github.com/jellydator/ttlcache.
//
// It is the opt-in bounding policy for long-running processes; the default
// store in package memory never evicts.
package ttlcache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/fwojciec/edubridge"
	"github.com/jellydator/ttlcache/v3"
	"github.com/jonboulle/clockwork"
)

// Interface compliance check.
var _ edubridge.SessionStore = (*Store)(nil)

// Store keeps each session for ttl after its last access.
type Store struct {
	mu         sync.Mutex
	cache      *ttlcache.Cache[string, *edubridge.Session]
	maxHistory int
	clock      clockwork.Clock
	log        *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithMaxHistory bounds each new session to n turns. Zero means unbounded.
func WithMaxHistory(n int) Option {
	return func(s *Store) { s.maxHistory = n }
}

// WithClock sets the clock used for session creation times.
func WithClock(c clockwork.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithLogger sets the logger that reports evicted sessions.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// New returns a Store whose sessions expire ttl after their last access.
func New(ttl time.Duration, opts ...Option) *Store {
	s := &Store{
		cache: ttlcache.New(
			ttlcache.WithTTL[string, *edubridge.Session](ttl),
		),
		clock: clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log != nil {
		log := s.log
		s.cache.OnEviction(func(_ context.Context, reason ttlcache.EvictionReason, item *ttlcache.Item[string, *edubridge.Session]) {
			log.Info("session evicted", "session", item.Key(), "reason", reason, "history_len", item.Value().Len())
		})
	}
	return s
}

// GetOrCreate returns the live session for key, or registers a new empty
// one. Each call extends the session's lifetime.
func (s *Store) GetOrCreate(key string) *edubridge.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item := s.cache.Get(key); item != nil {
		return item.Value()
	}
	now := s.clock.Now()
	sess := &edubridge.Session{
		Key:       key,
		Limit:     s.maxHistory,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.cache.Set(key, sess, ttlcache.DefaultTTL)
	return sess
}

// DeleteExpired removes every expired session.
func (s *Store) DeleteExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.DeleteExpired()
}

// Len returns the number of sessions held, including expired sessions not
// yet removed.
func (s *Store) Len() int {
	return s.cache.Len()
}
