package ttlcache_test

import (
	"testing"
	"time"

	"github.com/fwojciec/edubridge"
	"github.com/fwojciec/edubridge/ttlcache"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestStore_GetOrCreateReturnsSameSession(t *testing.T) {
	t.Parallel()
	s := ttlcache.New(time.Hour)

	a := s.GetOrCreate("s1")
	a.Append(edubridge.Turn{Role: edubridge.RoleUser, Text: "hello"})
	b := s.GetOrCreate("s1")

	assert.Same(t, a, b)
	assert.Equal(t, 1, b.Len())
	assert.Equal(t, 1, s.Len())
}

func TestStore_DifferentKeyIsDistinct(t *testing.T) {
	t.Parallel()
	s := ttlcache.New(time.Hour)
	a := s.GetOrCreate("s1")
	b := s.GetOrCreate("s2")
	assert.NotSame(t, a, b)
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 2, s.Len())
}

func TestStore_Options(t *testing.T) {
	t.Parallel()
	at := time.Date(2026, 2, 18, 12, 0, 0, 0, time.UTC)
	s := ttlcache.New(time.Hour, ttlcache.WithMaxHistory(4), ttlcache.WithClock(clockwork.NewFakeClockAt(at)))
	sess := s.GetOrCreate("s1")
	assert.Equal(t, 4, sess.Limit)
	assert.Equal(t, at, sess.CreatedAt)
}

func TestStore_ExpiredSessionIsReplaced(t *testing.T) {
	t.Parallel()
	s := ttlcache.New(10 * time.Millisecond)
	a := s.GetOrCreate("s1")
	a.Append(edubridge.Turn{Role: edubridge.RoleUser, Text: "hello"})

	assert.Eventually(t, func() bool {
		return s.GetOrCreate("s1") != a
	}, time.Second, 20*time.Millisecond)
	assert.Equal(t, 0, s.GetOrCreate("s1").Len())
}
