package edubridge_test

import (
	"testing"
	"time"

	"github.com/fwojciec/edubridge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_AppendPreservesOrder(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 2, 18, 12, 0, 0, 0, time.UTC)
	s := &edubridge.Session{Key: "s1", CreatedAt: now, UpdatedAt: now}

	s.Append(
		edubridge.Turn{Role: edubridge.RoleUser, Text: "q", Timestamp: now.Add(time.Second)},
		edubridge.Turn{Role: edubridge.RoleAssistant, Text: "a", Timestamp: now.Add(2 * time.Second)},
	)

	require.Equal(t, 2, s.Len())
	assert.Equal(t, edubridge.RoleUser, s.History[0].Role)
	assert.Equal(t, edubridge.RoleAssistant, s.History[1].Role)
	assert.Equal(t, now.Add(2*time.Second), s.UpdatedAt)
}

func TestSession_AppendUnboundedByDefault(t *testing.T) {
	t.Parallel()
	s := &edubridge.Session{Key: "s1"}
	for range 500 {
		s.Append(edubridge.Turn{Role: edubridge.RoleUser, Text: "x"})
	}
	assert.Equal(t, 500, s.Len())
}

func TestSession_AppendDropsOldestBeyondLimit(t *testing.T) {
	t.Parallel()
	s := &edubridge.Session{Key: "s1", Limit: 3}
	for _, text := range []string{"1", "2", "3", "4", "5"} {
		s.Append(edubridge.Turn{Role: edubridge.RoleUser, Text: text})
	}
	require.Equal(t, 3, s.Len())
	assert.Equal(t, "3", s.History[0].Text)
	assert.Equal(t, "5", s.History[2].Text)
}

func TestSession_AppendLimitKeepsWholeExchanges(t *testing.T) {
	t.Parallel()
	s := &edubridge.Session{Key: "s1", Limit: 3}
	for _, topic := range []string{"photosynthesis", "osmosis"} {
		s.Append(
			edubridge.Turn{Role: edubridge.RoleUser, Text: topic},
			edubridge.Turn{Role: edubridge.RoleAssistant, Text: "guide: " + topic},
		)
	}
	require.Equal(t, 2, s.Len())
	assert.Equal(t, edubridge.RoleUser, s.History[0].Role)
	assert.Equal(t, "osmosis", s.History[0].Text)
	assert.Equal(t, "guide: osmosis", s.History[1].Text)
}
