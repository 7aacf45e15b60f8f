package edubridge

import "time"

// Turn is one recorded unit of a conversation. Turns are values and are
// never modified after they are appended to a Session.
type Turn struct {
	Role      Role
	Text      string
	Timestamp time.Time
}

// Session is the conversation history for one session key.
//
// History is append-only and preserves insertion order. Limit bounds the
// number of retained turns; when it is exceeded the oldest turns are
// dropped, along with any assistant turns left leading the history, so
// retained history always opens on a request. Zero means unbounded, which
// is the default: memory grows with usage for as long as the process lives.
type Session struct {
	Key       string
	History   []Turn
	Limit     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Append adds turns to the end of the history.
func (s *Session) Append(turns ...Turn) {
	s.History = append(s.History, turns...)
	if s.Limit > 0 && len(s.History) > s.Limit {
		s.History = s.History[len(s.History)-s.Limit:]
		for len(s.History) > 0 && s.History[0].Role == RoleAssistant {
			s.History = s.History[1:]
		}
	}
	for _, t := range turns {
		if t.Timestamp.After(s.UpdatedAt) {
			s.UpdatedAt = t.Timestamp
		}
	}
}

// Len returns the number of turns in the history.
func (s *Session) Len() int { return len(s.History) }

// SessionStore resolves sessions by key.
//
// GetOrCreate returns the existing session for key, or registers and returns
// a new one with an empty history. Repeated calls with the same key return
// the same *Session.
type SessionStore interface {
	GetOrCreate(key string) *Session
}
