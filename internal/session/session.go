// Package session holds the in-memory conversation state for one chat
// session. Turns are append-only and ordered by occurrence; nothing is
// persisted beyond the life of the process.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Role identifies who produced a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is a single message in a conversation.
type Turn struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Sources   []string  `json:"sources,omitempty"`
}

// Session is an ordered, append-only sequence of turns.
type Session struct {
	id        string
	startedAt time.Time

	mu    sync.RWMutex
	turns []Turn
}

// New creates an empty session.
func New() *Session {
	return &Session{
		id:        uuid.New().String(),
		startedAt: time.Now(),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Append adds a turn to the end of the session. The timestamp is filled in
// if the caller left it zero.
func (s *Session) Append(t Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.Timestamp.IsZero() {
		t.Timestamp = time.Now()
	}
	s.turns = append(s.turns, t)
}

// Len returns the number of turns in the session.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.turns)
}

// Turns returns a copy of all turns in order.
func (s *Session) Turns() []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Recent returns a copy of the last limit turns in order.
func (s *Session) Recent(limit int) []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || len(s.turns) == 0 {
		return []Turn{}
	}

	start := 0
	if len(s.turns) > limit {
		start = len(s.turns) - limit
	}

	out := make([]Turn, len(s.turns)-start)
	copy(out, s.turns[start:])
	return out
}
