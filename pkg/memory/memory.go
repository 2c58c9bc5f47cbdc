// Package memory holds bounded per-session conversation history.
//
// History is in-memory only; nothing survives a process restart. Each
// session owns its own Log so concurrent sessions never see each other's
// turns.
package memory

import (
	"sync"
	"time"
)

// MaxTurns caps how many turns a session retains. The oldest turn is
// evicted first once the cap is reached.
const MaxTurns = 10

// Role identifies who produced a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is a single message in a conversation.
type Turn struct {
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Log is an ordered, bounded conversation history for one session.
// A Log must not be shared across goroutines without external
// serialization; the Store below hands out one Log per session.
type Log struct {
	turns []Turn
	cap   int
}

// NewLog creates a Log bounded at MaxTurns.
func NewLog() *Log {
	return &Log{cap: MaxTurns}
}

// Append adds a turn, evicting the oldest when the cap is exceeded.
func (l *Log) Append(turn Turn) {
	l.turns = append(l.turns, turn)
	if len(l.turns) > l.cap {
		// FIFO eviction; copy down so the backing array doesn't pin
		// evicted turns.
		copy(l.turns, l.turns[len(l.turns)-l.cap:])
		l.turns = l.turns[:l.cap]
	}
}

// Recent returns a copy of the retained turns, oldest first.
func (l *Log) Recent() []Turn {
	out := make([]Turn, len(l.turns))
	copy(out, l.turns)
	return out
}

// Len reports the number of retained turns.
func (l *Log) Len() int {
	return len(l.turns)
}

// Clear drops all turns.
func (l *Log) Clear() {
	l.turns = nil
}

// Store maps session IDs to their conversation logs.
type Store struct {
	mu   sync.RWMutex
	logs map[string]*Log
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{logs: make(map[string]*Log)}
}

// Session returns the log for the given session ID, creating it on first use.
func (s *Store) Session(id string) *Log {
	s.mu.RLock()
	log, ok := s.logs[id]
	s.mu.RUnlock()
	if ok {
		return log
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if log, ok := s.logs[id]; ok {
		return log
	}
	log = NewLog()
	s.logs[id] = log
	return log
}

// Drop removes a session's log entirely.
func (s *Store) Drop(id string) {
	s.mu.Lock()
	delete(s.logs, id)
	s.mu.Unlock()
}
