// internal/session/store.go
//
// In-memory store for active sessions, keyed by player|date|difficulty.
// Sessions live for the duration of a day's play; finished ones are kept so
// players can re-fetch their share grid. State is lost on restart — the
// durable record is the results store.

package session

import (
	"sync"

	"github.com/fusdle/go-server/internal/puzzle"
)

type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Get returns the session for a player/puzzle pair, if any.
func (s *Store) Get(playerID, date string, difficulty puzzle.Difficulty) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[storeKey(playerID, date, difficulty)]
	return sess, ok
}

// GetOrCreate reuses an existing session or starts one for the puzzle.
// The second return reports whether a new session was created.
func (s *Store) GetOrCreate(p *puzzle.Puzzle, playerID string) (*Session, bool) {
	k := storeKey(playerID, p.Date, p.Difficulty)

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[k]; ok {
		return sess, false
	}
	sess := New(p, playerID)
	s.sessions[k] = sess
	return sess, true
}

func storeKey(playerID, date string, difficulty puzzle.Difficulty) string {
	return playerID + "|" + date + "|" + string(difficulty)
}
