// internal/puzzle/memory.go
//
// In-memory implementation of the puzzle Repository.
// Holds the loaded content set keyed by date|difficulty. Concurrency-safe
// via RWMutex; the set is normally read-only after construction, but Add is
// exposed for tests and hot content reloads.

package puzzle

import (
	"context"
	"sync"
)

type Memory struct {
	mu      sync.RWMutex
	puzzles map[string]*Puzzle // keyed by date|difficulty
}

// NewMemoryRepository builds a Repository over a loaded content set.
// Later entries for the same date/difficulty override earlier ones.
func NewMemoryRepository(list []Puzzle) *Memory {
	m := &Memory{puzzles: make(map[string]*Puzzle, len(list))}
	for i := range list {
		p := list[i]
		m.puzzles[key(p.Date, p.Difficulty)] = &p
	}
	return m
}

// Add inserts or replaces one puzzle.
func (m *Memory) Add(p Puzzle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puzzles[key(p.Date, p.Difficulty)] = &p
}

// ByDate looks up the puzzle for a date/difficulty pair.
func (m *Memory) ByDate(ctx context.Context, date string, difficulty Difficulty) (*Puzzle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.puzzles[key(date, difficulty)]; ok {
		return p, nil
	}
	return nil, ErrNotFound
}

func key(date string, difficulty Difficulty) string {
	return date + "|" + string(difficulty)
}
