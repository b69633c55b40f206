// internal/puzzle/puzzle.go
//
// Puzzle model and repository contract.
// A puzzle is one day's emoji combination plus its canonical answer; the
// evaluator only ever reads the answer, everything else is presentation.

package puzzle

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Difficulty selects one of the parallel daily tracks.
type Difficulty string

const (
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty maps a query-string value onto a Difficulty.
// Empty input defaults to normal.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(s) {
	case "":
		return DifficultyNormal, nil
	case DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyHard:
		return DifficultyHard, nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// Puzzle is one scheduled entry of the content set.
type Puzzle struct {
	Date       string     `json:"date"`       // YYYY-MM-DD, UTC
	Difficulty Difficulty `json:"difficulty"` // defaults to normal when absent
	Emojis     string     `json:"emojis"`     // the combination shown to players
	Answer     string     `json:"answer"`     // canonical solution
	Hints      []string   `json:"hints"`      // revealed one at a time, in order
	Twist      bool       `json:"twist"`      // fusion-twist variant marker
}

// ErrNotFound is returned when no puzzle exists for a date/difficulty pair.
// The transport layer maps it to a 404.
var ErrNotFound = errors.New("puzzle not found")

// Repository resolves puzzles by date and difficulty.
// Implementations may be backed by memory (this package), SQL, etc.
type Repository interface {
	ByDate(ctx context.Context, date string, difficulty Difficulty) (*Puzzle, error)
}

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// ValidDate reports whether s is a well-formed date key.
func ValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
