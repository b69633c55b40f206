// internal/session/session.go
//
// Per-player, per-puzzle attempt state.
// Responsibilities:
//   - Track guesses, verdict history, hint reveals, and terminal status.
//   - Drive state transitions: playing → won/lost/gave_up.
//   - Render the shareable result grid for finished sessions.
//
// A session owns a copy of the puzzle's answer and hints so play never goes
// back to the repository. The evaluator itself stays pure; all mutable state
// lives here.

package session

import (
	"errors"
	"sync"
	"time"

	"github.com/fusdle/go-server/internal/game"
	"github.com/fusdle/go-server/internal/puzzle"
)

// MaxAttempts bounds guesses per puzzle; the sixth wrong guess loses.
const MaxAttempts = 6

var (
	ErrFinished    = errors.New("session finished")
	ErrNotFinished = errors.New("session still in progress")
	ErrNoHintsLeft = errors.New("no hints left")
)

// Attempt is one submitted guess with its verdict. Indices are zero-based
// ordinals assigned here, not by the evaluator.
type Attempt struct {
	Index   int          `json:"index"`
	Guess   string       `json:"guess"`
	Verdict game.Verdict `json:"-"`
}

// Session is the mutable play state for one player on one puzzle.
// All exported methods are safe for concurrent use.
type Session struct {
	mu sync.Mutex

	PlayerID   string
	Date       string
	Difficulty puzzle.Difficulty

	answer     string
	emojis     string
	hints      []string
	attempts   []Attempt
	hintsUsed  int
	status     game.Status
	startedAt  time.Time
	finishedAt time.Time
}

// New starts a session for the given puzzle and player.
func New(p *puzzle.Puzzle, playerID string) *Session {
	return &Session{
		PlayerID:   playerID,
		Date:       p.Date,
		Difficulty: p.Difficulty,
		answer:     p.Answer,
		emojis:     p.Emojis,
		hints:      append([]string(nil), p.Hints...),
		status:     game.StatusPlaying,
		startedAt:  time.Now(),
	}
}

// ApplyGuess evaluates a guess, records the attempt, and advances state.
// Returns ErrFinished once the session has reached a terminal status.
func (s *Session) ApplyGuess(guess string) (game.Verdict, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status.Terminal() {
		return game.Verdict{}, ErrFinished
	}

	v := game.Evaluate(guess, s.answer)
	s.attempts = append(s.attempts, Attempt{
		Index:   len(s.attempts),
		Guess:   guess,
		Verdict: v,
	})

	if v.IsCorrect {
		s.finish(game.StatusWon)
	} else if len(s.attempts) >= MaxAttempts {
		s.finish(game.StatusLost)
	}
	return v, nil
}

// RevealHint returns the next unrevealed hint, counting it against the
// player's share grid.
func (s *Session) RevealHint() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status.Terminal() {
		return "", ErrFinished
	}
	if s.hintsUsed >= len(s.hints) {
		return "", ErrNoHintsLeft
	}
	h := s.hints[s.hintsUsed]
	s.hintsUsed++
	return h, nil
}

// GiveUp ends the session and reveals the answer.
func (s *Session) GiveUp() (answer string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status.Terminal() {
		return "", ErrFinished
	}
	s.finish(game.StatusGaveUp)
	return s.answer, nil
}

// ShareGrid renders the emoji result grid. Only valid once finished.
func (s *Session) ShareGrid() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.status.Terminal() {
		return "", ErrNotFinished
	}
	return game.BuildShareGrid(s.verdicts(), s.status, s.hintsUsed, len(s.hints)), nil
}

// Answer exposes the solution for terminal sessions only; while play is in
// progress it returns the empty string.
func (s *Session) Answer() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.status.Terminal() {
		return ""
	}
	return s.answer
}

// View is an immutable snapshot for rendering responses.
type View struct {
	Date           string            `json:"date"`
	Difficulty     puzzle.Difficulty `json:"difficulty"`
	Emojis         string            `json:"emojis"`
	Status         game.Status       `json:"status"`
	Attempts       int               `json:"attempts"`
	MaxAttempts    int               `json:"maxAttempts"`
	HintsUsed      int               `json:"hintsUsed"`
	TotalHints     int               `json:"totalHints"`
	PartialIndexes []int             `json:"partialMatchIndexes"`
	ElapsedMs      int               `json:"-"`
}

// Snapshot captures the current state under lock.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	elapsed := time.Since(s.startedAt)
	if s.status.Terminal() {
		elapsed = s.finishedAt.Sub(s.startedAt)
	}
	return View{
		Date:           s.Date,
		Difficulty:     s.Difficulty,
		Emojis:         s.emojis,
		Status:         s.status,
		Attempts:       len(s.attempts),
		MaxAttempts:    MaxAttempts,
		HintsUsed:      s.hintsUsed,
		TotalHints:     len(s.hints),
		PartialIndexes: game.PartialIndexes(s.verdicts()),
		ElapsedMs:      int(elapsed.Milliseconds()),
	}
}

// finish stamps the terminal status. Callers hold s.mu.
func (s *Session) finish(st game.Status) {
	s.status = st
	s.finishedAt = time.Now()
}

// verdicts collects the verdict history in attempt order. Callers hold s.mu.
func (s *Session) verdicts() []game.Verdict {
	out := make([]game.Verdict, len(s.attempts))
	for i, a := range s.attempts {
		out[i] = a.Verdict
	}
	return out
}
