// internal/game/types.go
//
// Core type definitions for the Fusdle guess-evaluation engine.
// Defines:
//   - MatchType: classification of a single guess against the answer.
//   - Verdict: the immutable result of one evaluation call.
//   - Status: coarse lifecycle of a puzzle session (playing/won/lost/gave_up).

package game

// MatchType classifies how a guess relates to the puzzle answer.
// Possible values:
//   - "exact":       the guess is the answer (case/spacing-insensitive).
//   - "wrong-order": all the right words, permuted.
//   - "exact-word":  one guess word appears verbatim in the answer.
//   - "substring":   one guess word contains/is contained by an answer word.
//   - "none":        no partial signal at all.
type MatchType string

const (
	MatchExact      MatchType = "exact"
	MatchWrongOrder MatchType = "wrong-order"
	MatchExactWord  MatchType = "exact-word"
	MatchSubstring  MatchType = "substring"
	MatchNone       MatchType = "none"
)

// Verdict is the evaluator's sole output: constructed fresh per guess,
// never mutated or cached. Callers accumulate history themselves.
//
// Invariants:
//   - IsCorrect implies MatchType == MatchExact and an empty FeedbackMessage.
//   - MatchType == MatchNone implies an empty MatchedWord.
//
// Empty strings stand for "no value"; the transport layer maps them to
// JSON null.
type Verdict struct {
	IsCorrect       bool      // the guess solved the puzzle
	MatchType       MatchType // classification, see above
	MatchedWord     string    // the guess token that triggered a partial match
	FeedbackMessage string    // human-readable partial-match text
}

// Partial reports whether the verdict carries a partial-match signal
// (anything stronger than "none" short of solving the puzzle).
func (v Verdict) Partial() bool {
	return !v.IsCorrect && v.MatchType != MatchNone
}

// Status is the coarse state of one puzzle session.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
	StatusGaveUp  Status = "gave_up"
)

// Terminal reports whether the session is over.
func (s Status) Terminal() bool { return s != StatusPlaying }
