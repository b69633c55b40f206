// internal/game/evaluate.go
//
// Guess evaluation for Fusdle.
// Responsibilities:
//   - Decide correctness of a free-text guess against the canonical answer.
//   - Produce best-effort partial-credit feedback without false positives.
//
// Evaluate is a pure function: no I/O, no randomness, no shared state. It is
// total over any pair of strings (emoji, punctuation, mixed case included)
// and never panics; an empty guess degrades to MatchNone.
//
// Stages run in strict precedence order, each returning immediately:
//   1. exact match after lowercasing and stripping ALL whitespace
//      ("Brain Storm" == "brainstorm" — answers are often compound nouns
//      that players may or may not space)
//   2. same words, wrong order (multi-word answers only)
//   3. a guess word found verbatim among the answer's words
//   4. a guess word overlapping an answer word as a substring
//   5. no match — no feedback is fabricated without an identified token

package game

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Word-length thresholds for partial matching. Deliberate design constants
// (not derived from data): they suppress false positives from short function
// words like "a", "to", "of".
const (
	primaryWordLen = 4 // answer words at least this long are "primary" targets
	matchWordLen   = 3 // minimum guess-word length for any partial match
)

const wrongOrderFeedback = "So close! You have all the right words, but in the wrong order."

// Evaluate compares a raw guess against the puzzle answer and returns a
// Verdict. Inputs are expected to be non-empty and trimmed by the caller,
// but internal whitespace runs are tolerated.
//
// Ties are deterministic: the earliest qualifying guess word (left to right)
// wins, and within a guess word the earliest compatible answer word wins.
func Evaluate(guess, answer string) Verdict {
	// Stage 1: exact, ignoring case and every space character.
	gFlat := flatten(guess)
	aFlat := flatten(answer)
	if gFlat != "" && gFlat == aFlat {
		return Verdict{IsCorrect: true, MatchType: MatchExact}
	}

	guessWords := strings.Fields(strings.ToLower(guess))
	answerWords := strings.Fields(strings.ToLower(answer))

	// Stage 2: all the right words in the wrong order. Only meaningful for
	// multi-word answers, and only when the word counts line up exactly.
	// This outranks the weaker token stages: a full permutation must not be
	// reported as a generic substring hit.
	if len(answerWords) >= 2 && len(guessWords) == len(answerWords) &&
		sameWordsAnyOrder(guessWords, answerWords) {
		return Verdict{
			MatchType:       MatchWrongOrder,
			FeedbackMessage: wrongOrderFeedback,
		}
	}

	// Stage 3: verbatim word hit.
	if w := exactWordMatch(guessWords, answerWords); w != "" {
		return Verdict{
			MatchType:       MatchExactWord,
			MatchedWord:     w,
			FeedbackMessage: containsFeedback(w),
		}
	}

	// Stage 4: substring overlap.
	if w := substringMatch(guessWords, answerWords); w != "" {
		return Verdict{
			MatchType:       MatchSubstring,
			MatchedWord:     w,
			FeedbackMessage: containsFeedback(w),
		}
	}

	// Stage 5: nothing identifiable.
	return Verdict{MatchType: MatchNone}
}

// containsFeedback phrases the partial-match message around the token that
// triggered it.
func containsFeedback(word string) string {
	return fmt.Sprintf("You're on the right track! Your guess contains %q.", word)
}

// flatten lowercases s and removes every whitespace character.
func flatten(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// sameWordsAnyOrder reports whether a and b contain the same words
// (duplicates included) regardless of order. Inputs must be equal length.
func sameWordsAnyOrder(a, b []string) bool {
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

// exactWordMatch returns the first guess word found verbatim in the answer.
// Primary answer words (length >= primaryWordLen) are tried first with the
// stricter guess-word threshold; a second pass relaxes to any answer word
// and guess words of length >= matchWordLen.
func exactWordMatch(guessWords, answerWords []string) string {
	primary := make(map[string]struct{}, len(answerWords))
	all := make(map[string]struct{}, len(answerWords))
	for _, w := range answerWords {
		all[w] = struct{}{}
		if wordLen(w) >= primaryWordLen {
			primary[w] = struct{}{}
		}
	}

	for _, w := range guessWords {
		if wordLen(w) < primaryWordLen {
			continue
		}
		if _, ok := primary[w]; ok {
			return w
		}
	}
	for _, w := range guessWords {
		if wordLen(w) < matchWordLen {
			continue
		}
		if _, ok := all[w]; ok {
			return w
		}
	}
	return ""
}

// substringMatch returns the first guess word (length >= matchWordLen) that
// contains, or is contained by, an answer word of length >= primaryWordLen.
func substringMatch(guessWords, answerWords []string) string {
	for _, g := range guessWords {
		if wordLen(g) < matchWordLen {
			continue
		}
		for _, a := range answerWords {
			if wordLen(a) < primaryWordLen {
				continue
			}
			if strings.Contains(a, g) || strings.Contains(g, a) {
				return g
			}
		}
	}
	return ""
}

// wordLen counts runes, not bytes, so non-ASCII answers are thresholded
// sensibly.
func wordLen(s string) int { return utf8.RuneCountInString(s) }
