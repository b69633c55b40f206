// internal/puzzle/content.go
//
// Puzzle content loading.
//
// Responsibilities:
//   - Load the scheduled puzzle set from a JSON file or fall back to the
//     embedded default set (ensures the server runs with no configuration).
//   - Normalize and validate entries: answers trimmed and required, dates
//     well-formed, difficulty defaulted to "normal".
//
// Content format: a JSON array of Puzzle objects, e.g.
//
//	[{"date":"2026-08-30","difficulty":"normal","emojis":"🧠⛈️",
//	  "answer":"Brainstorm","hints":["It happens in meetings"]}]
//
// Environment:
//   PUZZLES_FILE=/path/to/puzzles.json (the caller passes the value in;
//   empty means use the embedded defaults)

package puzzle

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

//go:embed default_puzzles.json
var embeddedPuzzles []byte

// Load reads the puzzle set from path, or from the embedded defaults when
// path is empty. Returns an error when no valid entries remain after
// normalization.
func Load(path string) ([]Puzzle, error) {
	raw := embeddedPuzzles
	if path != "" {
		var err error
		raw, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read puzzles file: %w", err)
		}
	}
	return parseContent(raw)
}

// parseContent decodes and normalizes a raw puzzle set.
// Entries with a missing answer, a malformed date, or an unknown difficulty
// are dropped rather than failing the whole set.
func parseContent(raw []byte) ([]Puzzle, error) {
	var in []Puzzle
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("decode puzzles: %w", err)
	}

	out := make([]Puzzle, 0, len(in))
	for _, p := range in {
		p.Answer = strings.TrimSpace(p.Answer)
		p.Emojis = strings.TrimSpace(p.Emojis)
		if p.Answer == "" || !ValidDate(p.Date) {
			continue
		}
		if p.Difficulty == "" {
			p.Difficulty = DifficultyNormal
		}
		if p.Difficulty != DifficultyNormal && p.Difficulty != DifficultyHard {
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("puzzles: no valid entries")
	}
	return out, nil
}
