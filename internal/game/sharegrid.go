// internal/game/sharegrid.go
//
// Shareable result grid: pure formatting over a session's verdict history.
// Each attempt renders as one emoji cell; the final attempt's cell encodes
// how the session ended.

package game

import (
	"fmt"
	"strings"
)

// Grid cells.
const (
	CellGreen  = "🟩" // winning guess
	CellYellow = "🟨" // partial match
	CellBlack  = "⬛" // no match
	CellX      = "❌" // gave up
)

// GridCells maps a verdict history plus the terminal status to cells:
//   - last attempt: green if won, X if gave up, black otherwise
//   - earlier attempts: yellow when the verdict carried any match signal,
//     black when it was MatchNone
func GridCells(verdicts []Verdict, status Status) []string {
	cells := make([]string, len(verdicts))
	for i, v := range verdicts {
		switch {
		case i == len(verdicts)-1 && status == StatusWon:
			cells[i] = CellGreen
		case i == len(verdicts)-1 && status == StatusGaveUp:
			cells[i] = CellX
		case i == len(verdicts)-1:
			cells[i] = CellBlack
		case v.MatchType != MatchNone:
			cells[i] = CellYellow
		default:
			cells[i] = CellBlack
		}
	}
	return cells
}

// BuildShareGrid renders the copy-paste result string for a finished session.
// When the puzzle offers hints, a usage line is appended so shared results
// reflect how much help was taken.
func BuildShareGrid(verdicts []Verdict, status Status, hintsUsed, totalHints int) string {
	var b strings.Builder
	b.WriteString(strings.Join(GridCells(verdicts, status), ""))
	if totalHints > 0 {
		b.WriteString(fmt.Sprintf("\n💡 %d/%d", hintsUsed, totalHints))
	}
	return b.String()
}

// PartialIndexes returns the zero-based attempt indices whose verdicts were
// partial matches, in submission order. Clients persist this list to rebuild
// the grid later.
func PartialIndexes(verdicts []Verdict) []int {
	out := []int{}
	for i, v := range verdicts {
		if v.Partial() {
			out = append(out, i)
		}
	}
	return out
}
