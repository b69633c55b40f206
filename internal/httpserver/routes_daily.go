// internal/httpserver/routes_daily.go
//
// HTTP routes for stateful daily play, mounted under /daily:
//   - POST /daily/new         → start or resume today's session
//   - POST /daily/guess       → submit a guess for today's session
//   - POST /daily/hint        → reveal the next hint
//   - POST /daily/giveup      → concede and reveal the answer
//   - GET  /daily/share       → share grid for a finished session
//   - GET  /daily/streak      → streak counters for this player
//   - GET  /daily/leaderboard → fastest solves for a date (default today)
//
// Sessions are held in memory for active play; terminal results are
// persisted best-effort (a storage hiccup never blocks the verdict).

package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/fusdle/go-server/internal/game"
	"github.com/fusdle/go-server/internal/puzzle"
	"github.com/fusdle/go-server/internal/results"
	"github.com/fusdle/go-server/internal/session"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv *Server
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{srv: s}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/guess", dd.handleGuess)
		r.Post("/hint", dd.handleHint)
		r.Post("/giveup", dd.handleGiveUp)
		r.Get("/share", dd.handleShare)
		r.Get("/streak", dd.handleStreak)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// todayPuzzle resolves today's puzzle for the difficulty in the query string.
// Writes the error response itself and returns nil on failure.
func (d *dailyServer) todayPuzzle(w http.ResponseWriter, r *http.Request) *puzzle.Puzzle {
	diff, err := puzzle.ParseDifficulty(r.URL.Query().Get("difficulty"))
	if err != nil {
		http.Error(w, `{"error":"bad_difficulty"}`, http.StatusBadRequest)
		return nil
	}
	p, err := d.srv.puzzles.ByDate(r.Context(), puzzle.DateKey(time.Now()), diff)
	if err != nil {
		d.srv.puzzleError(w, err)
		return nil
	}
	return p
}

// liveSession fetches the player's session for today's puzzle, or replies
// 409 when none exists ( /daily/new was never called ).
func (d *dailyServer) liveSession(w http.ResponseWriter, r *http.Request, p *puzzle.Puzzle, playerID string) *session.Session {
	sess, ok := d.srv.sessions.Get(playerID, p.Date, p.Difficulty)
	if !ok {
		http.Error(w, `{"error":"no_session"}`, http.StatusConflict)
		return nil
	}
	return sess
}

// -----------------------------------------------------------------------------
// /daily/new

// dailyNewRes is returned by /daily/new.
type dailyNewRes struct {
	session.View
	Played bool `json:"played"` // a persisted result already exists for today
}

// handleNew starts or resumes today's session. If a result is already on
// record for this player/date/difficulty, Played is set so clients can show
// the completed state instead of a board.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	p := d.todayPuzzle(w, r)
	if p == nil {
		return
	}
	pid := d.srv.ensurePlayerID(w, r)

	played, err := d.srv.results.AlreadyPlayed(r.Context(), pid, p.Date, p.Difficulty)
	if err != nil {
		log.Warn().Err(err).Msg("already-played lookup")
	}

	sess, _ := d.srv.sessions.GetOrCreate(p, pid)
	_ = json.NewEncoder(w).Encode(dailyNewRes{View: sess.Snapshot(), Played: played})
}

// -----------------------------------------------------------------------------
// /daily/guess

// dailyGuessReq/Res payloads for /daily/guess.
type dailyGuessReq struct {
	Guess string `json:"guess"`
}
type dailyGuessRes struct {
	Verdict  guessRes    `json:"verdict"`
	State    game.Status `json:"state"`
	Attempts int         `json:"attempts"`
	Answer   string      `json:"answer,omitempty"` // revealed on loss only
}

// handleGuess evaluates a guess inside today's session, advances its state,
// and persists the result when the session reaches a terminal status.
func (d *dailyServer) handleGuess(w http.ResponseWriter, r *http.Request) {
	p := d.todayPuzzle(w, r)
	if p == nil {
		return
	}
	pid := d.srv.ensurePlayerID(w, r)

	var req dailyGuessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	req.Guess = strings.TrimSpace(req.Guess)
	if req.Guess == "" {
		http.Error(w, `{"error":"missing_guess"}`, http.StatusBadRequest)
		return
	}

	sess := d.liveSession(w, r, p, pid)
	if sess == nil {
		return
	}

	v, err := sess.ApplyGuess(req.Guess)
	if err != nil {
		http.Error(w, `{"error":"finished"}`, http.StatusConflict)
		return
	}

	view := sess.Snapshot()
	if view.Status.Terminal() {
		d.persistResult(r, pid, sess, view)
	}

	res := dailyGuessRes{
		Verdict:  verdictResponse(v),
		State:    view.Status,
		Attempts: view.Attempts,
	}
	if view.Status == game.StatusLost {
		res.Answer = sess.Answer()
	}
	_ = json.NewEncoder(w).Encode(res)
}

// persistResult records a terminal session outcome. Best effort: failures
// are logged, never surfaced to the player.
func (d *dailyServer) persistResult(r *http.Request, pid string, sess *session.Session, view session.View) {
	err := d.srv.results.Record(r.Context(), results.Result{
		PlayerID:   pid,
		Date:       view.Date,
		Difficulty: view.Difficulty,
		Status:     view.Status,
		Guesses:    view.Attempts,
		HintsUsed:  view.HintsUsed,
		ElapsedMs:  view.ElapsedMs,
	})
	if err != nil {
		log.Warn().Err(err).
			Str("player", pid).
			Str("date", view.Date).
			Str("difficulty", string(view.Difficulty)).
			Msg("persist daily result")
	}
}

// -----------------------------------------------------------------------------
// /daily/hint

type hintRes struct {
	Hint       string `json:"hint"`
	HintsUsed  int    `json:"hintsUsed"`
	TotalHints int    `json:"totalHints"`
}

func (d *dailyServer) handleHint(w http.ResponseWriter, r *http.Request) {
	p := d.todayPuzzle(w, r)
	if p == nil {
		return
	}
	pid := d.srv.ensurePlayerID(w, r)
	sess := d.liveSession(w, r, p, pid)
	if sess == nil {
		return
	}

	h, err := sess.RevealHint()
	switch err {
	case nil:
	case session.ErrNoHintsLeft:
		http.Error(w, `{"error":"no_hints_left"}`, http.StatusConflict)
		return
	default:
		http.Error(w, `{"error":"finished"}`, http.StatusConflict)
		return
	}

	view := sess.Snapshot()
	_ = json.NewEncoder(w).Encode(hintRes{Hint: h, HintsUsed: view.HintsUsed, TotalHints: view.TotalHints})
}

// -----------------------------------------------------------------------------
// /daily/giveup

type giveUpRes struct {
	State  game.Status `json:"state"`
	Answer string      `json:"answer"`
}

func (d *dailyServer) handleGiveUp(w http.ResponseWriter, r *http.Request) {
	p := d.todayPuzzle(w, r)
	if p == nil {
		return
	}
	pid := d.srv.ensurePlayerID(w, r)
	sess := d.liveSession(w, r, p, pid)
	if sess == nil {
		return
	}

	ans, err := sess.GiveUp()
	if err != nil {
		http.Error(w, `{"error":"finished"}`, http.StatusConflict)
		return
	}
	d.persistResult(r, pid, sess, sess.Snapshot())
	_ = json.NewEncoder(w).Encode(giveUpRes{State: game.StatusGaveUp, Answer: ans})
}

// -----------------------------------------------------------------------------
// /daily/share

type shareRes struct {
	Grid string `json:"grid"`
}

// handleShare returns the emoji result grid for a finished session.
func (d *dailyServer) handleShare(w http.ResponseWriter, r *http.Request) {
	p := d.todayPuzzle(w, r)
	if p == nil {
		return
	}
	pid := d.srv.ensurePlayerID(w, r)
	sess := d.liveSession(w, r, p, pid)
	if sess == nil {
		return
	}

	grid, err := sess.ShareGrid()
	if err != nil {
		http.Error(w, `{"error":"not_finished"}`, http.StatusConflict)
		return
	}
	_ = json.NewEncoder(w).Encode(shareRes{Grid: grid})
}

// -----------------------------------------------------------------------------
// /daily/streak

func (d *dailyServer) handleStreak(w http.ResponseWriter, r *http.Request) {
	diff, err := puzzle.ParseDifficulty(r.URL.Query().Get("difficulty"))
	if err != nil {
		http.Error(w, `{"error":"bad_difficulty"}`, http.StatusBadRequest)
		return
	}
	pid := d.srv.ensurePlayerID(w, r)

	st, err := d.srv.results.StreakFor(r.Context(), pid, diff)
	if err != nil {
		log.Error().Err(err).Str("player", pid).Msg("streak lookup")
		http.Error(w, `{"error":"server_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(st)
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

type lbRes struct {
	Date       string                   `json:"date"`
	Difficulty puzzle.Difficulty        `json:"difficulty"`
	Top        []results.LeaderboardRow `json:"top"`
}

// handleLeaderboard returns the fastest winning solves for the given date
// (default today) and difficulty.
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	diff, err := puzzle.ParseDifficulty(r.URL.Query().Get("difficulty"))
	if err != nil {
		http.Error(w, `{"error":"bad_difficulty"}`, http.StatusBadRequest)
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		date = puzzle.DateKey(time.Now())
	} else if !puzzle.ValidDate(date) {
		http.Error(w, `{"error":"bad_date"}`, http.StatusBadRequest)
		return
	}

	rows, err := d.srv.results.Leaderboard(r.Context(), date, diff, 20)
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("leaderboard")
		http.Error(w, `{"error":"server_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Difficulty: diff, Top: rows})
}
