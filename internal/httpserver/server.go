// internal/httpserver/server.go
//
// HTTP wiring for the Fusdle backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Puzzle endpoints: GET /puzzle/today, POST /puzzle/{date}/guess
//     (the stateless guess-evaluation wire contract).
//   - Daily session endpoints mounted under /daily (routes_daily.go).
//   - Anonymous player cookie — Fusdle has no accounts; streaks and history
//     hang off a long-lived random cookie.
//
// Error semantics: an incorrect guess is a normal 200 verdict, never an
// error. 400 = malformed request, 404 = no such puzzle, 405 = wrong method,
// 500 = a collaborator (repository/storage) failed.

package httpserver

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/fusdle/go-server/internal/game"
	"github.com/fusdle/go-server/internal/puzzle"
	"github.com/fusdle/go-server/internal/results"
	"github.com/fusdle/go-server/internal/session"
)

// Server bundles router, puzzle repository, session store, and result store.
type Server struct {
	r        *chi.Mux
	puzzles  puzzle.Repository
	sessions *session.Store
	results  results.Store
}

// New constructs a Server, installs middleware, and registers routes.
// origin is the single allowed CORS origin (credentialed, so cookies work).
func New(puzzles puzzle.Repository, sessions *session.Store, res results.Store, origin string) *Server {
	s := &Server{r: chi.NewRouter(), puzzles: puzzles, sessions: sessions, results: res}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(cors(origin))

	// JSON 404/405 for easier debugging. Registered before the subrouters
	// mount so they inherit both handlers.
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})
	s.r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"method_not_allowed"}`, http.StatusMethodNotAllowed)
	})

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"fusdle-go","endpoints":["/health","GET /puzzle/today","POST /puzzle/{date}/guess","/daily/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// Puzzle endpoints
	s.r.Route("/puzzle", func(r chi.Router) {
		r.Get("/today", s.handleToday)
		r.Post("/{date}/guess", s.handleGuess)
	})

	// Daily session play
	s.mountDaily(s.r)

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin and answers preflights.
func cors(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------ PUZZLE -------------------------------------

// todayRes describes the current puzzle without leaking its answer.
type todayRes struct {
	Date       string            `json:"date"`
	Difficulty puzzle.Difficulty `json:"difficulty"`
	Emojis     string            `json:"emojis"`
	HintCount  int               `json:"hintCount"`
	Twist      bool              `json:"twist"`
}

// handleToday returns today's puzzle metadata for the requested difficulty.
func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	diff, err := puzzle.ParseDifficulty(r.URL.Query().Get("difficulty"))
	if err != nil {
		http.Error(w, `{"error":"bad_difficulty"}`, http.StatusBadRequest)
		return
	}
	p, err := s.puzzles.ByDate(r.Context(), puzzle.DateKey(time.Now()), diff)
	if err != nil {
		s.puzzleError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(todayRes{
		Date:       p.Date,
		Difficulty: p.Difficulty,
		Emojis:     p.Emojis,
		HintCount:  len(p.Hints),
		Twist:      p.Twist,
	})
}

// guessReq/guessRes payloads for POST /puzzle/{date}/guess.
//
// The response is a direct serialization of the evaluator's verdict;
// hasCorrectWordsWrongOrder duplicates matchType=="wrong-order" for older
// clients.
type guessReq struct {
	Guess string `json:"guess"`
}
type guessRes struct {
	IsCorrect                 bool    `json:"isCorrect"`
	PartialMatchFeedback      *string `json:"partialMatchFeedback"`
	MatchedWord               *string `json:"matchedWord"`
	MatchType                 string  `json:"matchType"`
	HasCorrectWordsWrongOrder bool    `json:"hasCorrectWordsWrongOrder"`
}

// verdictResponse maps a Verdict onto the wire shape, turning empty strings
// into JSON null.
func verdictResponse(v game.Verdict) guessRes {
	res := guessRes{
		IsCorrect:                 v.IsCorrect,
		MatchType:                 string(v.MatchType),
		HasCorrectWordsWrongOrder: v.MatchType == game.MatchWrongOrder,
	}
	if v.FeedbackMessage != "" {
		res.PartialMatchFeedback = &v.FeedbackMessage
	}
	if v.MatchedWord != "" {
		res.MatchedWord = &v.MatchedWord
	}
	return res
}

// handleGuess evaluates a guess against the puzzle for {date} without any
// session state. Incorrect guesses are 200s; see the error table above.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if !puzzle.ValidDate(date) {
		http.Error(w, `{"error":"bad_date"}`, http.StatusBadRequest)
		return
	}
	diff, err := puzzle.ParseDifficulty(r.URL.Query().Get("difficulty"))
	if err != nil {
		http.Error(w, `{"error":"bad_difficulty"}`, http.StatusBadRequest)
		return
	}

	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	req.Guess = strings.TrimSpace(req.Guess)
	if req.Guess == "" {
		http.Error(w, `{"error":"missing_guess"}`, http.StatusBadRequest)
		return
	}

	p, err := s.puzzles.ByDate(r.Context(), date, diff)
	if err != nil {
		s.puzzleError(w, err)
		return
	}

	_ = json.NewEncoder(w).Encode(verdictResponse(game.Evaluate(req.Guess, p.Answer)))
}

// puzzleError maps repository failures onto 404/500.
func (s *Server) puzzleError(w http.ResponseWriter, err error) {
	if errors.Is(err, puzzle.ErrNotFound) {
		http.Error(w, `{"error":"puzzle_not_found"}`, http.StatusNotFound)
		return
	}
	log.Error().Err(err).Msg("puzzle lookup")
	http.Error(w, `{"error":"server_error"}`, http.StatusInternalServerError)
}

// --------------------------- player identity -------------------------------

const anonCookieName = "fusdle_anon"

// ensurePlayerID returns the existing anon cookie value or sets a new one.
// This is the only player identity Fusdle has.
func (s *Server) ensurePlayerID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(anonCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	id := genID()
	http.SetCookie(w, &http.Cookie{
		Name:     anonCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(180 * 24 * time.Hour),
	})
	return id
}

// genID creates a 22-char URL-safe, crypto-random identifier (no padding).
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	s := base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(b[:])
	if len(s) > 22 {
		return s[:22]
	}
	return s
}
