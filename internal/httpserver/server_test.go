package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fusdle/go-server/internal/puzzle"
	"github.com/fusdle/go-server/internal/results"
	"github.com/fusdle/go-server/internal/session"
)

// fakeResults is an in-memory results.Store for handler tests.
type fakeResults struct {
	recorded []results.Result
	streaks  map[string]results.Streak
}

func newFakeResults() *fakeResults {
	return &fakeResults{streaks: map[string]results.Streak{}}
}

func (f *fakeResults) Record(_ context.Context, r results.Result) error {
	f.recorded = append(f.recorded, r)
	return nil
}

func (f *fakeResults) AlreadyPlayed(_ context.Context, playerID, date string, difficulty puzzle.Difficulty) (bool, error) {
	for _, r := range f.recorded {
		if r.PlayerID == playerID && r.Date == date && r.Difficulty == difficulty {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeResults) StreakFor(_ context.Context, playerID string, difficulty puzzle.Difficulty) (results.Streak, error) {
	return f.streaks[playerID+"|"+string(difficulty)], nil
}

func (f *fakeResults) Leaderboard(_ context.Context, _ string, _ puzzle.Difficulty, _ int) ([]results.LeaderboardRow, error) {
	return []results.LeaderboardRow{}, nil
}

func newTestServer(t *testing.T) (*Server, *fakeResults) {
	t.Helper()
	today := puzzle.DateKey(time.Now())
	repo := puzzle.NewMemoryRepository([]puzzle.Puzzle{
		{Date: "2025-08-30", Difficulty: puzzle.DifficultyNormal, Emojis: "🏠🧹", Answer: "Housekeeping", Hints: []string{"Hotels offer it daily"}},
		{Date: today, Difficulty: puzzle.DifficultyNormal, Emojis: "🧠⛈️", Answer: "Brain Storm", Hints: []string{"Happens in meetings"}},
	})
	fake := newFakeResults()
	return New(repo, session.NewStore(), fake, "http://localhost:5173"), fake
}

func doJSON(t *testing.T, srv *Server, method, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("{}")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestStatelessGuessVerdicts(t *testing.T) {
	srv, _ := newTestServer(t)

	cases := []struct {
		name          string
		guess         string
		wantCorrect   bool
		wantMatchType string
		wantWordNull  bool
	}{
		{"exact despaced", "housekeeping", true, "exact", true},
		{"substring", "keeping house", false, "substring", false},
		{"none", "banana", false, "none", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, srv, http.MethodPost, "/puzzle/2025-08-30/guess", `{"guess":"`+tc.guess+`"}`, nil)
			require.Equal(t, http.StatusOK, rec.Code)

			var res struct {
				IsCorrect                 bool    `json:"isCorrect"`
				PartialMatchFeedback      *string `json:"partialMatchFeedback"`
				MatchedWord               *string `json:"matchedWord"`
				MatchType                 string  `json:"matchType"`
				HasCorrectWordsWrongOrder bool    `json:"hasCorrectWordsWrongOrder"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
			assert.Equal(t, tc.wantCorrect, res.IsCorrect)
			assert.Equal(t, tc.wantMatchType, res.MatchType)
			assert.False(t, res.HasCorrectWordsWrongOrder)
			if tc.wantWordNull {
				assert.Nil(t, res.MatchedWord)
				assert.Nil(t, res.PartialMatchFeedback)
			} else {
				require.NotNil(t, res.MatchedWord)
				require.NotNil(t, res.PartialMatchFeedback)
			}
		})
	}
}

func TestStatelessGuessWrongOrderFlag(t *testing.T) {
	srv, _ := newTestServer(t)
	today := puzzle.DateKey(time.Now())

	rec := doJSON(t, srv, http.MethodPost, "/puzzle/"+today+"/guess", `{"guess":"storm brain"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var res map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "wrong-order", res["matchType"])
	assert.Equal(t, true, res["hasCorrectWordsWrongOrder"])
	assert.Nil(t, res["matchedWord"])
}

func TestGuessErrorStatuses(t *testing.T) {
	srv, _ := newTestServer(t)

	// missing guess
	rec := doJSON(t, srv, http.MethodPost, "/puzzle/2025-08-30/guess", `{"guess":"  "}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// malformed body
	rec = doJSON(t, srv, http.MethodPost, "/puzzle/2025-08-30/guess", `{`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// malformed date
	rec = doJSON(t, srv, http.MethodPost, "/puzzle/yesterday/guess", `{"guess":"x"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// unknown difficulty
	rec = doJSON(t, srv, http.MethodPost, "/puzzle/2025-08-30/guess?difficulty=extreme", `{"guess":"x"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// no puzzle for the date
	rec = doJSON(t, srv, http.MethodPost, "/puzzle/1999-01-01/guess", `{"guess":"x"}`, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// wrong method
	rec = doJSON(t, srv, http.MethodGet, "/puzzle/2025-08-30/guess", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestTodayEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/puzzle/today", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var res map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "🧠⛈️", res["emojis"])
	assert.NotContains(t, rec.Body.String(), "Brain Storm", "answer must never leak")

	rec = doJSON(t, srv, http.MethodGet, "/puzzle/today?difficulty=hard", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, "no hard puzzle seeded for today")
}

func TestDailyFlow(t *testing.T) {
	srv, fake := newTestServer(t)

	// Start a session; capture the anon cookie for subsequent calls.
	rec := doJSON(t, srv, http.MethodPost, "/daily/new", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	var newRes map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &newRes))
	assert.Equal(t, "playing", newRes["status"])
	assert.Equal(t, false, newRes["played"])

	// Guessing without /daily/new for this player is a conflict.
	rec = doJSON(t, srv, http.MethodPost, "/daily/guess", `{"guess":"x"}`, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// A partial guess.
	rec = doJSON(t, srv, http.MethodPost, "/daily/guess", `{"guess":"storm chaser"}`, cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	var guessBody struct {
		Verdict struct {
			MatchType   string  `json:"matchType"`
			MatchedWord *string `json:"matchedWord"`
		} `json:"verdict"`
		State    string `json:"state"`
		Attempts int    `json:"attempts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &guessBody))
	assert.Equal(t, "exact-word", guessBody.Verdict.MatchType)
	assert.Equal(t, "playing", guessBody.State)
	assert.Equal(t, 1, guessBody.Attempts)

	// A hint.
	rec = doJSON(t, srv, http.MethodPost, "/daily/hint", "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	var hint map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hint))
	assert.Equal(t, "Happens in meetings", hint["hint"])

	// Share grid is unavailable mid-game.
	rec = doJSON(t, srv, http.MethodGet, "/daily/share", "", cookies)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// The winning guess.
	rec = doJSON(t, srv, http.MethodPost, "/daily/guess", `{"guess":"brainstorm"}`, cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &guessBody))
	assert.Equal(t, "won", guessBody.State)
	assert.Equal(t, 2, guessBody.Attempts)

	// Result persisted with hint usage.
	require.Len(t, fake.recorded, 1)
	assert.Equal(t, 2, fake.recorded[0].Guesses)
	assert.Equal(t, 1, fake.recorded[0].HintsUsed)

	// Share grid now renders: partial then win, one hint used.
	rec = doJSON(t, srv, http.MethodGet, "/daily/share", "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	var share map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &share))
	assert.Equal(t, "🟨🟩\n💡 1/1", share["grid"])

	// Further guesses are rejected.
	rec = doJSON(t, srv, http.MethodPost, "/daily/guess", `{"guess":"again"}`, cookies)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// /daily/new now reports the day as played.
	rec = doJSON(t, srv, http.MethodPost, "/daily/new", "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &newRes))
	assert.Equal(t, true, newRes["played"])
}

func TestDailyGiveUp(t *testing.T) {
	srv, fake := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/daily/new", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()

	rec = doJSON(t, srv, http.MethodPost, "/daily/giveup", "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)

	var res map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "gave_up", res["state"])
	assert.Equal(t, "Brain Storm", res["answer"])

	require.Len(t, fake.recorded, 1)
	assert.Equal(t, "gave_up", string(fake.recorded[0].Status))
}

func TestDailyStreakEndpoint(t *testing.T) {
	srv, fake := newTestServer(t)

	// Seed the cookie first so the streak lookup hits a known player.
	rec := doJSON(t, srv, http.MethodPost, "/daily/new", "", nil)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	pid := cookies[0].Value
	fake.streaks[pid+"|normal"] = results.Streak{GamesPlayed: 5, Wins: 4, Streak: 3}

	rec = doJSON(t, srv, http.MethodGet, "/daily/streak", "", cookies)
	require.Equal(t, http.StatusOK, rec.Code)

	var st results.Streak
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, 3, st.Streak)
}

func TestHealthAndNotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
}
