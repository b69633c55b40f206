// internal/results/store.go
//
// Durable results and streaks, backed by SQLite.
// Responsibilities:
//   - Record one result row per player/date/difficulty (idempotent insert).
//   - Maintain streak counters per player+difficulty inside the same
//     transaction: a win extends the streak, a loss or give-up resets it.
//   - Serve the daily leaderboard (fastest winning solves).
//
// Handlers depend on the Store interface so tests can substitute fakes.

package results

import (
	"context"
	"database/sql"

	"github.com/fusdle/go-server/internal/game"
	"github.com/fusdle/go-server/internal/puzzle"
)

// Result is one finished play of a daily puzzle.
type Result struct {
	PlayerID   string
	Date       string // YYYY-MM-DD
	Difficulty puzzle.Difficulty
	Status     game.Status // won | lost | gave_up
	Guesses    int
	HintsUsed  int
	ElapsedMs  int
}

// Streak mirrors one row of the streaks table.
type Streak struct {
	GamesPlayed int `json:"gamesPlayed"`
	Wins        int `json:"wins"`
	Streak      int `json:"streak"`
}

// LeaderboardRow is one leaderboard entry for a date+difficulty.
type LeaderboardRow struct {
	PlayerID  string `json:"playerId"`
	Guesses   int    `json:"guesses"`
	ElapsedMs int    `json:"elapsedMs"`
}

// Store is the persistence contract the HTTP layer consumes.
type Store interface {
	// Record persists a terminal result and bumps the streak counters.
	// Replays of an already-recorded result are ignored.
	Record(ctx context.Context, r Result) error

	// AlreadyPlayed reports whether a result exists for the triple.
	AlreadyPlayed(ctx context.Context, playerID, date string, difficulty puzzle.Difficulty) (bool, error)

	// StreakFor returns the player's counters; zero values when unseen.
	StreakFor(ctx context.Context, playerID string, difficulty puzzle.Difficulty) (Streak, error)

	// Leaderboard lists the fastest winning solves for a date+difficulty.
	Leaderboard(ctx context.Context, date string, difficulty puzzle.Difficulty, limit int) ([]LeaderboardRow, error)
}

// SQLStore implements Store over database/sql.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Record(ctx context.Context, r Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
        INSERT OR IGNORE INTO results
            (player_id, date, difficulty, status, guesses, hints_used, elapsed_ms)
        VALUES (?,?,?,?,?,?,?)`,
		r.PlayerID, r.Date, string(r.Difficulty), string(r.Status),
		r.Guesses, r.HintsUsed, r.ElapsedMs,
	)
	if err != nil {
		return err
	}

	// UNIQUE(player_id, date, difficulty) absorbed the insert → this result
	// was recorded before; do not double-count the streak.
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return tx.Commit()
	}

	if err := bumpStreak(ctx, tx, r); err != nil {
		return err
	}
	return tx.Commit()
}

// bumpStreak applies the read-modify-write on the streaks row within tx.
func bumpStreak(ctx context.Context, tx *sql.Tx, r Result) error {
	var gp, wins, streak int
	err := tx.QueryRowContext(ctx,
		`SELECT games_played, wins, streak FROM streaks WHERE player_id=? AND difficulty=?`,
		r.PlayerID, string(r.Difficulty),
	).Scan(&gp, &wins, &streak)
	if err != nil && err != sql.ErrNoRows {
		return err
	}

	gp++
	if r.Status == game.StatusWon {
		wins++
		streak++
	} else {
		streak = 0
	}

	_, err = tx.ExecContext(ctx, `
        INSERT INTO streaks (player_id, difficulty, games_played, wins, streak)
        VALUES (?,?,?,?,?)
        ON CONFLICT(player_id, difficulty)
        DO UPDATE SET games_played=excluded.games_played,
                      wins=excluded.wins,
                      streak=excluded.streak`,
		r.PlayerID, string(r.Difficulty), gp, wins, streak,
	)
	return err
}

func (s *SQLStore) AlreadyPlayed(ctx context.Context, playerID, date string, difficulty puzzle.Difficulty) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM results WHERE player_id=? AND date=? AND difficulty=?`,
		playerID, date, string(difficulty),
	).Scan(&cnt)
	return cnt > 0, err
}

func (s *SQLStore) StreakFor(ctx context.Context, playerID string, difficulty puzzle.Difficulty) (Streak, error) {
	var st Streak
	err := s.db.QueryRowContext(ctx,
		`SELECT games_played, wins, streak FROM streaks WHERE player_id=? AND difficulty=?`,
		playerID, string(difficulty),
	).Scan(&st.GamesPlayed, &st.Wins, &st.Streak)
	if err == sql.ErrNoRows {
		return Streak{}, nil
	}
	return st, err
}

func (s *SQLStore) Leaderboard(ctx context.Context, date string, difficulty puzzle.Difficulty, limit int) ([]LeaderboardRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT player_id, guesses, elapsed_ms
        FROM results
        WHERE date=? AND difficulty=? AND status='won'
        ORDER BY elapsed_ms ASC, guesses ASC, created_at ASC
        LIMIT ?`, date, string(difficulty), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LeaderboardRow, 0, limit)
	for rows.Next() {
		var r LeaderboardRow
		if err := rows.Scan(&r.PlayerID, &r.Guesses, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
