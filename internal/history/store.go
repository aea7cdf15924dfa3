// internal/history/store.go
//
// SQLite-backed record of finished games.
// Responsibilities:
//   - Record one row per finished game (console or HTTP).
//   - Per-player statistics: games played, wins, current and best win streak.
//   - Daily mode: detect a repeated daily game, rank today's winners.

package history

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/robalobadob/hangman/internal/game"
)

// timeLayout is fixed-width so timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000Z"

// Result is one finished game.
type Result struct {
	GameID       string    `json:"gameId"`
	Player       string    `json:"player"`
	Language     string    `json:"language"`
	Word         string    `json:"word"`
	Won          bool      `json:"won"`
	WrongGuesses int       `json:"wrongGuesses"`
	Guesses      string    `json:"guesses"`             // accepted letters in order
	DailyDate    string    `json:"dailyDate,omitempty"` // "YYYY-MM-DD" for daily games
	ElapsedMs    int64     `json:"elapsedMs"`
	StartedAt    time.Time `json:"startedAt"`
	FinishedAt   time.Time `json:"finishedAt"`
}

// Stats summarises a player's history.
type Stats struct {
	Player      string `json:"player"`
	GamesPlayed int    `json:"gamesPlayed"`
	Wins        int    `json:"wins"`
	Streak      int    `json:"streak"`     // consecutive wins ending with the latest game
	BestStreak  int    `json:"bestStreak"` // longest run of consecutive wins
}

// LBRow is one entry of a daily leaderboard.
type LBRow struct {
	Player       string `json:"player"`
	WrongGuesses int    `json:"wrongGuesses"`
	ElapsedMs    int64  `json:"elapsedMs"`
}

// Store reads and writes game results.
type Store struct{ db *sql.DB }

// NewStore wraps an already migrated database.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// FromGame builds the Result of a finished game.
// dailyDate is empty for regular games.
func FromGame(g *game.Game, player, dailyDate string, finishedAt time.Time) Result {
	return Result{
		GameID:       g.ID,
		Player:       player,
		Language:     string(g.Language),
		Word:         g.Answer,
		Won:          g.State() == game.StateWon,
		WrongGuesses: g.Wrong,
		Guesses:      strings.Join(g.Guessed(), ""),
		DailyDate:    dailyDate,
		ElapsedMs:    finishedAt.Sub(g.StartedAt).Milliseconds(),
		StartedAt:    g.StartedAt,
		FinishedAt:   finishedAt,
	}
}

// Record inserts r. A second daily result for the same player, language and
// date is ignored.
func (s *Store) Record(ctx context.Context, r Result) error {
	var daily any
	if r.DailyDate != "" {
		daily = r.DailyDate
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO games
            (id, player, language, word, won, wrong_guesses, guesses, daily_date, elapsed_ms, started_at, finished_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.GameID, r.Player, r.Language, r.Word, r.Won, r.WrongGuesses, r.Guesses, daily, r.ElapsedMs,
		r.StartedAt.UTC().Format(timeLayout), r.FinishedAt.UTC().Format(timeLayout),
	)
	return err
}

// Stats computes the statistics of player over the whole history.
func (s *Store) Stats(ctx context.Context, player string) (Stats, error) {
	st := Stats{Player: player}
	rows, err := s.db.QueryContext(ctx,
		`SELECT won FROM games WHERE player=? ORDER BY finished_at ASC, rowid ASC`, player)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var won bool
		if err := rows.Scan(&won); err != nil {
			return st, err
		}
		st.GamesPlayed++
		if !won {
			st.Streak = 0
			continue
		}
		st.Wins++
		st.Streak++
		if st.Streak > st.BestStreak {
			st.BestStreak = st.Streak
		}
	}
	return st, rows.Err()
}

// Recent returns player's latest games, newest first.
// Default limit is 10 if not specified.
func (s *Store) Recent(ctx context.Context, player string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, player, language, word, won, wrong_guesses, guesses,
               COALESCE(daily_date, ''), elapsed_ms, started_at, finished_at
        FROM games
        WHERE player=?
        ORDER BY finished_at DESC, rowid DESC
        LIMIT ?`, player, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Result, 0, limit)
	for rows.Next() {
		var (
			r                 Result
			started, finished string
		)
		if err := rows.Scan(&r.GameID, &r.Player, &r.Language, &r.Word, &r.Won, &r.WrongGuesses,
			&r.Guesses, &r.DailyDate, &r.ElapsedMs, &started, &finished); err != nil {
			return nil, err
		}
		r.StartedAt, _ = time.Parse(timeLayout, started)
		r.FinishedAt, _ = time.Parse(timeLayout, finished)
		out = append(out, r)
	}
	return out, rows.Err()
}

// DailyPlayed reports whether player already finished the daily game for
// language on date.
func (s *Store) DailyPlayed(ctx context.Context, player, language, date string) (bool, error) {
	var cnt int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM games WHERE player=? AND language=? AND daily_date=?`,
		player, language, date,
	).Scan(&cnt); err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// DailyLeaderboard lists the winners of date's daily game for language.
//
// - Ordered by wrong guesses ASC, then elapsed time ASC, then finish time ASC.
// - Default limit is 20 if not specified.
func (s *Store) DailyLeaderboard(ctx context.Context, language, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT player, wrong_guesses, elapsed_ms
        FROM games
        WHERE language=? AND daily_date=? AND won=1
        ORDER BY wrong_guesses ASC, elapsed_ms ASC, finished_at ASC
        LIMIT ?`, language, date, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.Player, &r.WrongGuesses, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
