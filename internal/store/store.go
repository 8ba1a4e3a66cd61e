// internal/store/store.go
//
// SQL persistence for users and their game state.
// Four record types back the game:
//   - users:             account + current lives/score
//   - user_streaks:      one-to-one, lazily created on the first round
//   - user_highscores:   one-to-one, monotonically non-decreasing
//   - user_game_records: append-only, one row per finished game
//
// ApplyRound commits everything a single round changes as one
// transaction, so a failure never leaves lives updated but the streak
// stale.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bananagame/go-server/internal/game"
)

// ErrNotFound is returned when a requested user row does not exist.
var ErrNotFound = errors.New("not found")

// ErrUsernameTaken is returned by CreateUser on a duplicate username.
var ErrUsernameTaken = errors.New("username taken")

// User matches the users table shape.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Fullname     string    `json:"fullname"`
	Role         string    `json:"role"`
	Lives        int       `json:"lives"`
	Score        int       `json:"score"`
	CreatedAt    time.Time `json:"createdAt"`
}

// LeaderboardRow is one entry of the all-time top scores.
type LeaderboardRow struct {
	Rank     int    `json:"rank"`
	Username string `json:"username"`
	Score    int    `json:"score"`
}

// Stats summarizes a user's play history.
type Stats struct {
	Highscore   int `json:"highscore"`
	Streak      int `json:"streak"`
	GamesPlayed int `json:"gamesPlayed"`
}

// Store wraps the database handle with game-specific queries.
type Store struct {
	db *sql.DB
}

// New constructs a Store over an opened database.
func New(db *sql.DB) *Store { return &Store{db: db} }

// CreateUser inserts a new account with default lives/score.
func (s *Store) CreateUser(ctx context.Context, username, passwordHash, fullname string) (*User, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM users WHERE username = ?`, username).Scan(&exists)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("check username: %w", err)
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO users (username, password_hash, fullname, created_at)
		VALUES (?, ?, ?, ?)`,
		username, passwordHash, fullname, now.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &User{
		ID:           id,
		Username:     username,
		PasswordHash: passwordHash,
		Fullname:     fullname,
		Role:         "user",
		Lives:        game.StartingLives,
		Score:        0,
		CreatedAt:    now,
	}, nil
}

// GetUser loads a user by id. Returns ErrNotFound if the row is missing.
func (s *Store) GetUser(ctx context.Context, id int64) (*User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, fullname, role, lives, score, created_at
		FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// GetUserByUsername loads a user by (case-insensitive) username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, fullname, role, lives, score, created_at
		FROM users WHERE username = ?`, username)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*User, error) {
	var u User
	var created string
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Fullname,
		&u.Role, &u.Lives, &u.Score, &created)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &u, nil
}

// GetStreak returns the user's current streak; a missing row means 0.
func (s *Store) GetStreak(ctx context.Context, userID int64) (int, error) {
	var streak int
	err := s.db.QueryRowContext(ctx,
		`SELECT streak FROM user_streaks WHERE user_id = ?`, userID).Scan(&streak)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return streak, err
}

// GetHighscore returns the user's stored high score; a missing row means 0.
func (s *Store) GetHighscore(ctx context.Context, userID int64) (int, error) {
	var score int
	err := s.db.QueryRowContext(ctx,
		`SELECT score FROM user_highscores WHERE user_id = ?`, userID).Scan(&score)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return score, err
}

// ApplyRound persists everything one resolved round changed, in a single
// transaction, ordered lives → streak → highscore → game record.
//
// The high-score upsert only raises the stored value; an equal final
// score does not write. The game record insert happens only on game over.
func (s *Store) ApplyRound(ctx context.Context, userID int64, next game.State, fx game.Effects) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin round tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Lives and score live on the user row. Score changes every round that
	// is not a retry, so the row is written unconditionally.
	res, err := tx.ExecContext(ctx,
		`UPDATE users SET lives = ?, score = ? WHERE id = ?`,
		next.Lives, next.Score, userID)
	if err != nil {
		return fmt.Errorf("update lives/score: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	if fx.PersistStreak {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO user_streaks (user_id, streak) VALUES (?, ?)
			ON CONFLICT(user_id) DO UPDATE SET streak = excluded.streak`,
			userID, next.Streak); err != nil {
			return fmt.Errorf("upsert streak: %w", err)
		}
	}

	if fx.RecordGame {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO user_highscores (user_id, score) VALUES (?, ?)
			ON CONFLICT(user_id) DO UPDATE SET score = excluded.score
			WHERE excluded.score > user_highscores.score`,
			userID, fx.FinalScore); err != nil {
			return fmt.Errorf("upsert highscore: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO user_game_records (user_id, score, date_played)
			VALUES (?, ?, ?)`,
			userID, fx.FinalScore, time.Now().UTC().Format(time.RFC3339)); err != nil {
			return fmt.Errorf("insert game record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit round tx: %w", err)
	}
	return nil
}

// Leaderboard returns the top finished-game scores with usernames.
// limit <= 0 defaults to 10.
func (s *Store) Leaderboard(ctx context.Context, limit int) ([]LeaderboardRow, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT u.username, r.score
		FROM user_game_records r
		JOIN users u ON u.id = r.user_id
		ORDER BY r.score DESC, r.date_played ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LeaderboardRow, 0, limit)
	for rows.Next() {
		var r LeaderboardRow
		if err := rows.Scan(&r.Username, &r.Score); err != nil {
			return nil, err
		}
		r.Rank = len(out) + 1
		out = append(out, r)
	}
	return out, rows.Err()
}

// StatsFor aggregates a user's high score, streak, and games played.
func (s *Store) StatsFor(ctx context.Context, userID int64) (*Stats, error) {
	st := &Stats{}
	var err error
	if st.Highscore, err = s.GetHighscore(ctx, userID); err != nil {
		return nil, err
	}
	if st.Streak, err = s.GetStreak(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM user_game_records WHERE user_id = ?`, userID).
		Scan(&st.GamesPlayed); err != nil {
		return nil, err
	}
	return st, nil
}
