// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/tuimath/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// highScoreKey is the single namespaced key holding the best score.
const highScoreKey = "tuimath.best"

// Store wraps SQLite access for game history and the high score.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			score INTEGER NOT NULL,
			rounds_completed INTEGER NOT NULL,
			rounds_played INTEGER NOT NULL,
			bubbles INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS high_score (
			key TEXT PRIMARY KEY,
			value INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_games_ended_at ON games(ended_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertGame stores a finished game session.
func (s *Store) InsertGame(ctx context.Context, stats model.GameStats) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO games (started_at, ended_at, score, rounds_completed, rounds_played, bubbles, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		stats.StartedAt.Format(time.RFC3339Nano),
		stats.EndedAt.Format(time.RFC3339Nano),
		stats.Score,
		stats.RoundsCompleted,
		stats.RoundsPlayed,
		stats.Bubbles,
		stats.DurationMs,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// BestScore returns the persisted high score. An absent row reads as 0.
func (s *Store) BestScore(ctx context.Context) (int, error) {
	var value int
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM high_score WHERE key = ?`, highScoreKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return value, nil
}

// RecordBestScore writes the score only on strict improvement and
// reports whether the stored value changed.
func (s *Store) RecordBestScore(ctx context.Context, score int) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO high_score (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value
		 WHERE excluded.value > high_score.value`,
		highScoreKey, score)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// ListGames returns game aggregates filtered by scores config, oldest
// first. The Last window is applied downstream by the report builder.
func (s *Store) ListGames(ctx context.Context, cfg model.ScoresConfig) ([]model.GameAggregate, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, ended_at, score, rounds_completed, rounds_played, duration_ms
		FROM games
		WHERE %s
		ORDER BY ended_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var games []model.GameAggregate
	for rows.Next() {
		var agg model.GameAggregate
		var endedAt string
		if err := rows.Scan(&agg.GameID, &endedAt, &agg.Score, &agg.RoundsCompleted, &agg.RoundsPlayed, &agg.DurationMs); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, err
		}
		agg.EndedAt = parsed
		games = append(games, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return games, nil
}
