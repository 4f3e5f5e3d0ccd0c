package score

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const createBestTableSQL = `
CREATE TABLE IF NOT EXISTS best_score (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    score INTEGER NOT NULL
);
`

const createRoundsTableSQL = `
CREATE TABLE IF NOT EXISTS rounds (
    id TEXT PRIMARY KEY,
    score INTEGER NOT NULL,
    duration_ms INTEGER NOT NULL,
    played_at TIMESTAMP NOT NULL
);
`

// SQLite is a Store backed by a local sqlite database file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and ensures the
// schema exists.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open score database: %w", err)
	}
	for _, stmt := range []string{createBestTableSQL, createRoundsTableSQL} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("initialize score schema: %w", err)
		}
	}
	return &SQLite{db: db}, nil
}

// Best returns the persisted best score, or 0 when no row exists or the
// read fails.
func (s *SQLite) Best() int {
	var best int
	err := s.db.QueryRow("SELECT score FROM best_score WHERE id = 1").Scan(&best)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Printf("score: best read failed, defaulting to 0: %v", err)
		}
		return 0
	}
	return best
}

// SetBest upserts the single best-score row. Failures are logged and dropped.
func (s *SQLite) SetBest(best int) {
	_, err := s.db.Exec(
		"INSERT INTO best_score (id, score) VALUES (1, ?) ON CONFLICT(id) DO UPDATE SET score = excluded.score",
		best)
	if err != nil {
		log.Printf("score: best write failed: %v", err)
	}
}

// RecordRound inserts the finished round. Failures are logged and dropped.
func (s *SQLite) RecordRound(r Round) {
	_, err := s.db.Exec(
		"INSERT INTO rounds (id, score, duration_ms, played_at) VALUES (?, ?, ?, ?)",
		r.ID, r.Score, r.Duration.Milliseconds(), r.PlayedAt)
	if err != nil {
		log.Printf("score: round write failed: %v", err)
	}
}

// Rounds returns up to limit recorded rounds, most recent first.
func (s *SQLite) Rounds(limit int) ([]Round, error) {
	rows, err := s.db.Query(
		"SELECT id, score, duration_ms, played_at FROM rounds ORDER BY played_at DESC LIMIT ?",
		limit)
	if err != nil {
		return nil, fmt.Errorf("query rounds: %w", err)
	}
	defer rows.Close()

	var rounds []Round
	for rows.Next() {
		var r Round
		var durationMS int64
		if err := rows.Scan(&r.ID, &r.Score, &durationMS, &r.PlayedAt); err != nil {
			return nil, fmt.Errorf("scan round: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		rounds = append(rounds, r)
	}
	return rounds, rows.Err()
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
