package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// bestKey is the best_scores row owned by this game.
const bestKey = "paddle"

// SQLiteStore keeps the best score and the round history in a SQLite
// database. Uses the pure-Go modernc.org/sqlite driver to avoid CGO.
type SQLiteStore struct {
	mu sync.Mutex
	db *sql.DB
}

// Stats contains aggregated statistics over the round history.
type Stats struct {
	Rounds     int
	BestRound  int
	MaxLevel   int
	AvgScore   float64
	TotalScore int64
	TotalTicks int64
	LastPlayed time.Time
}

// OpenSQLite creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	dbPath, err := expandPath(dbPath)
	if err != nil {
		return nil, err
	}

	if err := ensureDir(dbPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &SQLiteStore{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS best_scores (
			name TEXT PRIMARY KEY,
			score INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL DEFAULT 1,
			ticks INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_score ON rounds(score DESC);
		CREATE INDEX IF NOT EXISTS idx_rounds_created ON rounds(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// ReadBest returns the stored best score. A missing row yields an error
// wrapping fs.ErrNotExist.
func (s *SQLiteStore) ReadBest() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var score int
	err := s.db.QueryRow("SELECT score FROM best_scores WHERE name = ?", bestKey).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("storage: no best score recorded: %w", fs.ErrNotExist)
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	if score < 0 {
		return 0, fmt.Errorf("%w: %d", ErrCorrupt, score)
	}
	return score, nil
}

// WriteBest overwrites the stored best score.
func (s *SQLiteStore) WriteBest(value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT INTO best_scores (name, score, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(name) DO UPDATE SET score = excluded.score, updated_at = excluded.updated_at`,
		bestKey, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save best score: %w", err)
	}
	return nil
}

// ClearBest deletes the best score row. Round history is kept.
func (s *SQLiteStore) ClearBest() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM best_scores WHERE name = ?", bestKey); err != nil {
		return fmt.Errorf("storage: cannot clear best score: %w", err)
	}
	return nil
}

// RecordRound stores a finished round.
// Returns the ID of the inserted record.
func (s *SQLiteStore) RecordRound(r Round) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.Exec(
		"INSERT INTO rounds (score, level, ticks) VALUES (?, ?, ?)",
		r.Score, r.Level, int64(r.Ticks), //#nosec G115 -- tick counts stay far below MaxInt64
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save round: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentRounds retrieves the most recent rounds, newest first.
func (s *SQLiteStore) RecentRounds(limit int) ([]Round, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRounds(
		`SELECT id, score, level, ticks, created_at
		 FROM rounds
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
}

// TopRounds retrieves the best N rounds.
// Results are ordered by score descending.
func (s *SQLiteStore) TopRounds(limit int) ([]Round, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRounds(
		`SELECT id, score, level, ticks, created_at
		 FROM rounds
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		limit,
	)
}

func (s *SQLiteStore) queryRounds(query string, args ...any) ([]Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var rounds []Round
	for rows.Next() {
		var r Round
		var ticks int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Score, &r.Level, &ticks, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Ticks = uint64(max(0, ticks)) //#nosec G115 -- clamped above
		r.CreatedAt = parseTimestamp(createdAt)
		rounds = append(rounds, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return rounds, nil
}

// Stats retrieves aggregated statistics over all recorded rounds.
func (s *SQLiteStore) Stats() (*Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := &Stats{}
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(MAX(level), 0),
		        COALESCE(AVG(score), 0), COALESCE(SUM(score), 0), COALESCE(SUM(ticks), 0),
		        MAX(created_at)
		 FROM rounds`,
	).Scan(&stats.Rounds, &stats.BestRound, &stats.MaxLevel, &stats.AvgScore,
		&stats.TotalScore, &stats.TotalTicks, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTimestamp(lastPlayed)

	return stats, nil
}

// ClearRounds deletes the round history.
func (s *SQLiteStore) ClearRounds() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM rounds"); err != nil {
		return fmt.Errorf("storage: cannot clear rounds: %w", err)
	}
	return nil
}

// parseTimestamp handles both time.Time and string datetimes from the driver.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
