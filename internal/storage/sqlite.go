// Package storage provides SQLite-based persistence for level highscores.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultTop is the number of entries shown on a highscore list.
const DefaultTop = 10

// Store manages the SQLite database connection for highscore persistence.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single highscore record.
// Lower Moves is better.
type ScoreEntry struct {
	ID        int64
	LevelID   string
	Name      string
	Moves     int
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := ExpandHome(dbPath)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(p string) (string, error) {
	if p == "" || p[0] != '~' {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id TEXT NOT NULL,
			name TEXT NOT NULL,
			moves INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_level_id ON scores(level_id);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(level_id, moves ASC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScore records a finished level under the given player name.
// The name is normalized first; an empty result fails with ErrEmptyName.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(levelID, name string, moves int) (int64, error) {
	name, err := NormalizeName(name)
	if err != nil {
		return 0, err
	}
	if moves < 0 {
		return 0, fmt.Errorf("storage: negative move count %d", moves)
	}

	result, err := s.db.Exec(
		"INSERT INTO scores (level_id, name, moves) VALUES (?, ?, ?)",
		levelID, name, moves,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the best N scores for the given level.
// Results are ordered by moves ascending; ties keep insertion order.
func (s *Store) TopScores(levelID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = DefaultTop
	}

	rows, err := s.db.Query(
		`SELECT id, level_id, name, moves, created_at
		 FROM scores
		 WHERE level_id = ?
		 ORDER BY moves ASC, id ASC
		 LIMIT ?`,
		levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.LevelID, &e.Name, &e.Moves, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// BestScore returns the lowest move count recorded for the level.
// The boolean is false if the level has no scores.
func (s *Store) BestScore(levelID string) (int, bool, error) {
	var moves sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MIN(moves) FROM scores WHERE level_id = ?",
		levelID,
	).Scan(&moves)

	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	if !moves.Valid {
		return 0, false, nil
	}

	return int(moves.Int64), true, nil
}

// ClearScores deletes all scores for the given level.
func (s *Store) ClearScores(levelID string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE level_id = ?", levelID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	LevelID    string
	Finishes   int
	BestMoves  int
	AvgMoves   float64
	LastPlayed time.Time
}

// GetLevelStats retrieves aggregated statistics for a specific level.
func (s *Store) GetLevelStats(levelID string) (*LevelStats, error) {
	stats := &LevelStats{LevelID: levelID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MIN(moves), 0), COALESCE(AVG(moves), 0)
		 FROM scores WHERE level_id = ?`,
		levelID,
	).Scan(&stats.Finishes, &stats.BestMoves, &stats.AvgMoves)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM scores WHERE level_id = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		levelID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// GetAllLevelStats retrieves statistics for every level that has scores.
func (s *Store) GetAllLevelStats() (map[string]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_id, COUNT(*), MIN(moves), AVG(moves), MAX(created_at)
		 FROM scores
		 GROUP BY level_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LevelStats)
	for rows.Next() {
		var st LevelStats
		var lastPlayed any
		if err := rows.Scan(&st.LevelID, &st.Finishes, &st.BestMoves, &st.AvgMoves, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.LevelID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles both time.Time and string datetime columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
