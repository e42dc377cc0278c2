// Package storage provides SQLite-based persistence of finished runs and
// best scores per template.
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

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// Run is one finished play run of a template.
type Run struct {
	ID         int64
	TemplateID string
	Score      int
	Lives      int    // lives left when the run stopped
	Frames     uint64 // frames simulated
	Player     string // SSH user or local name; may be empty
	CreatedAt  time.Time
}

// TemplateStats contains aggregated statistics for a template.
type TemplateStats struct {
	TemplateID string
	Runs       int
	BestScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
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

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			template_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			lives INTEGER NOT NULL DEFAULT 0,
			frames INTEGER NOT NULL DEFAULT 0,
			player TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_template ON runs(template_id);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(template_id, score DESC);
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

// SaveRun records a finished run.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(r Run) (int64, error) {
	if r.TemplateID == "" {
		return 0, errors.New("storage: run without template id")
	}
	result, err := s.db.Exec(
		"INSERT INTO runs (template_id, score, lives, frames, player) VALUES (?, ?, ?, ?, ?)",
		r.TemplateID, r.Score, r.Lives, int64(r.Frames), r.Player,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopRuns retrieves the best N runs for the given template.
// Results are ordered by score descending, older runs first on ties.
func (s *Store) TopRuns(templateID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, template_id, score, lives, frames, player, created_at
		 FROM runs
		 WHERE template_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		templateID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var frames int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.TemplateID, &r.Score, &r.Lives, &frames, &r.Player, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Frames = uint64(frames)
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// BestScore returns the highest score for the given template.
// Returns 0 if no runs exist.
func (s *Store) BestScore(templateID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE template_id = ?",
		templateID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearRuns deletes all runs for the given template.
func (s *Store) ClearRuns(templateID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE template_id = ?", templateID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// Stats retrieves aggregated statistics for a template.
func (s *Store) Stats(templateID string) (*TemplateStats, error) {
	stats := &TemplateStats{TemplateID: templateID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), MAX(created_at)
		 FROM runs WHERE template_id = ?`,
		templateID,
	).Scan(&stats.Runs, &stats.BestScore, &stats.AvgScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get template stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// AllStats retrieves statistics for every template that has been played.
func (s *Store) AllStats() (map[string]*TemplateStats, error) {
	rows, err := s.db.Query(
		`SELECT template_id, COUNT(*), MAX(score), AVG(score), MAX(created_at)
		 FROM runs
		 GROUP BY template_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*TemplateStats)
	for rows.Next() {
		var st TemplateStats
		var lastPlayed any
		if err := rows.Scan(&st.TemplateID, &st.Runs, &st.BestScore, &st.AvgScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.TemplateID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles the driver returning either time.Time or a string.
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
