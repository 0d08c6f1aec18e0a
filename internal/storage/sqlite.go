// Package storage provides SQLite-based persistence for level runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/maze-collector/internal/level"
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// RunRecord is one persisted attempt at a level.
type RunRecord struct {
	ID         string
	LevelID    string
	Program    string
	Player     string
	Outcome    level.Outcome
	Grade      level.Grade
	BlocksUsed int
	Collected  float64
	CreatedAt  time.Time
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

	// Create parent directories
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
			id TEXT PRIMARY KEY,
			level_id TEXT NOT NULL,
			program TEXT NOT NULL DEFAULT '',
			player TEXT NOT NULL DEFAULT '',
			outcome TEXT NOT NULL,
			grade TEXT NOT NULL,
			grade_rank INTEGER NOT NULL,
			blocks_used INTEGER NOT NULL,
			collected REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level_id ON runs(level_id);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(level_id, grade_rank DESC, blocks_used ASC);
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

// SaveRun records an attempt. A new UUID is assigned when rec.ID is empty.
// Returns the record's ID.
func (s *Store) SaveRun(rec RunRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	_, err := s.db.Exec(
		`INSERT INTO runs
		 (id, level_id, program, player, outcome, grade, grade_rank, blocks_used, collected)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.LevelID,
		rec.Program,
		rec.Player,
		rec.Outcome.String(),
		rec.Grade.String(),
		int(rec.Grade),
		rec.BlocksUsed,
		rec.Collected,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return rec.ID, nil
}

// RecentRuns retrieves the latest runs for a level, newest first.
func (s *Store) RecentRuns(levelID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, level_id, program, player, outcome, grade, blocks_used, collected, created_at
		 FROM runs
		 WHERE level_id = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// BestRun returns the highest-graded run for a level, preferring fewer
// blocks on ties. Returns nil if the level has no runs.
func (s *Store) BestRun(levelID string) (*RunRecord, error) {
	row := s.db.QueryRow(
		`SELECT id, level_id, program, player, outcome, grade, blocks_used, collected, created_at
		 FROM runs
		 WHERE level_id = ?
		 ORDER BY grade_rank DESC, blocks_used ASC, created_at ASC
		 LIMIT 1`,
		levelID,
	)
	rec, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// PassedLevels returns the ids of levels with at least one passing run.
func (s *Store) PassedLevels() (map[string]level.Grade, error) {
	rows, err := s.db.Query(
		`SELECT level_id, MAX(grade_rank) FROM runs
		 WHERE grade_rank >= ?
		 GROUP BY level_id`,
		int(level.GradeAcceptable),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	defer rows.Close()

	passed := make(map[string]level.Grade)
	for rows.Next() {
		var id string
		var rank int
		if err := rows.Scan(&id, &rank); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		passed[id] = level.Grade(rank)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return passed, nil
}

// ClearRuns deletes all runs for the given level.
func (s *Store) ClearRuns(levelID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE level_id = ?", levelID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (RunRecord, error) {
	var rec RunRecord
	var outcome, grade string
	var createdAt any

	err := row.Scan(
		&rec.ID,
		&rec.LevelID,
		&rec.Program,
		&rec.Player,
		&outcome,
		&grade,
		&rec.BlocksUsed,
		&rec.Collected,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return rec, err
	}
	if err != nil {
		return rec, fmt.Errorf("storage: cannot scan row: %w", err)
	}

	// Unknown names from newer schemas read as unset/fail rather than erroring.
	rec.Outcome, _ = level.ParseOutcome(outcome)
	rec.Grade, _ = level.ParseGrade(grade)

	// Parse the datetime - handle both time.Time and string
	switch v := createdAt.(type) {
	case time.Time:
		rec.CreatedAt = v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			rec.CreatedAt = parsed
		}
	}
	return rec, nil
}
