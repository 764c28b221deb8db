// Package storage provides SQLite-based persistence for runs and records.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/ringrun/internal/games/needle/sim"
)

//go:embed migrations/*.sql
var migrations embed.FS

// goose keeps its base FS and dialect in package globals.
var migrateMu sync.Mutex

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// RunEntry is one finished run as stored.
type RunEntry struct {
	ID             int64
	Mode           string
	Seed           int64
	Score          int
	BestStreak     int
	PeakMultiplier int
	Hits           sim.ZoneCounts
	TotalRings     int
	Accuracy       float64
	CoreAccuracy   float64
	Distance       float64
	Duration       float64
	CreatedAt      time.Time
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

	if err := migrate(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return &Store{db: db}, nil
}

// migrate applies all pending embedded migrations.
func migrate(ctx context.Context, db *sql.DB) error {
	migrateMu.Lock()
	defer migrateMu.Unlock()

	goose.SetLogger(goose.NopLogger())
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRun stores the final snapshot of a run under the given mode.
// Returns the ID of the inserted record.
func (s *Store) RecordRun(mode string, snap sim.Snapshot) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs
		 (mode, seed, score, best_streak, peak_multiplier,
		  core_hits, inner_hits, middle_hits, outer_hits, misses,
		  total_rings, accuracy, core_accuracy, distance, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		mode, snap.Seed, snap.Score, snap.BestStreak, snap.PeakMultiplier,
		snap.Hits.Core, snap.Hits.Inner, snap.Hits.Middle, snap.Hits.Outer, snap.Hits.Miss,
		snap.TotalRings, snap.Accuracy, snap.CoreAccuracy, snap.Distance, snap.Elapsed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const runColumns = `id, mode, seed, score, best_streak, peak_multiplier,
	core_hits, inner_hits, middle_hits, outer_hits, misses,
	total_rings, accuracy, core_accuracy, distance, duration_secs, created_at`

// TopRuns retrieves the top N runs for the given mode.
// Results are ordered by score descending, earlier runs first on ties.
func (s *Store) TopRuns(mode string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE mode = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var createdAt any
		if err := rows.Scan(
			&e.ID, &e.Mode, &e.Seed, &e.Score, &e.BestStreak, &e.PeakMultiplier,
			&e.Hits.Core, &e.Hits.Inner, &e.Hits.Middle, &e.Hits.Outer, &e.Hits.Miss,
			&e.TotalRings, &e.Accuracy, &e.CoreAccuracy, &e.Distance, &e.Duration, &createdAt,
		); err != nil {
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

// HighScore returns the highest score for the given mode.
// Returns 0 if no runs exist.
func (s *Store) HighScore(mode string) (int, error) {
	return s.maxColumn("score", mode)
}

// BestStreak returns the longest streak recorded for the given mode.
func (s *Store) BestStreak(mode string) (int, error) {
	return s.maxColumn("best_streak", mode)
}

// Records returns the high score and best streak for a mode in one call.
func (s *Store) Records(mode string) (highScore, bestStreak int, err error) {
	var hs, bs sql.NullInt64
	err = s.db.QueryRow(
		"SELECT MAX(score), MAX(best_streak) FROM runs WHERE mode = ?",
		mode,
	).Scan(&hs, &bs)
	if err != nil {
		return 0, 0, fmt.Errorf("storage: cannot query records: %w", err)
	}
	return int(hs.Int64), int(bs.Int64), nil
}

func (s *Store) maxColumn(column, mode string) (int, error) {
	var v sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX("+column+") FROM runs WHERE mode = ?",
		mode,
	).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query %s: %w", column, err)
	}
	if !v.Valid {
		return 0, nil
	}
	return int(v.Int64), nil
}

// ClearRuns deletes all runs for the given mode.
func (s *Store) ClearRuns(mode string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE mode = ?", mode)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
