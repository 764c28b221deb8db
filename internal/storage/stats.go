package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/ringrun/internal/games/needle/sim"
)

// ModeStats contains aggregated lifetime statistics for a mode.
type ModeStats struct {
	Mode           string
	GamesCount     int
	HighScore      int
	AvgScore       float64
	TotalScore     int64
	TotalRings     int
	Hits           sim.ZoneCounts
	LongestStreak  int
	PeakMultiplier int
	PlayTime       float64
	Distance       float64
	FirstPlayed    time.Time
	LastPlayed     time.Time
}

// Accuracy is the lifetime percentage of rings passed through any zone.
func (m *ModeStats) Accuracy() float64 {
	return m.Hits.Accuracy()
}

// CoreAccuracy is the lifetime percentage of rings passed through the core.
func (m *ModeStats) CoreAccuracy() float64 {
	return m.Hits.CoreAccuracy()
}

const statsColumns = `COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0),
	COALESCE(SUM(total_rings), 0),
	COALESCE(SUM(core_hits), 0), COALESCE(SUM(inner_hits), 0), COALESCE(SUM(middle_hits), 0),
	COALESCE(SUM(outer_hits), 0), COALESCE(SUM(misses), 0),
	COALESCE(MAX(best_streak), 0), COALESCE(MAX(peak_multiplier), 0),
	COALESCE(SUM(duration_secs), 0), COALESCE(SUM(distance), 0),
	MIN(created_at), MAX(created_at)`

type scanner interface {
	Scan(dest ...any) error
}

func scanStats(row scanner, m *ModeStats, extra ...any) error {
	var first, last any
	dest := append(extra,
		&m.GamesCount, &m.HighScore, &m.AvgScore, &m.TotalScore,
		&m.TotalRings,
		&m.Hits.Core, &m.Hits.Inner, &m.Hits.Middle, &m.Hits.Outer, &m.Hits.Miss,
		&m.LongestStreak, &m.PeakMultiplier,
		&m.PlayTime, &m.Distance,
		&first, &last,
	)
	if err := row.Scan(dest...); err != nil {
		return err
	}
	m.FirstPlayed = parseTime(first)
	m.LastPlayed = parseTime(last)
	return nil
}

// GetModeStats retrieves aggregated statistics for a specific mode.
func (s *Store) GetModeStats(mode string) (*ModeStats, error) {
	stats := &ModeStats{Mode: mode}
	row := s.db.QueryRow(`SELECT `+statsColumns+` FROM runs WHERE mode = ?`, mode)
	if err := scanStats(row, stats); err != nil {
		return nil, fmt.Errorf("storage: cannot get mode stats: %w", err)
	}
	return stats, nil
}

// GetAllModeStats retrieves statistics for all modes that have been played.
func (s *Store) GetAllModeStats() (map[string]*ModeStats, error) {
	rows, err := s.db.Query(`SELECT mode, ` + statsColumns + ` FROM runs GROUP BY mode`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all mode stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ModeStats)
	for rows.Next() {
		var m ModeStats
		if err := scanStats(rows, &m, &m.Mode); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		stats[m.Mode] = &m
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// LastRun returns the most recent run of a mode, or nil if there is none.
func (s *Store) LastRun(mode string) (*RunEntry, error) {
	var e RunEntry
	var createdAt any
	err := s.db.QueryRow(
		`SELECT `+runColumns+` FROM runs WHERE mode = ? ORDER BY id DESC LIMIT 1`,
		mode,
	).Scan(
		&e.ID, &e.Mode, &e.Seed, &e.Score, &e.BestStreak, &e.PeakMultiplier,
		&e.Hits.Core, &e.Hits.Inner, &e.Hits.Middle, &e.Hits.Outer, &e.Hits.Miss,
		&e.TotalRings, &e.Accuracy, &e.CoreAccuracy, &e.Distance, &e.Duration, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query last run: %w", err)
	}
	e.CreatedAt = parseTime(createdAt)
	return &e, nil
}
