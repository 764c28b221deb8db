package config

import (
	"fmt"
	"math"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies the config for a difficulty preset. Easy widens the
// hit zones and softens misses; hard narrows them and lets Outer hits
// break the streak.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	switch preset {
	case DifficultyEasy:
		scaleZones(&cfg.HitZones, 1.25)
		cfg.Speed.Deltas.Miss = math.Max(cfg.Speed.Deltas.Miss, -2)
	case DifficultyHard:
		scaleZones(&cfg.HitZones, 0.8)
		cfg.Score.OuterBreaksStreak = true
	}
}

func scaleZones(h *HitZoneConfig, k float64) {
	h.Core *= k
	h.Inner *= k
	h.Middle *= k
	h.Outer *= k
}

// DifficultyManager maps run progress to a difficulty level and scales
// ring layout parameters by it.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: math.Max(0, math.Min(1, cfg.InitialLevel)),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != ProgressionNone
}

// Level returns the difficulty level (0.0 to 1.0) for the number of rings
// spawned so far and the seconds elapsed in the run.
func (d *DifficultyManager) Level(rings int, elapsed float64) float64 {
	if !d.cfg.Enabled {
		return 0
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case ProgressionRings, "":
		progress = float64(rings) / maxAt
	case ProgressionTime:
		progress = elapsed / maxAt
	default:
		return d.initialLevel
	}
	progress = math.Max(0, math.Min(1, progress))

	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// MaxSpacing shrinks the upper spacing bound towards minSpacing as the
// level rises. The result never leaves [minSpacing, maxSpacing].
func (d *DifficultyManager) MaxSpacing(minSpacing, maxSpacing, level float64) float64 {
	span := maxSpacing - minSpacing
	return maxSpacing - span*level*d.cfg.Scaling.SpacingReduction
}

// DriftSpeed scales a ring drift speed by the level.
func (d *DifficultyManager) DriftSpeed(base, level float64) float64 {
	return base * (1.0 + level*d.cfg.Scaling.DriftMultiplier)
}
