package config

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Easing names accepted by speed.easing.
const (
	EasingOutQuad = "out_quad"
	EasingLinear  = "linear"
)

// Progression types accepted by difficulty.progression.type.
const (
	ProgressionRings = "rings"
	ProgressionTime  = "time"
	ProgressionNone  = "none"
)

// Validate checks the configuration and reports the first problem found.
// Loading always validates, so a misconfigured file fails at startup
// rather than during a run.
func (c Config) Validate() error {
	if err := c.HitZones.Validate(); err != nil {
		return err
	}
	if err := c.Score.Validate(); err != nil {
		return err
	}
	if err := c.Speed.Validate(); err != nil {
		return err
	}
	if err := c.Rings.Validate(); err != nil {
		return err
	}
	if err := c.Slowdown.Validate(); err != nil {
		return err
	}
	return c.Difficulty.Validate()
}

// Validate requires positive, strictly ascending radii.
func (h HitZoneConfig) Validate() error {
	radii := []struct {
		name  string
		value float64
	}{
		{"core", h.Core},
		{"inner", h.Inner},
		{"middle", h.Middle},
		{"outer", h.Outer},
	}
	prev := 0.0
	for i, r := range radii {
		if !finite(r.value) || r.value <= 0 {
			return invalid("hit_zones.%s must be a positive number, got %v", r.name, r.value)
		}
		if i > 0 && r.value <= prev {
			return invalid("hit_zones.%s (%v) must be greater than hit_zones.%s (%v)",
				r.name, r.value, radii[i-1].name, prev)
		}
		prev = r.value
	}
	return nil
}

// Validate requires non-negative points, ascending thresholds and a
// non-negative Outer penalty.
func (s ScoreConfig) Validate() error {
	if s.Points.Core < 0 || s.Points.Inner < 0 || s.Points.Middle < 0 || s.Points.Outer < 0 {
		return invalid("score.points must not be negative")
	}
	t := s.Thresholds
	if t.X2 < 1 {
		return invalid("score.multiplier_thresholds.x2 must be at least 1, got %d", t.X2)
	}
	if !(t.X2 < t.X3 && t.X3 < t.X4 && t.X4 < t.X5) {
		return invalid("score.multiplier_thresholds must be strictly ascending, got %d/%d/%d/%d",
			t.X2, t.X3, t.X4, t.X5)
	}
	if s.OuterStreakPenalty < 0 {
		return invalid("score.outer_streak_penalty must not be negative, got %d", s.OuterStreakPenalty)
	}
	return nil
}

// Validate requires min < max and a start speed above the minimum.
func (s SpeedConfig) Validate() error {
	for _, v := range []float64{s.Start, s.Min, s.Max, s.Deltas.Core, s.Deltas.Inner,
		s.Deltas.Middle, s.Deltas.Outer, s.Deltas.Miss, s.ChangeDuration} {
		if !finite(v) {
			return invalid("speed values must be finite numbers")
		}
	}
	if s.Min < 0 {
		return invalid("speed.min must not be negative, got %v", s.Min)
	}
	if s.Min >= s.Max {
		return invalid("speed.min (%v) must be less than speed.max (%v)", s.Min, s.Max)
	}
	if s.Start <= s.Min || s.Start > s.Max {
		return invalid("speed.start (%v) must be in (min, max] = (%v, %v]", s.Start, s.Min, s.Max)
	}
	if s.ChangeDuration < 0 {
		return invalid("speed.change_duration must not be negative, got %v", s.ChangeDuration)
	}
	switch s.Easing {
	case "", EasingOutQuad, EasingLinear:
	default:
		return invalid("speed.easing %q is not one of %q, %q", s.Easing, EasingOutQuad, EasingLinear)
	}
	return nil
}

// Validate checks spawn, drift and recycle bounds.
func (r RingConfig) Validate() error {
	if r.BaseRotationSpeed < 0 || r.MaxRotationSpeed < r.BaseRotationSpeed {
		return invalid("rings rotation speeds must satisfy 0 <= base (%v) <= max (%v)",
			r.BaseRotationSpeed, r.MaxRotationSpeed)
	}
	if r.RotationIncrement < 0 {
		return invalid("rings.rotation_increment must not be negative")
	}
	if r.SpawnAhead <= 0 {
		return invalid("rings.spawn_ahead must be positive, got %v", r.SpawnAhead)
	}
	if r.MinSpacing <= 0 || r.MaxSpacing < r.MinSpacing {
		return invalid("rings spacing must satisfy 0 < min (%v) <= max (%v)", r.MinSpacing, r.MaxSpacing)
	}
	if r.SpawnArea.MinX > r.SpawnArea.MaxX || r.SpawnArea.MinY > r.SpawnArea.MaxY {
		return invalid("rings.spawn_area min must not exceed max")
	}
	if r.MinMoveSpeed < 0 || r.MaxMoveSpeed < r.MinMoveSpeed {
		return invalid("rings move speed must satisfy 0 <= min <= max")
	}
	if r.MinPause < 0 || r.MaxPause < r.MinPause {
		return invalid("rings pause must satisfy 0 <= min <= max")
	}
	if r.RecycleBehind < 0 || r.PassTolerance < 0 {
		return invalid("rings.recycle_behind and rings.pass_tolerance must not be negative")
	}
	return nil
}

// Validate checks the slowdown modifier bounds.
func (s SlowdownConfig) Validate() error {
	if s.Rate < 0 {
		return invalid("slowdown.rate must not be negative, got %v", s.Rate)
	}
	if s.MinMultiplier < 0 || s.MinMultiplier > 1 {
		return invalid("slowdown.min_multiplier must be in [0, 1], got %v", s.MinMultiplier)
	}
	if s.RecoveryDuration < 0 {
		return invalid("slowdown.recovery_duration must not be negative")
	}
	return nil
}

// Validate checks the difficulty level and progression settings.
func (d DifficultyConfig) Validate() error {
	if d.InitialLevel < 0 || d.InitialLevel > 1 {
		return invalid("difficulty.initial_level must be in [0, 1], got %v", d.InitialLevel)
	}
	switch d.Progression.Type {
	case "", ProgressionRings, ProgressionTime, ProgressionNone:
	default:
		return invalid("difficulty.progression.type %q is not one of rings, time, none", d.Progression.Type)
	}
	if d.Progression.MaxAt < 0 {
		return invalid("difficulty.progression.max_at must not be negative")
	}
	if d.Scaling.SpacingReduction < 0 || d.Scaling.SpacingReduction > 1 {
		return invalid("difficulty.scaling.spacing_reduction must be in [0, 1], got %v", d.Scaling.SpacingReduction)
	}
	if d.Scaling.DriftMultiplier < 0 {
		return invalid("difficulty.scaling.drift_multiplier must not be negative")
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("config: %s: %w", fmt.Sprintf(format, args...), ErrInvalid)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
