// Package config provides YAML/TOML configuration loading, validation and
// difficulty presets for ringrun.
package config

// Config is the complete tuning of a run. It is immutable once loaded and
// shared by reference between runs.
type Config struct {
	HitZones   HitZoneConfig    `yaml:"hit_zones" toml:"hit_zones"`
	Score      ScoreConfig      `yaml:"score" toml:"score"`
	Speed      SpeedConfig      `yaml:"speed" toml:"speed"`
	Rings      RingConfig       `yaml:"rings" toml:"rings"`
	Slowdown   SlowdownConfig   `yaml:"slowdown" toml:"slowdown"`
	Drift      DriftConfig      `yaml:"drift" toml:"drift"`
	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
}

// HitZoneConfig holds the outer radius of each concentric zone.
// Radii must be strictly ascending.
type HitZoneConfig struct {
	Core   float64 `yaml:"core" toml:"core"`
	Inner  float64 `yaml:"inner" toml:"inner"`
	Middle float64 `yaml:"middle" toml:"middle"`
	Outer  float64 `yaml:"outer" toml:"outer"`
}

// ScoreConfig defines base points, multiplier tiers and the Outer-hit streak rule.
type ScoreConfig struct {
	Points             ZonePoints           `yaml:"points" toml:"points"`
	Thresholds         MultiplierThresholds `yaml:"multiplier_thresholds" toml:"multiplier_thresholds"`
	OuterBreaksStreak  bool                 `yaml:"outer_breaks_streak" toml:"outer_breaks_streak"`
	OuterWeakensStreak bool                 `yaml:"outer_weakens_streak" toml:"outer_weakens_streak"`
	OuterStreakPenalty int                  `yaml:"outer_streak_penalty" toml:"outer_streak_penalty"`
}

// ZonePoints are the base points awarded per zone. Misses never score.
type ZonePoints struct {
	Core   int `yaml:"core" toml:"core"`
	Inner  int `yaml:"inner" toml:"inner"`
	Middle int `yaml:"middle" toml:"middle"`
	Outer  int `yaml:"outer" toml:"outer"`
}

// MultiplierThresholds is the streak needed to reach each multiplier tier.
type MultiplierThresholds struct {
	X2 int `yaml:"x2" toml:"x2"`
	X3 int `yaml:"x3" toml:"x3"`
	X4 int `yaml:"x4" toml:"x4"`
	X5 int `yaml:"x5" toml:"x5"`
}

// SpeedConfig bounds the needle speed and sets the per-zone speed deltas.
type SpeedConfig struct {
	Start          float64    `yaml:"start" toml:"start"`
	Min            float64    `yaml:"min" toml:"min"`
	Max            float64    `yaml:"max" toml:"max"`
	Deltas         ZoneDeltas `yaml:"deltas" toml:"deltas"`
	ChangeDuration float64    `yaml:"change_duration" toml:"change_duration"` // seconds, 0 = immediate
	Easing         string     `yaml:"easing" toml:"easing"`                   // "out_quad" or "linear"
}

// ZoneDeltas is the speed change applied for each hit zone.
type ZoneDeltas struct {
	Core   float64 `yaml:"core" toml:"core"`
	Inner  float64 `yaml:"inner" toml:"inner"`
	Middle float64 `yaml:"middle" toml:"middle"`
	Outer  float64 `yaml:"outer" toml:"outer"`
	Miss   float64 `yaml:"miss" toml:"miss"`
}

// RingConfig controls ring rotation, spawning, drift and recycling.
type RingConfig struct {
	BaseRotationSpeed float64 `yaml:"base_rotation_speed" toml:"base_rotation_speed"` // degrees per second
	MaxRotationSpeed  float64 `yaml:"max_rotation_speed" toml:"max_rotation_speed"`
	RotationIncrement float64 `yaml:"rotation_increment" toml:"rotation_increment"` // added per spawned ring

	SpawnAhead float64   `yaml:"spawn_ahead" toml:"spawn_ahead"`
	MinSpacing float64   `yaml:"min_spacing" toml:"min_spacing"`
	MaxSpacing float64   `yaml:"max_spacing" toml:"max_spacing"`
	SpawnArea  SpawnArea `yaml:"spawn_area" toml:"spawn_area"`

	MinMoveSpeed float64 `yaml:"min_move_speed" toml:"min_move_speed"`
	MaxMoveSpeed float64 `yaml:"max_move_speed" toml:"max_move_speed"`
	MinPause     float64 `yaml:"min_pause" toml:"min_pause"`
	MaxPause     float64 `yaml:"max_pause" toml:"max_pause"`

	RecycleBehind float64 `yaml:"recycle_behind" toml:"recycle_behind"`
	PassTolerance float64 `yaml:"pass_tolerance" toml:"pass_tolerance"`
}

// SpawnArea is the XY rectangle ring centers are placed in.
type SpawnArea struct {
	MinX float64 `yaml:"min_x" toml:"min_x"`
	MaxX float64 `yaml:"max_x" toml:"max_x"`
	MinY float64 `yaml:"min_y" toml:"min_y"`
	MaxY float64 `yaml:"max_y" toml:"max_y"`
}

// SlowdownConfig tunes the hold-to-slow modifier on the next ring.
type SlowdownConfig struct {
	Enabled          bool    `yaml:"enabled" toml:"enabled"`
	Rate             float64 `yaml:"rate" toml:"rate"` // multiplier lost per second of hold
	MinMultiplier    float64 `yaml:"min_multiplier" toml:"min_multiplier"`
	RecoveryDuration float64 `yaml:"recovery_duration" toml:"recovery_duration"`
}

// DriftConfig is the needle's idle float around the center line.
type DriftConfig struct {
	AmplitudeX float64 `yaml:"amplitude_x" toml:"amplitude_x"`
	AmplitudeY float64 `yaml:"amplitude_y" toml:"amplitude_y"`
	FrequencyX float64 `yaml:"frequency_x" toml:"frequency_x"`
	FrequencyY float64 `yaml:"frequency_y" toml:"frequency_y"`
}

// DifficultyConfig defines how ring layout tightens as a run goes on.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled" toml:"enabled"`
	InitialLevel float64           `yaml:"initial_level" toml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression" toml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling" toml:"scaling"`
}

// ProgressionConfig defines what drives the difficulty level up.
type ProgressionConfig struct {
	Type  string `yaml:"type" toml:"type"`     // "rings", "time" or "none"
	MaxAt int    `yaml:"max_at" toml:"max_at"` // rings spawned or seconds at max difficulty
}

// ScalingConfig defines the magnitude of difficulty changes at level 1.0.
type ScalingConfig struct {
	DriftMultiplier  float64 `yaml:"drift_multiplier" toml:"drift_multiplier"`   // added to ring drift speed
	SpacingReduction float64 `yaml:"spacing_reduction" toml:"spacing_reduction"` // fraction of the spacing range removed
}
