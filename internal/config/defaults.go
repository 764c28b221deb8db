package config

import (
	_ "embed"
)

//go:embed defaults/ringrun.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

// DefaultConfig returns the hardcoded default configuration. It matches the
// embedded YAML and is used when the embedded file cannot be decoded.
func DefaultConfig() Config {
	return Config{
		HitZones: HitZoneConfig{
			Core:   0.3,
			Inner:  0.7,
			Middle: 1.2,
			Outer:  1.8,
		},
		Score: ScoreConfig{
			Points: ZonePoints{
				Core:   100,
				Inner:  50,
				Middle: 25,
				Outer:  10,
			},
			Thresholds: MultiplierThresholds{
				X2: 5,
				X3: 10,
				X4: 20,
				X5: 35,
			},
			OuterBreaksStreak:  false,
			OuterWeakensStreak: true,
			OuterStreakPenalty: 2,
		},
		Speed: SpeedConfig{
			Start: 10,
			Min:   0,
			Max:   30,
			Deltas: ZoneDeltas{
				Core:   2,
				Inner:  1,
				Middle: 0.5,
				Outer:  -1,
				Miss:   -3,
			},
			ChangeDuration: 0.3,
			Easing:         EasingOutQuad,
		},
		Rings: RingConfig{
			BaseRotationSpeed: 90,
			MaxRotationSpeed:  360,
			RotationIncrement: 2,
			SpawnAhead:        50,
			MinSpacing:        15,
			MaxSpacing:        25,
			SpawnArea: SpawnArea{
				MinX: -2,
				MaxX: 2,
				MinY: -1,
				MaxY: 2,
			},
			MinMoveSpeed:  0.5,
			MaxMoveSpeed:  2,
			MinPause:      0.2,
			MaxPause:      0.8,
			RecycleBehind: 20,
			PassTolerance: 0.5,
		},
		Slowdown: SlowdownConfig{
			Enabled:          true,
			Rate:             2,
			MinMultiplier:    0,
			RecoveryDuration: 0.3,
		},
		Drift: DriftConfig{
			AmplitudeX: 0.3,
			AmplitudeY: 0.2,
			FrequencyX: 1.5,
			FrequencyY: 2,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  ProgressionRings,
				MaxAt: 60,
			},
			Scaling: ScalingConfig{
				DriftMultiplier:  1.0,
				SpacingReduction: 0.5,
			},
		},
	}
}
