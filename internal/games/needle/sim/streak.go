package sim

import "github.com/vovakirdan/ringrun/internal/config"

// MaxMultiplier is the highest multiplier tier.
const MaxMultiplier = 5

// MultiplierFor returns the multiplier tier for a streak: the highest tier
// whose threshold the streak has reached, or 1.
func MultiplierFor(streak int, t config.MultiplierThresholds) int {
	switch {
	case streak >= t.X5:
		return 5
	case streak >= t.X4:
		return 4
	case streak >= t.X3:
		return 3
	case streak >= t.X2:
		return 2
	default:
		return 1
	}
}

// IntensityFor maps a streak to a 0..1 value for visual and audio feedback.
func IntensityFor(streak int, t config.MultiplierThresholds) float64 {
	switch {
	case streak >= t.X5:
		return 1
	case streak >= t.X4:
		return 0.8
	case streak >= t.X3:
		return 0.6
	case streak >= t.X2:
		return 0.4
	case streak > 0:
		return 0.2
	default:
		return 0
	}
}

// StreakEngine tracks consecutive good hits and the multiplier they earn.
type StreakEngine struct {
	cfg    config.ScoreConfig
	events emitter

	streak         int
	multiplier     int
	runBest        int
	allTimeBest    int
	peakMultiplier int
	newBest        bool
}

// NewStreakEngine creates a streak engine that reports to events.
func NewStreakEngine(cfg config.ScoreConfig, events emitter) *StreakEngine {
	s := &StreakEngine{cfg: cfg, events: events}
	s.Reset()
	return s
}

// Reset starts a new run. The all-time best is kept.
func (s *StreakEngine) Reset() {
	s.streak = 0
	s.multiplier = 1
	s.runBest = 0
	s.peakMultiplier = 1
	s.newBest = false
}

// SetAllTimeBest seeds the persisted best streak.
func (s *StreakEngine) SetAllTimeBest(n int) {
	s.allTimeBest = max(n, 0)
}

// Consume applies one hit result.
func (s *StreakEngine) Consume(r HitResult) {
	next := s.streak
	switch {
	case r.Zone.Extends():
		next++
	case r.Zone == ZoneOuter:
		switch {
		case s.cfg.OuterBreaksStreak:
			next = 0
		case s.cfg.OuterWeakensStreak:
			next = max(0, next-s.cfg.OuterStreakPenalty)
		}
	default:
		next = 0
	}
	s.set(next)
}

func (s *StreakEngine) set(next int) {
	prev := s.streak
	if next == prev {
		return
	}
	s.streak = next
	s.runBest = max(s.runBest, next)
	s.events.Push(Event{Kind: EventStreakChanged, Value: next, Previous: prev})

	if m := MultiplierFor(next, s.cfg.Thresholds); m != s.multiplier {
		s.events.Push(Event{Kind: EventMultiplierChanged, Value: m, Previous: s.multiplier})
		s.multiplier = m
		s.peakMultiplier = max(s.peakMultiplier, m)
	}

	if prev > 0 && next == 0 {
		s.events.Push(Event{Kind: EventStreakBroken, Previous: prev})
	}
}

// Finish closes the run and reports whether the run's best streak beat
// the all-time best.
func (s *StreakEngine) Finish() bool {
	if s.runBest <= s.allTimeBest {
		return false
	}
	s.events.Push(Event{Kind: EventBestStreakBeaten, Value: s.runBest, Previous: s.allTimeBest})
	s.allTimeBest = s.runBest
	s.newBest = true
	return true
}

// Streak is the current streak.
func (s *StreakEngine) Streak() int { return s.streak }

// Multiplier is the current multiplier tier.
func (s *StreakEngine) Multiplier() int { return s.multiplier }

// BestStreak is the longest streak of the current run.
func (s *StreakEngine) BestStreak() int { return s.runBest }

// AllTimeBest is the best streak across runs.
func (s *StreakEngine) AllTimeBest() int { return max(s.allTimeBest, s.runBest) }

// PeakMultiplier is the highest multiplier reached this run.
func (s *StreakEngine) PeakMultiplier() int { return s.peakMultiplier }

// NewBest reports whether the finished run set a new best streak.
func (s *StreakEngine) NewBest() bool { return s.newBest }

// Intensity is the feedback intensity for the current streak.
func (s *StreakEngine) Intensity() float64 {
	return IntensityFor(s.streak, s.cfg.Thresholds)
}
