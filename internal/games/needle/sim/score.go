package sim

import "github.com/vovakirdan/ringrun/internal/config"

// ScoreEngine turns hit results into points.
type ScoreEngine struct {
	cfg    config.ScoreConfig
	events emitter

	score   int
	high    int
	newHigh bool
}

// NewScoreEngine creates a score engine that reports to events.
func NewScoreEngine(cfg config.ScoreConfig, events emitter) *ScoreEngine {
	return &ScoreEngine{cfg: cfg, events: events}
}

// BasePoints returns the points a zone is worth before the multiplier.
func (s *ScoreEngine) BasePoints(z HitZone) int {
	switch z {
	case ZoneCore:
		return s.cfg.Points.Core
	case ZoneInner:
		return s.cfg.Points.Inner
	case ZoneMiddle:
		return s.cfg.Points.Middle
	case ZoneOuter:
		return s.cfg.Points.Outer
	default:
		return 0
	}
}

// Reset zeroes the run score. The high score is kept.
func (s *ScoreEngine) Reset() {
	s.score = 0
	s.newHigh = false
}

// SetHighScore seeds the persisted high score.
func (s *ScoreEngine) SetHighScore(n int) {
	s.high = max(n, 0)
}

// Consume awards points for r at the given multiplier and returns them.
// Misses award nothing.
func (s *ScoreEngine) Consume(r HitResult, multiplier int) int {
	if r.Zone == ZoneMiss {
		return 0
	}
	points := s.BasePoints(r.Zone) * max(multiplier, 1)
	s.score += points
	s.events.Push(Event{Kind: EventPointsEarned, Value: points, Multiplier: multiplier, Total: s.score})
	return points
}

// Finish closes the run and reports whether it set a new high score.
func (s *ScoreEngine) Finish() bool {
	if s.score <= s.high {
		return false
	}
	s.events.Push(Event{Kind: EventHighScoreBeaten, Value: s.score, Previous: s.high})
	s.high = s.score
	s.newHigh = true
	return true
}

// Score is the current run score.
func (s *ScoreEngine) Score() int { return s.score }

// HighScore is the best score across runs, including the current one.
func (s *ScoreEngine) HighScore() int { return max(s.high, s.score) }

// NewHigh reports whether the finished run set a new high score.
func (s *ScoreEngine) NewHigh() bool { return s.newHigh }
