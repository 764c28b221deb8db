package sim

import "github.com/vovakirdan/ringrun/internal/config"

// SpeedEngine applies per-zone speed changes to the needle and signals
// when the speed hits its minimum.
type SpeedEngine struct {
	cfg    config.SpeedConfig
	needle *Needle
	events emitter

	reachedMin bool
}

// NewSpeedEngine creates a speed engine driving needle.
func NewSpeedEngine(cfg config.SpeedConfig, needle *Needle, events emitter) *SpeedEngine {
	return &SpeedEngine{cfg: cfg, needle: needle, events: events}
}

// DeltaFor returns the speed change for a zone.
func (s *SpeedEngine) DeltaFor(z HitZone) float64 {
	switch z {
	case ZoneCore:
		return s.cfg.Deltas.Core
	case ZoneInner:
		return s.cfg.Deltas.Inner
	case ZoneMiddle:
		return s.cfg.Deltas.Middle
	case ZoneOuter:
		return s.cfg.Deltas.Outer
	default:
		return s.cfg.Deltas.Miss
	}
}

// Reset re-arms the minimum speed signal.
func (s *SpeedEngine) Reset() {
	s.reachedMin = false
}

// Consume applies the speed delta for r.
func (s *SpeedEngine) Consume(r HitResult) {
	from, to := s.needle.ApplySpeedDelta(s.DeltaFor(r.Zone))
	if to != from {
		s.events.Push(Event{Kind: EventSpeedChanged, Speed: to, PreviousSpeed: from})
	}
	if to <= s.cfg.Min && !s.reachedMin {
		s.reachedMin = true
		s.events.Push(Event{Kind: EventSpeedZero, Speed: to})
	}
}

// ReachedMin reports whether the minimum speed was reached since Reset.
// It stays set once raised.
func (s *SpeedEngine) ReachedMin() bool {
	return s.reachedMin
}
