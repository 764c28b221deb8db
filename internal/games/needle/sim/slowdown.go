package sim

import "github.com/vovakirdan/ringrun/internal/config"

// Slowdown lets the player slow the next ring by holding input. It only
// touches the ring's SpeedMultiplier, which scales rotation and drift.
type Slowdown struct {
	cfg config.SlowdownConfig

	holding    bool
	target     *Ring
	recovery   Tween
	recovering bool
}

// NewSlowdown creates a slowdown modifier.
func NewSlowdown(cfg config.SlowdownConfig) *Slowdown {
	return &Slowdown{cfg: cfg}
}

// Reset releases the hold and forgets the target ring.
func (s *Slowdown) Reset() {
	s.holding = false
	s.target = nil
	s.recovering = false
}

// SetHold starts or stops slowing. Releasing eases the ring back to full
// speed over the recovery duration.
func (s *Slowdown) SetHold(on bool) {
	if on == s.holding {
		return
	}
	s.holding = on
	if !on && s.target != nil && s.target.SpeedMultiplier < 1 {
		s.recovery = NewTween(s.target.SpeedMultiplier, 1, s.cfg.RecoveryDuration, OutQuad)
		s.recovering = true
	}
}

// Holding reports whether the hold is active.
func (s *Slowdown) Holding() bool {
	return s.holding
}

// Multiplier is the current target ring's speed multiplier, 1 without one.
func (s *Slowdown) Multiplier() float64 {
	if s.target == nil {
		return 1
	}
	return s.target.SpeedMultiplier
}

// Advance updates the multiplier of next, the ring currently ahead.
// When the target changes the previous ring snaps back to full speed.
func (s *Slowdown) Advance(dt float64, next *Ring) {
	if next != s.target {
		if s.target != nil {
			s.target.SpeedMultiplier = 1
		}
		s.target = next
		s.recovering = false
	}
	if s.target == nil || !s.cfg.Enabled || dt <= 0 {
		return
	}

	switch {
	case s.holding:
		s.recovering = false
		s.target.SpeedMultiplier = max(s.cfg.MinMultiplier, s.target.SpeedMultiplier-s.cfg.Rate*dt)
	case s.recovering:
		s.target.SpeedMultiplier = s.recovery.Advance(dt)
		if s.recovery.Done() {
			s.recovering = false
		}
	}
}
