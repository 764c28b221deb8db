package sim

import (
	"math"

	"github.com/vovakirdan/ringrun/internal/config"
	"github.com/vovakirdan/ringrun/internal/core"
)

// Needle is the player's needle: a forward position and a scalar speed
// that only changes through ApplySpeedDelta. Speed changes are eased over
// speed.change_duration.
type Needle struct {
	speedCfg config.SpeedConfig
	drift    config.DriftConfig
	ease     Ease

	position core.Vec3
	speed    Tween
	elapsed  float64
	dirX     float64
	dirY     float64
}

// NewNeedle creates a needle at the origin moving at the start speed.
func NewNeedle(speed config.SpeedConfig, drift config.DriftConfig) *Needle {
	n := &Needle{
		speedCfg: speed,
		drift:    drift,
		ease:     EaseByName(speed.Easing),
	}
	n.Reset(false, false)
	return n
}

// Reset puts the needle back at the origin with the start speed.
// The flips mirror the idle float per axis so runs with different seeds
// drift differently.
func (n *Needle) Reset(flipX, flipY bool) {
	n.position = core.Vec3{}
	n.speed = NewTween(n.speedCfg.Start, n.speedCfg.Start, 0, n.ease)
	n.elapsed = 0
	n.dirX, n.dirY = 1, 1
	if flipX {
		n.dirX = -1
	}
	if flipY {
		n.dirY = -1
	}
}

// Position returns the current needle position.
func (n *Needle) Position() core.Vec3 {
	return n.position
}

// Speed returns the current, possibly mid-transition, speed.
func (n *Needle) Speed() float64 {
	return core.ClampF(n.speed.Value(), n.speedCfg.Min, n.speedCfg.Max)
}

// TargetSpeed is the speed the needle is easing towards.
func (n *Needle) TargetSpeed() float64 {
	return n.speed.Target()
}

// ApplySpeedDelta changes the target speed by delta, clamped to the
// configured bounds. Deltas compose on the target, so a burst of hits in
// one transition window adds up exactly. It returns the target speeds
// before and after the change.
func (n *Needle) ApplySpeedDelta(delta float64) (from, to float64) {
	from = n.speed.Target()
	to = core.ClampF(from+delta, n.speedCfg.Min, n.speedCfg.Max)
	n.speed = NewTween(n.Speed(), to, n.speedCfg.ChangeDuration, n.ease)
	return from, to
}

// SettleSpeed finishes any running speed transition.
func (n *Needle) SettleSpeed() {
	n.speed.Finish()
}

// Advance moves the needle forward by speed*dt and updates its idle float.
func (n *Needle) Advance(dt float64) {
	if dt <= 0 {
		return
	}
	n.speed.Advance(dt)
	n.elapsed += dt
	n.position.Z += n.Speed() * dt
	n.position.X, n.position.Y = n.floatOffset()
}

// Elapsed is the simulated time since Reset.
func (n *Needle) Elapsed() float64 {
	return n.elapsed
}

func (n *Needle) floatOffset() (float64, float64) {
	x := math.Sin(n.elapsed*n.drift.FrequencyX) * n.drift.AmplitudeX * n.dirX
	y := math.Sin(n.elapsed*n.drift.FrequencyY) * n.drift.AmplitudeY * n.dirY
	return x, y
}
