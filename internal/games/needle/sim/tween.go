package sim

// Ease maps linear progress in [0, 1] to eased progress.
type Ease func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 { return t }

// OutQuad decelerates towards the end value.
func OutQuad(t float64) float64 { return t * (2 - t) }

// EaseByName returns the easing for a config name, OutQuad by default.
func EaseByName(name string) Ease {
	if name == "linear" {
		return Linear
	}
	return OutQuad
}

// Tween interpolates a scalar from one value to another over a fixed
// duration. It only moves when Advance is called.
type Tween struct {
	from     float64
	to       float64
	duration float64
	elapsed  float64
	ease     Ease
}

// NewTween starts a tween. A non-positive duration completes immediately.
func NewTween(from, to, duration float64, ease Ease) Tween {
	if ease == nil {
		ease = Linear
	}
	if duration < 0 {
		duration = 0
	}
	return Tween{from: from, to: to, duration: duration, ease: ease}
}

// Advance moves the tween forward by dt seconds and returns the new value.
func (t *Tween) Advance(dt float64) float64 {
	if dt > 0 && !t.Done() {
		t.elapsed += dt
		if t.elapsed > t.duration {
			t.elapsed = t.duration
		}
	}
	return t.Value()
}

// Value returns the current interpolated value.
func (t *Tween) Value() float64 {
	if t.Done() {
		return t.to
	}
	p := t.ease(t.elapsed / t.duration)
	return t.from + (t.to-t.from)*p
}

// Target is the value the tween ends at.
func (t *Tween) Target() float64 {
	return t.to
}

// Done reports whether the tween has reached its end value.
func (t *Tween) Done() bool {
	return t.elapsed >= t.duration
}

// Finish jumps to the end value.
func (t *Tween) Finish() {
	t.elapsed = t.duration
}
