package sim

import (
	"math"

	"github.com/vovakirdan/ringrun/internal/config"
	"github.com/vovakirdan/ringrun/internal/core"
)

// Evaluator decides which rings the needle passed during a tick and how
// accurately.
type Evaluator struct {
	zones     config.HitZoneConfig
	tolerance float64
}

// NewEvaluator creates an evaluator for the given zones. tolerance is how
// far past a ring the needle may already be and still be measured.
func NewEvaluator(zones config.HitZoneConfig, tolerance float64) *Evaluator {
	return &Evaluator{zones: zones, tolerance: tolerance}
}

// Evaluate resolves every unpassed ring the needle reached while moving
// from from to to, appending one result per ring to out in forward order.
// Rings must be ordered by Z.
//
// A ring whose Z lies in [from.Z, to.Z] is measured at the interpolated
// crossing point. A ring that was already behind the needle at the start
// of the tick is measured at the current position while within tolerance
// and is otherwise a miss at infinite distance.
func (e *Evaluator) Evaluate(from, to core.Vec3, rings []*Ring, out []HitResult) []HitResult {
	for _, r := range rings {
		if r.Passed {
			continue
		}
		if r.Position.Z > to.Z {
			break
		}

		var distance float64
		switch {
		case r.Position.Z >= from.Z:
			at := to
			if span := to.Z - from.Z; span > 0 {
				at = core.LerpVec(from, to, (r.Position.Z-from.Z)/span)
			}
			distance = core.PlanarDistance(at, r.Position)
		case to.Z-r.Position.Z <= e.tolerance:
			distance = core.PlanarDistance(to, r.Position)
		default:
			distance = math.Inf(1)
		}

		r.Passed = true
		out = append(out, HitResult{
			Zone:     Classify(distance, e.zones),
			Distance: distance,
			RingID:   r.ID,
		})
	}
	return out
}
