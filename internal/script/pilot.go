// Package script drives runs without a terminal: a pilot decides each tick
// whether to hold, either built in or written in Lua.
package script

import (
	"errors"
	"math"

	"github.com/vovakirdan/ringrun/internal/core"
	"github.com/vovakirdan/ringrun/internal/games/needle/sim"
)

// State is what a pilot sees before each tick.
type State struct {
	Tick       uint64
	Speed      float64
	Score      int
	Streak     int
	Multiplier int
	Holding    bool
	HasNext    bool
	NextGap    float64 // distance along Z to the next ring
	NextOffset float64 // planar distance from the needle to the next ring's centre
	NextDX     float64
	NextDY     float64
}

// Pilot decides whether to hold for the coming tick.
type Pilot interface {
	Decide(s State) (bool, error)
}

// IdlePilot never holds.
type IdlePilot struct{}

// Decide implements Pilot.
func (IdlePilot) Decide(State) (bool, error) { return false, nil }

// StateOf reads the pilot state from a run.
func StateOf(r *sim.Run) State {
	snap := r.Snapshot()
	s := State{
		Tick:       snap.Ticks,
		Speed:      snap.Speed,
		Score:      snap.Score,
		Streak:     snap.Streak,
		Multiplier: snap.Multiplier,
		Holding:    r.Holding(),
		NextGap:    math.Inf(1),
		NextOffset: math.Inf(1),
	}
	ring, ok := r.NextRing()
	if !ok {
		return s
	}
	needle := r.Needle()
	s.HasNext = true
	s.NextGap = ring.Position.Z - needle.Z
	s.NextOffset = core.PlanarDistance(needle, ring.Position)
	s.NextDX = ring.Position.X - needle.X
	s.NextDY = ring.Position.Y - needle.Y
	return s
}

// ErrNotRunning is returned by Drive when the run was never started.
var ErrNotRunning = errors.New("script: run is not running")

// Drive ticks r at a fixed dt, asking p before every tick, until the run
// ends or maxTicks ticks have passed. maxTicks <= 0 means no limit.
func Drive(r *sim.Run, p Pilot, dt float64, maxTicks int) (sim.Snapshot, error) {
	if r.Phase() != sim.PhaseRunning {
		return r.Snapshot(), ErrNotRunning
	}
	for i := 0; maxTicks <= 0 || i < maxTicks; i++ {
		if r.Phase() != sim.PhaseRunning {
			break
		}
		hold, err := p.Decide(StateOf(r))
		if err != nil {
			return r.Snapshot(), err
		}
		r.SetHold(hold)
		r.Tick(dt)
	}
	return r.Snapshot(), nil
}
