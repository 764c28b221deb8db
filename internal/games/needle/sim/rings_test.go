package sim

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/ringrun/internal/config"
	"github.com/vovakirdan/ringrun/internal/core"
)

func newTestRingSet(seed int64) *RingSet {
	cfg := config.DefaultConfig()
	cfg.Difficulty.Enabled = false
	s := NewRingSet(cfg.Rings, cfg.Difficulty)
	s.Reset(rand.New(rand.NewSource(seed)))
	return s
}

func TestRingSetSpawnsAhead(t *testing.T) {
	cfg := config.DefaultConfig().Rings
	s := newTestRingSet(42)
	s.Advance(0, core.Vec3{})

	rings := s.Rings()
	if len(rings) == 0 {
		t.Fatal("no rings spawned")
	}
	last := rings[len(rings)-1].Position.Z
	if last < cfg.SpawnAhead {
		t.Errorf("furthest ring at %v, expected at least %v", last, cfg.SpawnAhead)
	}

	prevZ := 0.0
	for i, r := range rings {
		gap := r.Position.Z - prevZ
		if gap < cfg.MinSpacing || gap > cfg.MaxSpacing {
			t.Errorf("ring %d spacing %v outside [%v, %v]", i, gap, cfg.MinSpacing, cfg.MaxSpacing)
		}
		a := cfg.SpawnArea
		if r.Position.X < a.MinX || r.Position.X > a.MaxX || r.Position.Y < a.MinY || r.Position.Y > a.MaxY {
			t.Errorf("ring %d at %+v outside the spawn area", i, r.Position)
		}
		if r.ID != i {
			t.Errorf("ring %d has ID %d", i, r.ID)
		}
		prevZ = r.Position.Z
	}
}

func TestRingRotationSpeedRamps(t *testing.T) {
	cfg := config.DefaultConfig().Rings
	s := newTestRingSet(7)
	for z := 0.0; z < 10000; z += 10 {
		s.Advance(0, core.Vec3{Z: z})
		for _, r := range s.Rings() {
			if r.Position.Z < z {
				r.Passed = true
			}
		}
	}

	prev := 0.0
	seen := 0
	for _, r := range s.Rings() {
		if r.RotationSpeed < prev {
			t.Fatalf("ring %d rotation %v slower than previous %v", r.ID, r.RotationSpeed, prev)
		}
		if r.RotationSpeed > cfg.MaxRotationSpeed {
			t.Fatalf("ring %d rotation %v above max", r.ID, r.RotationSpeed)
		}
		prev = r.RotationSpeed
		seen++
	}
	if seen == 0 || prev != cfg.MaxRotationSpeed {
		t.Errorf("latest rotation speed = %v, expected capped at %v", prev, cfg.MaxRotationSpeed)
	}
}

func TestRingRecycleKeepsUnresolved(t *testing.T) {
	s := newTestRingSet(1)
	s.SetAutoSpawn(false)
	passed := s.Place(core.Vec3{Z: 5})
	pending := s.Place(core.Vec3{Z: 6})
	passed.Passed = true

	s.Advance(0.1, core.Vec3{Z: 100})

	rings := s.Rings()
	if len(rings) != 1 || rings[0] != pending {
		t.Fatalf("Rings() after recycle = %d rings, expected only the unresolved one", len(rings))
	}
}

func TestRingPlaceKeepsOrder(t *testing.T) {
	s := newTestRingSet(1)
	s.SetAutoSpawn(false)
	s.Place(core.Vec3{Z: 30})
	s.Place(core.Vec3{Z: 10})
	s.Place(core.Vec3{Z: 20})
	s.Place(core.Vec3{Z: 10, X: 1})

	var zs []float64
	for _, r := range s.Rings() {
		zs = append(zs, r.Position.Z)
	}
	expected := []float64{10, 10, 20, 30}
	for i := range expected {
		if zs[i] != expected[i] {
			t.Fatalf("ring order = %v, expected %v", zs, expected)
		}
	}
	if s.Rings()[1].Position.X != 1 {
		t.Error("rings with equal Z should keep insertion order")
	}

	if next := s.Next(15); next == nil || next.Position.Z != 20 {
		t.Errorf("Next(15) = %+v, expected the ring at 20", next)
	}
	if next := s.Next(31); next != nil {
		t.Errorf("Next(31) = %+v, expected nil", next)
	}
}

func TestRingRotationAndSlowdown(t *testing.T) {
	s := newTestRingSet(1)
	s.SetAutoSpawn(false)
	r := s.Place(core.Vec3{Z: 50})
	r.RotationSpeed = 90

	s.Advance(1, core.Vec3{})
	if r.Angle != 90 {
		t.Errorf("Angle after 1s = %v, expected 90", r.Angle)
	}

	r.SpeedMultiplier = 0.5
	r.Direction = -1
	s.Advance(1, core.Vec3{})
	if r.Angle != 45 {
		t.Errorf("Angle after slowed reverse second = %v, expected 45", r.Angle)
	}

	r.SpeedMultiplier = 1
	s.Advance(1, core.Vec3{})
	if r.Angle != 315 {
		t.Errorf("Angle after wrapping = %v, expected 315", r.Angle)
	}
}

func TestRingSetDeterministic(t *testing.T) {
	a := newTestRingSet(99)
	b := newTestRingSet(99)
	for i := range 300 {
		needle := core.Vec3{Z: float64(i) * 0.2}
		a.Advance(1.0/60.0, needle)
		b.Advance(1.0/60.0, needle)
	}
	ra, rb := a.Rings(), b.Rings()
	if len(ra) != len(rb) {
		t.Fatalf("ring counts differ: %d vs %d", len(ra), len(rb))
	}
	for i := range ra {
		if ra[i].Position != rb[i].Position || ra[i].Angle != rb[i].Angle {
			t.Fatalf("ring %d differs: %+v vs %+v", i, ra[i].Position, rb[i].Position)
		}
	}
}
