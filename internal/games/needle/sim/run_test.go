package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/ringrun/internal/config"
	"github.com/vovakirdan/ringrun/internal/core"
)

// testConfig removes easing and float so positions are exact.
func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Speed.ChangeDuration = 0
	cfg.Drift = config.DriftConfig{}
	cfg.Difficulty.Enabled = false
	return &cfg
}

func newManualRun(t *testing.T) *Run {
	t.Helper()
	r, err := NewRun(testConfig(), WithManualRings())
	if err != nil {
		t.Fatalf("NewRun() error = %v", err)
	}
	return r
}

// tickUntil ticks until the needle has passed z or the run ends.
func tickUntil(r *Run, z, dt float64) []Event {
	var all []Event
	for i := 0; i < 100000 && r.Phase() == PhaseRunning && r.Needle().Z <= z; i++ {
		all = append(all, r.Tick(dt)...)
	}
	return all
}

func TestNewRunRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.HitZones.Middle = 0.1
	if _, err := NewRun(&cfg); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("NewRun() error = %v, expected ErrInvalid", err)
	}
	if _, err := NewRun(nil); err == nil {
		t.Error("NewRun(nil) should fail")
	}
}

func TestTickBeforeStartIsNoop(t *testing.T) {
	r := newManualRun(t)
	if events := r.Tick(1); events != nil {
		t.Errorf("Tick() while idle = %+v, expected nil", events)
	}
	if r.Phase() != PhaseIdle || r.Needle().Z != 0 {
		t.Errorf("idle run moved: phase=%v z=%v", r.Phase(), r.Needle().Z)
	}
}

func TestStartRunTwiceIsNoop(t *testing.T) {
	r := newManualRun(t)
	if !r.StartRun(1) {
		t.Fatal("StartRun() = false on an idle run")
	}
	r.Tick(0.5)
	z := r.Needle().Z
	if r.StartRun(2) {
		t.Error("StartRun() = true while running")
	}
	if r.Needle().Z != z {
		t.Error("second StartRun() reset the running state")
	}
}

func TestBadDeltaIsIgnored(t *testing.T) {
	tests := []struct {
		name string
		dt   float64
	}{
		{"negative", -5},
		{"nan", math.NaN()},
		{"positive infinity", math.Inf(1)},
		{"negative infinity", math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newManualRun(t)
			r.StartRun(1)
			r.PlaceRing(core.Vec3{Z: 5})
			r.Tick(tt.dt)

			pos := r.Needle()
			if pos != (core.Vec3{}) {
				t.Errorf("Needle() after Tick(%v) = %+v, expected the origin", tt.dt, pos)
			}
			if r.Phase() != PhaseRunning {
				t.Errorf("Phase() after Tick(%v) = %v, expected running", tt.dt, r.Phase())
			}

			// The run still plays normally afterwards.
			tickUntil(r, 5, 0.1)
			if hits := r.Snapshot().Hits; hits.Core != 1 {
				t.Errorf("Hits after Tick(%v) = %+v, expected one Core", tt.dt, hits)
			}
		})
	}
}

func TestFourMissesEndTheRun(t *testing.T) {
	r := newManualRun(t)
	var zeroEvents, endEvents int
	r.SubscribeKind(EventSpeedZero, func(Event) { zeroEvents++ })
	r.SubscribeKind(EventRunEnded, func(e Event) {
		endEvents++
		if e.Snapshot == nil || e.Snapshot.Hits.Miss != 4 {
			t.Errorf("run ended snapshot = %+v, expected 4 misses", e.Snapshot)
		}
	})

	r.StartRun(1)
	for z := 1.0; z <= 4; z++ {
		r.PlaceRing(core.Vec3{X: 10, Z: z})
	}
	tickUntil(r, 100, 0.1)

	if r.Phase() != PhaseEnded {
		t.Fatalf("Phase() = %v, expected ended", r.Phase())
	}
	if zeroEvents != 1 || endEvents != 1 {
		t.Errorf("speed zero events = %d, run ended events = %d, expected 1 and 1", zeroEvents, endEvents)
	}

	final, ok := r.Result()
	if !ok {
		t.Fatal("Result() not available after the run ended")
	}
	if final.Speed != 0 || final.TotalRings != 4 || final.Accuracy != 0 || final.Score != 0 {
		t.Errorf("final snapshot = %+v", final)
	}

	// Ended runs are frozen.
	if events := r.Tick(1); events != nil {
		t.Errorf("Tick() after end = %+v, expected nil", events)
	}
	if r.Snapshot() != final {
		t.Error("snapshot changed after the run ended")
	}
}

func TestStreakAndScoreThroughRun(t *testing.T) {
	r := newManualRun(t)
	r.StartRun(1)
	for i := 1; i <= 7; i++ {
		r.PlaceRing(core.Vec3{Z: float64(i)})
	}
	r.PlaceRing(core.Vec3{X: 1.5, Z: 8})

	tickUntil(r, 8.5, 0.01)

	snap := r.Snapshot()
	if snap.Streak != 5 || snap.Multiplier != 2 {
		t.Errorf("streak=%d multiplier=%d, expected 5 and 2", snap.Streak, snap.Multiplier)
	}
	// 4x100 at x1, 3x100 at x2, Outer 10 at x2.
	if snap.Score != 1020 {
		t.Errorf("Score = %d, expected 1020", snap.Score)
	}
	if snap.BestStreak != 7 || snap.Hits.Core != 7 || snap.Hits.Outer != 1 {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestPointsUseMultiplierAfterStreakUpdate(t *testing.T) {
	r := newManualRun(t)
	var earned []Event
	r.SubscribeKind(EventPointsEarned, func(e Event) { earned = append(earned, e) })

	r.StartRun(1)
	for i := 1; i <= 10; i++ {
		r.PlaceRing(core.Vec3{Z: float64(i) * 3})
	}
	tickUntil(r, 31, 0.01)

	if len(earned) != 10 {
		t.Fatalf("points earned events = %d, expected 10", len(earned))
	}
	last := earned[9]
	if last.Value != 300 || last.Multiplier != 3 {
		t.Errorf("10th core hit earned %d at x%d, expected 300 at x3", last.Value, last.Multiplier)
	}
}

func TestSubscribersSeeAdvancedState(t *testing.T) {
	r := newManualRun(t)
	var scoreSeen int
	r.SubscribeKind(EventRingResolved, func(Event) { scoreSeen = r.Score() })

	r.StartRun(1)
	r.PlaceRing(core.Vec3{Z: 1})
	events := tickUntil(r, 2, 0.05)

	if scoreSeen != 100 {
		t.Errorf("score seen by ring resolved handler = %d, expected 100", scoreSeen)
	}
	var order []EventKind
	for _, e := range events {
		order = append(order, e.Kind)
	}
	expected := []EventKind{EventRingResolved, EventStreakChanged, EventPointsEarned, EventSpeedChanged}
	if len(order) != len(expected) {
		t.Fatalf("events = %v, expected %v", order, expected)
	}
	for i := range expected {
		if order[i] != expected[i] {
			t.Fatalf("events = %v, expected %v", order, expected)
		}
	}
}

func TestRestartKeepsRecords(t *testing.T) {
	r := newManualRun(t)
	r.SetRecords(50, 0)

	r.StartRun(1)
	r.PlaceRing(core.Vec3{Z: 1})
	for z := 2.0; z <= 5; z++ {
		r.PlaceRing(core.Vec3{X: 10, Z: z})
	}
	tickUntil(r, 100, 0.05)

	first, ok := r.Result()
	if !ok {
		t.Fatal("first run did not end")
	}
	if !first.NewHighScore || first.HighScore != 100 {
		t.Errorf("first run high score = %d (new %v), expected 100 true", first.HighScore, first.NewHighScore)
	}
	if !first.NewBestStreak || first.AllTimeBestStreak != 1 {
		t.Errorf("first run best streak = %d (new %v), expected 1 true", first.AllTimeBestStreak, first.NewBestStreak)
	}

	if !r.StartRun(2) {
		t.Fatal("StartRun() after end = false")
	}
	snap := r.Snapshot()
	if snap.Score != 0 || snap.HighScore != 100 || snap.NewHighScore || snap.Ticks != 0 {
		t.Errorf("restarted snapshot = %+v", snap)
	}
	if _, ok := r.Result(); ok {
		t.Error("Result() available on a running run")
	}
}

func TestRunDeterministic(t *testing.T) {
	cfg := config.DefaultConfig()
	a, err := NewRun(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewRun(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	a.StartRun(12345)
	b.StartRun(12345)

	for i := range 3000 {
		hold := i%90 < 30
		a.SetHold(hold)
		b.SetHold(hold)
		ea := a.Tick(1.0 / 60.0)
		eb := b.Tick(1.0 / 60.0)
		if len(ea) != len(eb) {
			t.Fatalf("tick %d: event counts differ %d vs %d", i, len(ea), len(eb))
		}
	}
	if a.Snapshot() != b.Snapshot() {
		t.Errorf("snapshots differ:\n%+v\n%+v", a.Snapshot(), b.Snapshot())
	}
	if a.Snapshot().TotalRings == 0 {
		t.Error("no rings resolved in 50 seconds")
	}
}

func TestSpeedStaysInBoundsThroughRun(t *testing.T) {
	cfg := config.DefaultConfig()
	r, err := NewRun(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	r.StartRun(7)
	for range 5000 {
		r.Tick(1.0 / 30.0)
		if s := r.Speed(); s < cfg.Speed.Min || s > cfg.Speed.Max {
			t.Fatalf("Speed() = %v outside bounds", s)
		}
	}
}

func TestAbandonReturnsToIdle(t *testing.T) {
	r := newManualRun(t)
	var ended int
	r.SubscribeKind(EventRunEnded, func(Event) { ended++ })

	r.StartRun(1)
	r.Tick(0.5)
	r.Abandon()
	if r.Phase() != PhaseIdle || ended != 0 {
		t.Errorf("after Abandon phase=%v ended events=%d, expected idle and 0", r.Phase(), ended)
	}
	if !r.StartRun(2) || r.Needle().Z != 0 {
		t.Error("StartRun() after Abandon did not start a fresh run")
	}
}
