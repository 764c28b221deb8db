package needle

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/ringrun/internal/config"
	"github.com/vovakirdan/ringrun/internal/core"
	"github.com/vovakirdan/ringrun/internal/games/needle/sim"
	"github.com/vovakirdan/ringrun/internal/registry"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

func holdEvery(n, ticks int) []core.InputFrame {
	frames := make([]core.InputFrame, ticks)
	for i := range frames {
		frames[i] = core.NewInputFrame()
		if i%n == 0 {
			frames[i].Set(core.ActionHold)
		}
	}
	return frames
}

func TestGameDeterminism(t *testing.T) {
	inputs := holdEvery(40, 2400)

	play := func() (core.GameState, sim.Snapshot) {
		g := New()
		g.Reset(testRuntime(2024))
		var state core.GameState
		for _, in := range inputs {
			state = g.Step(in).State
			if state.GameOver {
				break
			}
		}
		return state, g.run.Snapshot()
	}

	state1, snap1 := play()
	state2, snap2 := play()
	if state1 != state2 {
		t.Errorf("Determinism failed: states differ. Run1=%+v, Run2=%+v", state1, state2)
	}
	if snap1 != snap2 {
		t.Errorf("Determinism failed: snapshots differ.\nRun1=%+v\nRun2=%+v", snap1, snap2)
	}
}

func TestGamePause(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))
	g.Step(core.NewInputFrame())
	z := g.run.Needle().Z

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	if !g.Step(pause).State.Paused {
		t.Fatal("game not paused after ActionPause")
	}
	for range 10 {
		g.Step(core.NewInputFrame())
	}
	if g.run.Needle().Z != z {
		t.Error("needle moved while paused")
	}

	if g.Step(pause).State.Paused {
		t.Error("game still paused after second ActionPause")
	}
	if g.run.Needle().Z <= z {
		t.Error("needle did not move after unpausing")
	}
}

func TestGameHoldGrace(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))

	hold := core.NewInputFrame()
	hold.Set(core.ActionHold)
	g.Step(hold)
	if !g.run.Holding() {
		t.Fatal("hold not active after ActionHold")
	}

	// 0.25s of grace at 60 ticks per second.
	for range 14 {
		g.Step(core.NewInputFrame())
	}
	if !g.run.Holding() {
		t.Error("hold released before the grace window elapsed")
	}
	for range 2 {
		g.Step(core.NewInputFrame())
	}
	if g.run.Holding() {
		t.Error("hold still active after the grace window")
	}
}

func TestGameRunsToGameOver(t *testing.T) {
	g := NewHardcore()
	g.Reset(testRuntime(3))

	var results int
	g.Subscribe(func(e sim.Event) {
		if e.Kind == sim.EventRunEnded {
			results++
		}
	})

	for i := 0; i < 60*600 && !g.State().GameOver; i++ {
		g.Step(core.NewInputFrame())
	}
	if !g.State().GameOver {
		t.Fatal("idle hardcore run did not end in ten minutes")
	}
	snap, ok := g.Result()
	if !ok || snap.TotalRings == 0 || snap.Speed != g.Config().Speed.Min {
		t.Errorf("Result() = %+v (ok %v)", snap, ok)
	}
	if results != 1 {
		t.Errorf("run ended events = %d, expected 1", results)
	}

	// Restart gives a fresh run.
	g.Reset(testRuntime(4))
	if g.State().GameOver || g.State().Score != 0 {
		t.Errorf("State() after Reset = %+v", g.State())
	}
}

func TestGameRender(t *testing.T) {
	g := New()
	g.Reset(testRuntime(5))
	for range 30 {
		g.Step(core.NewInputFrame())
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()
	for _, want := range []string{"Score", "Speed", "next ring", string(TrackNeedle), string(NeedleChar)} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() output missing %q", want)
		}
	}
}

func TestModesRegistered(t *testing.T) {
	for _, id := range []string{"classic", "relaxed", "hardcore"} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q) error = %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("Create(%q).ID() = %q", id, g.ID())
		}
	}

	relaxed := NewRelaxed().Config()
	hardcore := NewHardcore().Config()
	if relaxed.HitZones.Core <= hardcore.HitZones.Core {
		t.Errorf("relaxed core radius %v should be wider than hardcore %v",
			relaxed.HitZones.Core, hardcore.HitZones.Core)
	}
	if !hardcore.Score.OuterBreaksStreak {
		t.Error("hardcore should break the streak on Outer hits")
	}
}

func TestSetRecords(t *testing.T) {
	g := New()
	g.SetRecords(5000, 12)
	g.Reset(testRuntime(1))
	snap := g.run.Snapshot()
	if snap.HighScore != 5000 || snap.AllTimeBestStreak != 12 {
		t.Errorf("records = %d/%d, expected 5000/12", snap.HighScore, snap.AllTimeBestStreak)
	}
}

func TestModeConfig(t *testing.T) {
	tests := []struct {
		id      string
		wantErr bool
	}{
		{"classic", false},
		{"relaxed", false},
		{"hardcore", false},
		{"zen", true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			cfg, err := ModeConfig(tt.id)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ModeConfig(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("ModeConfig(%q) is invalid: %v", tt.id, err)
			}
		})
	}

	hardcore, _ := ModeConfig("hardcore")
	if !hardcore.Score.OuterBreaksStreak {
		t.Error("ModeConfig(hardcore) should break the streak on Outer hits")
	}
}

func TestMisorderedConfigIsRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("hit_zones:\n  core: 2.0\n  inner: 0.7\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })

	if err := CheckConfig(); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("CheckConfig() = %v, expected ErrInvalid", err)
	}
	if _, err := ModeConfig("classic"); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("ModeConfig() error = %v, expected ErrInvalid", err)
	}

	g := New()
	g.Reset(testRuntime(1))
	if err := g.ConfigErr(); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("ConfigErr() = %v, expected ErrInvalid", err)
	}
	if radius := g.Config().HitZones.Core; radius != config.DefaultConfig().HitZones.Core {
		t.Errorf("Config().HitZones.Core = %v, expected the default", radius)
	}
}

func TestValidConfigIsAccepted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "good.yaml")
	if err := os.WriteFile(path, []byte("speed:\n  start: 12\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })

	if err := CheckConfig(); err != nil {
		t.Errorf("CheckConfig() = %v, expected nil", err)
	}
	g := New()
	if err := g.ConfigErr(); err != nil {
		t.Errorf("ConfigErr() = %v, expected nil", err)
	}
	if start := g.Config().Speed.Start; start != 12 {
		t.Errorf("Config().Speed.Start = %v, expected 12", start)
	}
}
