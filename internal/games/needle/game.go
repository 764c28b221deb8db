// Package needle implements the ringrun game modes: thread a needle through
// rotating rings, keep the streak alive and keep the speed up.
package needle

import (
	"fmt"

	"github.com/vovakirdan/ringrun/internal/config"
	"github.com/vovakirdan/ringrun/internal/core"
	"github.com/vovakirdan/ringrun/internal/games/needle/sim"
	"github.com/vovakirdan/ringrun/internal/registry"
)

// Mode selects the built-in tuning of a game.
type Mode int

const (
	ModeClassic Mode = iota
	ModeRelaxed
	ModeHardcore
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyOverride replaces the mode's own preset when set via CLI
var difficultyOverride config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset overrides the preset of every mode. Unknown or empty
// values clear the override.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil || preset == "" {
		difficultyOverride = ""
		return
	}
	difficultyOverride = p
}

// feedbackSeconds is how long hit feedback stays on screen.
const feedbackSeconds = 0.6

// holdGraceSeconds keeps the hold active between terminal key repeats.
const holdGraceSeconds = 0.25

// Game adapts a sim.Run to the platform's fixed-step game interface.
type Game struct {
	mode    Mode
	cfg     config.Config
	run     *sim.Run
	runtime core.RuntimeConfig

	paused    bool
	holdTicks int

	feedback      string
	feedbackColor core.Color
	feedbackTicks int
	banner        string

	pending   []sim.Handler
	configErr error
}

// New creates a classic mode game.
func New() *Game {
	return &Game{mode: ModeClassic}
}

// NewRelaxed creates a relaxed mode game.
func NewRelaxed() *Game {
	return &Game{mode: ModeRelaxed}
}

// NewHardcore creates a hardcore mode game.
func NewHardcore() *Game {
	return &Game{mode: ModeHardcore}
}

// ID returns the unique identifier for this mode.
func (g *Game) ID() string {
	switch g.mode {
	case ModeRelaxed:
		return "relaxed"
	case ModeHardcore:
		return "hardcore"
	default:
		return "classic"
	}
}

// Title returns the display name for this mode.
func (g *Game) Title() string {
	switch g.mode {
	case ModeRelaxed:
		return "Ringrun Relaxed"
	case ModeHardcore:
		return "Ringrun Hardcore"
	default:
		return "Ringrun Classic"
	}
}

func (g *Game) preset() config.DifficultyPreset {
	if difficultyOverride != "" {
		return difficultyOverride
	}
	switch g.mode {
	case ModeRelaxed:
		return config.DifficultyEasy
	case ModeHardcore:
		return config.DifficultyHard
	default:
		return config.DifficultyNormal
	}
}

// LoadConfig loads the configuration for a mode, falling back to the
// defaults when the file cannot be used.
func LoadConfig(preset config.DifficultyPreset) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		cfg = config.DefaultConfig()
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, err
}

// CheckConfig loads the configuration file selected by SetConfigPath, or
// the first one on the search path, and reports why it cannot be used.
func CheckConfig() error {
	_, err := config.Load(configPath)
	return err
}

// ModeConfig loads the effective configuration of a mode by ID, for
// running it without a Game (headless simulation, config dump).
func ModeConfig(id string) (config.Config, error) {
	var g *Game
	switch id {
	case "classic":
		g = New()
	case "relaxed":
		g = NewRelaxed()
	case "hardcore":
		g = NewHardcore()
	default:
		return config.Config{}, fmt.Errorf("needle: unknown mode %q", id)
	}
	return LoadConfig(g.preset())
}

// ensureRun builds the run on first use.
func (g *Game) ensureRun() {
	if g.run != nil {
		return
	}
	g.cfg, g.configErr = LoadConfig(g.preset())
	run, err := sim.NewRun(&g.cfg)
	if err != nil {
		g.configErr = err
		g.cfg = config.DefaultConfig()
		run, _ = sim.NewRun(&g.cfg)
	}
	g.run = run
	g.run.Subscribe(g.onEvent)
	for _, h := range g.pending {
		g.run.Subscribe(h)
	}
	g.pending = nil
}

// Subscribe registers a handler for simulation events.
func (g *Game) Subscribe(h sim.Handler) {
	if g.run == nil {
		g.pending = append(g.pending, h)
		return
	}
	g.run.Subscribe(h)
}

// SetRecords seeds the persisted high score and best streak.
func (g *Game) SetRecords(highScore, bestStreak int) {
	g.ensureRun()
	g.run.SetRecords(highScore, bestStreak)
}

// Reset initializes or restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.ensureRun()
	g.paused = false
	g.holdTicks = 0
	g.feedback = ""
	g.feedbackTicks = 0
	g.banner = ""
	g.run.Abandon()
	g.run.StartRun(cfg.Seed)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.run == nil || g.run.Phase() != sim.PhaseRunning {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionHold) {
		g.holdTicks = max(1, int(holdGraceSeconds*float64(g.runtime.TickRate)))
	} else if g.holdTicks > 0 {
		g.holdTicks--
	}
	g.run.SetHold(g.holdTicks > 0)

	if g.feedbackTicks > 0 {
		g.feedbackTicks--
	}

	hits := 0
	for _, e := range g.run.Tick(g.runtime.TickSeconds()) {
		if e.Kind == sim.EventRingResolved {
			hits++
		}
	}
	return core.StepResult{State: g.State(), Hits: hits}
}

// onEvent turns simulation events into on-screen feedback.
func (g *Game) onEvent(e sim.Event) {
	switch e.Kind {
	case sim.EventRingResolved:
		g.feedback = e.Hit.Zone.Label()
		g.feedbackColor = zoneColor(e.Hit.Zone)
		g.feedbackTicks = max(1, int(feedbackSeconds*float64(g.runtime.TickRate)))
	case sim.EventMultiplierChanged:
		if e.Value > e.Previous {
			g.banner = multiplierText(e.Value) + " MULTIPLIER"
		} else {
			g.banner = ""
		}
	case sim.EventStreakBroken:
		g.banner = "STREAK LOST"
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.run == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.run.Score(),
		GameOver: g.run.Phase() == sim.PhaseEnded,
		Paused:   g.paused,
	}
}

// Result returns the final run statistics once the run is over.
func (g *Game) Result() (sim.Snapshot, bool) {
	if g.run == nil {
		return sim.Snapshot{}, false
	}
	return g.run.Result()
}

// ConfigErr reports why the configuration file was not used. The game then
// runs on the defaults.
func (g *Game) ConfigErr() error {
	g.ensureRun()
	return g.configErr
}

// Config returns the effective configuration of this mode.
func (g *Game) Config() config.Config {
	g.ensureRun()
	return g.cfg
}

func init() {
	registry.Register("classic", func() registry.Game {
		return New()
	})
	registry.Register("relaxed", func() registry.Game {
		return NewRelaxed()
	})
	registry.Register("hardcore", func() registry.Game {
		return NewHardcore()
	})
}
