package sim

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/ringrun/internal/config"
	"github.com/vovakirdan/ringrun/internal/core"
)

// Phase is the lifecycle state of a run.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseEnded
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Snapshot is the statistics of a run, live or final.
type Snapshot struct {
	Seed              int64      `yaml:"seed" json:"seed"`
	Score             int        `yaml:"score" json:"score"`
	HighScore         int        `yaml:"high_score" json:"high_score"`
	NewHighScore      bool       `yaml:"new_high_score" json:"new_high_score"`
	BestStreak        int        `yaml:"best_streak" json:"best_streak"`
	AllTimeBestStreak int        `yaml:"all_time_best_streak" json:"all_time_best_streak"`
	NewBestStreak     bool       `yaml:"new_best_streak" json:"new_best_streak"`
	Streak            int        `yaml:"streak" json:"streak"`
	Multiplier        int        `yaml:"multiplier" json:"multiplier"`
	PeakMultiplier    int        `yaml:"peak_multiplier" json:"peak_multiplier"`
	Hits              ZoneCounts `yaml:"hits" json:"hits"`
	TotalRings        int        `yaml:"total_rings" json:"total_rings"`
	Accuracy          float64    `yaml:"accuracy" json:"accuracy"`
	CoreAccuracy      float64    `yaml:"core_accuracy" json:"core_accuracy"`
	Speed             float64    `yaml:"speed" json:"speed"`
	Distance          float64    `yaml:"distance" json:"distance"`
	Elapsed           float64    `yaml:"elapsed" json:"elapsed"`
	Ticks             uint64     `yaml:"ticks" json:"ticks"`
}

// Option configures a Run.
type Option func(*Run)

// WithManualRings disables procedural spawning; rings come only from PlaceRing.
func WithManualRings() Option {
	return func(r *Run) {
		r.rings.SetAutoSpawn(false)
	}
}

// Run orchestrates one player's runs: Idle -> Running -> Ended, and again
// from Ended on restart. All mutable simulation state lives here.
type Run struct {
	cfg   *config.Config
	phase Phase
	bus   *Bus

	needle    *Needle
	rings     *RingSet
	evaluator *Evaluator
	streak    *StreakEngine
	score     *ScoreEngine
	speed     *SpeedEngine
	slowdown  *Slowdown

	seed    int64
	tick    uint64
	hits    ZoneCounts
	results []HitResult
	final   Snapshot
}

// NewRun validates cfg and builds an idle run.
func NewRun(cfg *config.Config, opts ...Option) (*Run, error) {
	if cfg == nil {
		return nil, fmt.Errorf("sim: nil config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}

	bus := NewBus()
	needle := NewNeedle(cfg.Speed, cfg.Drift)
	r := &Run{
		cfg:       cfg,
		bus:       bus,
		needle:    needle,
		rings:     NewRingSet(cfg.Rings, cfg.Difficulty),
		evaluator: NewEvaluator(cfg.HitZones, cfg.Rings.PassTolerance),
		streak:    NewStreakEngine(cfg.Score, bus),
		score:     NewScoreEngine(cfg.Score, bus),
		speed:     NewSpeedEngine(cfg.Speed, needle, bus),
		slowdown:  NewSlowdown(cfg.Slowdown),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Subscribe registers h for every event.
func (r *Run) Subscribe(h Handler) {
	r.bus.Subscribe(h)
}

// SubscribeKind registers h for one kind of event.
func (r *Run) SubscribeKind(kind EventKind, h Handler) {
	r.bus.SubscribeKind(kind, h)
}

// SetRecords seeds the persisted high score and best streak.
func (r *Run) SetRecords(highScore, bestStreak int) {
	r.score.SetHighScore(highScore)
	r.streak.SetAllTimeBest(bestStreak)
}

// StartRun resets every subsystem and begins a run. It is a no-op while a
// run is in progress and reports whether a run was started.
func (r *Run) StartRun(seed int64) bool {
	if r.phase == PhaseRunning {
		return false
	}

	rng := rand.New(rand.NewSource(seed))
	r.seed = seed
	r.tick = 0
	r.hits = ZoneCounts{}
	r.final = Snapshot{}
	r.bus.SetTick(0)

	r.needle.Reset(rng.Intn(2) == 0, rng.Intn(2) == 0)
	r.rings.Reset(rng)
	r.rings.Advance(0, r.needle.Position())
	r.streak.Reset()
	r.score.Reset()
	r.speed.Reset()
	r.slowdown.Reset()

	r.phase = PhaseRunning
	r.bus.Push(Event{Kind: EventRunStarted})
	r.bus.Flush()
	return true
}

// Abandon drops a run in progress without finishing it: no records are
// checked and no events are raised. The run returns to Idle.
func (r *Run) Abandon() {
	if r.phase != PhaseRunning {
		return
	}
	r.bus.Flush()
	r.phase = PhaseIdle
}

// SetHold forwards the hold/release input to the slowdown modifier.
func (r *Run) SetHold(on bool) {
	if r.phase != PhaseRunning {
		return
	}
	r.slowdown.SetHold(on)
}

// Tick advances the run by dt seconds and returns the events it raised,
// after delivering them to subscribers. Negative or non-finite dt is
// treated as zero.
// Ticking a run that is not running does nothing.
func (r *Run) Tick(dt float64) []Event {
	if r.phase != PhaseRunning {
		return nil
	}
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		dt = 0
	}
	r.tick++
	r.bus.SetTick(r.tick)

	prev := r.needle.Position()
	r.needle.Advance(dt)
	r.slowdown.Advance(dt, r.rings.Next(prev.Z))
	r.rings.Advance(dt, r.needle.Position())

	r.results = r.evaluator.Evaluate(prev, r.needle.Position(), r.rings.Rings(), r.results[:0])
	for _, res := range r.results {
		r.hits.Add(res.Zone)
		r.bus.Push(Event{Kind: EventRingResolved, Hit: res})
		r.streak.Consume(res)
		r.score.Consume(res, r.streak.Multiplier())
		r.speed.Consume(res)
	}

	if r.speed.ReachedMin() {
		r.end()
	}
	return r.bus.Flush()
}

func (r *Run) end() {
	r.needle.SettleSpeed()
	r.slowdown.SetHold(false)
	r.streak.Finish()
	r.score.Finish()
	r.phase = PhaseEnded
	r.final = r.snapshot()
	final := r.final
	r.bus.Push(Event{Kind: EventRunEnded, Snapshot: &final})
}

// Phase returns the lifecycle phase.
func (r *Run) Phase() Phase {
	return r.phase
}

// Snapshot returns the run statistics: live while running, frozen once ended.
func (r *Run) Snapshot() Snapshot {
	if r.phase == PhaseEnded {
		return r.final
	}
	return r.snapshot()
}

// Result returns the final snapshot once the run has ended.
func (r *Run) Result() (Snapshot, bool) {
	return r.final, r.phase == PhaseEnded
}

func (r *Run) snapshot() Snapshot {
	return Snapshot{
		Seed:              r.seed,
		Score:             r.score.Score(),
		HighScore:         r.score.HighScore(),
		NewHighScore:      r.score.NewHigh(),
		BestStreak:        r.streak.BestStreak(),
		AllTimeBestStreak: r.streak.AllTimeBest(),
		NewBestStreak:     r.streak.NewBest(),
		Streak:            r.streak.Streak(),
		Multiplier:        r.streak.Multiplier(),
		PeakMultiplier:    r.streak.PeakMultiplier(),
		Hits:              r.hits,
		TotalRings:        r.hits.Total(),
		Accuracy:          r.hits.Accuracy(),
		CoreAccuracy:      r.hits.CoreAccuracy(),
		Speed:             r.needle.Speed(),
		Distance:          r.needle.Position().Z,
		Elapsed:           r.needle.Elapsed(),
		Ticks:             r.tick,
	}
}

// PlaceRing adds a static ring at pos.
func (r *Run) PlaceRing(pos core.Vec3) int {
	return r.rings.Place(pos).ID
}

// Needle returns the needle position.
func (r *Run) Needle() core.Vec3 {
	return r.needle.Position()
}

// Speed returns the current needle speed.
func (r *Run) Speed() float64 {
	return r.needle.Speed()
}

// Score returns the current run score.
func (r *Run) Score() int {
	return r.score.Score()
}

// Streak returns the current streak and multiplier.
func (r *Run) Streak() (streak, multiplier int) {
	return r.streak.Streak(), r.streak.Multiplier()
}

// Intensity is the streak feedback intensity in [0, 1].
func (r *Run) Intensity() float64 {
	return r.streak.Intensity()
}

// Holding reports whether the slowdown hold is active.
func (r *Run) Holding() bool {
	return r.slowdown.Holding()
}

// Level returns the current difficulty level.
func (r *Run) Level() float64 {
	return r.rings.Level()
}

// Rings returns copies of the active rings ordered by Z.
func (r *Run) Rings() []Ring {
	out := make([]Ring, len(r.rings.Rings()))
	for i, ring := range r.rings.Rings() {
		out[i] = *ring
	}
	return out
}

// NextRing returns the nearest unpassed ring ahead of the needle.
func (r *Run) NextRing() (Ring, bool) {
	ring := r.rings.Next(r.needle.Position().Z)
	if ring == nil {
		return Ring{}, false
	}
	return *ring, true
}

// Config returns the configuration the run was built with.
func (r *Run) Config() *config.Config {
	return r.cfg
}
