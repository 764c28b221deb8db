package sim

import (
	"math"
	"math/rand"
	"slices"

	"github.com/vovakirdan/ringrun/internal/config"
	"github.com/vovakirdan/ringrun/internal/core"
)

// Ring is one ring on the track.
type Ring struct {
	ID              int
	Position        core.Vec3
	Angle           float64 // degrees, [0, 360)
	RotationSpeed   float64 // degrees per second at multiplier 1
	Direction       float64 // +1 clockwise, -1 counter-clockwise
	SpeedMultiplier float64 // scaled by the slowdown modifier
	Passed          bool

	moveSpeed    float64
	target       core.Vec3
	pause        float64
	towardNeedle bool
}

// RingSet owns the rings ahead of (and shortly behind) the needle.
// Rings are kept ordered by Z.
type RingSet struct {
	cfg        config.RingConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand

	rings     []*Ring
	nextID    int
	spawned   int
	lastZ     float64
	elapsed   float64
	autoSpawn bool
}

// NewRingSet creates an empty ring set.
func NewRingSet(cfg config.RingConfig, difficulty config.DifficultyConfig) *RingSet {
	return &RingSet{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(difficulty),
		rng:        rand.New(rand.NewSource(1)),
		autoSpawn:  true,
	}
}

// Reset clears all rings and reseeds spawning.
func (s *RingSet) Reset(rng *rand.Rand) {
	s.rng = rng
	s.rings = s.rings[:0]
	s.nextID = 0
	s.spawned = 0
	s.lastZ = 0
	s.elapsed = 0
}

// SetAutoSpawn turns procedural spawning on or off. With it off only
// rings added through Place exist.
func (s *RingSet) SetAutoSpawn(on bool) {
	s.autoSpawn = on
}

// Rings returns the active rings ordered by Z. The slice must not be modified.
func (s *RingSet) Rings() []*Ring {
	return s.rings
}

// Spawned is the number of rings created since Reset.
func (s *RingSet) Spawned() int {
	return s.spawned
}

// Level is the current difficulty level.
func (s *RingSet) Level() float64 {
	return s.difficulty.Level(s.spawned, s.elapsed)
}

// Next returns the nearest unpassed ring at or ahead of z, or nil.
func (s *RingSet) Next(z float64) *Ring {
	for _, r := range s.rings {
		if !r.Passed && r.Position.Z >= z {
			return r
		}
	}
	return nil
}

// Place adds a static ring at pos. It is used for scripted layouts and tests.
func (s *RingSet) Place(pos core.Vec3) *Ring {
	r := &Ring{
		ID:              s.nextID,
		Position:        pos,
		Direction:       1,
		SpeedMultiplier: 1,
		target:          pos,
	}
	s.nextID++
	s.spawned++
	s.insert(r)
	if pos.Z > s.lastZ {
		s.lastZ = pos.Z
	}
	return r
}

// Advance rotates and drifts every ring, recycles passed rings far behind
// the needle and spawns new rings ahead of it.
func (s *RingSet) Advance(dt float64, needle core.Vec3) {
	if dt > 0 {
		s.elapsed += dt
		for _, r := range s.rings {
			s.move(r, dt, needle)
		}
	}
	s.recycle(needle.Z)
	if s.autoSpawn {
		s.fill(needle.Z)
	}
}

func (s *RingSet) move(r *Ring, dt float64, needle core.Vec3) {
	m := r.SpeedMultiplier
	r.Angle = math.Mod(r.Angle+r.RotationSpeed*r.Direction*m*dt, 360)
	if r.Angle < 0 {
		r.Angle += 360
	}

	if r.Passed || r.moveSpeed == 0 {
		return
	}
	if r.pause > 0 {
		r.pause -= dt
		return
	}
	r.Position = core.MoveTowards(r.Position, r.target, r.moveSpeed*m*dt)
	if core.PlanarDistance(r.Position, r.target) < 1e-6 {
		r.pause = s.between(s.cfg.MinPause, s.cfg.MaxPause)
		r.towardNeedle = !r.towardNeedle
		if r.towardNeedle {
			r.target = core.Vec3{X: needle.X, Y: needle.Y, Z: r.Position.Z}
		} else {
			r.target = s.randomPoint(r.Position.Z)
		}
	}
}

// recycle drops rings that were resolved and are far enough behind.
// Unresolved rings are kept so every ring produces exactly one result.
func (s *RingSet) recycle(needleZ float64) {
	limit := needleZ - s.cfg.RecycleBehind
	s.rings = slices.DeleteFunc(s.rings, func(r *Ring) bool {
		return r.Passed && r.Position.Z < limit
	})
}

func (s *RingSet) fill(needleZ float64) {
	if s.lastZ < needleZ {
		s.lastZ = needleZ
	}
	for s.lastZ < needleZ+s.cfg.SpawnAhead {
		s.spawn()
	}
}

func (s *RingSet) spawn() {
	level := s.difficulty.Level(s.spawned, s.elapsed)
	maxSpacing := s.cfg.MaxSpacing
	if s.difficulty.IsEnabled() {
		maxSpacing = s.difficulty.MaxSpacing(s.cfg.MinSpacing, s.cfg.MaxSpacing, level)
	}
	z := s.lastZ + s.between(s.cfg.MinSpacing, maxSpacing)

	direction := 1.0
	if s.rng.Intn(2) == 0 {
		direction = -1
	}
	moveSpeed := s.between(s.cfg.MinMoveSpeed, s.cfg.MaxMoveSpeed)
	if s.difficulty.IsEnabled() {
		moveSpeed = s.difficulty.DriftSpeed(moveSpeed, level)
	}

	pos := s.randomPoint(z)
	r := &Ring{
		ID:              s.nextID,
		Position:        pos,
		Angle:           s.rng.Float64() * 360,
		RotationSpeed:   math.Min(s.cfg.BaseRotationSpeed+float64(s.spawned)*s.cfg.RotationIncrement, s.cfg.MaxRotationSpeed),
		Direction:       direction,
		SpeedMultiplier: 1,
		moveSpeed:       moveSpeed,
		target:          s.randomPoint(z),
		pause:           s.between(s.cfg.MinPause, s.cfg.MaxPause),
	}
	s.nextID++
	s.spawned++
	s.lastZ = z
	s.insert(r)
}

func (s *RingSet) insert(r *Ring) {
	i, _ := slices.BinarySearchFunc(s.rings, r.Position.Z, func(e *Ring, z float64) int {
		switch {
		case e.Position.Z < z:
			return -1
		case e.Position.Z > z:
			return 1
		}
		return 0
	})
	// Equal Z keeps insertion order.
	for i < len(s.rings) && s.rings[i].Position.Z == r.Position.Z {
		i++
	}
	s.rings = slices.Insert(s.rings, i, r)
}

func (s *RingSet) randomPoint(z float64) core.Vec3 {
	a := s.cfg.SpawnArea
	return core.Vec3{
		X: s.between(a.MinX, a.MaxX),
		Y: s.between(a.MinY, a.MaxY),
		Z: z,
	}
}

func (s *RingSet) between(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Float64()*(hi-lo)
}
