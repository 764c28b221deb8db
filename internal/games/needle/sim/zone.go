// Package sim is the deterministic ringrun simulation: needle and ring
// motion, hit classification, streaks, score, speed and the run lifecycle.
// It knows nothing about terminals, storage or wall-clock time; the caller
// drives it with Tick(dt).
package sim

import (
	"math"

	"github.com/vovakirdan/ringrun/internal/config"
)

// HitZone is the accuracy band a needle passed a ring in.
type HitZone int

const (
	ZoneCore HitZone = iota
	ZoneInner
	ZoneMiddle
	ZoneOuter
	ZoneMiss
)

// Zones lists every zone from best to worst.
var Zones = [...]HitZone{ZoneCore, ZoneInner, ZoneMiddle, ZoneOuter, ZoneMiss}

// String returns the zone name.
func (z HitZone) String() string {
	switch z {
	case ZoneCore:
		return "Core"
	case ZoneInner:
		return "Inner"
	case ZoneMiddle:
		return "Middle"
	case ZoneOuter:
		return "Outer"
	case ZoneMiss:
		return "Miss"
	default:
		return "Unknown"
	}
}

// Label is the short feedback text shown to the player.
func (z HitZone) Label() string {
	switch z {
	case ZoneCore:
		return "PERFECT"
	case ZoneInner:
		return "GREAT"
	case ZoneMiddle:
		return "GOOD"
	case ZoneOuter:
		return "CLOSE"
	default:
		return "MISS"
	}
}

// Extends reports whether the zone grows the streak.
func (z HitZone) Extends() bool {
	return z == ZoneCore || z == ZoneInner || z == ZoneMiddle
}

// Classify maps a planar distance to a hit zone. Each radius is inclusive.
// Negative or NaN distances are treated as a miss.
func Classify(distance float64, zones config.HitZoneConfig) HitZone {
	if distance < 0 || math.IsNaN(distance) {
		return ZoneMiss
	}
	switch {
	case distance <= zones.Core:
		return ZoneCore
	case distance <= zones.Inner:
		return ZoneInner
	case distance <= zones.Middle:
		return ZoneMiddle
	case distance <= zones.Outer:
		return ZoneOuter
	default:
		return ZoneMiss
	}
}

// HitResult is the outcome of the needle passing one ring.
// Distance is +Inf when the ring was overshot without a captured crossing.
type HitResult struct {
	Zone     HitZone
	Distance float64
	RingID   int
}

// ZoneCounts tallies results per zone.
type ZoneCounts struct {
	Core   int `yaml:"core" json:"core"`
	Inner  int `yaml:"inner" json:"inner"`
	Middle int `yaml:"middle" json:"middle"`
	Outer  int `yaml:"outer" json:"outer"`
	Miss   int `yaml:"miss" json:"miss"`
}

// Add counts one result in zone z.
func (c *ZoneCounts) Add(z HitZone) {
	switch z {
	case ZoneCore:
		c.Core++
	case ZoneInner:
		c.Inner++
	case ZoneMiddle:
		c.Middle++
	case ZoneOuter:
		c.Outer++
	default:
		c.Miss++
	}
}

// Get returns the count for zone z.
func (c ZoneCounts) Get(z HitZone) int {
	switch z {
	case ZoneCore:
		return c.Core
	case ZoneInner:
		return c.Inner
	case ZoneMiddle:
		return c.Middle
	case ZoneOuter:
		return c.Outer
	default:
		return c.Miss
	}
}

// Total is the number of rings resolved.
func (c ZoneCounts) Total() int {
	return c.Core + c.Inner + c.Middle + c.Outer + c.Miss
}

// Accuracy is the percentage of rings passed through any zone.
func (c ZoneCounts) Accuracy() float64 {
	total := c.Total()
	if total == 0 {
		return 0
	}
	return float64(total-c.Miss) / float64(total) * 100
}

// CoreAccuracy is the percentage of rings passed through the core.
func (c ZoneCounts) CoreAccuracy() float64 {
	total := c.Total()
	if total == 0 {
		return 0
	}
	return float64(c.Core) / float64(total) * 100
}
