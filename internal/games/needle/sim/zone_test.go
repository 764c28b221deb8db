package sim

import (
	"math"
	"testing"

	"github.com/vovakirdan/ringrun/internal/config"
)

var testZones = config.HitZoneConfig{Core: 0.3, Inner: 0.7, Middle: 1.2, Outer: 1.8}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		expected HitZone
	}{
		{"center", 0.0, ZoneCore},
		{"inside core", 0.2, ZoneCore},
		{"core boundary inclusive", 0.3, ZoneCore},
		{"inner", 0.5, ZoneInner},
		{"inner boundary inclusive", 0.7, ZoneInner},
		{"middle", 1.0, ZoneMiddle},
		{"outer", 1.5, ZoneOuter},
		{"outer boundary inclusive", 1.8, ZoneOuter},
		{"just outside", 1.8000001, ZoneMiss},
		{"far", 2.5, ZoneMiss},
		{"infinite", math.Inf(1), ZoneMiss},
		{"negative", -0.1, ZoneMiss},
		{"nan", math.NaN(), ZoneMiss},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.distance, testZones); got != tc.expected {
				t.Errorf("Classify(%v) = %v, expected %v", tc.distance, got, tc.expected)
			}
		})
	}
}

func TestClassifyMonotonic(t *testing.T) {
	prev := Classify(0, testZones)
	for d := 0.0; d <= 3.0; d += 0.01 {
		z := Classify(d, testZones)
		if z < prev {
			t.Fatalf("Classify(%v) = %v after %v: zone got better with distance", d, z, prev)
		}
		prev = z
	}
}

func TestZoneCounts(t *testing.T) {
	var c ZoneCounts
	if c.Accuracy() != 0 || c.CoreAccuracy() != 0 {
		t.Errorf("empty accuracy = %v/%v, expected 0", c.Accuracy(), c.CoreAccuracy())
	}

	for _, z := range []HitZone{ZoneCore, ZoneCore, ZoneInner, ZoneOuter, ZoneMiss} {
		c.Add(z)
	}
	if c.Total() != 5 {
		t.Errorf("Total() = %d, expected 5", c.Total())
	}
	if c.Get(ZoneCore) != 2 || c.Get(ZoneMiss) != 1 || c.Get(ZoneMiddle) != 0 {
		t.Errorf("counts = %+v", c)
	}
	if c.Accuracy() != 80 {
		t.Errorf("Accuracy() = %v, expected 80", c.Accuracy())
	}
	if c.CoreAccuracy() != 40 {
		t.Errorf("CoreAccuracy() = %v, expected 40", c.CoreAccuracy())
	}
}
