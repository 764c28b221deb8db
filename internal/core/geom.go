// Package core provides the engine-free building blocks shared by the
// simulation and the front ends: vectors, clamping helpers, the screen
// buffer and abstract input. It has no external dependencies so the game
// logic stays pure and testable.
package core

import "math"

// Vec3 is a position in world space. Z is the forward axis the needle
// travels along; X and Y span the ring plane.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Scale returns v multiplied by k.
func (v Vec3) Scale(k float64) Vec3 {
	return Vec3{X: v.X * k, Y: v.Y * k, Z: v.Z * k}
}

// LerpVec interpolates between a and b; t is not clamped.
func LerpVec(a, b Vec3, t float64) Vec3 {
	return Vec3{
		X: Lerp(a.X, b.X, t),
		Y: Lerp(a.Y, b.Y, t),
		Z: Lerp(a.Z, b.Z, t),
	}
}

// PlanarDistance is the distance between a and b in the XY plane,
// ignoring the forward axis.
func PlanarDistance(a, b Vec3) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// MoveTowards moves the XY components of from towards to by at most
// maxDelta. Z is kept from from.
func MoveTowards(from, to Vec3, maxDelta float64) Vec3 {
	dist := PlanarDistance(from, to)
	if dist <= maxDelta || dist == 0 {
		return Vec3{X: to.X, Y: to.Y, Z: from.Z}
	}
	k := maxDelta / dist
	return Vec3{
		X: from.X + (to.X-from.X)*k,
		Y: from.Y + (to.Y-from.Y)*k,
		Z: from.Z,
	}
}

// Rect represents an axis-aligned rectangle on the screen grid.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
// NaN saturates to min.
func ClampF(val, min, max float64) float64 {
	if val < min || math.IsNaN(val) {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// InverseLerp returns where v lies between a and b, clamped to [0, 1].
func InverseLerp(a, b, v float64) float64 {
	if a == b {
		return 0
	}
	return ClampF((v-a)/(b-a), 0, 1)
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
