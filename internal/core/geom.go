// Package core provides fundamental types and utilities for the gate runner.
// It contains no external dependencies (especially no Bubble Tea) to keep the
// simulation pure and testable.
package core

import "math"

// Vec2 is a point or direction in court space.
// Court space is origin-centered with +y pointing up.
type Vec2 struct {
	X, Y float64
}

// V2 is shorthand for constructing a Vec2.
func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// MaxV returns the component-wise maximum of a and b.
func MaxV(a, b Vec2) Vec2 {
	return Vec2{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)}
}

// MinV returns the component-wise minimum of a and b.
func MinV(a, b Vec2) Vec2 {
	return Vec2{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)}
}

// Box is an axis-aligned rectangle described by its center and half-extent.
type Box struct {
	Center Vec2
	Radius Vec2
}

// NewBox creates a box from a center and half-extent.
func NewBox(center, radius Vec2) Box {
	return Box{Center: center, Radius: radius}
}

// Min returns the lower-left corner.
func (b Box) Min() Vec2 {
	return b.Center.Sub(b.Radius)
}

// Max returns the upper-right corner.
func (b Box) Max() Vec2 {
	return b.Center.Add(b.Radius)
}

// Top returns the y-coordinate of the upper edge.
func (b Box) Top() float64 {
	return b.Center.Y + b.Radius.Y
}

// Bottom returns the y-coordinate of the lower edge.
func (b Box) Bottom() float64 {
	return b.Center.Y - b.Radius.Y
}

// Left returns the x-coordinate of the left edge.
func (b Box) Left() float64 {
	return b.Center.X - b.Radius.X
}

// Overlap computes the intersection of two boxes.
// ok is false when the boxes are disjoint. Touching edges count as overlap.
func (b Box) Overlap(other Box) (lo, hi Vec2, ok bool) {
	lo = MaxV(b.Min(), other.Min())
	hi = MinV(b.Max(), other.Max())
	if lo.X > hi.X || lo.Y > hi.Y {
		return lo, hi, false
	}
	return lo, hi, true
}

// Intersects reports whether two boxes overlap.
func (b Box) Intersects(other Box) bool {
	_, _, ok := b.Overlap(other)
	return ok
}

// Rect represents a cell-aligned rectangle on a Screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Mix linearly interpolates from a to b by t.
func Mix(a, b, t float64) float64 {
	return a + (b-a)*t
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
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
