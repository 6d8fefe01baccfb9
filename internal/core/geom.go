// Package core provides the fundamental types shared by the arena packages.
// It contains no external dependencies (especially no Bubble Tea) to keep
// simulation logic pure and testable.
package core

import "math"

// Point is a position or vector in map pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Dist returns the Euclidean distance to q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Round returns p with both coordinates rounded to the nearest integer.
func (p Point) Round() Point {
	return Point{X: Round(p.X), Y: Round(p.Y)}
}

// Round rounds to the nearest integer; halves go toward +Inf so that
// -2.5 becomes -2. Damage and frame coordinates all round this way.
func Round(v float64) float64 {
	return math.Floor(v + 0.5)
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
