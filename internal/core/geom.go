// Package core provides fundamental types and utilities shared by the
// simulation engine and the terminal platform. It has no external
// dependencies (especially no Bubble Tea) so game logic stays pure and testable.
package core

// Rect represents an axis-aligned box in screen cells.
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

// Clamp restricts a value to be within [min, max].
// If max < min the result is min.
func Clamp(val, min, max int) int {
	if val > max {
		val = max
	}
	if val < min {
		return min
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Scale maps v from a [0, from) range onto [0, to).
// Used to project arena units onto terminal cells.
func Scale(v, from, to int) int {
	if from <= 0 {
		return 0
	}
	return v * to / from
}
