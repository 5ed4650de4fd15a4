// Package core provides fundamental types and utilities for the tap-colour
// game. It contains no external dependencies (especially no Bubble Tea) to
// keep scene logic pure and testable.
package core

// Rect is an axis-aligned rectangle in screen cells.
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

// Empty reports whether the rectangle covers no cells.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Inset shrinks the rectangle by n cells on every side.
func (r Rect) Inset(n int) Rect {
	return Rect{X: r.X + n, Y: r.Y + n, W: Max(r.W-2*n, 0), H: Max(r.H-2*n, 0)}
}

// SplitH divides r into n columns of equal width separated by gap cells.
// Leftover cells from integer division are given to the leftmost columns so
// the row always spans r exactly. Returns nil if the columns cannot fit.
func (r Rect) SplitH(n, gap int) []Rect {
	if n <= 0 {
		return nil
	}
	avail := r.W - gap*(n-1)
	if avail < n {
		return nil
	}
	base := avail / n
	extra := avail % n

	cols := make([]Rect, n)
	x := r.X
	for i := 0; i < n; i++ {
		w := base
		if i < extra {
			w++
		}
		cols[i] = Rect{X: x, Y: r.Y, W: w, H: r.H}
		x += w + gap
	}
	return cols
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

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
