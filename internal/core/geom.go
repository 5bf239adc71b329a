// Package core holds the types shared by games and platforms: input
// actions, the screen buffer, player seats and runtime settings. It has no
// third-party imports so game logic stays testable on its own.
package core

import "math"

// Rect is an axis-aligned rectangle in screen cells.
type Rect struct {
	X, Y int
	W, H int
}

func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right is the first column past the rectangle.
func (r Rect) Right() int { return r.X + r.W }

// Bottom is the first row past the rectangle.
func (r Rect) Bottom() int { return r.Y + r.H }

// Vec2 is a position or direction in the maze's continuous world space.
type Vec2 struct {
	X, Y float64
}

// FromAngle returns the unit vector for angle in radians. Zero points
// along +X and positive angles turn toward +Y.
func FromAngle(angle float64) Vec2 {
	return Vec2{X: math.Cos(angle), Y: math.Sin(angle)}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

// Cell returns the grid square containing v for squares of the given size.
func (v Vec2) Cell(size float64) (col, row int) {
	return int(math.Floor(v.X / size)), int(math.Floor(v.Y / size))
}
