package core

import "math"

// DefaultSmoothing is the fraction of the remaining distance a camera
// axis covers per Follow call.
const DefaultSmoothing = 0.08

// Axis is a one-dimensional camera that keeps a target inside a view
// window clamped to world bounds.
type Axis struct {
	Offset    float64 // world coordinate of the view's low edge
	Smoothing float64 // 0 < Smoothing <= 1; 1 means no easing
}

// NewAxis returns an axis with the default smoothing.
func NewAxis() Axis {
	return Axis{Smoothing: DefaultSmoothing}
}

// Desired returns the clamped view offset that centers target.
// When the view is wider than the world, the world is centered in the view.
func Desired(target, view, worldMin, worldMax float64) float64 {
	span := worldMax - worldMin
	if view >= span {
		return worldMin - (view-span)/2
	}
	lo := target - view/2
	if lo < worldMin {
		lo = worldMin
	}
	if lo+view > worldMax {
		lo = worldMax - view
	}
	return lo
}

// Follow eases the offset toward Desired and returns the new offset.
func (a *Axis) Follow(target, view, worldMin, worldMax float64) float64 {
	k := a.Smoothing
	if k <= 0 || k > 1 {
		k = DefaultSmoothing
	}
	a.Offset += (Desired(target, view, worldMin, worldMax) - a.Offset) * k
	return a.Offset
}

// Snap jumps straight to the desired offset, used after resizes.
func (a *Axis) Snap(target, view, worldMin, worldMax float64) float64 {
	a.Offset = Desired(target, view, worldMin, worldMax)
	return a.Offset
}

// Camera2D pairs two axes over a rectangular world.
type Camera2D struct {
	X, Y Axis
}

// NewCamera2D returns a camera with default smoothing on both axes.
func NewCamera2D() Camera2D {
	return Camera2D{X: NewAxis(), Y: NewAxis()}
}

// Follow eases both axes toward target for a viewW x viewH window over a
// world spanning [0, worldW) x [0, worldH).
func (c *Camera2D) Follow(target Vec2, viewW, viewH, worldW, worldH float64) {
	c.X.Follow(target.X, viewW, 0, worldW)
	c.Y.Follow(target.Y, viewH, 0, worldH)
}

// Snap positions both axes without easing.
func (c *Camera2D) Snap(target Vec2, viewW, viewH, worldW, worldH float64) {
	c.X.Snap(target.X, viewW, 0, worldW)
	c.Y.Snap(target.Y, viewH, 0, worldH)
}

// Origin returns the rounded top-left world cell visible in the view.
func (c Camera2D) Origin() (int, int) {
	return int(math.Round(c.X.Offset)), int(math.Round(c.Y.Offset))
}
