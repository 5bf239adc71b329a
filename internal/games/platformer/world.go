package platformer

import "github.com/vovakirdan/sketch-arcade/internal/config"

// rect is an axis-aligned box in world units. Y is the bottom edge and
// grows upward from the ground.
type rect struct {
	X, Y, W, H float64
}

func fromBox(b config.Box) rect {
	return rect{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

func (r rect) Right() float64   { return r.X + r.W }
func (r rect) Top() float64     { return r.Y + r.H }
func (r rect) CenterX() float64 { return r.X + r.W/2 }

// Overlaps reports whether the interiors intersect. Touching edges do not
// count, so a body resting on a platform does not collide with it.
func (r rect) Overlaps(o rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Top() && o.Y < r.Top()
}

// body is a rect that falls until it lands on the ground or a solid.
type body struct {
	rect
	vy      float64
	resting bool
}

// fall applies one tick of gravity and stops on the first solid below.
func (b *body) fall(gravity, maxFall float64, solids []rect) {
	if b.resting {
		return
	}
	b.vy = max(b.vy-gravity, -maxFall)
	b.Y += b.vy
	if b.Y <= 0 {
		b.Y, b.vy, b.resting = 0, 0, true
		return
	}
	for _, s := range solids {
		if b.Overlaps(s) {
			b.Y, b.vy, b.resting = s.Top(), 0, true
			return
		}
	}
}
