package sprite

import "image"

// MaxAnimations bounds regular animation ids to [0, MaxAnimations).
// Transition animations are numbered from MaxAnimations upward, up to
// 2*MaxAnimations-1.
const MaxAnimations = 256

// DefaultMaxFrames is the largest frame table a sprite may have unless
// Config.MaxFrames says otherwise.
const DefaultMaxFrames = 4096

// minFPS is the floor applied to an animation's frame rate.
const minFPS = 1e-5

// defaultFPS is used when an animation body does not declare fps.
const defaultFPS = 8.0

// Vec2 is a 2D vector in pixels (translation) or factors (scale).
type Vec2 struct {
	X, Y float32
}

// Rect is an integer rectangle in spritesheet pixel coordinates. The origin
// is the top-left corner, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height int
}

// Rectangle converts r to an image.Rectangle.
func (r Rect) Rectangle() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Contains reports whether the pixel (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width &&
		y >= r.Y && y < r.Y+r.Height
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
