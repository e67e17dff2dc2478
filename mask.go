package sprite

import (
	"math/bits"

	"github.com/pkg/errors"
)

// CollisionMask is a 1-bit-per-pixel solidity map of one frame. A pixel is
// solid when its alpha is non-zero.
type CollisionMask struct {
	width, height int
	stride        int // words per row
	bits          []uint64
}

func newCollisionMask(w, h int) *CollisionMask {
	stride := (w + 63) / 64
	return &CollisionMask{width: w, height: h, stride: stride, bits: make([]uint64, stride*h)}
}

func (m *CollisionMask) Width() int  { return m.width }
func (m *CollisionMask) Height() int { return m.height }

// Solid reports whether pixel (x, y) is solid. Pixels outside the mask are
// empty.
func (m *CollisionMask) Solid(x, y int) bool {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return false
	}
	return m.bits[y*m.stride+x/64]&(1<<(uint(x)%64)) != 0
}

func (m *CollisionMask) set(x, y int) {
	m.bits[y*m.stride+x/64] |= 1 << (uint(x) % 64)
}

// Count returns the number of solid pixels.
func (m *CollisionMask) Count() int {
	n := 0
	for _, w := range m.bits {
		n += bits.OnesCount64(w)
	}
	return n
}

// Overlaps reports whether m and other share a solid pixel when other's
// top-left corner sits at (dx, dy) in m's coordinates.
func (m *CollisionMask) Overlaps(other *CollisionMask, dx, dy int) bool {
	x0, y0 := max(0, dx), max(0, dy)
	x1, y1 := min(m.width, dx+other.width), min(m.height, dy+other.height)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if m.Solid(x, y) && other.Solid(x-dx, y-dy) {
				return true
			}
		}
	}
	return false
}

// CollisionMask builds the collision mask of frame table entry frame. The
// spritesheet is locked for the read and unlocked before returning.
func (info *Info) CollisionMask(frame int) (*CollisionMask, error) {
	if frame < 0 || frame >= len(info.frames) {
		return nil, errors.Errorf("sprite: %q: frame %d out of range [0, %d)", info.name, frame, len(info.frames))
	}
	img, err := info.sheet.Lock()
	if err != nil {
		return nil, errors.Wrapf(err, "sprite: %q: collision mask", info.name)
	}
	defer info.sheet.Unlock()

	r := info.FrameRect(frame)
	o := img.Bounds().Min
	m := newCollisionMask(r.Width, r.Height)
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			if _, _, _, a := img.At(o.X+r.X+x, o.Y+r.Y+y).RGBA(); a != 0 {
				m.set(x, y)
			}
		}
	}
	return m, nil
}
