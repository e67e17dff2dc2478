package sprite

import (
	"math"

	"github.com/pkg/errors"
)

// validate repairs the sprite's geometry and animations in place, warning
// about every repair. It fails only on conditions that cannot be repaired.
func (info *Info) validate(w warner, maxFrames int) error {
	iw, ih := info.sheet.Width(), info.sheet.Height()
	if iw <= 0 || ih <= 0 {
		return info.errorf(ErrMissingSpritesheet, "%s is empty", info.sourceFile)
	}

	if !info.hasRect {
		info.rect = Rect{Width: iw, Height: ih}
	}
	info.validateRect(w, iw, ih)

	if !info.hasFrameSize {
		info.frameW, info.frameH = info.rect.Width, info.rect.Height
	}
	info.validateFrameSize(w)

	n := (info.rect.Width / info.frameW) * (info.rect.Height / info.frameH)
	if n > maxFrames {
		return info.errorf(ErrTooManyFrames, "%d frames, limit is %d", n, maxFrames)
	}

	for _, a := range info.animations {
		if a != nil {
			if err := info.validateAnimation(w, a, n); err != nil {
				return err
			}
		}
	}
	for _, a := range info.transitionAnims {
		if err := info.validateAnimation(w, a, n); err != nil {
			return err
		}
	}
	return nil
}

func (info *Info) validateRect(w warner, iw, ih int) {
	r := &info.rect
	if r.X < 0 {
		w.warnf("source_rect x %d is negative, clamped to 0", r.X)
		r.X = 0
	}
	if r.Y < 0 {
		w.warnf("source_rect y %d is negative, clamped to 0", r.Y)
		r.Y = 0
	}
	if r.Width <= 0 {
		w.warnf("source_rect width %d is not positive, set to 1", r.Width)
		r.Width = 1
	}
	if r.Height <= 0 {
		w.warnf("source_rect height %d is not positive, set to 1", r.Height)
		r.Height = 1
	}
	if r.X >= iw {
		w.warnf("source_rect x %d is outside the %dx%d sheet, clamped to %d", r.X, iw, ih, iw-1)
		r.X = iw - 1
	}
	if r.Y >= ih {
		w.warnf("source_rect y %d is outside the %dx%d sheet, clamped to %d", r.Y, iw, ih, ih-1)
		r.Y = ih - 1
	}
	if r.X+r.Width > iw {
		w.warnf("source_rect width %d runs past the sheet, shrunk to %d", r.Width, iw-r.X)
		r.Width = iw - r.X
	}
	if r.Y+r.Height > ih {
		w.warnf("source_rect height %d runs past the sheet, shrunk to %d", r.Height, ih-r.Y)
		r.Height = ih - r.Y
	}
}

func (info *Info) validateFrameSize(w warner) {
	r := &info.rect
	if info.frameW <= 0 {
		w.warnf("frame width %d is not positive, set to 1", info.frameW)
		info.frameW = 1
	}
	if info.frameH <= 0 {
		w.warnf("frame height %d is not positive, set to 1", info.frameH)
		info.frameH = 1
	}
	if info.frameW > r.Width {
		w.warnf("frame width %d exceeds source_rect width %d, clamped", info.frameW, r.Width)
		info.frameW = r.Width
	}
	if info.frameH > r.Height {
		w.warnf("frame height %d exceeds source_rect height %d, clamped", info.frameH, r.Height)
		info.frameH = r.Height
	}
	if rem := r.Width % info.frameW; rem != 0 {
		grown := r.Width + info.frameW - rem
		w.warnf("source_rect width %d is not a multiple of frame width %d, rounded up to %d",
			r.Width, info.frameW, grown)
		r.Width = grown
	}
	if rem := r.Height % info.frameH; rem != 0 {
		grown := r.Height + info.frameH - rem
		w.warnf("source_rect height %d is not a multiple of frame height %d, rounded up to %d",
			r.Height, info.frameH, grown)
		r.Height = grown
	}
}

// validateAnimation checks one animation against a frame table of n frames.
func (info *Info) validateAnimation(w warner, a *Animation, n int) error {
	a.frameW, a.frameH = info.frameW, info.frameH

	if len(a.data) == 0 {
		return info.errorf(ErrEmptyAnimation, "animation %d", a.id)
	}
	for k, idx := range a.data {
		if idx < 0 || idx >= n {
			c := clampInt(idx, 0, n-1)
			w.warnf("animation %d: frame index %d out of range, clamped to %d", a.id, idx, c)
			a.data[k] = c
		}
	}
	if math.IsNaN(a.fps) || a.fps < minFPS {
		w.warnf("animation %d: fps %g too low, set to %g", a.id, a.fps, minFPS)
		a.fps = minFPS
	}
	if a.repeatFrom < 0 || a.repeatFrom >= len(a.data) {
		c := clampInt(a.repeatFrom, 0, len(a.data)-1)
		w.warnf("animation %d: repeat_from %d out of range, clamped to %d", a.id, a.repeatFrom, c)
		a.repeatFrom = c
	}
	if a.transition && a.repeat {
		w.warnf("animation %d: transitions cannot repeat", a.id)
		a.repeat = false
	}
	if !a.repeat && a.repeatFrom != 0 {
		w.warnf("animation %d: repeat_from %d ignored without repeat", a.id, a.repeatFrom)
		a.repeatFrom = 0
	}

	if a.progName != "" {
		a.prog = info.progAnims[a.progName]
		if a.prog == nil {
			return info.errorf(ErrUnknownKeyframes, "animation %d: play %q", a.id, a.progName)
		}
	}
	return nil
}

// errorf wraps a sentinel with the sprite's name and declaring file.
func (info *Info) errorf(sentinel error, format string, args ...any) error {
	return errors.Wrapf(sentinel, "sprite: %s: %q: "+format,
		append([]any{info.file, info.name}, args...)...)
}
