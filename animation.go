package sprite

import (
	"image"
	"math"
)

// Animation is a frame-indexed animation of a sprite. It is immutable after
// loading and holds no playback state; every query is a pure function of the
// time in seconds since the animation started.
type Animation struct {
	sprite *Info
	id     int

	data       []int
	fps        float64
	repeat     bool
	repeatFrom int

	frameW, frameH int
	hotSpot        image.Point
	actionSpot     image.Point

	transition bool

	progName string
	prog     *ProgAnim
}

// newAnimation returns an animation inheriting the sprite's current default
// spots.
func newAnimation(info *Info, id int) *Animation {
	return &Animation{
		sprite:     info,
		id:         id,
		fps:        defaultFPS,
		hotSpot:    info.hotSpot,
		actionSpot: info.actionSpot,
		transition: id >= MaxAnimations,
	}
}

// --- Accessors ---

// ID returns the animation id. Transition animations have ids of
// MaxAnimations and above.
func (a *Animation) ID() int { return a.id }

// Sprite returns the sprite that owns the animation.
func (a *Animation) Sprite() *Info { return a.sprite }

func (a *Animation) FPS() float64 { return a.fps }

// FrameCount returns the number of entries in the animation's frame list.
func (a *Animation) FrameCount() int { return len(a.data) }

func (a *Animation) FrameWidth() int  { return a.frameW }
func (a *Animation) FrameHeight() int { return a.frameH }

// Repeats reports whether the animation loops.
func (a *Animation) Repeats() bool { return a.repeat }

// RepeatFrom returns the frame position loops restart at.
func (a *Animation) RepeatFrom() int { return a.repeatFrom }

func (a *Animation) HotSpot() image.Point    { return a.hotSpot }
func (a *Animation) ActionSpot() image.Point { return a.actionSpot }

// IsTransition reports whether the animation is played between two others.
func (a *Animation) IsTransition() bool { return a.transition }

// HasKeyframes reports whether a ProgAnim is attached.
func (a *Animation) HasKeyframes() bool { return a.prog != nil }

// ProgAnim returns the attached keyframe animation, or nil.
func (a *Animation) ProgAnim() *ProgAnim { return a.prog }

// UserProperty returns a custom property of the owning sprite.
func (a *Animation) UserProperty(name string) ([]string, bool) {
	return a.sprite.UserProperty(name)
}

// --- Frames ---

// FrameIndex returns the sprite frame table index shown at position k of the
// animation. k is clamped to [0, FrameCount).
func (a *Animation) FrameIndex(k int) int {
	return a.data[clampInt(k, 0, len(a.data)-1)]
}

// Image returns the frame shown at position k, clamped like FrameIndex.
func (a *Animation) Image(k int) Image {
	return a.sprite.Frame(a.FrameIndex(k))
}

// FrameAtTime returns the position within the frame list shown at the given
// time. Negative times sample position 0. Past the end, a non-repeating
// animation holds its last frame and a repeating one cycles over
// [RepeatFrom, FrameCount).
func (a *Animation) FrameAtTime(seconds float64) int {
	n := len(a.data)
	f := math.Floor(a.fps * seconds)
	// fps*seconds can round just below an integer at a frame's own start
	// time; step up only when that start time has actually been reached.
	if (f+1)/a.fps <= seconds {
		f++
	}
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	if f < float64(n) {
		return int(f)
	}
	if !a.repeat || math.IsInf(f, 1) {
		return n - 1
	}
	rf := float64(a.repeatFrom)
	return int(math.Mod(f-rf, float64(n)-rf) + rf)
}

// ImageAtTime returns the frame image shown at the given time.
func (a *Animation) ImageAtTime(seconds float64) Image {
	return a.Image(a.FrameAtTime(seconds))
}

// StartTimeOfFrame returns the time position k first appears, with k clamped
// to [0, FrameCount).
func (a *Animation) StartTimeOfFrame(k int) float64 {
	return float64(clampInt(k, 0, len(a.data)-1)) / a.fps
}

// Duration returns the time one pass over the frame list takes. A looping
// animation has the same nominal duration as a non-looping one.
func (a *Animation) Duration() float64 {
	return float64(len(a.data)) / a.fps
}

// IsOver reports whether a non-repeating animation has finished at the given
// time, including any attached ProgAnim. Repeating animations never finish.
func (a *Animation) IsOver(seconds float64) bool {
	if a.repeat {
		return false
	}
	d := a.Duration()
	if a.prog != nil {
		d = math.Max(d, a.prog.Duration())
	}
	return seconds >= d
}

// --- Keyframes ---

// InterpolatedTransform samples the attached ProgAnim, looping it when the
// animation repeats. Without one it returns the identity.
func (a *Animation) InterpolatedTransform(seconds float64) Transform {
	if a.prog == nil {
		return IdentityTransform()
	}
	return a.prog.Transform(seconds, a.repeat)
}

// InterpolatedOpacity samples the attached ProgAnim's opacity in [0,1].
// Without one it returns 1.
func (a *Animation) InterpolatedOpacity(seconds float64) float32 {
	if a.prog == nil {
		return 1
	}
	return a.prog.Opacity(seconds, a.repeat)
}

// --- Transitions ---

// FindTransition returns the transition animation to play when switching
// from a to next, or nil when none is declared. Transitions never chain:
// if either side is itself a transition, or the two belong to different
// sprites, there is no transition.
func (a *Animation) FindTransition(next *Animation) *Animation {
	if a == nil || next == nil || a.transition || next.transition {
		return nil
	}
	if a.sprite != next.sprite {
		return nil
	}
	return a.sprite.FindTransitionAnimation(a.id, next.id)
}
