package sprite

import (
	"math"

	"github.com/chewxy/math32"
)

// Keyframe is one pose of a ProgAnim.
type Keyframe struct {
	// Percentage is the keyframe's position along the animation, 0..100.
	Percentage int
	// Translation in pixels.
	Translation Vec2
	// Rotation in degrees. It is negated when the transform is built, so a
	// positive value turns +X toward -Y.
	Rotation float32
	Scale    Vec2
	// Opacity in percent, 0..100 where 100 is fully opaque.
	Opacity float32
}

// DefaultKeyframe is the pose a keyframe body starts from before its
// statements are applied.
var DefaultKeyframe = Keyframe{Scale: Vec2{1, 1}, Opacity: 100}

// ProgAnim is a keyframe animation over transform and opacity. It holds no
// playback state: Sample is a pure function of time.
type ProgAnim struct {
	name      string
	duration  float64
	easing    Easing
	keyframes []Keyframe
}

// NewProgAnim returns a ProgAnim over a copy of keyframes. Keyframes must be
// in non-decreasing Percentage order; a negative duration is treated as zero.
func NewProgAnim(name string, duration float64, easing Easing, keyframes []Keyframe) *ProgAnim {
	if duration < 0 || math.IsNaN(duration) {
		duration = 0
	}
	kf := make([]Keyframe, len(keyframes))
	copy(kf, keyframes)
	return &ProgAnim{name: name, duration: duration, easing: easing, keyframes: kf}
}

// Name returns the name the ProgAnim is registered under in its sprite.
func (p *ProgAnim) Name() string { return p.name }

// Duration returns the length of one pass in seconds.
func (p *ProgAnim) Duration() float64 { return p.duration }

// Easing returns the easing curve.
func (p *ProgAnim) Easing() Easing { return p.easing }

// NumKeyframes returns the number of keyframes.
func (p *ProgAnim) NumKeyframes() int { return len(p.keyframes) }

// Keyframe returns keyframe i. It panics if i is out of range.
func (p *ProgAnim) Keyframe(i int) Keyframe { return p.keyframes[i] }

// Sample returns the interpolated transform and opacity (0..1) at the given
// time in seconds. With repeat set, time wraps every Duration seconds;
// otherwise it holds the last pose once the duration has elapsed.
func (p *ProgAnim) Sample(seconds float64, repeat bool) (Transform, float32) {
	switch len(p.keyframes) {
	case 0:
		return IdentityTransform(), 1
	case 1:
		return p.keyframes[0].transform(), p.keyframes[0].Opacity / 100
	}

	eu := p.easing.Apply(p.progress(seconds, repeat))
	a, b := p.span(eu)

	lambda := float32(1)
	if a.Percentage != b.Percentage {
		from := float32(a.Percentage) / 100
		width := float32(b.Percentage-a.Percentage) / 100
		lambda = clamp32((eu-from)/width, 0, 1)
	}

	trans := Vec2{
		X: lerp(a.Translation.X, b.Translation.X, lambda),
		Y: lerp(a.Translation.Y, b.Translation.Y, lambda),
	}
	scale := Vec2{
		X: lerp(a.Scale.X, b.Scale.X, lambda),
		Y: lerp(a.Scale.Y, b.Scale.Y, lambda),
	}
	rot := lerpAngle(degToRad(a.Rotation), degToRad(b.Rotation), lambda)
	opacity := lerp(a.Opacity, b.Opacity, lambda) / 100

	return BuildTransform(trans, -rot, scale, Vec2{}), opacity
}

// Transform is Sample without the opacity.
func (p *ProgAnim) Transform(seconds float64, repeat bool) Transform {
	t, _ := p.Sample(seconds, repeat)
	return t
}

// Opacity is Sample without the transform.
func (p *ProgAnim) Opacity(seconds float64, repeat bool) float32 {
	_, o := p.Sample(seconds, repeat)
	return o
}

// progress returns the raw, un-eased progress in [0,1]. A zero duration is
// always complete.
func (p *ProgAnim) progress(seconds float64, repeat bool) float32 {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}
	if p.duration <= 0 {
		return 1
	}
	if repeat && !math.IsInf(seconds, 1) {
		seconds = math.Mod(seconds, p.duration)
	}
	return float32(math.Min(seconds/p.duration, 1))
}

// span returns the keyframe pair bracketing eased progress eu.
func (p *ProgAnim) span(eu float32) (Keyframe, Keyframe) {
	kf := p.keyframes
	pct := int(math32.Floor(100*eu + 1e-4))
	if pct < kf[0].Percentage {
		return kf[0], kf[0]
	}
	for i := 0; i+1 < len(kf); i++ {
		if kf[i].Percentage <= pct && pct <= kf[i+1].Percentage {
			return kf[i], kf[i+1]
		}
	}
	last := kf[len(kf)-1]
	return last, last
}

// IsOver reports whether a non-repeating pass has finished at the given time.
func (p *ProgAnim) IsOver(seconds float64, repeat bool) bool {
	return !repeat && seconds >= p.duration
}

func (k Keyframe) transform() Transform {
	return BuildTransform(k.Translation, -degToRad(k.Rotation), k.Scale, Vec2{})
}
