package sprite

import (
	"math"
	"testing"
)

func fadeIn(easing Easing) *ProgAnim {
	return NewProgAnim("fade", 1, easing, []Keyframe{
		{Percentage: 0, Scale: Vec2{1, 1}, Opacity: 0},
		{Percentage: 100, Scale: Vec2{1, 1}, Opacity: 100},
	})
}

func TestProgAnimNoKeyframes(t *testing.T) {
	p := NewProgAnim("empty", 1, EaseLinear, nil)
	m, o := p.Sample(0.5, false)
	if m != IdentityTransform() || o != 1 {
		t.Errorf("Sample = %v, %v; want identity, 1", m, o)
	}
}

func TestProgAnimSingleKeyframe(t *testing.T) {
	p := NewProgAnim("one", 2, EaseLinear, []Keyframe{
		{Translation: Vec2{5, 6}, Rotation: 90, Scale: Vec2{2, 2}, Opacity: 40},
	})
	m, o := p.Sample(1.3, true)
	assertNear(t, "opacity", float64(o), 0.4)
	// -90 deg: cos=0, sin=-1 -> a=0, b=-2, c=2, d=0
	assertAffine(t, "transform", m, [6]float32{0, -2, 2, 0, 5, 6})
}

func TestProgAnimLinearOpacity(t *testing.T) {
	p := fadeIn(EaseLinear)
	cases := []struct{ s, want float64 }{
		{0, 0}, {0.5, 0.5}, {1, 1}, {10, 1}, {-1, 0},
	}
	for _, c := range cases {
		assertNear(t, "opacity", float64(p.Opacity(c.s, false)), c.want)
	}
}

func TestProgAnimRepeatEaseIn(t *testing.T) {
	p := fadeIn(EaseIn)
	assertNear(t, "opacity(0.5)", float64(p.Opacity(0.5, true)), 0.25)
	assertNear(t, "opacity(1.0)", float64(p.Opacity(1.0, true)), 0)
	assertNear(t, "opacity(1.5)", float64(p.Opacity(1.5, true)), 0.25)
}

func TestProgAnimOpacityPiecewiseLinear(t *testing.T) {
	p := NewProgAnim("pulse", 2, EaseLinear, []Keyframe{
		{Percentage: 0, Scale: Vec2{1, 1}, Opacity: 100},
		{Percentage: 25, Scale: Vec2{1, 1}, Opacity: 0},
		{Percentage: 100, Scale: Vec2{1, 1}, Opacity: 60},
	})
	assertNear(t, "start", float64(p.Opacity(0, false)), 1)
	assertNear(t, "mid first", float64(p.Opacity(0.25, false)), 0.5)
	assertNear(t, "knot", float64(p.Opacity(0.5, false)), 0)
	assertNear(t, "mid second", float64(p.Opacity(1.25, false)), 0.3)
	assertNear(t, "end", float64(p.Opacity(2, false)), 0.6)
	assertNear(t, "end repeating", float64(p.Opacity(2, true)), 1)

	// No jumps between consecutive samples.
	prev := p.Opacity(0, false)
	for i := 1; i <= 200; i++ {
		o := p.Opacity(float64(i)*0.01, false)
		if math.Abs(float64(o-prev)) > 0.021 {
			t.Fatalf("discontinuity at s=%.2f: %v -> %v", float64(i)*0.01, prev, o)
		}
		prev = o
	}
}

func TestProgAnimInterpolatesTransform(t *testing.T) {
	p := NewProgAnim("move", 1, EaseLinear, []Keyframe{
		{Percentage: 0, Scale: Vec2{1, 1}, Opacity: 100},
		{Percentage: 100, Translation: Vec2{10, -20}, Rotation: 90, Scale: Vec2{3, 3}, Opacity: 100},
	})
	m, _ := p.Sample(0.5, false)
	tr, r, s := m.Decompose(Vec2{})
	assertNear(t, "tx", float64(tr.X), 5)
	assertNear(t, "ty", float64(tr.Y), -10)
	assertNear(t, "sx", float64(s.X), 2)
	assertNear(t, "sy", float64(s.Y), 2)
	assertNear(t, "rotation", float64(r), -math.Pi/4)
}

func TestProgAnimShortestArcRotation(t *testing.T) {
	p := NewProgAnim("spin", 1, EaseLinear, []Keyframe{
		{Percentage: 0, Rotation: 350, Scale: Vec2{1, 1}, Opacity: 100},
		{Percentage: 100, Rotation: 10, Scale: Vec2{1, 1}, Opacity: 100},
	})
	m, _ := p.Sample(0.5, false)
	_, r, _ := m.Decompose(Vec2{})
	assertNear(t, "rotation", math.Remainder(float64(r), 2*math.Pi), 0)
}

func TestProgAnimZeroDuration(t *testing.T) {
	p := NewProgAnim("snap", 0, EaseLinear, []Keyframe{
		{Percentage: 0, Scale: Vec2{1, 1}, Opacity: 0},
		{Percentage: 100, Scale: Vec2{1, 1}, Opacity: 80},
	})
	assertNear(t, "opacity", float64(p.Opacity(0, false)), 0.8)
	assertNear(t, "opacity repeating", float64(p.Opacity(0, true)), 0.8)
	if !p.IsOver(0, false) {
		t.Error("zero-duration ProgAnim should be over immediately")
	}
}

func TestProgAnimEqualPercentagesPreferLater(t *testing.T) {
	p := NewProgAnim("step", 1, EaseLinear, []Keyframe{
		{Percentage: 0, Scale: Vec2{1, 1}, Opacity: 0},
		{Percentage: 50, Scale: Vec2{1, 1}, Opacity: 20},
		{Percentage: 50, Scale: Vec2{1, 1}, Opacity: 90},
		{Percentage: 100, Scale: Vec2{1, 1}, Opacity: 90},
	})
	assertNear(t, "before step", float64(p.Opacity(0.25, false)), 0.1)
	assertNear(t, "after step", float64(p.Opacity(0.75, false)), 0.9)
}

func TestProgAnimBeforeFirstKeyframe(t *testing.T) {
	p := NewProgAnim("late", 1, EaseLinear, []Keyframe{
		{Percentage: 40, Scale: Vec2{1, 1}, Opacity: 30},
		{Percentage: 80, Scale: Vec2{1, 1}, Opacity: 70},
	})
	assertNear(t, "before", float64(p.Opacity(0.1, false)), 0.3)
	assertNear(t, "after", float64(p.Opacity(0.9, false)), 0.7)
}

func TestNewProgAnimCopiesKeyframes(t *testing.T) {
	kf := []Keyframe{{Opacity: 10}, {Percentage: 100, Opacity: 20}}
	p := NewProgAnim("copy", -3, EaseOut, kf)
	kf[0].Opacity = 99
	if p.Keyframe(0).Opacity != 10 {
		t.Error("NewProgAnim should copy keyframes")
	}
	if p.Duration() != 0 || p.NumKeyframes() != 2 || p.Easing() != EaseOut || p.Name() != "copy" {
		t.Errorf("accessors: %v %v %v %q", p.Duration(), p.NumKeyframes(), p.Easing(), p.Name())
	}
}

func BenchmarkProgAnimSample(b *testing.B) {
	p := NewProgAnim("bench", 1.5, EaseInOut, []Keyframe{
		{Percentage: 0, Scale: Vec2{1, 1}, Opacity: 0},
		{Percentage: 30, Translation: Vec2{4, 4}, Rotation: 45, Scale: Vec2{1, 1}, Opacity: 100},
		{Percentage: 100, Translation: Vec2{8, 0}, Scale: Vec2{2, 2}, Opacity: 50},
	})
	s := 0.0
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = p.Sample(s, true)
		s += 1.0 / 60
	}
}
