package sprite

import (
	"image"
	"math"
	"testing"
)

const walkSprite = `
sprite walk {
    source_file images/sheet.png
    source_rect 0 0 64 32
    frame_size 32 32
    hot_spot 16 30
    animation 0 { data 0 1; fps 4; repeat true }
    animation 1 {
        data 0 1 0 1 0
        fps 10
        repeat false
    }
}
`

const loopSprite = `
sprite loop {
    source_file images/sheet.png
    frame_size 16 16
    animation 0 { data 0 1 2 3 4; fps 5; repeat true; repeat_from 2 }
    animation 1 { data 7 6 5; fps 3; repeat true; action_spot 4 4 }
}
`

func TestFrameAtTimeWalkCycle(t *testing.T) {
	info, _ := loadSprite(t, walkSprite)
	a := info.Animation(0)
	cases := []struct {
		s    float64
		want int
	}{
		{0, 0}, {0.25, 1}, {0.5, 0}, {0.74, 0}, {0.75, 1},
	}
	for _, c := range cases {
		if got := a.FrameAtTime(c.s); got != c.want {
			t.Errorf("FrameAtTime(%v) = %d, want %d", c.s, got, c.want)
		}
	}
}

func TestFrameAtTimeNonLooping(t *testing.T) {
	info, _ := loadSprite(t, walkSprite)
	a := info.Animation(1)
	cases := []struct {
		s    float64
		want int
	}{
		{0.35, 3}, {1.0, 4}, {5.0, 4},
	}
	for _, c := range cases {
		if got := a.FrameAtTime(c.s); got != c.want {
			t.Errorf("FrameAtTime(%v) = %d, want %d", c.s, got, c.want)
		}
	}
	if !a.IsOver(0.5) {
		t.Error("IsOver(0.5) = false, want true")
	}
	if a.IsOver(0.49) {
		t.Error("IsOver(0.49) = true, want false")
	}
}

func TestFrameAtTimePartialLoop(t *testing.T) {
	info, _ := loadSprite(t, loopSprite)
	a := info.Animation(0)
	want := []int{0, 1, 2, 3, 4, 2, 3, 4, 2, 3}
	for i, w := range want {
		s := float64(i) * 0.2
		if got := a.FrameAtTime(s); got != w {
			t.Errorf("FrameAtTime(%.1f) = %d, want %d", s, got, w)
		}
	}
}

func TestFrameAtTimeOutOfRangeTimes(t *testing.T) {
	info, _ := loadSprite(t, walkSprite)
	a := info.Animation(0)
	if got := a.FrameAtTime(-3); got != 0 {
		t.Errorf("FrameAtTime(-3) = %d, want 0", got)
	}
	if got := a.FrameAtTime(math.NaN()); got != 0 {
		t.Errorf("FrameAtTime(NaN) = %d, want 0", got)
	}
	if got := info.Animation(1).FrameAtTime(1e300); got != 4 {
		t.Errorf("FrameAtTime(huge) = %d, want 4", got)
	}
}

func TestEveryFrameIsValid(t *testing.T) {
	for _, src := range []string{walkSprite, loopSprite} {
		info, _ := loadSprite(t, src)
		for _, id := range info.AnimationIDs() {
			a := info.Animation(id)
			for k := 0; k < a.FrameCount(); k++ {
				if a.Image(k) == nil {
					t.Errorf("%s anim %d: Image(%d) is nil", info.Name(), id, k)
				}
			}
		}
	}
}

func TestStartTimeOfFrameIdempotent(t *testing.T) {
	for _, src := range []string{walkSprite, loopSprite} {
		info, _ := loadSprite(t, src)
		for _, id := range info.AnimationIDs() {
			a := info.Animation(id)
			for k := 0; k < a.FrameCount(); k++ {
				if got := a.FrameAtTime(a.StartTimeOfFrame(k)); got != k {
					t.Errorf("%s anim %d: FrameAtTime(StartTimeOfFrame(%d)) = %d", info.Name(), id, k, got)
				}
			}
		}
	}
}

func TestFrameAtTimeJustBeforeFrameStart(t *testing.T) {
	info, _ := loadSprite(t, sheetSprite("frame_size 16 16\n animation { data 0 1 2; fps 1 }"))
	a := info.Animation(0)
	cases := []struct {
		s    float64
		want int
	}{
		{1 - 5e-10, 0}, {1, 1}, {math.Nextafter(2, 0), 1}, {2, 2},
	}
	for _, c := range cases {
		if got := a.FrameAtTime(c.s); got != c.want {
			t.Errorf("FrameAtTime(%v) = %d, want %d", c.s, got, c.want)
		}
	}
}

func TestStartTimeOfFrameClamps(t *testing.T) {
	info, _ := loadSprite(t, walkSprite)
	a := info.Animation(1)
	assertNear(t, "k=-1", a.StartTimeOfFrame(-1), 0)
	assertNear(t, "k=99", a.StartTimeOfFrame(99), 0.4)
}

func TestLoopingPeriodEqualsDuration(t *testing.T) {
	info, _ := loadSprite(t, loopSprite)
	a := info.Animation(1)
	assertNear(t, "duration", a.Duration(), 1)
	for i := 0; i < 40; i++ {
		s := float64(i) * 0.07
		if a.FrameAtTime(s) != a.FrameAtTime(s+a.Duration()) {
			t.Errorf("frame at %v differs from frame one period later", s)
		}
	}
	if a.IsOver(100) {
		t.Error("repeating animation should never be over")
	}
}

func TestPartialLoopCyclesAfterFirstPass(t *testing.T) {
	info, _ := loadSprite(t, loopSprite)
	a := info.Animation(0)
	for i := 0; i < 100; i++ {
		s := a.Duration() + float64(i)*0.13
		k := a.FrameAtTime(s)
		if k < a.RepeatFrom() || k >= a.FrameCount() {
			t.Fatalf("FrameAtTime(%v) = %d, outside [%d, %d)", s, k, a.RepeatFrom(), a.FrameCount())
		}
	}
}

func TestNonLoopingHoldsLastFrame(t *testing.T) {
	info, _ := loadSprite(t, walkSprite)
	a := info.Animation(1)
	last := a.FrameCount() - 1
	for s := a.StartTimeOfFrame(last); s < 3; s += 0.05 {
		if got := a.FrameAtTime(s); got != last {
			t.Fatalf("FrameAtTime(%v) = %d, want %d", s, got, last)
		}
	}
}

func TestAnimationAccessors(t *testing.T) {
	info, _ := loadSprite(t, loopSprite)
	a := info.Animation(1)
	if a.ID() != 1 || a.Sprite() != info || a.FPS() != 3 || a.FrameCount() != 3 {
		t.Errorf("id=%d fps=%v count=%d", a.ID(), a.FPS(), a.FrameCount())
	}
	if a.FrameWidth() != 16 || a.FrameHeight() != 16 {
		t.Errorf("frame size = %dx%d", a.FrameWidth(), a.FrameHeight())
	}
	if !a.Repeats() || a.RepeatFrom() != 0 || a.IsTransition() || a.HasKeyframes() {
		t.Error("unexpected flags")
	}
	if a.ActionSpot() != image.Pt(4, 4) {
		t.Errorf("ActionSpot = %v", a.ActionSpot())
	}
	if a.FrameIndex(0) != 7 || a.FrameIndex(2) != 5 || a.FrameIndex(9) != 5 {
		t.Error("FrameIndex mismatch")
	}
	if a.ImageAtTime(0) != info.Frame(7) {
		t.Error("ImageAtTime(0) should be frame 7")
	}
}

func TestAnimationInheritsHotSpot(t *testing.T) {
	info, _ := loadSprite(t, walkSprite)
	if got := info.Animation(0).HotSpot(); got != image.Pt(16, 30) {
		t.Errorf("HotSpot = %v, want (16,30)", got)
	}
}

func TestInterpolationWithoutKeyframes(t *testing.T) {
	info, _ := loadSprite(t, walkSprite)
	a := info.Animation(0)
	if a.InterpolatedTransform(0.3) != IdentityTransform() {
		t.Error("want identity transform")
	}
	if a.InterpolatedOpacity(0.3) != 1 {
		t.Error("want opacity 1")
	}
}

func TestInterpolationWithKeyframes(t *testing.T) {
	info, _ := loadSprite(t, `
sprite fx {
    source_file images/sheet.png
    frame_size 32 32
    keyframes fade {
        duration 2
        keyframe { opacity 0% }
        keyframe { opacity 100% }
    }
    animation 0 { data 0; fps 1; play fade }
    animation 1 { data 0; fps 1; repeat true; play fade }
}
`)
	once := info.Animation(0)
	assertNear(t, "opacity", float64(once.InterpolatedOpacity(1)), 0.5)
	if once.IsOver(1.5) {
		t.Error("IsOver(1.5) should wait for the 2s keyframes")
	}
	if !once.IsOver(2) {
		t.Error("IsOver(2) should be true")
	}

	looped := info.Animation(1)
	assertNear(t, "looped opacity", float64(looped.InterpolatedOpacity(2.5)), 0.25)
}

func BenchmarkFrameAtTime(b *testing.B) {
	info, _ := loadSprite(b, loopSprite)
	a := info.Animation(0)
	s := 0.0
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = a.FrameAtTime(s)
		s += 1.0 / 60
	}
}
