package sprite

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestDebugPoints(t *testing.T) {
	info, _ := loadSprite(t, sheetSprite("frame_size 16 16\n hot_spot 8 16\n action_spot 12 4\n animation { data 0 }"))
	a := info.Animation(0)

	want := [6]Vec2{{-8, -16}, {8, -16}, {8, 0}, {-8, 0}, {0, 0}, {4, -12}}
	got := debugPoints(a, 0, ebiten.GeoM{})
	for i := range want {
		assertNear(t, "x", float64(got[i].X), float64(want[i].X))
		assertNear(t, "y", float64(got[i].Y), float64(want[i].Y))
	}

	var geom ebiten.GeoM
	geom.Scale(2, 2)
	geom.Translate(100, 50)
	got = debugPoints(a, 0, geom)
	assertNear(t, "corner x", float64(got[0].X), 84)
	assertNear(t, "corner y", float64(got[0].Y), 18)
	assertNear(t, "hot x", float64(got[4].X), 100)
	assertNear(t, "hot y", float64(got[4].Y), 50)
}

func TestDebugPointsFollowKeyframes(t *testing.T) {
	info, _ := loadSprite(t, sheetSprite(`
    frame_size 16 16
    hot_spot 8 8
    keyframes shift { duration 1; keyframe { translation 0 0 }; keyframe { translation 10 0 } }
    animation { data 0; play shift }
`))
	got := debugPoints(info.Animation(0), 0.5, ebiten.GeoM{})
	// Halfway through, the whole frame has moved 5 pixels right.
	assertNear(t, "hot x", float64(got[4].X), 5)
	assertNear(t, "corner x", float64(got[0].X), -3)
}
