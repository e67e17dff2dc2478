package sprite

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

var (
	debugBoundsColor = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	debugHotColor    = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	debugActionColor = color.RGBA{R: 255, G: 220, B: 0, A: 255}
)

// debugMarkerSize is the half length of a spot cross, in screen pixels.
const debugMarkerSize = 4

// white pixel singleton, stretched into lines (no sync.Once: drawing happens
// on the game goroutine)
var debugPixel *ebiten.Image

func ensureDebugPixel() *ebiten.Image {
	if debugPixel == nil {
		debugPixel = ebiten.NewImage(1, 1)
		debugPixel.Fill(color.White)
	}
	return debugPixel
}

// debugPoints maps the frame corners (clockwise from the top-left), the hot
// spot and the action spot of a at the given time to screen space. geom is
// the transform the frame is drawn with after the hot spot offset and the
// keyframe transform.
func debugPoints(a *Animation, seconds float64, geom ebiten.GeoM) [6]Vec2 {
	hot := a.HotSpot()
	local := [6]Vec2{
		{0, 0},
		{float32(a.frameW), 0},
		{float32(a.frameW), float32(a.frameH)},
		{0, float32(a.frameH)},
		{float32(hot.X), float32(hot.Y)},
		{float32(a.actionSpot.X), float32(a.actionSpot.Y)},
	}
	kf := a.InterpolatedTransform(seconds)
	var out [6]Vec2
	for i, p := range local {
		p = kf.Apply(Vec2{p.X - float32(hot.X), p.Y - float32(hot.Y)})
		x, y := geom.Apply(float64(p.X), float64(p.Y))
		out[i] = Vec2{float32(x), float32(y)}
	}
	return out
}

// DrawDebug outlines the frame a shows at the given time and marks its hot
// spot and action spot. geom is the transform the frame itself was drawn
// with after the hot spot offset and the keyframe transform.
func DrawDebug(dst *ebiten.Image, a *Animation, seconds float64, geom ebiten.GeoM) {
	if a == nil {
		return
	}
	pts := debugPoints(a, seconds, geom)
	for i := 0; i < 4; i++ {
		debugLine(dst, pts[i], pts[(i+1)%4], debugBoundsColor)
	}
	debugCross(dst, pts[4], debugHotColor)
	debugCross(dst, pts[5], debugActionColor)
}

func debugCross(dst *ebiten.Image, p Vec2, clr color.Color) {
	debugLine(dst, Vec2{p.X - debugMarkerSize, p.Y}, Vec2{p.X + debugMarkerSize, p.Y}, clr)
	debugLine(dst, Vec2{p.X, p.Y - debugMarkerSize}, Vec2{p.X, p.Y + debugMarkerSize}, clr)
}

// debugLine stretches the pixel singleton from p to q.
func debugLine(dst *ebiten.Image, p, q Vec2, clr color.Color) {
	dx, dy := float64(q.X-p.X), float64(q.Y-p.Y)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, 1)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(float64(p.X), float64(p.Y))
	op.ColorScale.ScaleWithColor(clr)
	dst.DrawImage(ensureDebugPixel(), op)
}
