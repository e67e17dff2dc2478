package sprite

import (
	"github.com/chewxy/math32"
	"github.com/hajimehoshi/ebiten/v2"
)

// Transform is a 4x4 matrix stored column-major: the element at row r,
// column c lives at index c*4+r. Only the affine 2D subspace is used, so
// the third row and column stay trivial.
//
//	| t[0]  t[4]  t[8]   t[12] |
//	| t[1]  t[5]  t[9]   t[13] |
//	| t[2]  t[6]  t[10]  t[14] |
//	| t[3]  t[7]  t[11]  t[15] |
//
// Angles are radians. Positive rotation turns +X toward +Y.
type Transform [16]float32

// identityTransform is the identity matrix.
var identityTransform = Transform{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// IdentityTransform returns the identity matrix.
func IdentityTransform() Transform {
	return identityTransform
}

// BuildTransform returns translate(t) · rotate(r) · scale(s) · translate(-anchor).
// The anchor is the point held fixed by the rotation and scale; the result is
// then moved by t.
func BuildTransform(t Vec2, r float32, s Vec2, anchor Vec2) Transform {
	sin, cos := math32.Sincos(r)

	// Linear block of rotate(r) · scale(s):
	//   | a  c |   | cos*sx  -sin*sy |
	//   | b  d | = | sin*sx   cos*sy |
	a := cos * s.X
	b := sin * s.X
	c := -sin * s.Y
	d := cos * s.Y

	m := identityTransform
	m[0], m[1] = a, b
	m[4], m[5] = c, d
	m[12] = t.X - (a*anchor.X + c*anchor.Y)
	m[13] = t.Y - (b*anchor.X + d*anchor.Y)
	return m
}

// multiplyTransform returns p · q.
func multiplyTransform(p, q Transform) Transform {
	var m Transform
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += p[k*4+row] * q[col*4+k]
			}
			m[col*4+row] = sum
		}
	}
	return m
}

// Compose pre-multiplies t by a, so a is applied after t: t = a · t.
func (t *Transform) Compose(a Transform) {
	*t = multiplyTransform(a, *t)
}

// Translate applies a translation after t.
func (t *Transform) Translate(x, y float32) {
	m := identityTransform
	m[12], m[13] = x, y
	t.Compose(m)
}

// Rotate applies a rotation of r radians about the origin after t.
func (t *Transform) Rotate(r float32) {
	sin, cos := math32.Sincos(r)
	m := identityTransform
	m[0], m[1] = cos, sin
	m[4], m[5] = -sin, cos
	t.Compose(m)
}

// Scale applies a scale about the origin after t.
func (t *Transform) Scale(sx, sy float32) {
	m := identityTransform
	m[0], m[5] = sx, sy
	t.Compose(m)
}

// Apply transforms the point p.
func (t Transform) Apply(p Vec2) Vec2 {
	return Vec2{
		X: t[0]*p.X + t[4]*p.Y + t[12],
		Y: t[1]*p.X + t[5]*p.Y + t[13],
	}
}

// Decompose recovers the translation, rotation and scale that BuildTransform
// was given, assuming the same anchor and a positive Y scale. The rotation
// is returned in [-π, π].
func (t Transform) Decompose(anchor Vec2) (translation Vec2, rotation float32, scale Vec2) {
	a, b := t[0], t[1]
	c, d := t[4], t[5]

	translation = Vec2{
		X: t[12] + a*anchor.X + c*anchor.Y,
		Y: t[13] + b*anchor.X + d*anchor.Y,
	}

	s2 := a*a + b*b + c*c + d*d
	if s2 == 0 {
		return translation, 0, Vec2{}
	}

	// det = sx*sy; with sy > 0 its sign is the sign of sx.
	det := a*d - b*c
	cos := math32.Sqrt((a*a + d*d) / s2)
	sin := math32.Sqrt((b*b + c*c) / s2)
	if a*det < 0 {
		cos = -cos
	}
	if b*det < 0 {
		sin = -sin
	}
	rotation = math32.Atan2(sin, cos)

	// Qᵀ · M = Qᵀ · Q · S = S
	scale = Vec2{
		X: cos*a + sin*b,
		Y: -sin*c + cos*d,
	}
	return translation, rotation, scale
}

// ToColumnMajor2D returns a copy of t with the third row and column zeroed,
// leaving a strict 2D transform for rasterizers that only read the XY and W
// components.
func (t Transform) ToColumnMajor2D() Transform {
	m := t
	for i := 0; i < 4; i++ {
		m[2*4+i] = 0 // column 3
		m[i*4+2] = 0 // row 3
	}
	return m
}

// GeoM converts the 2D part of t to an ebiten.GeoM for drawing.
func (t Transform) GeoM() ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, float64(t[0]))
	g.SetElement(0, 1, float64(t[4]))
	g.SetElement(0, 2, float64(t[12]))
	g.SetElement(1, 0, float64(t[1]))
	g.SetElement(1, 1, float64(t[5]))
	g.SetElement(1, 2, float64(t[13]))
	return g
}

// degToRad converts degrees, as written in declaration files, to radians.
func degToRad(deg float32) float32 {
	return deg * math32.Pi / 180
}

// lerpAngle interpolates between two angles in radians along the shortest
// arc. Turns of more than half a revolution between a and b are not unwrapped.
func lerpAngle(a, b, t float32) float32 {
	d := math32.Mod(b-a, 2*math32.Pi)
	if d < 0 {
		d += 2 * math32.Pi
	}
	if d > math32.Pi {
		d -= 2 * math32.Pi
	}
	return a + d*t
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}
