package sprite

import (
	"fmt"

	"github.com/tanema/gween/ease"
)

// Easing selects the curve a ProgAnim uses to map linear progress to eased
// progress. Every curve maps [0,1] onto [0,1] with f(0)=0 and f(1)=1.
type Easing uint8

const (
	EaseLinear Easing = iota // t
	EaseIn                   // t²
	EaseOut                  // 1-(1-t)²
	EaseInOut                // 2t² below 0.5, mirrored above
)

var easingNames = [...]string{
	EaseLinear: "linear",
	EaseIn:     "ease_in",
	EaseOut:    "ease_out",
	EaseInOut:  "ease_in_out",
}

var easingFuncs = [...]ease.TweenFunc{
	EaseLinear: ease.Linear,
	EaseIn:     ease.InQuad,
	EaseOut:    ease.OutQuad,
	EaseInOut:  ease.InOutQuad,
}

// ParseEasing resolves a declaration-file easing name.
func ParseEasing(name string) (Easing, error) {
	for i, n := range easingNames {
		if n == name {
			return Easing(i), nil
		}
	}
	return EaseLinear, fmt.Errorf("sprite: unknown easing %q", name)
}

// String returns the declaration-file name of e.
func (e Easing) String() string {
	if int(e) < len(easingNames) {
		return easingNames[e]
	}
	return fmt.Sprintf("Easing(%d)", uint8(e))
}

// Apply maps progress t in [0,1] through the curve. Values outside [0,1]
// are clamped first. An unknown selector behaves as linear.
func (e Easing) Apply(t float32) float32 {
	t = clamp32(t, 0, 1)
	fn := ease.Linear
	if int(e) < len(easingFuncs) {
		fn = easingFuncs[e]
	}
	return fn(t, 0, 1, 1)
}
