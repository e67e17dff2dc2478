package sprite

import "github.com/pkg/errors"

// Sentinel errors. Returned errors wrap one of these with the declaring file,
// line and sprite name attached; match them with errors.Is.
var (
	ErrMissingSourceFile  = errors.New("missing source_file")
	ErrMissingSpritesheet = errors.New("spritesheet could not be loaded")
	ErrNoAnimations       = errors.New("no animations")
	ErrUnknownKeyframes   = errors.New("unknown keyframes")
	ErrSyntax             = errors.New("syntax error")
	ErrAnimationID        = errors.New("animation id out of range")
	ErrTooManyFrames      = errors.New("too many frames")
	ErrKeyframeOrder      = errors.New("keyframe percentages out of order")
	ErrEmptyAnimation     = errors.New("animation has no frames")
	ErrSpriteNotFound     = errors.New("sprite not found")
	ErrAnimationNotFound  = errors.New("animation not found")
	ErrNotInitialized     = errors.New("registry not initialized")
)
