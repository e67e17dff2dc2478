// Package sprite is the sprite and animation core for [Ebitengine] games.
//
// A sprite is declared in a text file, cut from a spritesheet into a flat
// table of frames, and given frame-indexed animations, transitions between
// them, and keyframe animations over transform and opacity. Everything is
// loaded once and then sampled statelessly by time.
//
// # Declarations
//
// Sprites live in .spr files under an asset root, sprites/ by default:
//
//	sprite "hero" {
//	    source_file "images/hero.png"
//	    source_rect 0 0 128 64
//	    frame_size 32 32
//	    hot_spot 16 30
//
//	    custom_properties {
//	        team heroes
//	        sounds step1 step2
//	    }
//
//	    animation 0 { data 0 1 2 3; fps 8; repeat true }
//	    animation 1 { data 4 5 6 7; fps 12; repeat true; repeat_from 2 }
//	    transition 0 to 1 { data 3 4; fps 10 }
//	    transition any to 2 { data 0; fps 4; play fade }
//
//	    keyframes fade {
//	        duration 0.5
//	        easing ease_out
//	        keyframe 0% { opacity 100% }
//	        keyframe 100% { opacity 0%; scale 1.5 1.5; rotation 90 }
//	    }
//	    animation 2 { data 0; play fade }
//	}
//
// Frames are numbered row-major within source_rect. Animation ids run from 0
// to [MaxAnimations]-1; transitions get ids from [MaxAnimations] upward in
// declaration order. Problems that can be repaired (a rectangle past the
// sheet edge, a frame index out of range, a transition that repeats) are
// fixed and reported to the [Logger]; problems that cannot (no source_file,
// no animations, unknown keyframes, bad syntax) fail the load with an error
// matching one of the Err sentinels.
//
// # Loading
//
// A [Registry] scans the asset root and keeps sprites by name:
//
//	reg := sprite.NewRegistry(os.DirFS("assets"), sprite.NewEbitenLoader(os.DirFS("assets")),
//		sprite.DefaultConfig(), nil)
//	reg.MustInit()
//	walk := reg.MustAnimation("hero", 0)
//
// Declarations under sprites/overrides/ replace earlier sprites of the same
// name; any other redefinition is ignored with a warning. A single file can
// be loaded without a registry through [Loader].
//
// # Sampling
//
// Animations hold no playback state. Keep the time since the animation
// started and ask for the frame:
//
//	img := walk.ImageAtTime(t)
//	m := walk.InterpolatedTransform(t)
//	alpha := walk.InterpolatedOpacity(t)
//
// When switching animations, [Animation.FindTransition] names the transition
// animation to play first, if one is declared. The ecs sub-package keeps this
// playback state in a Donburi component.
//
// # Threading
//
// Loading and sampling are single-threaded. A Registry must not be mutated
// while it is read; to reload, build a new one. [Watcher] reports edited
// declaration files for that purpose.
//
// [Ebitengine]: https://ebitengine.org
package sprite
