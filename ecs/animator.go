package ecs

import (
	"math"

	"github.com/phanxgames/sprite"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// AnimatorData is the playback state of one entity.
type AnimatorData struct {
	// Current is the animation being shown. While a transition plays it is
	// the transition animation.
	Current *sprite.Animation
	// Next is the animation the running transition leads into, or nil.
	Next *sprite.Animation
	// Elapsed is the time since Current started, in seconds.
	Elapsed float64
	// Speed scales the time passed to Update. Zero means normal speed.
	Speed float64

	finished bool
}

// Animator is the Donburi component holding an AnimatorData.
var Animator = donburi.NewComponentType[AnimatorData]()

// FinishedEvent is published when a non-repeating animation ends.
type FinishedEvent struct {
	Entity    donburi.Entity
	Animation *sprite.Animation
}

// FinishedEventType is the Donburi event type for FinishedEvent.
var FinishedEventType = events.NewEventType[FinishedEvent]()

// Play switches to next. If a transition is declared from the current
// animation to next it plays first. Requesting the animation already playing,
// or already queued behind a transition, does not restart it.
func (a *AnimatorData) Play(next *sprite.Animation) {
	if next == nil || a.Target() == next {
		return
	}
	from := a.Current
	if a.Next != nil {
		// Interrupting a transition: transitions never chain, so start
		// from the animation it was heading to.
		from = a.Next
	}
	if tr := from.FindTransition(next); tr != nil {
		a.Current, a.Next = tr, next
	} else {
		a.Current, a.Next = next, nil
	}
	a.Elapsed = 0
	a.finished = false
}

// Target returns the animation the entity is settling on: Next during a
// transition, Current otherwise.
func (a *AnimatorData) Target() *sprite.Animation {
	if a.Next != nil {
		return a.Next
	}
	return a.Current
}

// Advance moves playback forward by dt seconds and reports whether a
// non-repeating animation finished during this step.
func (a *AnimatorData) Advance(dt float64) bool {
	if a.Current == nil {
		return false
	}
	if a.Speed != 0 {
		dt *= a.Speed
	}
	a.Elapsed += dt
	if a.Next != nil && a.Current.IsOver(a.Elapsed) {
		a.Elapsed = math.Max(0, a.Elapsed-length(a.Current))
		a.Current, a.Next = a.Next, nil
	}
	if !a.finished && a.Current.IsOver(a.Elapsed) {
		a.finished = true
		return true
	}
	return false
}

// Finished reports whether the current animation has ended.
func (a *AnimatorData) Finished() bool { return a.finished }

// Image returns the frame to draw, or nil when nothing is playing.
func (a *AnimatorData) Image() sprite.Image {
	if a.Current == nil {
		return nil
	}
	return a.Current.ImageAtTime(a.Elapsed)
}

// Transform returns the keyframe transform of the current animation.
func (a *AnimatorData) Transform() sprite.Transform {
	if a.Current == nil {
		return sprite.IdentityTransform()
	}
	return a.Current.InterpolatedTransform(a.Elapsed)
}

// Opacity returns the keyframe opacity of the current animation in [0,1].
func (a *AnimatorData) Opacity() float32 {
	if a.Current == nil {
		return 1
	}
	return a.Current.InterpolatedOpacity(a.Elapsed)
}

// length is the time after which a non-repeating animation is over.
func length(a *sprite.Animation) float64 {
	d := a.Duration()
	if p := a.ProgAnim(); p != nil {
		d = math.Max(d, p.Duration())
	}
	return d
}

// Update advances every Animator in world by dt seconds and publishes a
// FinishedEvent for each animation that ended. Events are queued; call
// FinishedEventType.ProcessEvents to deliver them.
func Update(world donburi.World, dt float64) {
	Animator.Each(world, func(e *donburi.Entry) {
		a := Animator.Get(e)
		if a.Advance(dt) {
			FinishedEventType.Publish(world, FinishedEvent{Entity: e.Entity(), Animation: a.Current})
		}
	})
}
