// Package ecs drives sprite animations from a [Donburi] world.
//
// Attach the [Animator] component to an entity, call [AnimatorData.Play] to
// switch animations, and run [Update] once per tick. Switching goes through
// any transition animation declared between the two, and the requested
// animation takes over once the transition is over. Non-repeating
// animations publish a [FinishedEvent] when they end.
//
// Usage:
//
//	e := world.Create(ecs.Animator)
//	ecs.Animator.Get(world.Entry(e)).Play(registry.MustAnimation("hero", 1))
//
//	// every tick
//	ecs.Update(world, 1.0/60)
//	ecs.FinishedEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
