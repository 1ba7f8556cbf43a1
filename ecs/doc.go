// Package ecs bridges sapling scene lifecycle events into a [Donburi] world.
//
// [NewDonburiSink] publishes every [sapling.SceneEvent] as a typed Donburi
// event and keeps one entity per registered root node, carrying a [NodeRef]
// component, so ECS systems can query the scene's roots directly.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	engine.Scene.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
