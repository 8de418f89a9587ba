// Package ecs provides ECS adapters for lattice's event dispatch.
//
// The primary adapter is [NewDonburiSink], which forwards every event a
// lattice Context dispatches (pointer, gesture, keyboard, focus) into a
// [Donburi] world as typed events. Subscribe to [WidgetEventType] in your
// ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	ui.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
