package ecs

import (
	"github.com/phanxgames/lattice"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// WidgetEvent is the ECS form of a dispatched lattice event. The target is
// identified by id and name so systems never hold widget pointers.
type WidgetEvent struct {
	ID      lattice.EventID
	Pointer lattice.Pointer
	Key     lattice.Key
	// WidgetID is 0 when no widget handled the event.
	WidgetID   uint32
	WidgetName string
	Stopped    bool
}

// WidgetEventType is the Donburi event type for lattice events.
var WidgetEventType = events.NewEventType[WidgetEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// queued on WidgetEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) lattice.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(e lattice.Event, target *lattice.Widget) {
	we := WidgetEvent{ID: e.ID, Pointer: e.Pointer, Key: e.Key, Stopped: e.Quit()}
	if target != nil {
		we.WidgetID = target.ID
		we.WidgetName = target.Name()
	}
	WidgetEventType.Publish(s.world, we)
}
