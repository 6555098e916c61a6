// Package scene defines swappable units of application behavior and the
// manager that routes lifecycle calls and events to the active one.
//
// D is the caller-chosen data payload handed to every hook (usually a
// pointer so scenes can mutate it) and E is the application's event type.
package scene

// Scene represents a screen of the application (title, menu, playing, etc.)
//
// The manager forwards every call to the current scene only.
// Embed Base to get no-op defaults for hooks a scene does not need.
type Scene[D, E any] interface {
	// OnStart is forwarded from Manager.Start.
	OnStart(data D)

	// OnEnter is called when this scene becomes current through SwitchScene.
	OnEnter(data D)

	// OnExit is called when this scene stops being current through SwitchScene.
	OnExit(data D)

	// OnUpdate advances the scene state by one iteration.
	OnUpdate(data D)

	// OnRender draws the scene.
	OnRender(data D)

	// OnEvent delivers a single event sent to the manager.
	OnEvent(data D, event E)

	// PollEvents lets the scene push any number of events into queue.
	PollEvents(data D, queue *Queue[E])
}

// Base implements every Scene hook as a no-op.
type Base[D, E any] struct{}

func (Base[D, E]) OnStart(D)               {}
func (Base[D, E]) OnEnter(D)               {}
func (Base[D, E]) OnExit(D)                {}
func (Base[D, E]) OnUpdate(D)              {}
func (Base[D, E]) OnRender(D)              {}
func (Base[D, E]) OnEvent(D, E)            {}
func (Base[D, E]) PollEvents(D, *Queue[E]) {}

// Queue holds events in the order they were pushed
type Queue[E any] struct {
	items []E
}

// Push appends an event
func (q *Queue[E]) Push(events ...E) {
	q.items = append(q.items, events...)
}

// Len returns the number of pending events
func (q *Queue[E]) Len() int {
	return len(q.items)
}

// Drain returns all pending events and empties the queue
func (q *Queue[E]) Drain() []E {
	out := q.items
	q.items = nil
	if out == nil {
		return []E{}
	}
	return out
}
