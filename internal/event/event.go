// Package event provides the push-style callback surface of the combat
// engine. Subscribers are optional and their return values are ignored.
package event

// Type identifies an event kind.
type Type string

// Event kinds emitted by the engine.
const (
	Log          Type = "Log"          // Combat log line
	CombatEnded  Type = "CombatEnded"  // One side has no units left
	UnitAttacked Type = "UnitAttacked" // An attack resolved
	UnitDied     Type = "UnitDied"     // A unit reached zero health
	TurnChanged  Type = "TurnChanged"  // A unit started its turn
	UnitSelected Type = "UnitSelected" // The translator changed selection
)

// Event is a dispatched event with a kind-specific payload.
type Event struct {
	Type Type
	Data any
}

// Listener receives events it subscribed to.
type Listener interface {
	OnEvent(e Event)
}

// ListenerFunc adapts a plain function to Listener.
type ListenerFunc func(e Event)

// OnEvent calls f(e).
func (f ListenerFunc) OnEvent(e Event) {
	f(e)
}

// Dispatcher fans events out to subscribers in subscription order.
type Dispatcher struct {
	listeners map[Type][]Listener
	all       []Listener
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[Type][]Listener),
	}
}

// Subscribe registers a listener for one event kind.
func (d *Dispatcher) Subscribe(t Type, l Listener) {
	d.listeners[t] = append(d.listeners[t], l)
}

// SubscribeFunc registers a function for one event kind.
func (d *Dispatcher) SubscribeFunc(t Type, f func(Event)) {
	d.Subscribe(t, ListenerFunc(f))
}

// SubscribeAll registers a listener for every event kind.
func (d *Dispatcher) SubscribeAll(l Listener) {
	d.all = append(d.all, l)
}

// Dispatch delivers e to its kind's subscribers, then to catch-all ones.
// A nil dispatcher drops the event.
func (d *Dispatcher) Dispatch(e Event) {
	if d == nil {
		return
	}
	for _, l := range d.listeners[e.Type] {
		l.OnEvent(e)
	}
	for _, l := range d.all {
		l.OnEvent(e)
	}
}

// Emit is shorthand for Dispatch(Event{Type: t, Data: data}).
func (d *Dispatcher) Emit(t Type, data any) {
	d.Dispatch(Event{Type: t, Data: data})
}
