package fakertc

import (
	"reflect"
	"sync"

	"github.com/lanikai/fakertc/internal/sched"
)

// Event types emitted by a PeerConnection.
const (
	EventSignalingStateChange     = "signalingstatechange"
	EventIceGatheringStateChange  = "icegatheringstatechange"
	EventIceConnectionStateChange = "iceconnectionstatechange"
	EventIceCandidate             = "icecandidate"
)

// Event is passed to listeners. Candidate is only meaningful for icecandidate
// events, where nil marks the end of candidates.
type Event struct {
	Type      string
	Target    *PeerConnection
	Candidate *IceCandidate
}

// A Listener receives events it has been registered for.
type Listener interface {
	HandleEvent(e *Event)
}

type funcListener struct {
	fn func(*Event)
}

func (l *funcListener) HandleEvent(e *Event) {
	l.fn(e)
}

// NewListener wraps fn in a Listener handle. Registering the same handle twice
// for one event type has no effect; two handles wrapping the same function are
// distinct listeners.
func NewListener(fn func(*Event)) Listener {
	return &funcListener{fn}
}

// sameListener compares two listeners without panicking. Value.Comparable
// looks into interface fields, which Type.Comparable does not.
func sameListener(a, b Listener) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if !va.IsValid() || !vb.IsValid() {
		return a == nil && b == nil
	}
	if va.Type() != vb.Type() || !va.Comparable() || !vb.Comparable() {
		return false
	}
	return a == b
}

// EventTarget keeps the listeners of one PeerConnection and delivers events to
// them on its scheduler.
type EventTarget struct {
	mu        sync.Mutex
	listeners map[string][]Listener
	handlers  map[string]func(*Event)

	scheduler sched.Scheduler
	self      *PeerConnection
}

func (t *EventTarget) init(self *PeerConnection, s sched.Scheduler) {
	t.listeners = make(map[string][]Listener)
	t.handlers = make(map[string]func(*Event))
	t.scheduler = s
	t.self = self
}

// AddEventListener registers l for events of the given type. Listeners run in
// registration order.
func (t *EventTarget) AddEventListener(eventType string, l Listener) {
	if l == nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for _, existing := range t.listeners[eventType] {
		if sameListener(existing, l) {
			return
		}
	}
	t.listeners[eventType] = append(t.listeners[eventType], l)
}

// RemoveEventListener unregisters l. It is not an error if l was never
// registered.
func (t *EventTarget) RemoveEventListener(eventType string, l Listener) {
	t.mu.Lock()
	defer t.mu.Unlock()
	list := t.listeners[eventType]
	for i, existing := range list {
		if sameListener(existing, l) {
			t.listeners[eventType] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// SetEventHandler sets the default handler for an event type, which runs after
// all registered listeners. A nil fn clears it.
func (t *EventTarget) SetEventHandler(eventType string, fn func(*Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if fn == nil {
		delete(t.handlers, eventType)
	} else {
		t.handlers[eventType] = fn
	}
}

// EventHandler returns the default handler for an event type, if any.
func (t *EventTarget) EventHandler(eventType string) func(*Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.handlers[eventType]
}

// dispatchEvent delivers e on a later scheduler turn, to the listeners and
// default handler registered at that time.
func (t *EventTarget) dispatchEvent(e *Event) {
	e.Target = t.self
	t.scheduler.Schedule(func() {
		t.mu.Lock()
		listeners := append([]Listener(nil), t.listeners[e.Type]...)
		handler := t.handlers[e.Type]
		t.mu.Unlock()

		for _, l := range listeners {
			invokeListener(e, l.HandleEvent)
		}
		if handler != nil {
			invokeListener(e, handler)
		}
	})
}

func invokeListener(e *Event, fn func(*Event)) {
	defer func() {
		if r := recover(); r != nil {
			e.Target.log.Error("Listener for '%s' panicked: %v", e.Type, r)
		}
	}()
	fn(e)
}
