package deck

import (
	"sync"
	"time"
)

// EventType indicates the category of a deck change event.
type EventType string

const (
	EventCardAdded    EventType = "CARD_ADDED"
	EventCardRemoved  EventType = "CARD_REMOVED"
	EventCardMoved    EventType = "CARD_MOVED"
	EventZoneReplaced EventType = "ZONE_REPLACED"
	EventDeckReplaced EventType = "DECK_REPLACED"
	EventUndo         EventType = "UNDO"
	EventRedo         EventType = "REDO"
)

// Event describes one committed deck mutation. Subscribers use events
// to re-derive views (statistics, pricing) instead of polling.
type Event struct {
	Type      EventType
	CardID    int  // card affected, 0 for whole-deck events
	Zone      Zone // zone affected, destination zone for moves
	FromZone  Zone // source zone for moves
	Quantity  int  // quantity actually applied after clamping
	Timestamp time.Time
}

// Listener defines a callback that reacts to deck change events.
type Listener func(Event)

type typedListener struct {
	handle    int
	eventType EventType
	callback  Listener
}

// EventBus provides a synchronous publish/subscribe implementation
// with optional event-type filtering.
type EventBus struct {
	mu             sync.RWMutex
	listeners      map[int]Listener
	typedListeners map[EventType][]typedListener
	nextHandle     int
}

// NewEventBus constructs a fresh event bus instance.
func NewEventBus() *EventBus {
	return &EventBus{
		listeners:      make(map[int]Listener),
		typedListeners: make(map[EventType][]typedListener),
	}
}

// Subscribe registers a listener for all events and returns a handle.
func (bus *EventBus) Subscribe(listener Listener) int {
	if listener == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.listeners[handle] = listener
	return handle
}

// SubscribeTyped registers a listener for a specific event type.
func (bus *EventBus) SubscribeTyped(eventType EventType, listener Listener) int {
	if listener == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.typedListeners[eventType] = append(bus.typedListeners[eventType], typedListener{
		handle:    handle,
		eventType: eventType,
		callback:  listener,
	})
	return handle
}

// Unsubscribe removes the listener identified by the provided handle.
func (bus *EventBus) Unsubscribe(handle int) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	delete(bus.listeners, handle)
	for eventType, listeners := range bus.typedListeners {
		for i := len(listeners) - 1; i >= 0; i-- {
			if listeners[i].handle == handle {
				bus.typedListeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers the event to all registered listeners synchronously.
func (bus *EventBus) Publish(event Event) {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	for _, listener := range bus.listeners {
		listener(event)
	}
	if typed, ok := bus.typedListeners[event.Type]; ok {
		for _, listener := range typed {
			listener.callback(event)
		}
	}
}
