package ecs

import "strconv"

// EventType identifies different types of events
type EventType string

// Event interface that all events must implement
type Event interface {
	Type() EventType
}

// EventHandler is a function that processes events
type EventHandler func(Event)

// EventArgs is the key/value argument bag carried by named events
type EventArgs map[string]string

// GetString returns the value for key, or def when absent
func (a EventArgs) GetString(key, def string) string {
	if v, ok := a[key]; ok {
		return v
	}
	return def
}

// GetInt returns the integer value for key, or def when absent or malformed
func (a EventArgs) GetInt(key string, def int) int {
	v, ok := a[key]
	if !ok {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// NamedEvent is a string-named event with an argument bag
type NamedEvent struct {
	Name EventType
	Args EventArgs
}

// Type returns the event type
func (e NamedEvent) Type() EventType {
	return e.Name
}

// SubscriptionID identifies a registered handler
type SubscriptionID uint64

type subscription struct {
	id      SubscriptionID
	handler EventHandler
}

// EventManager manages event subscriptions and dispatches
type EventManager struct {
	subscribers map[EventType][]subscription
	nextID      SubscriptionID
}

// NewEventManager creates a new event manager
func NewEventManager() *EventManager {
	return &EventManager{
		subscribers: make(map[EventType][]subscription),
	}
}

// Subscribe registers a handler for a specific event type
func (em *EventManager) Subscribe(eventType EventType, handler EventHandler) SubscriptionID {
	em.nextID++
	em.subscribers[eventType] = append(em.subscribers[eventType], subscription{id: em.nextID, handler: handler})
	return em.nextID
}

// Unsubscribe removes a handler registered with Subscribe
func (em *EventManager) Unsubscribe(eventType EventType, id SubscriptionID) {
	subs, exists := em.subscribers[eventType]
	if !exists {
		return
	}

	kept := make([]subscription, 0, len(subs))
	for _, s := range subs {
		if s.id != id {
			kept = append(kept, s)
		}
	}

	if len(kept) == 0 {
		delete(em.subscribers, eventType)
	} else {
		em.subscribers[eventType] = kept
	}
}

// Emit dispatches an event to all subscribed handlers
func (em *EventManager) Emit(event Event) {
	subs, exists := em.subscribers[event.Type()]
	if !exists {
		return
	}

	// Handlers may subscribe or unsubscribe while we dispatch
	for _, s := range append([]subscription(nil), subs...) {
		s.handler(event)
	}
}

// Fire is a convenience method to emit a named event
func (em *EventManager) Fire(name EventType, args EventArgs) {
	em.Emit(NamedEvent{Name: name, Args: args})
}

// HandlerCount returns the number of handlers for an event type
func (em *EventManager) HandlerCount(eventType EventType) int {
	return len(em.subscribers[eventType])
}
