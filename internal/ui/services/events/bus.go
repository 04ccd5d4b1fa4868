package events

import (
	"fmt"
	"sync"
)

// Bus delivers UI events synchronously on the publisher's goroutine.
// Services and the model all live on the Bubble Tea update loop, so
// handlers may touch model state directly.
type Bus struct {
	mu        sync.RWMutex
	listeners map[string][]func(interface{})
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[string][]func(interface{})),
	}
}

// Subscribe registers a listener for an event type, as returned by TypeOf
func (b *Bus) Subscribe(eventType string, handler func(interface{})) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners[eventType] = append(b.listeners[eventType], handler)
}

// Publish calls every listener of the event's type in subscription order
func (b *Bus) Publish(event interface{}) {
	b.mu.RLock()
	handlers := append([]func(interface{}){}, b.listeners[TypeOf(event)]...)
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}

// TypeOf is the subscription key of an event
func TypeOf(event interface{}) string {
	return fmt.Sprintf("%T", event)
}
