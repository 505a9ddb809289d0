// Package eventtest provides an in-memory event.Publisher for service tests.
package eventtest

import (
	"context"
	"sync"

	"github.com/younglafire/fruitfarm/internal/event"
)

// Recorder captures published events in order
type Recorder struct {
	mu     sync.Mutex
	events []event.Event
}

// NewRecorder creates an empty Recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// PublishWithRetry records the event
func (r *Recorder) PublishWithRetry(_ context.Context, evt event.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
}

// Events returns a copy of everything recorded so far
func (r *Recorder) Events() []event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]event.Event(nil), r.events...)
}

// Types returns the recorded event types in publish order
func (r *Recorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = string(e.Type)
	}
	return out
}

// Last returns the most recent event of the given type
func (r *Recorder) Last(eventType string) (event.Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.events) - 1; i >= 0; i-- {
		if string(r.events[i].Type) == eventType {
			return r.events[i], true
		}
	}
	return event.Event{}, false
}

// Reset forgets recorded events
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
