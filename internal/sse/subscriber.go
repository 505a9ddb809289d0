package sse

import (
	"context"

	"github.com/younglafire/fruitfarm/internal/domain"
	"github.com/younglafire/fruitfarm/internal/event"
	"github.com/younglafire/fruitfarm/internal/logger"
)

// Subscriber bridges the internal event bus to the hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new stream subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe forwards every domain event to the hub
func (s *Subscriber) Subscribe(ctx context.Context) {
	event.SubscribeAll(s.bus, domain.AllEventTypes, s.handleEvent)
	logger.FromContext(ctx).Info(LogMsgSubscriberReady, "count", len(domain.AllEventTypes))
}

func (s *Subscriber) handleEvent(ctx context.Context, evt event.Event) error {
	if !s.hub.Broadcast(string(evt.Type), evt.Owner(), evt.Payload) {
		logger.FromContext(ctx).Warn(LogMsgEventDropped, "event_type", evt.Type)
		return nil
	}
	logger.FromContext(ctx).Debug(LogMsgEventBroadcast, "event_type", evt.Type, "owner", evt.Owner())
	return nil
}
