package bootstrap

import (
	"context"
	"log/slog"

	"github.com/younglafire/fruitfarm/internal/event"
	"github.com/younglafire/fruitfarm/internal/eventlog"
	"github.com/younglafire/fruitfarm/internal/metrics"
	"github.com/younglafire/fruitfarm/internal/sse"
)

// EventHandlerDependencies holds what the bus subscribers need
type EventHandlerDependencies struct {
	EventBus        event.Bus
	EventLogService eventlog.Service
	Hub             *sse.Hub
}

// RegisterEventHandlers attaches every subscriber to the bus:
// - metrics collector (counters per event type)
// - event logger (persists events for querying and export)
// - stream subscriber (fans events out to SSE and websocket clients)
func RegisterEventHandlers(ctx context.Context, deps EventHandlerDependencies) {
	metrics.NewEventMetricsCollector().Register(deps.EventBus)
	slog.Info(LogMsgMetricsCollectorRegistered)

	deps.EventLogService.Subscribe(deps.EventBus)
	slog.Info(LogMsgEventLoggerInitialized)

	if deps.Hub != nil {
		sse.NewSubscriber(deps.Hub, deps.EventBus).Subscribe(ctx)
		slog.Info(LogMsgStreamSubscriberRegistered)
	}
}
