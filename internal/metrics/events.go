package metrics

import (
	"context"

	"github.com/younglafire/fruitfarm/internal/domain"
	"github.com/younglafire/fruitfarm/internal/event"
	"github.com/younglafire/fruitfarm/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to every domain event
func (e *EventMetricsCollector) Register(bus event.Bus) {
	event.SubscribeAll(bus, domain.AllEventTypes, e.HandleEvent)
}

// HandleEvent updates counters for one event. Decode failures are logged, never returned.
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	if err := e.record(evt); err != nil {
		logger.FromContext(ctx).Debug(LogMsgEventPayloadDecodeFailed, "type", evt.Type, "error", err)
	}
	return nil
}

func (e *EventMetricsCollector) record(evt event.Event) error {
	switch string(evt.Type) {
	case domain.EventTypeSeedsMinted:
		p, err := event.DecodePayload[domain.SeedsMintedPayload](evt.Payload)
		if err != nil {
			return err
		}
		SeedsMinted.WithLabelValues(p.Source).Add(float64(p.Amount))

	case domain.EventTypeSeedsSpent:
		p, err := event.DecodePayload[domain.SeedsChangedPayload](evt.Payload)
		if err != nil {
			return err
		}
		SeedsSpent.Add(float64(p.Amount))

	case domain.EventTypeSeedsDeposited:
		p, err := event.DecodePayload[domain.SeedsDepositedPayload](evt.Payload)
		if err != nil {
			return err
		}
		SeedsDeposited.Add(float64(p.Amount))

	case domain.EventTypeFruitsMerged:
		p, err := event.DecodePayload[domain.GameEventPayload](evt.Payload)
		if err != nil {
			return err
		}
		GameMerges.WithLabelValues(p.Level.Name()).Inc()

	case domain.EventTypeGameOver:
		GameOvers.Inc()

	case domain.EventTypeFruitPlanted:
		p, err := event.DecodePayload[domain.FruitPlantedPayload](evt.Payload)
		if err != nil {
			return err
		}
		FruitsPlanted.WithLabelValues(p.Rarity.String()).Inc()

	case domain.EventTypeFruitHarvested:
		p, err := event.DecodePayload[domain.FruitHarvestedPayload](evt.Payload)
		if err != nil {
			return err
		}
		FruitsHarvested.WithLabelValues(p.FruitType.Name()).Inc()

	case domain.EventTypeMarketMerged:
		p, err := event.DecodePayload[domain.MarketMergedPayload](evt.Payload)
		if err != nil {
			return err
		}
		MarketMerges.WithLabelValues(p.FruitType.Next().Name()).Add(float64(p.Repetitions))

	case domain.EventTypeFruitSold:
		p, err := event.DecodePayload[domain.FruitSoldPayload](evt.Payload)
		if err != nil {
			return err
		}
		FruitsSold.WithLabelValues(p.FruitType.Name()).Inc()
	}
	return nil
}
