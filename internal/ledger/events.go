package ledger

import (
	"context"

	"github.com/younglafire/fruitfarm/internal/domain"
	"github.com/younglafire/fruitfarm/internal/event"
)

// MintedEvent builds the seeds.minted event for a freshly inserted bag
func MintedEvent(bag *domain.SeedBag, source string, nowMillis int64) event.Event {
	return event.New(domain.EventTypeSeedsMinted, bag.Owner, domain.SeedsMintedPayload{
		Owner:     bag.Owner,
		BagID:     bag.ID,
		Amount:    bag.Balance,
		Source:    source,
		Timestamp: nowMillis,
	})
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, evt)
	}
}

func (s *service) publishChanged(ctx context.Context, eventType string, bag *domain.SeedBag, amount int64) {
	s.publish(ctx, event.New(eventType, bag.Owner, domain.SeedsChangedPayload{
		Owner:     bag.Owner,
		BagID:     bag.ID,
		Amount:    amount,
		Balance:   bag.Balance,
		Timestamp: s.clock.NowMillis(),
	}))
}
