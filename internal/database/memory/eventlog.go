package memory

import (
	"context"
	"time"

	"github.com/younglafire/fruitfarm/internal/repository"
)

type eventLogRepository struct{ s *Store }

// NewEventLogRepository returns the append-only event log backed by s
func NewEventLogRepository(s *Store) repository.EventLog {
	return &eventLogRepository{s: s}
}

func (r *eventLogRepository) LogEvent(ctx context.Context, eventType string, owner *string, payload, metadata map[string]interface{}) error {
	r.s.eventsMu.Lock()
	defer r.s.eventsMu.Unlock()

	r.s.nextEventID++
	var ownerCopy *string
	if owner != nil {
		o := *owner
		ownerCopy = &o
	}
	r.s.events = append(r.s.events, repository.EventLogEntry{
		ID:        r.s.nextEventID,
		EventType: eventType,
		Owner:     ownerCopy,
		Payload:   payload,
		Metadata:  metadata,
		CreatedAt: r.s.now(),
	})
	return nil
}

func (r *eventLogRepository) GetEvents(ctx context.Context, filter repository.EventLogFilter) ([]repository.EventLogEntry, error) {
	r.s.eventsMu.Lock()
	defer r.s.eventsMu.Unlock()

	out := []repository.EventLogEntry{}
	for i := len(r.s.events) - 1; i >= 0; i-- {
		e := r.s.events[i]
		if !matches(e, filter) {
			continue
		}
		out = append(out, e)
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out, nil
}

func matches(e repository.EventLogEntry, f repository.EventLogFilter) bool {
	if f.Owner != nil && (e.Owner == nil || *e.Owner != *f.Owner) {
		return false
	}
	if f.EventType != nil && e.EventType != *f.EventType {
		return false
	}
	if f.Since != nil && e.CreatedAt.Before(*f.Since) {
		return false
	}
	if f.Until != nil && e.CreatedAt.After(*f.Until) {
		return false
	}
	return true
}

func (r *eventLogRepository) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	r.s.eventsMu.Lock()
	defer r.s.eventsMu.Unlock()

	cutoff := r.s.now().Add(-time.Duration(retentionDays) * 24 * time.Hour)
	kept := r.s.events[:0]
	var removed int64
	for _, e := range r.s.events {
		if e.CreatedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	r.s.events = kept
	return removed, nil
}
