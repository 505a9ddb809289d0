package eventlog

import (
	"context"
	"fmt"
	"io"

	"github.com/younglafire/fruitfarm/internal/domain"
	"github.com/younglafire/fruitfarm/internal/event"
	"github.com/younglafire/fruitfarm/internal/logger"
	"github.com/younglafire/fruitfarm/internal/metrics"
	"github.com/younglafire/fruitfarm/internal/repository"
)

// Service appends every domain event to the event log and serves it back
type Service interface {
	// Subscribe registers the event logger on every domain event type
	Subscribe(bus event.Bus)

	// GetEvents returns logged events newest first
	GetEvents(ctx context.Context, filter repository.EventLogFilter) ([]repository.EventLogEntry, error)

	// Export writes matching events as gzip-compressed JSON lines and returns how many were written
	Export(ctx context.Context, w io.Writer, filter repository.EventLogFilter) (int, error)

	// CleanupOldEvents removes events older than the retention period
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}

type service struct {
	repo repository.EventLog
}

// NewService creates a new event logging service
func NewService(repo repository.EventLog) Service {
	return &service{repo: repo}
}

// Subscribe registers event handlers for all event types
func (s *service) Subscribe(bus event.Bus) {
	event.SubscribeAll(bus, domain.AllEventTypes, s.handleEvent)
}

// handleEvent persists one event. The log is append-only; events are never updated.
func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := event.DecodePayload[map[string]interface{}](evt.Payload)
	if err != nil {
		log.Debug(LogMsgEventPayloadDecodeFailed, LogFieldType, evt.Type, LogFieldError, err)
		return nil
	}

	var owner *string
	if o := evt.Owner(); o != "" {
		owner = &o
	} else if o, ok := payload[PayloadKeyOwner].(string); ok && o != "" {
		owner = &o
	}

	if err := s.repo.LogEvent(ctx, string(evt.Type), owner, payload, evt.Metadata); err != nil {
		metrics.EventLogFailures.Inc()
		log.Error(LogMsgFailedToLogEvent, LogFieldError, err, LogFieldType, evt.Type)
		return err
	}

	metrics.EventLogWrites.Inc()
	log.Debug(LogMsgEventLogged, LogFieldType, evt.Type, LogFieldOwner, owner)
	return nil
}

// GetEvents returns logged events newest first
func (s *service) GetEvents(ctx context.Context, filter repository.EventLogFilter) ([]repository.EventLogEntry, error) {
	events, err := s.repo.GetEvents(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	return events, nil
}

// CleanupOldEvents removes events older than the retention period
func (s *service) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays < 1 {
		return 0, fmt.Errorf("%w: retention must be at least one day", domain.ErrInvalidInput)
	}
	return s.repo.CleanupOldEvents(ctx, retentionDays)
}
