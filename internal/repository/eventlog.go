package repository

import (
	"context"
	"time"
)

// EventLog defines the interface for event logging storage
type EventLog interface {
	// LogEvent appends an event
	LogEvent(ctx context.Context, eventType string, owner *string, payload, metadata map[string]interface{}) error

	// GetEvents retrieves events newest first
	GetEvents(ctx context.Context, filter EventLogFilter) ([]EventLogEntry, error)

	// CleanupOldEvents removes events older than the specified number of days
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}

// EventLogEntry represents a logged event
type EventLogEntry struct {
	ID        int64                  `json:"id"`
	EventType string                 `json:"event_type"`
	Owner     *string                `json:"owner,omitempty"`
	Payload   map[string]interface{} `json:"payload"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// EventLogFilter filters events for queries
type EventLogFilter struct {
	Owner     *string
	EventType *string
	Since     *time.Time
	Until     *time.Time
	Limit     int
}
