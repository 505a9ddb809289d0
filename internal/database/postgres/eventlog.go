package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/younglafire/fruitfarm/internal/repository"
)

type eventLogRepository struct {
	db *pgxpool.Pool
}

// NewEventLogRepository creates a new PostgreSQL event log repository
func NewEventLogRepository(db *pgxpool.Pool) repository.EventLog {
	return &eventLogRepository{db: db}
}

// LogEvent stores an event in the database
func (r *eventLogRepository) LogEvent(ctx context.Context, eventType string, owner *string, payload, metadata map[string]interface{}) error {
	if payload == nil {
		payload = map[string]interface{}{}
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	var metadataJSON []byte
	if metadata != nil {
		metadataJSON, err = json.Marshal(metadata)
		if err != nil {
			return err
		}
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO events (event_type, owner, payload, metadata)
		VALUES ($1, $2, $3, $4)`,
		eventType, owner, payloadJSON, metadataJSON)
	return err
}

// GetEvents retrieves events based on filter criteria
func (r *eventLogRepository) GetEvents(ctx context.Context, filter repository.EventLogFilter) ([]repository.EventLogEntry, error) {
	var qb strings.Builder
	qb.WriteString(`
		SELECT id, event_type, owner, payload, metadata, created_at
		FROM events
		WHERE 1=1`)

	args := []interface{}{}
	arg := func(clause string, v interface{}) {
		args = append(args, v)
		fmt.Fprintf(&qb, clause, len(args))
	}

	if filter.Owner != nil {
		arg(" AND owner = $%d", *filter.Owner)
	}
	if filter.EventType != nil {
		arg(" AND event_type = $%d", *filter.EventType)
	}
	if filter.Since != nil {
		arg(" AND created_at >= $%d", *filter.Since)
	}
	if filter.Until != nil {
		arg(" AND created_at <= $%d", *filter.Until)
	}

	qb.WriteString(" ORDER BY created_at DESC, id DESC")

	if filter.Limit > 0 {
		arg(" LIMIT $%d", filter.Limit)
	}

	rows, err := r.db.Query(ctx, qb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

// CleanupOldEvents removes events older than the specified number of days
func (r *eventLogRepository) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	result, err := r.db.Exec(ctx, `
		DELETE FROM events
		WHERE created_at < NOW() - INTERVAL '1 day' * $1`, retentionDays)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

func scanEvents(rows pgx.Rows) ([]repository.EventLogEntry, error) {
	events := []repository.EventLogEntry{}

	for rows.Next() {
		var evt repository.EventLogEntry
		var payloadJSON, metadataJSON []byte

		if err := rows.Scan(&evt.ID, &evt.EventType, &evt.Owner, &payloadJSON, &metadataJSON, &evt.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(payloadJSON, &evt.Payload); err != nil {
			return nil, err
		}
		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &evt.Metadata); err != nil {
				return nil, err
			}
		}
		events = append(events, evt)
	}

	return events, rows.Err()
}
