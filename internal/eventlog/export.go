package eventlog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"

	"github.com/younglafire/fruitfarm/internal/logger"
	"github.com/younglafire/fruitfarm/internal/repository"
)

// Export writes matching events as gzip-compressed JSON lines
func (s *service) Export(ctx context.Context, w io.Writer, filter repository.EventLogFilter) (int, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultExportLimit
	}
	if filter.Limit > MaxExportLimit {
		filter.Limit = MaxExportLimit
	}

	events, err := s.repo.GetEvents(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to get events: %w", err)
	}

	zw := gzip.NewWriter(w)
	enc := json.NewEncoder(zw)
	for i := range events {
		if err := enc.Encode(&events[i]); err != nil {
			_ = zw.Close()
			return i, fmt.Errorf("failed to encode event %d: %w", events[i].ID, err)
		}
	}
	if err := zw.Close(); err != nil {
		return len(events), fmt.Errorf("failed to finish export: %w", err)
	}

	logger.FromContext(ctx).Info(LogMsgEventsExported, LogFieldCount, len(events))
	return len(events), nil
}
