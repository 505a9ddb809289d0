package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/younglafire/fruitfarm/internal/eventlog"
	"github.com/younglafire/fruitfarm/internal/logger"
	"github.com/younglafire/fruitfarm/internal/repository"
)

// EventsHandler serves the event log
type EventsHandler struct {
	events eventlog.Service
}

// NewEventsHandler creates an EventsHandler
func NewEventsHandler(svc eventlog.Service) *EventsHandler {
	return &EventsHandler{events: svc}
}

// parseFilter reads owner, type, since, until (RFC 3339) and limit query
// parameters. It writes a 400 and reports false when one is malformed.
func parseFilter(w http.ResponseWriter, r *http.Request, defaultLimit int) (repository.EventLogFilter, bool) {
	q := r.URL.Query()
	var filter repository.EventLogFilter

	if owner := q.Get(QueryParamOwner); owner != "" {
		filter.Owner = &owner
	}
	if eventType := q.Get(QueryParamType); eventType != "" {
		filter.EventType = &eventType
	}
	for _, p := range []struct {
		name string
		dst  **time.Time
	}{{QueryParamSince, &filter.Since}, {QueryParamUntil, &filter.Until}} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidQueryParam, p.name))
			return filter, false
		}
		*p.dst = &t
	}

	limit, ok := queryInt(w, r, QueryParamLimit, defaultLimit)
	if !ok {
		return filter, false
	}
	if limit < 0 {
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidQueryParam, QueryParamLimit))
		return filter, false
	}
	filter.Limit = limit
	return filter, true
}

// HandleList returns logged events newest first
func (h *EventsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseFilter(w, r, DefaultEventLimit)
	if !ok {
		return
	}
	if filter.Limit == 0 || filter.Limit > MaxEventLimit {
		filter.Limit = MaxEventLimit
	}

	events, err := h.events.GetEvents(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, "list events", err)
		return
	}
	if events == nil {
		events = []repository.EventLogEntry{}
	}
	respondJSON(w, http.StatusOK, events)
}

// HandleExport streams matching events as a gzip-compressed JSON lines file
func (h *EventsHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseFilter(w, r, 0)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/gzip")
	w.Header().Set("Content-Disposition", `attachment; filename="events.jsonl.gz"`)

	n, err := h.events.Export(r.Context(), w, filter)
	if err != nil {
		if n == 0 {
			w.Header().Del("Content-Disposition")
			respondServiceError(w, r, "export events", err)
			return
		}
		// body already started; the truncated archive is all the client gets
		logger.FromContext(r.Context()).Error(ErrMsgExportFailed, "error", err, "written", n)
		return
	}
	logger.FromContext(r.Context()).Info(LogMsgExportCompleted, "count", n)
}
