package sse

import (
	"net/http"
	"strings"
	"time"

	"github.com/younglafire/fruitfarm/internal/logger"
)

// parseFilters reads the types and owner query parameters
func parseFilters(r *http.Request) ([]string, string) {
	var eventTypes []string
	if filterParam := r.URL.Query().Get(QueryParamTypes); filterParam != "" {
		eventTypes = strings.Split(filterParam, ",")
	}
	return eventTypes, r.URL.Query().Get(QueryParamOwner)
}

func connectedEvent(client *Client, eventTypes []string) Event {
	return Event{
		ID:        client.ID,
		Type:      EventTypeConnected,
		Timestamp: time.Now().UnixMilli(),
		Payload: map[string]interface{}{
			"client_id": client.ID,
			"filters":   eventTypes,
			"owner":     client.Owner,
		},
	}
}

// Handler returns an HTTP handler for SSE connections
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "SSE not supported", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		eventTypes, owner := parseFilters(r)
		client := hub.Register(eventTypes, owner)
		log.Info(LogMsgClientConnected, "client_id", client.ID, "filters", eventTypes, "owner", owner)

		defer func() {
			hub.Unregister(client.ID)
			log.Info(LogMsgClientDisconnected, "client_id", client.ID)
		}()

		if msg, err := FormatSSEMessage(connectedEvent(client, eventTypes)); err == nil {
			if _, err := w.Write(msg); err != nil {
				return
			}
			flusher.Flush()
		}

		ticker := time.NewTicker(KeepaliveInterval)
		defer ticker.Stop()

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-client.EventChannel:
				if !ok {
					// hub is shutting down
					return
				}
				msg, err := FormatSSEMessage(event)
				if err != nil {
					log.Error(LogMsgWriteError, "error", err)
					continue
				}
				if _, err := w.Write(msg); err != nil {
					log.Warn(LogMsgWriteError, "error", err)
					return
				}
				flusher.Flush()

			case <-ticker.C:
				msg, _ := FormatSSEMessage(Event{Type: EventTypeKeepalive, Timestamp: time.Now().UnixMilli()})
				if _, err := w.Write(msg); err != nil {
					return
				}
				flusher.Flush()
			}
		}
	}
}
