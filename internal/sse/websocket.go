package sse

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/younglafire/fruitfarm/internal/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 16 * 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WebSocketHandler streams hub events as JSON text frames. It takes the same
// types and owner filters as the SSE handler.
func WebSocketHandler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn(LogMsgUpgradeFailed, "error", err)
			return
		}
		defer conn.Close()

		eventTypes, owner := parseFilters(r)
		client := hub.Register(eventTypes, owner)
		log.Info(LogMsgClientConnected, "client_id", client.ID, "transport", "websocket")
		defer func() {
			hub.Unregister(client.ID)
			log.Info(LogMsgClientDisconnected, "client_id", client.ID, "transport", "websocket")
		}()

		// The reader only services control frames and notices the close.
		closed := make(chan struct{})
		_ = conn.SetReadDeadline(time.Now().Add(PongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(PongWait))
		})
		go func() {
			defer close(closed)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		if err := writeJSON(conn, connectedEvent(client, eventTypes)); err != nil {
			return
		}

		ticker := time.NewTicker(KeepaliveInterval)
		defer ticker.Stop()

		for {
			select {
			case <-closed:
				return

			case event, ok := <-client.EventChannel:
				if !ok {
					_ = conn.WriteControl(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
						time.Now().Add(time.Second))
					return
				}
				if err := writeJSON(conn, event); err != nil {
					log.Warn(LogMsgWriteError, "error", err)
					return
				}

			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(WriteTimeout)); err != nil {
					return
				}
			}
		}
	}
}

func writeJSON(conn *websocket.Conn, v interface{}) error {
	if err := conn.SetWriteDeadline(time.Now().Add(WriteTimeout)); err != nil {
		return err
	}
	return conn.WriteJSON(v)
}
