package sse

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialWS(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	return conn
}

func readWSEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var e Event
	require.NoError(t, conn.ReadJSON(&e))
	return e
}

func TestWebSocketHandler_StreamsEvents(t *testing.T) {
	hub := startHub(t)
	srv := httptest.NewServer(WebSocketHandler(hub))
	defer srv.Close()

	conn := dialWS(t, "ws"+strings.TrimPrefix(srv.URL, "http")+"?owner=alice")
	defer conn.Close()

	assert.Equal(t, EventTypeConnected, readWSEvent(t, conn).Type)
	waitForClients(t, hub, 1)

	hub.Broadcast("game.fruit_dropped", "bob", nil)
	hub.Broadcast("game.fruit_dropped", "alice", map[string]int{"level": 2})

	got := readWSEvent(t, conn)
	assert.Equal(t, "game.fruit_dropped", got.Type)
	assert.Equal(t, "alice", got.Owner)
}

func TestWebSocketHandler_ClientCloseUnregisters(t *testing.T) {
	hub := startHub(t)
	srv := httptest.NewServer(WebSocketHandler(hub))
	defer srv.Close()

	conn := dialWS(t, "ws"+strings.TrimPrefix(srv.URL, "http"))
	readWSEvent(t, conn)
	waitForClients(t, hub, 1)

	require.NoError(t, conn.Close())
	waitForClients(t, hub, 0)
}

func TestWebSocketHandler_HubStopClosesConnection(t *testing.T) {
	hub := NewHub()
	hub.Start()
	srv := httptest.NewServer(WebSocketHandler(hub))
	defer srv.Close()

	conn := dialWS(t, "ws"+strings.TrimPrefix(srv.URL, "http"))
	defer conn.Close()
	readWSEvent(t, conn)
	waitForClients(t, hub, 1)

	hub.Stop()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
}
