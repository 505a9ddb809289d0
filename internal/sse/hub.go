package sse

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/younglafire/fruitfarm/internal/metrics"
)

// Event is one message delivered to stream clients
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Owner     string      `json:"owner,omitempty"`
	Timestamp int64       `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// Client is a connected SSE or websocket client
type Client struct {
	ID           string
	EventChannel chan Event
	EventFilter  map[string]bool // nil means all event types
	Owner        string          // empty means every owner
}

func (c *Client) wants(e Event) bool {
	if c.EventFilter != nil && !c.EventFilter[e.Type] {
		return false
	}
	return c.Owner == "" || c.Owner == e.Owner
}

// Hub manages client connections and event broadcasting
type Hub struct {
	clients    map[string]*Client
	broadcast  chan Event
	register   chan *Client
	unregister chan string
	mu         sync.RWMutex
	regMu      sync.Mutex
	stopped    bool
	shutdown   chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		broadcast:  make(chan Event, BroadcastBufferSize),
		register:   make(chan *Client, ClientChannelBuffer),
		unregister: make(chan string, ClientChannelBuffer),
		shutdown:   make(chan struct{}),
	}
}

// Start starts the hub's broadcast loop
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.run()
}

// Stop shuts down the hub and closes every client channel
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		h.regMu.Lock()
		h.stopped = true
		h.regMu.Unlock()

		close(h.shutdown)
		h.wg.Wait()

		h.mu.Lock()
		for _, client := range h.clients {
			close(client.EventChannel)
		}
		// registrations the loop never picked up
		for drained := false; !drained; {
			select {
			case client := <-h.register:
				close(client.EventChannel)
			default:
				drained = true
			}
		}
		h.clients = make(map[string]*Client)
		h.mu.Unlock()
		metrics.SSEClients.Set(0)
	})
}

func (h *Hub) run() {
	defer h.wg.Done()

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			metrics.SSEClients.Set(float64(len(h.clients)))
			h.mu.Unlock()

		case clientID := <-h.unregister:
			h.mu.Lock()
			if client, ok := h.clients[clientID]; ok {
				close(client.EventChannel)
				delete(h.clients, clientID)
			}
			metrics.SSEClients.Set(float64(len(h.clients)))
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.mu.RLock()
			for _, client := range h.clients {
				if !client.wants(event) {
					continue
				}
				// slow clients miss events rather than stall the hub
				select {
				case client.EventChannel <- event:
				default:
				}
			}
			h.mu.RUnlock()

		case <-h.shutdown:
			return
		}
	}
}

// Register adds a client interested in eventTypes (all when empty) for owner (all when empty)
func (h *Hub) Register(eventTypes []string, owner string) *Client {
	client := &Client{
		ID:           uuid.NewString(),
		EventChannel: make(chan Event, ClientEventBuffer),
		Owner:        owner,
	}
	for _, t := range eventTypes {
		if t = strings.TrimSpace(t); t == "" {
			continue
		}
		if client.EventFilter == nil {
			client.EventFilter = make(map[string]bool)
		}
		client.EventFilter[t] = true
	}

	h.regMu.Lock()
	defer h.regMu.Unlock()
	if h.stopped {
		close(client.EventChannel)
		return client
	}
	h.register <- client
	return client
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(clientID string) {
	select {
	case h.unregister <- clientID:
	case <-h.shutdown:
	}
}

// Broadcast queues an event for every interested client. It reports false
// when the buffer is full and the event was dropped.
func (h *Hub) Broadcast(eventType, owner string, payload interface{}) bool {
	event := Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Owner:     owner,
		Timestamp: time.Now().UnixMilli(),
		Payload:   payload,
	}

	select {
	case h.broadcast <- event:
		return true
	default:
		return false
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// FormatSSEMessage formats an event as "id/event/data" SSE lines
func FormatSSEMessage(event Event) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	msg := "id: " + event.ID + "\n"
	msg += "event: " + event.Type + "\n"
	msg += "data: " + string(data) + "\n\n"

	return []byte(msg), nil
}
