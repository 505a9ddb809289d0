package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 256

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 64

	// ClientChannelBuffer is the buffer size for register/unregister channels
	ClientChannelBuffer = 16
)

// Connection settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second

	// WriteTimeout is the timeout for writing to websocket connections
	WriteTimeout = 10 * time.Second

	// PongWait is how long a websocket client may stay silent before it is dropped
	PongWait = 2 * KeepaliveInterval
)

// Stream control event types
const (
	EventTypeConnected = "connected"
	EventTypeKeepalive = "keepalive"
)

// Query parameters
const (
	QueryParamTypes = "types"
	QueryParamOwner = "owner"
)

// Log messages
const (
	LogMsgClientConnected    = "Stream client connected"
	LogMsgClientDisconnected = "Stream client disconnected"
	LogMsgEventBroadcast     = "Broadcasting stream event"
	LogMsgEventDropped       = "Broadcast buffer full, event dropped"
	LogMsgWriteError         = "Failed to write stream event"
	LogMsgUpgradeFailed      = "Websocket upgrade failed"
	LogMsgSubscriberReady    = "Stream subscriber registered for event types"
)
