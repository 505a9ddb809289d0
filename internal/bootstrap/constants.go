package bootstrap

import (
	"os"
	"time"
)

// Event system defaults, used when the config leaves them zero
const (
	EventDefaultMaxRetries     = 5
	EventDefaultRetryDelay     = 2 * time.Second
	EventDefaultDeadLetterPath = "logs/event_deadletter.jsonl"
)

// Worker pool sizing for background jobs
const (
	WorkerPoolSize      = 2
	WorkerPoolQueueSize = 16
)

// Log file retention
const (
	LogFilesToKeep = 9
	LogFilePrefix  = "session_"
	LogFileSuffix  = ".log"
)

// File permissions
const (
	DirPermission  os.FileMode = 0o755
	FilePermission os.FileMode = 0o644
)

// Log messages
const (
	LogMsgLoggingInitialized         = "Logging initialized"
	LogMsgStarting                   = "Starting fruitfarm"
	LogMsgConfigLoaded               = "Configuration loaded"
	LogMsgGameConfigLoaded           = "Game configuration loaded"
	LogMsgEventSystemInitialized     = "Event system initialized"
	LogMsgStorageInitialized         = "Storage initialized"
	LogMsgMetricsCollectorRegistered = "Event metrics collector registered"
	LogMsgEventLoggerInitialized     = "Event logger subscribed"
	LogMsgStreamSubscriberRegistered = "Stream subscriber registered"
	LogMsgShuttingDownServer         = "Shutting down server"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgShuttingDownEventPublisher = "Flushing event publisher"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
	LogMsgServerStopped              = "Server stopped"
	LogMsgFailedDeleteOldLog         = "Failed to delete old log file"
)

// Error messages
const (
	ErrMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	ErrMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
	ErrMsgUnknownStorageDriver           = "unknown storage driver"
)
