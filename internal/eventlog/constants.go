package eventlog

// Payload keys read when an event carries no owner metadata
const (
	PayloadKeyOwner = "owner"
)

// Export limits
const (
	DefaultExportLimit = 10000
	MaxExportLimit     = 100000
)

// Log messages - service events
const (
	LogMsgEventPayloadDecodeFailed = "Event payload could not be decoded, skipping log"
	LogMsgFailedToLogEvent         = "Failed to log event to database"
	LogMsgEventLogged              = "Event logged to database"
	LogMsgEventsExported           = "Events exported"
)

// Log messages - cleanup job
const (
	LogMsgCleanupJobStarting  = "Starting event log cleanup job"
	LogMsgCleanupJobFailed    = "Event log cleanup failed"
	LogMsgCleanupJobCompleted = "Event log cleanup completed"
)

// Log field keys
const (
	LogFieldType          = "type"
	LogFieldOwner         = "owner"
	LogFieldError         = "error"
	LogFieldRetentionDays = "retentionDays"
	LogFieldDuration      = "duration"
	LogFieldDeletedCount  = "deletedCount"
	LogFieldCount         = "count"
)
