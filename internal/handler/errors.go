package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidQueryParam     = "Invalid %s query parameter"
	ErrMsgMissingOwner          = "Missing account"
	ErrMsgGenericServerError    = "Something went wrong"
	ErrMsgExportFailed          = "Failed to export events"
)

// Success messages
const (
	MsgSeedsConsumed = "Seed bag consumed"
)

// Log messages
const (
	LogMsgDecodeFailed    = "Failed to decode request"
	LogMsgRequestDecoded  = "Request decoded"
	LogMsgServiceError    = "Service call failed"
	LogMsgEncodeFailed    = "Failed to encode JSON response"
	LogMsgWriteFailed     = "Failed to write response buffer"
	LogMsgExportCompleted = "Event export completed"
	LogMsgReadinessFailed = "Readiness check failed"
)

// Query parameters
const (
	QueryParamOwner = "owner"
	QueryParamType  = "type"
	QueryParamSince = "since"
	QueryParamUntil = "until"
	QueryParamLimit = "limit"
)

// Event log read defaults
const (
	DefaultEventLimit = 100
	MaxEventLimit     = 1000
)
