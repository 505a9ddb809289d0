package middleware

// HTTP header names
const (
	// HeaderAccount carries the caller's account address
	HeaderAccount = "X-Account"
)

// Log fields
const (
	LogFieldOwner = "owner"
)

// Log messages
const (
	LogMsgAccountRejected    = "Rejected account header"
	LogMsgAccountResolveFail = "Failed to resolve account"
)

// Error messages written to the client
const (
	ErrMsgMissingAccount = "Missing or invalid X-Account header"
	ErrMsgResolveFailed  = "Failed to resolve account"
)
