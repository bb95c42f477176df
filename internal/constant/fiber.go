package constant

const (
	ContextKeyRequestID = "requestid"

	// ContextKeyCallable marks requests served by the callable transport, whose errors
	// carry a symbolic kind next to the message.
	ContextKeyCallable = "callable"

	RequestIDHeader = "X-Roster-Request-ID"
)
