package constant

type contextKey string

// RequestIDKey carries the per-request id assigned by the logging middleware.
const RequestIDKey contextKey = "request_id"
