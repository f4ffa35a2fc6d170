package contextkeys

// Custom key type to avoid collisions with other packages.
type contextKey string

// RequestIDContextKey is the key under which the request id is stored in context.
const RequestIDContextKey = contextKey("request_id")
