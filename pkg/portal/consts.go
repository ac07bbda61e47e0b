package portal

type contextKey string

// Context keys for propagating auth info downstream.
const (
	AuthUserIDKey contextKey = "auth.user_id"
	AuthRoleKey   contextKey = "auth.role"
	RequestIDKey  contextKey = "request.id"
)

const RequestIDHeader = "X-Request-ID"
