package middleware

// contextKey is a private type for context keys to avoid collisions.
type contextKey string

const (
	loggerKey  = contextKey("logger")
	requestKey = contextKey("request_id")
	actorKey   = contextKey("actor_id")
)
