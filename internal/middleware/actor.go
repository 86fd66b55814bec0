package middleware

import (
	"github.com/gin-gonic/gin"
)

const (
	actorHeader  = "X-Actor-ID"
	defaultActor = "system"
)

// ActorMiddleware resolves the acting user for audit attribution. The core
// carries no authentication layer; the surrounding application authenticates
// and forwards the actor in the X-Actor-ID header.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := c.GetHeader(actorHeader)
		if actor == "" {
			actor = defaultActor
		}
		c.Set(string(actorKey), actor)
		c.Next()
	}
}

// GetActorIDFromContext returns the acting user ID set by ActorMiddleware.
func GetActorIDFromContext(c *gin.Context) string {
	if actor, ok := c.Get(string(actorKey)); ok {
		if s, ok := actor.(string); ok && s != "" {
			return s
		}
	}
	return defaultActor
}
