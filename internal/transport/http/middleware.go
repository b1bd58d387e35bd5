package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"pulsechat/internal/core"
)

const (
	// IdentityHeader carries the caller's claimed name. Possession of the
	// name is the whole trust model, matching the wire contract exactly.
	IdentityHeader = "X-Username"
	// ContextKeyIdentity is the gin context key for the authenticated identity.
	ContextKeyIdentity = "identity"
)

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// IdentityMiddleware rejects requests whose identity header is missing or
// names no live session.
func IdentityMiddleware(engine *core.Engine, logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := c.GetHeader(IdentityHeader)
		if identity == "" || !engine.IsActive(identity) {
			logger.Debug().Str("identity", identity).Msg("unauthenticated request")
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Not authenticated"})
			c.Abort()
			return
		}

		c.Set(ContextKeyIdentity, identity)
		c.Next()
	}
}

// LoggerMiddleware creates a middleware that logs HTTP requests.
func LoggerMiddleware(logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Msg("http request")
	}
}

// callerIdentity returns the identity the middleware stored in the context.
func callerIdentity(c *gin.Context) string {
	identity, _ := c.Get(ContextKeyIdentity)
	name, _ := identity.(string)
	return name
}
