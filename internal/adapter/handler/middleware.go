package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jayakishorers/jersey-backend/internal/port"
)

const identityKey = "identity"

// RequireAuth resolves the bearer token and stores the identity on the
// request context.
func RequireAuth(authenticator port.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{Success: false, Message: "Authorization required"})
			return
		}

		identity, err := authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{Success: false, Message: "Invalid credentials"})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequireAdmin gates privileged endpoints. Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !identityFrom(c).Privileged {
			c.AbortWithStatusJSON(http.StatusForbidden, Response{Success: false, Message: "Forbidden: Admin only"})
			return
		}
		c.Next()
	}
}

func identityFrom(c *gin.Context) port.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return port.Identity{}
	}
	identity, _ := v.(port.Identity)
	return identity
}
