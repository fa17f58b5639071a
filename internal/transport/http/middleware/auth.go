package middleware

import (
	"net/http"
	"strings"

	"github.com/AlexisMrz/Connect-4-AI-Agent/pkg/auth"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ContextName is the gin context key holding the authenticated caller.
const ContextName = "name"

// AuthMiddleware validates the bearer JWT and stores its name in the context
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		claims, err := auth.ValidateToken(secret, tokenString)
		if err != nil {
			log.Debug().Str("component", "auth").Err(err).Msg("rejected token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(ContextName, claims.Name)
		c.Next()
	}
}
