package middleware

import (
	"errors"   // Error kind matching
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"wanderlist/internal/domain" // Identity and error kinds
	"wanderlist/internal/utils"  // JWT utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// Context keys set by JWTAuthMiddleware
const (
	UserIDKey   = "userID"   // uint
	IdentityKey = "identity" // domain.Identity
)

// JWTAuthMiddleware validates the bearer token and stores the caller's identity
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		tokenStr := ""
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenStr = strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")) // Extract the token string
		}
		identity, err := utils.ParseJWT(tokenStr, secret) // Parse the JWT token
		if err != nil {
			msg := "Invalid token"
			var derr *domain.Error
			if errors.As(err, &derr) {
				msg = derr.Message
			}
			if !errors.Is(err, domain.ErrMissingToken) {
				logrus.WithFields(logrus.Fields{"path": c.FullPath(), "ip": c.ClientIP()}).Warn(msg)
			}
			// Abort before the handler runs
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}
		c.Set(UserIDKey, identity.ID) // Store userID in context
		c.Set(IdentityKey, identity)  // Store full identity in context
		c.Next()                      // Proceed to the next handler
	}
}

// CurrentIdentity returns the identity JWTAuthMiddleware stored, if any
func CurrentIdentity(c *gin.Context) (domain.Identity, bool) {
	v, exists := c.Get(IdentityKey)
	if !exists {
		return domain.Identity{}, false
	}
	identity, ok := v.(domain.Identity)
	return identity, ok && identity.ID != 0
}
