package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lloydngcobo/PCO/internal/core/ports"
)

const (
	authorizationHeaderKey  = "authorization"
	authorizationType       = "bearer"
	authorizationPayloadKey = "authorization_payload"
	requestIDHeaderKey      = "X-Request-ID"
)

// RequestIDMiddleware assigns every request an identifier, keeping the
// caller's when one is supplied.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeaderKey)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Writer.Header().Set(requestIDHeaderKey, requestID)
		c.Next()
	}
}

func AuthMiddleware(token ports.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authorizationHeader := c.GetHeader(authorizationHeaderKey)
		if authorizationHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Auth header required",
			})
			c.Abort()
			return
		}

		fields := strings.Fields(authorizationHeader)
		if len(fields) != 2 {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Auth fields required",
			})
			c.Abort()
			return
		}

		currentAuthorizationType := strings.ToLower(fields[0])
		if currentAuthorizationType != authorizationType {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Not authorizated",
			})
			c.Abort()
			return
		}

		accessToken := fields[1]
		payload, err := token.VerifyToken(accessToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(authorizationPayloadKey, &payload)
		c.Next()
	}
}
